package services

import (
	"context"
	"log"
	"time"

	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs the scheduled maintenance jobs: the nightly overdue
// sweep and refresh token cleanup.
type CronService struct {
	cron             *cron.Cron
	loanRepo         *repositories.LoanRepository
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		loanRepo:         repositories.NewLoanRepository(db),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	// Overdue sweep at 01:00 daily
	if _, err := s.cron.AddFunc("0 1 * * *", s.runOverdueSweep); err != nil {
		log.Printf("❌ Failed to schedule overdue sweep: %v", err)
		return
	}

	// Expired refresh token cleanup at 02:00 daily
	if _, err := s.cron.AddFunc("0 2 * * *", s.runTokenCleanup); err != nil {
		log.Printf("❌ Failed to schedule token cleanup: %v", err)
		return
	}

	s.cron.Start()
	log.Println("✅ Cron service started (overdue sweep 01:00, token cleanup 02:00)")
}

// Stop stops the scheduled jobs
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cron service stopped")
}

// runOverdueSweep flags active loans that missed the current month and
// reactivates overdue loans that have since paid.
func (s *CronService) runOverdueSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	month, monthStart := currentMonthWindow()

	flagged, err := s.loanRepo.MarkOverdue(ctx, month, monthStart)
	if err != nil {
		log.Printf("❌ Overdue sweep failed: %v", err)
		return
	}

	recovered, err := s.loanRepo.ReactivateCurrent(ctx, month)
	if err != nil {
		log.Printf("❌ Overdue recovery failed: %v", err)
		return
	}

	log.Printf("✅ Overdue sweep for %s: %d flagged %s, %d back to %s",
		month, flagged, domain.LoanOverdue, recovered, domain.LoanActive)
}

// runTokenCleanup deletes expired refresh tokens
func (s *CronService) runTokenCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Token cleanup failed: %v", err)
		return
	}

	log.Println("✅ Expired refresh tokens cleaned up")
}
