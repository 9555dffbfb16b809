package config

import (
	"log"

	"cooploan/internal/adapters/persistence/models"
	"cooploan/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Super admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin seeds the bootstrap super admin member.
// The password comes from ADMIN_PASSWORD; change it in production.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.Member{}).Where("is_super_admin = ?", true).Count(&count)
	if count > 0 {
		return nil // Super admin already exists
	}

	hashedPassword, err := password.Hash(s.cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Member{
		Name:          "Super Administrator",
		Email:         s.cfg.Admin.Email,
		Password:      hashedPassword,
		IsAdmin:       true,
		CanAddMembers: true,
		IsSuperAdmin:  true,
		IsActive:      true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", admin.Email)
	return nil
}
