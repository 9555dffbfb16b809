package routes

import (
	"cooploan/internal/adapters/http/handlers"
	"cooploan/internal/adapters/http/middleware"
	"cooploan/internal/adapters/persistence/repositories"
	"cooploan/internal/config"
	"cooploan/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	memberRepo := repositories.NewMemberRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	orgRepo := repositories.NewOrganizationRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	repaymentRepo := repositories.NewRepaymentRepository(db)
	contributionRepo := repositories.NewContributionRepository(db)
	profitRepo := repositories.NewProfitRepository(db)
	statsRepo := repositories.NewStatisticsRepository(db)

	// Initialize services
	authService := services.NewAuthService(memberRepo, refreshTokenRepo, cfg)
	orgService := services.NewOrganizationService(orgRepo, memberRepo)
	memberService := services.NewMemberService(memberRepo, orgRepo, loanRepo, contributionRepo)
	loanService := services.NewLoanService(loanRepo, memberRepo, repaymentRepo)
	repaymentService := services.NewRepaymentService(repaymentRepo, loanRepo)
	contributionService := services.NewContributionService(contributionRepo, memberRepo)
	profitService := services.NewProfitService(profitRepo, memberRepo)
	statsService := services.NewStatisticsService(statsRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	orgHandler := handlers.NewOrganizationHandler(orgService, memberService)
	memberHandler := handlers.NewMemberHandler(memberService, loanService, repaymentService, contributionService)
	loanHandler := handlers.NewLoanHandler(loanService, repaymentService)
	repaymentHandler := handlers.NewRepaymentHandler(repaymentService)
	contributionHandler := handlers.NewContributionHandler(contributionService)
	profitHandler := handlers.NewProfitHandler(profitService)
	statsHandler := handlers.NewStatisticsHandler(statsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Check)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")

	// Auth routes (public, stricter rate limit on login)
	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	// Auth routes (protected)
	authProtected := apiV1.Group("/auth", middleware.AuthMiddleware(cfg))
	authProtected.Post("/logout-all", authHandler.LogoutAll)
	authProtected.Get("/me", authHandler.Me)

	// Everything below requires authentication
	protected := apiV1.Group("", middleware.AuthMiddleware(cfg))

	// Organization routes
	organizations := protected.Group("/organizations")
	organizations.Get("", orgHandler.List)
	organizations.Get("/:id", orgHandler.Get)
	organizations.Get("/:id/members", orgHandler.Members)
	organizations.Post("", middleware.AdminOnly(), orgHandler.Create)
	organizations.Put("/:id", middleware.AdminOnly(), orgHandler.Update)
	organizations.Delete("/:id", middleware.AdminOnly(), orgHandler.Delete)

	// Member routes
	members := protected.Group("/members")
	members.Get("", memberHandler.List)
	members.Get("/:id", memberHandler.Get)
	members.Get("/:id/loans", memberHandler.Loans)
	members.Get("/:id/repayments", memberHandler.Repayments)
	members.Get("/:id/contributions", memberHandler.Contributions)
	members.Post("", middleware.CanAddMembers(), memberHandler.Create)
	members.Put("/:id", middleware.AdminOnly(), memberHandler.Update)
	members.Delete("/:id", middleware.SuperAdminOnly(), memberHandler.Delete)

	// Loan routes
	loans := protected.Group("/loans")
	loans.Get("", loanHandler.List)
	loans.Get("/:id", loanHandler.Get)
	loans.Get("/:id/repayments", loanHandler.Repayments)
	loans.Post("", loanHandler.Create)
	loans.Patch("/:id/status", middleware.AdminOnly(), loanHandler.UpdateStatus)
	loans.Put("/:id", middleware.AdminOnly(), loanHandler.Update)
	loans.Delete("/:id", middleware.AdminOnly(), loanHandler.Delete)

	// Repayment routes
	repayments := protected.Group("/repayments")
	repayments.Get("", repaymentHandler.List)
	repayments.Get("/:id", repaymentHandler.Get)
	repayments.Post("", repaymentHandler.Record)

	// Contribution routes
	contributions := protected.Group("/contributions")
	contributions.Get("", contributionHandler.List)
	contributions.Get("/:id", contributionHandler.Get)
	contributions.Post("", contributionHandler.Record)

	// Profit routes
	profits := protected.Group("/profits")
	profits.Get("", profitHandler.List)
	profits.Get("/:year", profitHandler.GetByYear)
	profits.Get("/:year/distribution", profitHandler.Distribution)
	profits.Post("", middleware.AdminOnly(), profitHandler.Create)

	// Statistics route
	protected.Get("/statistics", statsHandler.Get)
}
