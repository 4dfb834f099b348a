package routes

import (
	"log"

	"agriloan-portal/internal/adapters/http/handlers"
	"agriloan-portal/internal/adapters/http/middleware"
	"agriloan-portal/internal/adapters/persistence/repositories"
	"agriloan-portal/internal/config"
	"agriloan-portal/internal/core/domain"
	"agriloan-portal/internal/core/session"
	"agriloan-portal/internal/pkg/tokenseal"
	"agriloan-portal/internal/upstream"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires the session layer, the upstream façades and all routes.
// It returns the session manager so main can hang the janitor off it.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) (*session.Manager, error) {
	// Session infrastructure
	sealer, err := tokenseal.New(cfg.Session.Secret)
	if err != nil {
		return nil, err
	}

	var store session.Store
	if cfg.Session.Store == config.StoreMySQL && db != nil {
		store = repositories.NewSessionRepository(db)
		log.Println("✅ Using MySQL session store")
	} else {
		store = session.NewMemoryStore()
		log.Println("✅ Using in-memory session store")
	}

	manager := session.NewManager(store, sealer, cfg.Session.TTL)

	// The upstream client reads its token from the session bound to each
	// request context; the auth façade is then bound back into the manager
	services := upstream.NewServices(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, manager, manager)
	manager.BindAuth(services.Auth)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(manager, services.Auth)
	userHandler := handlers.NewUserHandler(services.Users)
	farmerHandler := handlers.NewFarmerHandler(services.Farmers)
	officerHandler := handlers.NewOfficerHandler(services.LoanOfficers)
	supervisorHandler := handlers.NewSupervisorHandler(services.Supervisors)
	adminHandler := handlers.NewAdminHandler(services)
	districtHandler := handlers.NewDistrictHandler(services.Districts)
	predictionHandler := handlers.NewPredictionHandler(services.Predictions)
	monitoringHandler := handlers.NewMonitoringHandler(services.Monitoring)
	dashboardHandler := handlers.NewDashboardHandler(services)
	pagesHandler := handlers.NewPagesHandler()
	healthHandler := handlers.NewHealthHandler(cfg)

	// Every request carries a resolved session from here on
	app.Use(middleware.SessionMiddleware(manager, cfg))

	// Health check + swagger (public)
	app.Get("/health", healthHandler.Check)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Page shells
	app.Get("/", middleware.Protect(middleware.Requirement{GuestOnly: true}), pagesHandler.Home)
	app.Get("/auth/login", middleware.Protect(middleware.Requirement{GuestOnly: true}), pagesHandler.Login)
	app.Get("/auth/signup", middleware.Protect(middleware.Requirement{GuestOnly: true}), pagesHandler.Signup)
	app.Get("/auth/password-reset", middleware.Protect(middleware.Requirement{GuestOnly: true}), pagesHandler.PasswordReset)
	app.Get("/dashboard", middleware.Protect(middleware.Requirement{RequireAuth: true}), pagesHandler.Dashboard)
	app.Get("/dashboard/:role", middleware.Protect(middleware.Requirement{RequireAuth: true}), pagesHandler.RoleDashboard)
	app.Get("/farmer/apply", middleware.Protect(middleware.Requirement{Roles: []domain.Role{domain.RoleFarmer}}), pagesHandler.Apply)

	// JSON API
	api := app.Group("/portal/v1")

	// Auth routes (rate limited; login/signup/reset are guest flows)
	auth := api.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/signup", middleware.AuthRateLimiter(), authHandler.Signup)
	auth.Post("/password-reset", middleware.StrictRateLimiter(), authHandler.PasswordReset)
	auth.Post("/verify-otp", middleware.StrictRateLimiter(), authHandler.VerifyOTP)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", authHandler.Me)

	// Session flash notices
	api.Get("/notices", authHandler.Notices)

	// District reference data (needed by the signup form, so public)
	districts := api.Group("/districts")
	districts.Get("/", districtHandler.Districts)
	districts.Get("/:id", districtHandler.District)

	// Shared authenticated routes
	api.Put("/users/update-profile", middleware.RequireAuth(), userHandler.UpdateProfile)

	dashboard := api.Group("/dashboard", middleware.RequireAuth())
	dashboard.Get("/me", dashboardHandler.Me)
	dashboard.Get("/overview", dashboardHandler.Overview)
	dashboard.Get("/crop-types", userHandler.CropTypes)

	// Farmer routes
	farmers := api.Group("/farmers", middleware.RequireRoles(domain.RoleFarmer))
	farmers.Post("/applications", farmerHandler.SubmitApplication)
	farmers.Get("/applications", farmerHandler.Applications)
	farmers.Get("/applications/:id", farmerHandler.Application)
	farmers.Get("/profile", farmerHandler.Profile)
	farmers.Get("/yield-history", farmerHandler.YieldHistory)

	// Loan officer routes
	officers := api.Group("/loan-officers", middleware.RequireRoles(domain.RoleLoanOfficer))
	officers.Get("/applications", officerHandler.Applications)
	officers.Get("/dashboard/stats", officerHandler.DashboardStats)
	officers.Get("/districts", officerHandler.Districts)
	officers.Get("/crop-types", officerHandler.CropTypes)

	// Supervisor routes
	supervisors := api.Group("/supervisors", middleware.RequireRoles(domain.RoleSupervisor))
	supervisors.Get("/dashboard", supervisorHandler.Dashboard)
	supervisors.Get("/loan-officers", supervisorHandler.LoanOfficers)
	supervisors.Get("/applications/pending", supervisorHandler.PendingApplications)
	supervisors.Post("/applications/:id/approve", supervisorHandler.Review)
	supervisors.Post("/applications/:id/assign", supervisorHandler.Assign)

	// Admin routes
	admin := api.Group("/admin", middleware.RequireRoles(domain.RoleAdmin))
	admin.Get("/model-performance", adminHandler.ModelPerformance)
	admin.Post("/system-settings", adminHandler.UpdateSystemSetting)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users", adminHandler.Users)
	admin.Get("/users/:id", adminHandler.User)
	admin.Put("/users/:id", adminHandler.UpdateUser)
	admin.Delete("/users/:id", adminHandler.DeactivateUser)
	admin.Post("/cache/clear", adminHandler.ClearCaches)

	// Prediction routes (staff only; model reload is admin only)
	staff := []domain.Role{domain.RoleLoanOfficer, domain.RoleSupervisor, domain.RoleAdmin}
	predictions := api.Group("/predictions", middleware.RequireRoles(staff...))
	predictions.Post("/predict", predictionHandler.Predict)
	predictions.Post("/predict-and-update/:id", predictionHandler.PredictAndUpdate)
	predictions.Post("/batch-predict", predictionHandler.BatchPredict)
	predictions.Get("/pending-applications", predictionHandler.PendingApplications)
	predictions.Post("/process-pending-batch", predictionHandler.ProcessPendingBatch)
	predictions.Get("/model-info", predictionHandler.ModelInfo)
	predictions.Post("/reload-model", middleware.RequireRoles(domain.RoleAdmin), predictionHandler.ReloadModel)
	predictions.Get("/prediction-history/:farmerId", predictionHandler.History)

	// ML monitoring routes (admin only)
	monitoring := api.Group("/monitoring", middleware.RequireRoles(domain.RoleAdmin))
	monitoring.Get("/health", monitoringHandler.Health)
	monitoring.Get("/metrics", monitoringHandler.Metrics)
	monitoring.Post("/deploy", monitoringHandler.Deploy)
	monitoring.Post("/rollback", monitoringHandler.Rollback)
	monitoring.Get("/status", monitoringHandler.Status)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "Route not found",
			"path":    c.Path(),
		})
	})

	return manager, nil
}
