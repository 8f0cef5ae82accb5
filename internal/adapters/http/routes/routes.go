package routes

import (
	"linka-backend/internal/adapters/http/handlers"
	"linka-backend/internal/adapters/http/middleware"
	"linka-backend/internal/adapters/persistence/repositories"
	"linka-backend/internal/config"
	"linka-backend/internal/core/services"
	"linka-backend/internal/pkg/authz"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	listingRepo := repositories.NewListingRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)

	// Initialize services
	notifyService := services.NewNotificationService(cfg.Notify)
	authService := services.NewAuthService(userRepo, notifyService, cfg)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	listingService := services.NewListingService(listingRepo, categoryRepo)
	transactionService := services.NewTransactionService(transactionRepo, listingRepo, userRepo, notifyService)
	reviewService := services.NewReviewService(reviewRepo, listingRepo, transactionRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	listingHandler := handlers.NewListingHandler(listingService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Identity resolution and route access policy apply to every request.
	// Authenticate never rejects; the policy is the single deny point.
	app.Use(middleware.Authenticate(cfg, userRepo))
	app.Use(middleware.AccessPolicy(authz.DefaultPolicy()))

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler,
		categoryHandler, listingHandler, transactionHandler, reviewHandler)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	categoryHandler *handlers.CategoryHandler,
	listingHandler *handlers.ListingHandler,
	transactionHandler *handlers.TransactionHandler,
	reviewHandler *handlers.ReviewHandler,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler)

	// Category routes (reads public, mutations admin via policy)
	categoryRoutes := router.Group("/categories")
	setupCategoryRoutes(categoryRoutes, categoryHandler)

	// Listing routes (browse public, mutations authenticated via policy)
	listingRoutes := router.Group("/listings")
	setupListingRoutes(listingRoutes, listingHandler)

	// Review routes (reads public)
	reviewRoutes := router.Group("/reviews")
	setupReviewRoutes(reviewRoutes, reviewHandler)

	// Transaction routes (authenticated via policy fallthrough)
	txRoutes := router.Group("/transactions")
	setupTransactionRoutes(txRoutes, transactionHandler)

	// Buyer-facing routes
	userRoutes := router.Group("/user")
	userRoutes.Get("/purchases", transactionHandler.Purchases)
	userRoutes.Post("/reviews", reviewHandler.Create)

	// Seller-facing routes
	sellerRoutes := router.Group("/seller")
	sellerRoutes.Get("/listings", listingHandler.MyListings)
	sellerRoutes.Get("/sales", transactionHandler.Sales)

	// Admin routes
	adminRoutes := router.Group("/admin")
	setupAdminRoutes(adminRoutes, userHandler, listingHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler) {
	// Stricter rate limits on the credential endpoints
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/reset-password", middleware.StrictRateLimiter(), handler.ResetPassword)

	router.Post("/logout", handler.Logout)
	router.Get("/check", handler.Check)
	router.Post("/verify-email", handler.VerifyEmail)
	router.Post("/verify-phone", handler.VerifyPhone)

	// Policy requires authentication on these
	router.Get("/profile", middleware.NoCacheHeaders(), handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)
	router.Post("/change-password", handler.ChangePassword)
}

// setupCategoryRoutes configures category routes
func setupCategoryRoutes(router fiber.Router, handler *handlers.CategoryHandler) {
	// Public reads, cached
	router.Get("/", middleware.CatalogCache(), handler.List)
	router.Get("/featured", middleware.CatalogCache(), handler.ListFeatured)
	router.Get("/popular", middleware.CatalogCache(), handler.ListPopular)
	router.Get("/parents", middleware.CatalogCache(), handler.ListParents)
	router.Get("/slug/:slug", middleware.CatalogCache(), handler.GetBySlug)
	router.Get("/:id", middleware.CatalogCache(), handler.Get)
	router.Get("/:id/children", middleware.CatalogCache(), handler.ListChildren)

	// Mutations, admin via policy
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
}

// setupListingRoutes configures listing routes
func setupListingRoutes(router fiber.Router, handler *handlers.ListingHandler) {
	// Public browse endpoints
	router.Get("/", handler.List)
	router.Get("/featured", handler.Featured)
	router.Get("/popular", handler.Popular)
	router.Get("/latest", handler.Latest)
	router.Get("/trending", handler.Trending)
	router.Get("/search", handler.Search)
	router.Get("/price-range", handler.PriceRange)
	router.Get("/location", handler.ByLocation)
	router.Get("/category/:id", handler.ByCategory)
	router.Get("/user/:id", handler.BySeller)
	router.Get("/:id", handler.Get)

	// Mutations, seller roles via policy
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Post("/:id/publish", handler.Publish)
	router.Post("/:id/sold", handler.MarkSold)
	router.Post("/:id/favorite", handler.Favorite)
	router.Post("/:id/contact", handler.Contact)
	router.Delete("/:id", handler.Delete)
}

// setupReviewRoutes configures review routes
func setupReviewRoutes(router fiber.Router, handler *handlers.ReviewHandler) {
	router.Get("/listing/:id", handler.ByListing)
	router.Get("/seller/:id", handler.BySeller)
	router.Get("/:id", handler.Get)
}

// setupTransactionRoutes configures transaction routes
func setupTransactionRoutes(router fiber.Router, handler *handlers.TransactionHandler) {
	router.Post("/", handler.Create)
	router.Get("/:id", handler.Get)
	router.Put("/:id/status", handler.UpdateStatus)
}

// setupAdminRoutes configures admin routes
func setupAdminRoutes(router fiber.Router, userHandler *handlers.UserHandler, listingHandler *handlers.ListingHandler) {
	// User administration
	router.Get("/users", userHandler.List)
	router.Get("/users/:id", userHandler.Get)
	router.Post("/users/:id/suspend", userHandler.Suspend)
	router.Post("/users/:id/ban", userHandler.Ban)
	router.Post("/users/:id/deactivate", userHandler.Deactivate)
	router.Post("/users/:id/activate", userHandler.Activate)
	router.Post("/users/:id/unlock", userHandler.Unlock)
	router.Put("/users/:id/type", userHandler.SetUserType)

	// Listing moderation
	router.Post("/listings/:id/suspend", listingHandler.Suspend)
}
