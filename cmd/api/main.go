package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/cache"
	"github.com/TanzilStore/store_api/internal/config"
	"github.com/TanzilStore/store_api/internal/database"
	"github.com/TanzilStore/store_api/internal/handler"
	"github.com/TanzilStore/store_api/internal/middleware"
	"github.com/TanzilStore/store_api/internal/repository"
	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/sse"
	"github.com/TanzilStore/store_api/internal/utils"
	"github.com/TanzilStore/store_api/internal/worker"
	"github.com/TanzilStore/store_api/pkg/legacyapi"
)

// main is the application entrypoint for the Tanzil Store admin API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting store api")

	utils.SetJWTSecret(cfg.JWTSecret)

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := runMigrations(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// 3b. Connect to Redis
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Error().Err(err).Msg("redis connection failed")
		fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info().Msg("redis connected successfully")

	// 3c. Initialize report cache
	reportCache := cache.NewReportCache(redisClient, cfg.Worker.ReportTTL)

	// 4. Initialize legacy storefront client
	legacyClient := legacyapi.NewClient(cfg.Legacy.BaseURL, cfg.Legacy.Token)

	// 5. Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)

	// 5a. SSE hub for dashboard live updates
	hub := sse.NewHub()

	// 6. Initialize services
	collections := service.NewCollections(productRepo, categoryRepo, orderRepo, userRepo)
	authSvc := service.NewAuthService(userRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, collections, reportCache)
	categorySvc := service.NewCategoryService(categoryRepo, productRepo, collections)
	orderSvc := service.NewOrderService(orderRepo, collections, reportCache, sse.NewHubNotifier(hub))
	userSvc := service.NewUserService(collections)
	dashboardSvc := service.NewDashboardService(collections, reportCache)
	importSvc := service.NewImportService(legacyClient, productRepo, categoryRepo, orderRepo, reportCache, hub)

	// 7. Initialize handlers
	loginLimiter := middleware.NewLoginRateLimiter()
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db, redisClient),
		Auth:      handler.NewAuthHandler(authSvc, loginLimiter),
		Product:   handler.NewProductHandler(productSvc),
		Category:  handler.NewCategoryHandler(categorySvc),
		Order:     handler.NewOrderHandler(orderSvc),
		User:      handler.NewUserHandler(userSvc),
		Dashboard: handler.NewDashboardHandler(dashboardSvc),
		Import:    handler.NewImportHandler(importSvc),
		SSE:       handler.NewSSEHandler(hub),
	}

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware()

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw)

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	go worker.NewImportWorker(importSvc, cfg.Worker.ImportInterval).Start(ctx)
	go worker.NewReportWorker(dashboardSvc, cfg.Worker.ReportInterval).Start(ctx)

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Category  *handler.CategoryHandler
	Order     *handler.OrderHandler
	User      *handler.UserHandler
	Dashboard *handler.DashboardHandler
	Import    *handler.ImportHandler
	SSE       *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware) {
	router.GET("/v1/health", handlers.Health.GetHealth)

	// Public storefront routes
	router.GET("/v1/categories", handlers.Category.Tree)
	router.GET("/v1/products", handlers.Product.List)
	router.GET("/v1/products/:id", handlers.Product.Get)

	// Admin routes
	admin := router.Group("/v1/admin")
	admin.POST("/auth/login", handlers.Auth.Login)
	admin.GET("/events", handlers.SSE.Stream)
	admin.Use(jwtMiddleware.Handle())
	{
		admin.GET("/auth/me", handlers.Auth.Me)

		// Dashboard and analytics
		admin.GET("/dashboard", handlers.Dashboard.Overview)
		admin.GET("/reports/sales", handlers.Dashboard.Sales)

		// Product management
		admin.GET("/products", handlers.Product.List)
		admin.POST("/products", handlers.Product.Create)
		admin.GET("/products/:id", handlers.Product.Get)
		admin.PUT("/products/:id", handlers.Product.Update)
		admin.DELETE("/products/:id", handlers.Product.Delete)

		// Category management
		admin.GET("/categories", handlers.Category.List)
		admin.POST("/categories", handlers.Category.Create)
		admin.GET("/categories/:id", handlers.Category.Get)
		admin.PUT("/categories/:id", handlers.Category.Update)
		admin.DELETE("/categories/:id", handlers.Category.Delete)

		// Order management
		admin.GET("/orders", handlers.Order.List)
		admin.GET("/orders/:id", handlers.Order.Get)
		admin.PUT("/orders/:id/status", handlers.Order.UpdateStatus)
		admin.PUT("/orders/:id/payment-status", handlers.Order.UpdatePaymentStatus)

		// User accounts
		admin.GET("/users", handlers.User.List)

		// Catalog synchronization
		admin.POST("/import", handlers.Import.Run)
	}
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	// Run migrations
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
