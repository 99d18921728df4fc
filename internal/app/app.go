package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tailorix_backend/database"
	"tailorix_backend/internal/config"
	"tailorix_backend/internal/email"
	"tailorix_backend/internal/handlers"
	"tailorix_backend/internal/logger"
	"tailorix_backend/internal/middleware"
	"tailorix_backend/internal/repositories"
	"tailorix_backend/internal/routes"
	"tailorix_backend/internal/services"
	"tailorix_backend/internal/validator"
	"tailorix_backend/internal/workers"
)

// Run boots the application: config, logger, database, migrations, seed
// data, background workers and the HTTP server.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repositories.NewSubscriptionRepository(gormDB).SeedDefaultPlans(seedCtx); err != nil {
		cancelSeed()
		logger.Fatal("Failed to seed subscription plans", "error", err)
	}
	cancelSeed()

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	sweepInterval := time.Duration(cfg.Subscription.SweepIntervalMinutes) * time.Minute
	workers.NewSubscriptionWorker(serviceContainer.SubscriptionService, sweepInterval).Start(workerCtx)

	ginRouter := SetupRouter(cfg, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the gin engine with all middleware and routes. Split
// from Run so tests can mount the full API against fake services.
func SetupRouter(cfg *config.Config, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	emailProvider := email.NewProvider(cfg)
	if !cfg.Email.Enabled {
		logger.Warn("Email delivery disabled; using no-op provider")
	}

	userRepo := repositories.NewUserRepository(gormDB)
	tailorRepo := repositories.NewTailorRepository(gormDB)
	favoriteRepo := repositories.NewFavoriteRepository(gormDB)
	subscriptionRepo := repositories.NewSubscriptionRepository(gormDB)

	return &services.ServiceContainer{
		AuthService:         services.NewAuthService(userRepo, emailProvider),
		DiscoveryService:    services.NewDiscoveryService(tailorRepo, favoriteRepo, cfg.Discovery.DefaultRadiusKm),
		TailorService:       services.NewTailorService(tailorRepo, favoriteRepo),
		FavoriteService:     services.NewFavoriteService(favoriteRepo, tailorRepo),
		SubscriptionService: services.NewSubscriptionService(subscriptionRepo, userRepo, emailProvider),
		EmailProvider:       emailProvider,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService),
		DiscoveryHandler:    handlers.NewDiscoveryHandler(baseHandler, serviceContainer.DiscoveryService),
		TailorHandler:       handlers.NewTailorHandler(baseHandler, serviceContainer.TailorService),
		FavoriteHandler:     handlers.NewFavoriteHandler(baseHandler, serviceContainer.FavoriteService),
		SubscriptionHandler: handlers.NewSubscriptionHandler(baseHandler, serviceContainer.SubscriptionService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}
