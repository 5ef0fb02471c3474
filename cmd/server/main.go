package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"autoserve.backend/internal/config"
	"autoserve.backend/internal/infrastructure/repositories"
	"autoserve.backend/internal/interfaces/http/handlers"
	"autoserve.backend/internal/interfaces/http/middleware"
	"autoserve.backend/internal/usecases"
	"autoserve.backend/pkg/jwt"
	"autoserve.backend/pkg/logger"
	"autoserve.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	tokenService := jwt.NewTokenService(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	loginAttemptRepo := repositories.NewLoginAttemptRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	analyticsRepo := repositories.NewAnalyticsRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	serviceRecordRepo := repositories.NewServiceRecordRepository(db)
	inventoryRepo := repositories.NewInventoryRepository(db)
	warrantyRepo := repositories.NewWarrantyRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	rateLimiter := redis.NewRateLimiter(redis.GetClient())

	// Usecases
	loginGuard := usecases.NewLoginGuard(loginAttemptRepo, cfg.Lockout)
	authUsecase := usecases.NewAuthUsecase(userRepo, sessionRepo, tokenService, sessionStore, loginGuard)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, cfg.Security.StaticAPIKeys, cfg.RateLimit.DefaultLimit)
	analyticsUsecase := usecases.NewAnalyticsUsecase(analyticsRepo)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo)
	vehicleUsecase := usecases.NewVehicleUsecase(vehicleRepo, customerRepo)
	notificationUsecase := usecases.NewNotificationUsecase(notificationRepo)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, vehicleRepo, customerRepo, notificationUsecase)
	serviceRecordUsecase := usecases.NewServiceRecordUsecase(serviceRecordRepo, bookingRepo)
	inventoryUsecase := usecases.NewInventoryUsecase(inventoryRepo)
	warrantyUsecase := usecases.NewWarrantyUsecase(warrantyRepo, vehicleRepo)
	invoiceUsecase := usecases.NewInvoiceUsecase(invoiceRepo, serviceRecordRepo, bookingRepo, notificationUsecase)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUsecase)
	customerHandler := handlers.NewCustomerHandler(customerUsecase)
	vehicleHandler := handlers.NewVehicleHandler(vehicleUsecase)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase)
	serviceRecordHandler := handlers.NewServiceRecordHandler(serviceRecordUsecase)
	inventoryHandler := handlers.NewInventoryHandler(inventoryUsecase)
	warrantyHandler := handlers.NewWarrantyHandler(warrantyUsecase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUsecase)
	notificationHandler := handlers.NewNotificationHandler(notificationUsecase)

	gateway := middleware.NewAuthGateway(tokenService, apiKeyUsecase, rateLimiter, cfg.RateLimit.Enabled)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.AnalyticsMiddleware(analyticsUsecase))

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:          authHandler,
		apiKeyHandler:        apiKeyHandler,
		analyticsHandler:     analyticsHandler,
		customerHandler:      customerHandler,
		vehicleHandler:       vehicleHandler,
		bookingHandler:       bookingHandler,
		serviceRecordHandler: serviceRecordHandler,
		inventoryHandler:     inventoryHandler,
		warrantyHandler:      warrantyHandler,
		invoiceHandler:       invoiceHandler,
		notificationHandler:  notificationHandler,
		authGateway:          gateway.Handler(),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("shutting down server...")
	}()

	log.Printf("AutoServe backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
