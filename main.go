// Package main provides the main entry point for the Hostthub dynamic pricing service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Landcsgirl1999/hostthub-pricing/app/handlers"
	"github.com/Landcsgirl1999/hostthub-pricing/app/router"
	"github.com/Landcsgirl1999/hostthub-pricing/app/scheduler"
	"github.com/Landcsgirl1999/hostthub-pricing/app/services"
	businessflow "github.com/Landcsgirl1999/hostthub-pricing/business_flow"
	"github.com/Landcsgirl1999/hostthub-pricing/config"
	"github.com/Landcsgirl1999/hostthub-pricing/models"
	"github.com/Landcsgirl1999/hostthub-pricing/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Hostthub pricing service...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a rotating file when
// configured, keeping stdout for container environments.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.Output == "stdout" || cfg.FilePath == "" {
		return
	}

	rotating := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	switch cfg.Output {
	case "file":
		log.SetOutput(rotating)
	case "both":
		log.SetOutput(io.MultiWriter(os.Stdout, rotating))
	}
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.Property{},
		&models.PricingConfig{},
		&models.PricingRule{},
		&models.SeasonalAdjustment{},
		&models.AmenityMultiplier{},
		&models.MarketDataSnapshot{},
		&models.CompetitorPriceSnapshot{},
		&models.PricingHistory{},
		&models.Reservation{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		DB:       cfg.RedisDB,
		Password: cfg.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		// The service degrades without a cache rather than refusing to start.
		log.Printf("Cache unavailable, continuing without it: %v", err)
		rc = nil
	}

	// Repositories
	propertyRepo := repository.NewPropertyRepository(db)
	marketRepo := repository.NewMarketDataRepository(db)
	competitorRepo := repository.NewCompetitorPriceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	historyRepo := repository.NewPricingHistoryRepository(db)

	// External signal providers
	weatherService := services.NewWeatherService(&cfg.Weather)
	eventsService := services.NewLocalEventsService(&cfg.Events)
	neighborhoodService := services.NewNeighborhoodService(&cfg.Geocoding)

	// Business flows
	pricingFlow := businessflow.NewPricingFlow(
		propertyRepo,
		marketRepo,
		competitorRepo,
		reservationRepo,
		historyRepo,
		weatherService,
		eventsService,
		neighborhoodService,
	)
	calendarFlow := businessflow.NewCalendarFlow(propertyRepo, pricingFlow, rc)
	marketDataFlow := businessflow.NewMarketDataFlow(propertyRepo, marketRepo, competitorRepo, rc)
	historyFlow := businessflow.NewPricingHistoryFlow(propertyRepo, historyRepo)

	// Handlers
	pricingHandler := handlers.NewPricingHandler(pricingFlow, calendarFlow)
	marketHandler := handlers.NewMarketDataHandler(marketDataFlow)
	historyHandler := handlers.NewPricingHistoryHandler(historyFlow)

	// Router
	appRouter := router.NewFiberRouter(cfg, pricingHandler, marketHandler, historyHandler)

	app := &Application{
		router: appRouter,
		config: cfg,
		server: appRouter.GetApp(),
	}

	// Background price refresh
	if cfg.Scheduler.Enabled {
		refresh := scheduler.NewPricingRefreshScheduler(propertyRepo, calendarFlow, cfg.Scheduler)
		stop := refresh.Start(context.Background())
		app.stopFuncs = append(app.stopFuncs, stop)
		log.Printf("Pricing refresh scheduler started (interval=%s)", cfg.Scheduler.Interval)
	}

	return app, nil
}
