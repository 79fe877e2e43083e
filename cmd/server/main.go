package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/retailbooks/backend/internal/application/catalog"
	financeapp "github.com/retailbooks/backend/internal/application/finance"
	ledgerapp "github.com/retailbooks/backend/internal/application/ledger"
	tradeapp "github.com/retailbooks/backend/internal/application/trade"
	"github.com/retailbooks/backend/internal/infrastructure/auth"
	"github.com/retailbooks/backend/internal/infrastructure/config"
	"github.com/retailbooks/backend/internal/infrastructure/lock"
	"github.com/retailbooks/backend/internal/infrastructure/logger"
	"github.com/retailbooks/backend/internal/infrastructure/persistence"
	"github.com/retailbooks/backend/internal/interfaces/http/handler"
	"github.com/retailbooks/backend/internal/interfaces/http/middleware"
	"github.com/retailbooks/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting RetailBooks Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis for the per-(date, branch) day close lock
	redisClient, err := lock.NewRedisClient(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis client", zap.Error(err))
		}
	}()
	log.Info("Redis connected successfully")

	// Repositories
	entryRepo := persistence.NewGormEntryRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	closingRepo := persistence.NewGormCashClosingRepository(db.DB)

	// Application services
	entryService := ledgerapp.NewEntryService(entryRepo)
	saleService := tradeapp.NewSaleService(saleRepo)
	productService := catalogapp.NewProductService(productRepo)
	feedService := financeapp.NewLedgerFeedService(entryRepo, saleRepo)
	dashboardService := financeapp.NewDashboardService(entryRepo, saleRepo)
	statementService := financeapp.NewIncomeStatementService(entryRepo, saleRepo, productRepo)

	dayLocker := lock.NewRedisLocker(redisClient, "lock:")
	closingService := financeapp.NewCashClosingService(closingRepo, entryRepo, saleRepo, dayLocker)
	closingService.SetLockTTL(cfg.Closing.LockTTL)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(1 << 20))
	engine.Use(middleware.JWTAuthMiddleware(jwtService))

	// Handlers and routes
	r := router.NewRouter(engine)
	r.Register(handler.NewAuthHandler(jwtService, cfg.Auth)).
		Register(handler.NewEntryHandler(entryService)).
		Register(handler.NewSaleHandler(saleService)).
		Register(handler.NewProductHandler(productService)).
		Register(handler.NewFinanceHandler(feedService, dashboardService, statementService)).
		Register(handler.NewCashClosingHandler(closingService)).
		Register(handler.NewSystemHandler(db))
	r.Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
