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

	inventoryapp "github.com/meridianfood/backend/internal/application/inventory"
	planningapp "github.com/meridianfood/backend/internal/application/planning"
	reportapp "github.com/meridianfood/backend/internal/application/report"
	"github.com/meridianfood/backend/internal/domain/catalog"
	"github.com/meridianfood/backend/internal/domain/inventory"
	"github.com/meridianfood/backend/internal/domain/ordering"
	"github.com/meridianfood/backend/internal/domain/planning"
	"github.com/meridianfood/backend/internal/infrastructure/cache"
	"github.com/meridianfood/backend/internal/infrastructure/config"
	"github.com/meridianfood/backend/internal/infrastructure/event"
	"github.com/meridianfood/backend/internal/infrastructure/logger"
	"github.com/meridianfood/backend/internal/infrastructure/persistence"
	"github.com/meridianfood/backend/internal/interfaces/http/handler"
	"github.com/meridianfood/backend/internal/interfaces/http/middleware"
	"github.com/meridianfood/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Meridian Planning API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Outside production the schema is auto-migrated; production uses the
	// cmd/migrate SQL migrations.
	if cfg.App.Env != "production" {
		if err := autoMigrate(db); err != nil {
			log.Fatal("Failed to auto-migrate schema", zap.Error(err))
		}
	}

	// Initialize repositories
	orderRepo := persistence.NewGormProductionOrderRepository(db.DB)
	snapshotRepo := persistence.NewGormCoverageSnapshotRepository(db.DB)
	customerOrderRepo := persistence.NewGormCustomerOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	dishRepo := persistence.NewGormPlatedDishRepository(db.DB)
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	areaRepo := persistence.NewGormProductionAreaRepository(db.DB)
	warehouseRepo := persistence.NewGormWarehouseRepository(db.DB)
	stockRepo := persistence.NewGormWarehouseStockRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	warehouseTxRepo := persistence.NewGormWarehouseTransactionRepository(db.DB)

	// Transaction scopes: one database transaction per use case
	planningScope := persistence.NewGormPlanningTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Report cache: Redis when reachable, in-memory otherwise
	var reportCache reportapp.ReportCache
	if cfg.Report.CacheEnabled {
		cacheFactory := cache.NewReportCacheFactory(cfg.Redis, cfg.Report.CacheTTL,
			cache.WithLogger(log))
		reportCache, err = cacheFactory.CreateCache()
		if err != nil {
			log.Fatal("Failed to create report cache", zap.Error(err))
		}
	}

	// Domain event bus with an audit-trail subscriber
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditLogger(log))

	// Initialize application services
	planningService := planningapp.NewPlanningService(orderRepo, warehouseRepo, planningScope, eventBus, log)
	stockService := inventoryapp.NewStockLedgerService(stockRepo, movementRepo, warehouseTxRepo, inventoryScope, log)
	reportBuilder := reportapp.NewConsolidationReportBuilder(
		orderRepo, snapshotRepo, customerOrderRepo,
		productRepo, dishRepo, branchRepo, companyRepo, areaRepo,
		reportCache, log,
	)

	// Initialize HTTP handlers
	productionOrderHandler := handler.NewProductionOrderHandler(planningService)
	stockHandler := handler.NewStockHandler(stockService)
	reportHandler := handler.NewReportHandler(reportBuilder)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS, body size limit
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(productionOrderHandler)
	r.Register(stockHandler)
	r.Register(reportHandler)
	r.Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
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

// autoMigrate syncs the gorm models to the connected schema
func autoMigrate(db *persistence.Database) error {
	return db.DB.AutoMigrate(
		&catalog.Branch{},
		&catalog.Company{},
		&catalog.ProductionArea{},
		&catalog.Product{},
		&catalog.PlatedDish{},
		&catalog.DishIngredient{},
		&catalog.Warehouse{},
		&ordering.CustomerOrder{},
		&ordering.OrderLine{},
		&planning.ProductionOrder{},
		&planning.ProductionOrderLine{},
		&planning.CoverageSnapshot{},
		&inventory.WarehouseStock{},
		&inventory.StockMovement{},
		&inventory.WarehouseTransaction{},
		&inventory.WarehouseTransactionLine{},
	)
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
