package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/sangkips/licorera-api/internal/application/service"
	"github.com/sangkips/licorera-api/internal/config"
	domainRepo "github.com/sangkips/licorera-api/internal/domain/repository"
	"github.com/sangkips/licorera-api/internal/infrastructure/cartstore"
	"github.com/sangkips/licorera-api/internal/infrastructure/database"
	"github.com/sangkips/licorera-api/internal/infrastructure/repository"
	"github.com/sangkips/licorera-api/internal/presentation/http/handler"
	"github.com/sangkips/licorera-api/internal/presentation/http/middleware"
	"github.com/sangkips/licorera-api/internal/presentation/http/routes"
	"github.com/sangkips/licorera-api/pkg/logger"
	"github.com/sangkips/licorera-api/pkg/metrics"
	"github.com/sangkips/licorera-api/pkg/printer"
	"github.com/sangkips/licorera-api/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "licorera-api"})

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: cfg.App.Name,
		Level:       logger.ParseLevel(cfg.Log.Level),
		Format:      cfg.Log.Format,
		WarnStack:   cfg.App.Debug,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"port": cfg.App.Port,
	})

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(&cfg.Database, logg, cfg.App.Debug)
	if err != nil {
		logg.Error(ctx, "failed to connect to database", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		logg.Error(ctx, "failed to run migrations", err)
		os.Exit(1)
	}

	if created, err := database.SeedAdmin(ctx, db, cfg.Admin); err != nil {
		logg.Error(ctx, "failed to seed admin user", err)
	} else if created {
		logg.Event(ctx, zerolog.InfoLevel).Str("email", cfg.Admin.Email).Msg("admin user created")
	}

	carts, closeCarts := newCartStore(ctx, cfg, logg)
	defer closeCarts()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	thermalPrinter, err := printer.New(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		logg.Error(ctx, "failed to initialize printer, printing disabled", err)
		thermalPrinter, _ = printer.New(printer.KindNone, "", "")
	}

	// Initialize services
	loc := cfg.App.Location()
	categoryService := service.NewCategoryService(categoryRepo, productRepo)
	productService := service.NewProductService(productRepo, categoryRepo, categoryService)
	receiptService := service.NewReceiptService(receiptRepo, productRepo, metrics.NewSalesMetrics(registry), logg, cfg.Receipt, loc)
	cartService := service.NewCartService(carts, productRepo, receiptService)
	reportService := service.NewReportService(receiptRepo, loc, cfg.Receipt.TopN)
	authService := service.NewAuthService(userRepo, carts, jwtManager)
	printerService := service.NewPrinterService(thermalPrinter, receiptService, cfg.Printer.Width)

	handlers := &routes.Handlers{
		Health: handler.NewHealthHandler(cfg.App.Name, func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		Auth:     handler.NewAuthHandler(authService),
		Category: handler.NewCategoryHandler(categoryService),
		Product:  handler.NewProductHandler(productService),
		Cart:     handler.NewCartHandler(cartService),
		Receipt:  handler.NewReceiptHandler(receiptService),
		Report:   handler.NewReportHandler(reportService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
	})
	defer limiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          logg,
		Registry:        registry,
		HTTPMetrics:     metrics.NewHTTPMetrics(registry),
		RateLimiter:     limiter,
	})

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go purgeIdempotencyKeys(runCtx, idempotencyRepo, logg)

	server := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info(ctx, "starting api server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			stop()
		}
	}()

	<-runCtx.Done()
	logg.Info(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
	closeDB(ctx, db, logg)
}

// newCartStore uses redis when REDIS_ADDR is set and falls back to process
// memory otherwise or when redis is unreachable.
func newCartStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (domainRepo.CartStore, func()) {
	if cfg.Redis.Addr == "" {
		logg.Info(ctx, "cart sessions kept in memory")
		return cartstore.NewMemory(cfg.Redis.CartTTL), func() {}
	}

	client, err := cartstore.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logg.Error(ctx, "failed to connect to redis, cart sessions kept in memory", err)
		return cartstore.NewMemory(cfg.Redis.CartTTL), func() {}
	}
	logg.Info(ctx, "cart sessions kept in redis")
	return cartstore.NewRedis(client, cfg.Redis.CartTTL), func() {
		if err := client.Close(); err != nil {
			logg.Error(ctx, "error closing redis", err)
		}
	}
}

func purgeIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository, logg *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil {
				logg.Error(ctx, "purge idempotency keys", err)
				continue
			}
			if n > 0 {
				logg.Event(ctx, zerolog.DebugLevel).Int64("removed", n).Msg("purged idempotency keys")
			}
		}
	}
}

func closeDB(ctx context.Context, db *gorm.DB, logg *logger.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logg.Error(ctx, "error closing database", err)
	}
}
