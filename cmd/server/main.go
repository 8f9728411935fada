package main

import (
	"context"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	apiHandler "github.com/storefront/backend/api/handler"
	"github.com/storefront/backend/internal/config"
	"github.com/storefront/backend/internal/infrastructure/journal"
	"github.com/storefront/backend/internal/infrastructure/monitor"
	pgInfra "github.com/storefront/backend/internal/infrastructure/postgres"
	redisInfra "github.com/storefront/backend/internal/infrastructure/redis"
	"github.com/storefront/backend/internal/metrics"
	"github.com/storefront/backend/internal/middleware"
	"github.com/storefront/backend/internal/router"
	"github.com/storefront/backend/internal/services"
	"github.com/storefront/backend/internal/services/lifecycle"
	"github.com/storefront/backend/pkg/httpcontext"
	"github.com/storefront/backend/pkg/logger"
	"github.com/storefront/backend/repository/postgres"
	redisRepo "github.com/storefront/backend/repository/redis"
	customerUC "github.com/storefront/backend/usecase/customer"
	orderUC "github.com/storefront/backend/usecase/order"
	productUC "github.com/storefront/backend/usecase/product"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path, "journal")
	if err != nil {
		zapLogger.Fatal("failed to open order journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	eventRepo := postgres.NewOrderEventRepository(pool)
	uow := postgres.NewUnitOfWork(pool)
	revenueCache := redisRepo.NewRevenueCache(redisClient, cfg.Revenue.CacheTTL)

	journalProcessor := services.NewJournalProcessor(
		journalStore,
		mon,
		eventRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Journal.SyncInterval,
			BatchSize:  cfg.Journal.BatchSize,
			MaxRetries: cfg.Journal.MaxRetry,
			Retention:  time.Duration(cfg.Journal.RetentionHours) * time.Hour,
		},
	)
	journalProcessor.Start()
	manager.Register("journal_processor", func(ctx context.Context) error {
		journalProcessor.Stop(ctx)
		return nil
	})

	journalBridge := services.NewJournalBridge(journalProcessor)

	customerUseCase := customerUC.New(customerRepo, zapLogger)
	productUseCase := productUC.New(productRepo, zapLogger)
	orderUseCase := orderUC.New(orderRepo, customerRepo, productRepo, uow, journalBridge, revenueCache, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Customer: apiHandler.NewCustomerHandler(customerUseCase, ctxAdapter, zapLogger),
		Product:  apiHandler.NewProductHandler(productUseCase, ctxAdapter, zapLogger),
		Order:    apiHandler.NewOrderHandler(orderUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	opts := router.Options{
		Auth:  middleware.JWTAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, zapLogger),
		Admin: middleware.RequireRole(cfg.Auth.AdminRole),
	}
	if cfg.HTTP.EnableMetrics {
		m := metrics.New()
		orderUseCase.WithMetrics(m)
		opts.Instrument = middleware.Instrument(m)
		opts.Metrics = fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())

		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					m.SetJournalQueued(journalProcessor.Size())
				case <-appCtx.Done():
					return
				}
			}
		}()
	}

	r := router.New(handlers, opts)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
