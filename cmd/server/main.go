// Command server exposes the Business Central entity adapter over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperp "github.com/erp/bcadapter/internal/application/erp"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/cache"
	"github.com/erp/bcadapter/internal/infrastructure/config"
	"github.com/erp/bcadapter/internal/infrastructure/logger"
	"github.com/erp/bcadapter/internal/infrastructure/telemetry"
	"github.com/erp/bcadapter/internal/interfaces/http/handler"
	"github.com/erp/bcadapter/internal/interfaces/http/middleware"
	"github.com/erp/bcadapter/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Logger())
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Business Central adapter",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("company", cfg.BusinessCentral.Company),
	)

	ctx := context.Background()

	// Telemetry
	telCfg := cfg.TelemetryProviders()
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, zapcore.WarnLevel)
	defer shutdownTelemetry(log, tracerProvider, meterProvider, loggerProvider)

	meter := meterProvider.Meter(telCfg.ServiceName)
	remoteMetrics, err := telemetry.NewRemoteMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create remote metrics", zap.Error(err))
	}

	// Business Central client and entity services
	client, err := bc.NewClient(cfg.BusinessCentralClient(), cfg.CreationDefaults(), log, bc.WithMetrics(remoteMetrics))
	if err != nil {
		log.Fatal("Failed to create Business Central client", zap.Error(err))
	}
	services := apperp.NewServices(client, cfg.Composition(), log, remoteMetrics)
	directory := apperp.NewDirectory(client, cfg.CreationDefaults(), cfg.Composition(), log)

	if cfg.Defaults.CheckDirectoryOnStartup {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.BusinessCentral.Timeout)
		_, err := directory.Check(checkCtx)
		cancel()
		if err != nil {
			log.Fatal("Directory check failed", zap.Error(err))
		}
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, cfg.IdempotencyStore(), log)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Handlers
	itemHandler := handler.NewItemHandler(services.Items)
	bomHandler := handler.NewBomHandler(services.BomHeaders, services.BomRows)
	documentHandler := handler.NewDocumentHandler(services.Documents)
	systemHandler := handler.NewSystemHandler(cfg.App.Version, directory)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Middleware order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Tracing - Server span per request
	// 5. Metrics - Request count and latency per route
	// 6. Security - Add security headers
	// 7. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/health"))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: telCfg.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	})...)
	engine.Use(middleware.HTTPMetrics(meter))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.Idempotency(idempotencyStore, cfg.IdempotencyPolicy()))
	r.Register(handler.ItemRoutes(itemHandler))
	r.Register(handler.BomRoutes(bomHandler)...)
	r.Register(handler.DocumentRoutes(documentHandler))
	r.Register(handler.SystemRoutes(systemHandler))
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownTelemetry flushes the providers in reverse start order
func shutdownTelemetry(log *zap.Logger, providers ...shutdowner) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	for i := len(providers) - 1; i >= 0; i-- {
		if err := providers[i].Shutdown(ctx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.Error(err))
		}
	}
}
