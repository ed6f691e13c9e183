package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	clientapp "github.com/clientregistry/backend/internal/application/client"
	"github.com/clientregistry/backend/internal/application/draft"
	enrichmentapp "github.com/clientregistry/backend/internal/application/enrichment"
	"github.com/clientregistry/backend/internal/infrastructure/cache"
	"github.com/clientregistry/backend/internal/infrastructure/config"
	"github.com/clientregistry/backend/internal/infrastructure/logger"
	"github.com/clientregistry/backend/internal/infrastructure/lookup"
	"github.com/clientregistry/backend/internal/infrastructure/migration"
	"github.com/clientregistry/backend/internal/infrastructure/persistence"
	"github.com/clientregistry/backend/internal/infrastructure/telemetry"
	"github.com/clientregistry/backend/internal/interfaces/http/handler"
	"github.com/clientregistry/backend/internal/interfaces/http/middleware"
	"github.com/clientregistry/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	_ "github.com/clientregistry/backend/docs"
)

//	@title			Client Registry API
//	@version		1.0
//	@description	Client registry with CNPJ and CEP enrichment.

//	@contact.name	API Support

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:3001
//	@BasePath	/api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting client registry",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startCancel()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(startCtx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(startCtx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	loggerProvider, err := telemetry.NewLoggerProvider(startCtx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Telemetry.LogsMinLevel))

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Profiling.Enabled,
		ServerAddress:     cfg.Profiling.ServerAddress,
		ApplicationName:   cfg.Profiling.ApplicationName,
		BasicAuthUser:     cfg.Profiling.BasicAuthUser,
		BasicAuthPassword: cfg.Profiling.BasicAuthPassword,
		Goroutines:        cfg.Profiling.Goroutines,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.GormLevelFor(cfg.Log.Level), cfg.Database.SlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := migrateUp(&cfg.Database, log); err != nil {
			log.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	// Idempotency keys
	store, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore(startCtx)
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Registry lookups
	lookupMetrics, err := telemetry.NewLookupMetrics(meterProvider.Meter(telemetry.TracerName))
	if err != nil {
		log.Fatal("Failed to create lookup metrics", zap.Error(err))
	}
	lookupCfg := lookup.Config{
		TaxIDBaseURL:  cfg.Lookup.TaxIDBaseURL,
		PostalBaseURL: cfg.Lookup.PostalBaseURL,
		Timeout:       cfg.Lookup.Timeout,
		MaxRetries:    cfg.Lookup.MaxRetries,
		InitialDelay:  cfg.Lookup.InitialDelay,
		UserAgent:     cfg.Lookup.UserAgent,
	}
	lookupOpts := []lookup.Option{lookup.WithLogger(log), lookup.WithMetrics(lookupMetrics)}
	taxIDClient, err := lookup.NewTaxIDClient(lookupCfg, lookupOpts...)
	if err != nil {
		log.Fatal("Invalid lookup configuration", zap.Error(err))
	}
	postalClient, err := lookup.NewPostalClient(lookupCfg, lookupOpts...)
	if err != nil {
		log.Fatal("Invalid lookup configuration", zap.Error(err))
	}

	// Services
	enricher := enrichmentapp.NewService(taxIDClient, postalClient)
	clientService := clientapp.NewService(persistence.NewGormClientRepository(db.DB))
	drafts := draft.NewManager(enricher, clientService, draft.Config{
		SessionTTL:    cfg.Draft.SessionTTL,
		SweepInterval: cfg.Draft.SweepInterval,
		LookupTimeout: cfg.Draft.LookupTimeout,
	}, log)

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		log.Info("Lookup rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := router.NewEngine(router.EngineConfig{
		HTTP:             cfg.HTTP,
		Swagger:          cfg.Swagger,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   cfg.Telemetry.Enabled,
		MeterProvider:    meterProvider,
		ProfilingEnabled: profiler.IsEnabled(),
	}, log)

	r := router.NewRouter(engine)
	for _, group := range router.APIGroups(router.Handlers{
		Clients: handler.NewClientHandler(clientService),
		Lookups: handler.NewLookupHandler(enricher),
		Drafts:  handler.NewDraftHandler(drafts),
		System:  handler.NewSystemHandler(db, telemetry.ServiceVersion),
	}, router.Guards{
		Limiter:        limiter,
		Idempotency:    store,
		IdempotencyTTL: cfg.HTTP.IdempotencyTTL,
	}) {
		r.Register(group)
	}
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Sessions first so their lookups stop before the stores go away
	if err := drafts.Close(); err != nil {
		log.Error("Error closing draft sessions", zap.Error(err))
	}
	if limiter != nil {
		limiter.Close()
	}
	if err := store.Close(); err != nil {
		log.Error("Error closing idempotency store", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down metrics", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracing", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down log export", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// migrateUp applies the embedded migrations over a dedicated connection.
// Closing the migrator closes its database, so it cannot share the server pool.
func migrateUp(cfg *config.DatabaseConfig, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migration.Embedded(), log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()
	return m.Up()
}
