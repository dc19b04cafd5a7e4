package main

import (
	"context"
	"os"
	"time"

	"report-service-go/internal/api"
	"report-service-go/internal/config"
	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/assets"
	"report-service-go/internal/pkg/cache"
	"report-service-go/internal/pkg/logger"
	"report-service-go/internal/pkg/pdfgen"
	"report-service-go/internal/pkg/store"
	"report-service-go/internal/pkg/tracing"
	"report-service-go/internal/pkg/xlsx"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
)

// Version задается при сборке через ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Инициализируем логгер
	if err := logger.Init(cfg.LogLevel); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	_, _ = maxprocs.Set(maxprocs.Logger(logger.Log.Sugar().Infof))

	shutdownTracing, err := tracing.InitTracer(cfg.TracingConfig(Version))
	if err != nil {
		logger.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	if cfg.UnidocLicenseKey != "" {
		if err := xlsx.SetLicense(cfg.UnidocLicenseKey); err != nil {
			logger.Warn("Excel export unavailable", zap.Error(err))
		}
	}

	// Хранилище настроек необязательно: без него отчеты строятся на
	// настройках по умолчанию
	var (
		st     store.Store
		pinger interface{ Ping(context.Context) error }
	)
	if cfg.StoreEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pg, err := store.NewPostgres(ctx, cfg.StoreConfig())
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to settings store", zap.Error(err))
		}
		defer pg.Close()
		st, pinger = pg, pg
		logger.Info("Settings store connected", logger.Field("host", cfg.Postgres.Host))
	} else {
		logger.Info("Settings store not configured, using report type defaults")
	}

	logoCache := cache.NewCache(cfg.Assets.CacheTTL)
	defer logoCache.Stop()
	loader := assets.NewLoader(cfg.AssetsConfig(), nil, logoCache, logger.Named("assets"))

	generator := pdfgen.NewGenerator(pdfgen.Config{Compress: cfg.Render.Compress}, loader, logger.Named("pdfgen"))
	service := report.NewService(generator, st)

	handlers := api.NewHandlers(service, loader, pinger)
	server := api.NewServer(handlers, cfg.ServerConfig())
	server.SetupRoutes()
	logger.Info("Server configured and routes set up", zap.String("version", Version))

	if err := server.Start(cfg.HTTP.Addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
