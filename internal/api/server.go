package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"report-service-go/internal/api/middleware"
	"report-service-go/internal/pkg/logger"
	"report-service-go/internal/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Config параметры HTTP сервера
type Config struct {
	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// DefaultConfig возвращает параметры по умолчанию
func DefaultConfig() Config {
	return Config{
		RequestTimeout:  30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    40 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		MaxBodyBytes:    8 << 20, // 8 MiB
	}
}

type Server struct {
	Router   *gin.Engine
	Handlers *Handlers
	config   Config
	server   *http.Server
}

func NewServer(handlers *Handlers, cfg Config) *Server {
	router := gin.New()

	// Восстановление после паники
	router.Use(gin.Recovery())

	router.Use(middleware.RequestID())
	router.Use(middleware.PrometheusMiddleware())
	router.Use(tracing.GinMiddleware())
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	return &Server{
		Router:   router,
		Handlers: handlers,
		config:   cfg,
	}
}

func (s *Server) SetupRoutes() {
	// Health check для k8s
	s.Router.GET("/health", s.Handlers.Health.Health)

	// Метрики Prometheus
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.Router.Group("/api/v1")
	{
		v1.POST("/reports", s.Handlers.Reports.Generate)
		v1.POST("/reports/xlsx", s.Handlers.Reports.ExportXLSX)

		v1.GET("/report-types", s.Handlers.Catalog.ReportTypes)
		v1.GET("/report-types/:type/settings", s.Handlers.Catalog.EffectiveSettings)
		v1.GET("/content-templates", s.Handlers.Catalog.ContentTemplates)
		v1.GET("/content-templates/:id", s.Handlers.Catalog.ContentTemplate)

		v1.GET("/settings", s.Handlers.Settings.Get)
		v1.PUT("/settings", s.Handlers.Settings.Put)
	}
}

func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:           addr,
		Handler:        s.Router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Канал для получения ошибок
	errChan := make(chan error, 1)

	go func() {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logger.Info("Received signal", zap.String("signal", sig.String()))
		return s.Stop()
	}
}

func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server")

	// Останавливаем прием новых запросов и дожидаемся текущих
	if err := s.server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
