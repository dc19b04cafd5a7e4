package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"report-service-go/internal/pkg/logger"
	"report-service-go/internal/pkg/metrics"
	"report-service-go/internal/pkg/pdfgen"
	"report-service-go/internal/pkg/retry"
	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/store"
	"report-service-go/internal/pkg/templates"
	"report-service-go/internal/pkg/tracing"
	"report-service-go/internal/pkg/xlsx"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ServiceImpl struct {
	generator *pdfgen.Generator
	store     store.Store
	loadRetry *retry.Retrier
	now       func() time.Time
}

// NewService создает сервис отчетов. st может быть nil, тогда сохраненных
// настроек нет и журнал генераций не ведется.
func NewService(generator *pdfgen.Generator, st store.Store, retryOpts ...retry.Option) *ServiceImpl {
	return &ServiceImpl{
		generator: generator,
		store:     st,
		loadRetry: retry.New("settings_load", logger.Named("settings"),
			append([]retry.Option{retry.WithRetryIf(store.IsTransient)}, retryOpts...)...),
		now:       time.Now,
	}
}

func (s *ServiceImpl) GenerateReport(ctx context.Context, data *pdfgen.ReportData, opts GenerateOptions) (*pdfgen.Document, error) {
	if err := validateReportData(data); err != nil {
		metrics.ReportGenerationTotal.WithLabelValues("invalid", "rejected").Inc()
		return nil, err
	}

	rt := string(data.ReportType)
	log := logger.WithContext(zap.String("report_type", rt))

	tracing.AddAttributes(ctx,
		attribute.String("report.type", rt),
		attribute.Bool("report.include_chart", opts.IncludeChart),
	)

	start := time.Now()
	metrics.ReportGenerationTotal.WithLabelValues(rt, "started").Inc()
	log.Info("Starting report generation", zap.Bool("include_chart", opts.IncludeChart))

	persisted := s.loadPersisted(ctx, log)

	doc, err := s.generator.Generate(ctx, data, pdfgen.Options{
		Persisted:    persisted,
		IncludeChart: opts.IncludeChart,
	})
	duration := time.Since(start)
	metrics.ReportGenerationDuration.WithLabelValues(rt).Observe(duration.Seconds())

	rec := store.GenerationRecord{
		Timestamp:  s.now(),
		ReportType: rt,
		Format:     "pdf",
		Duration:   duration,
	}
	if err != nil {
		log.Error("Report generation failed", zap.Error(err))
		metrics.ReportGenerationTotal.WithLabelValues(rt, "error").Inc()
		rec.Error = err.Error()
		s.logGeneration(ctx, log, rec)
		return nil, err
	}

	metrics.ReportGenerationTotal.WithLabelValues(rt, "success").Inc()
	metrics.ReportFileSizeBytes.WithLabelValues("pdf").Observe(float64(len(doc.Data)))
	metrics.ReportPages.WithLabelValues(rt).Observe(float64(doc.PageCount()))
	log.Info("Report generation completed",
		zap.String("file_name", doc.Name),
		zap.Int("pages", doc.PageCount()),
		zap.Int("size_bytes", len(doc.Data)),
		zap.Duration("duration", duration),
	)

	rec.Success = true
	rec.FileName = doc.Name
	rec.Pages = doc.PageCount()
	rec.SizeBytes = int64(len(doc.Data))
	s.logGeneration(ctx, log, rec)
	return doc, nil
}

func (s *ServiceImpl) ExportEvaluations(ctx context.Context, data *pdfgen.ReportData) (string, []byte, error) {
	if err := validateReportData(data); err != nil {
		return "", nil, err
	}
	rt := string(data.ReportType)
	log := logger.WithContext(zap.String("report_type", rt))

	start := time.Now()
	content, err := xlsx.Export(xlsx.Input{
		ChildName:      data.ChildName,
		ReportType:     rt,
		EvaluationDate: data.EvaluationDate.Time,
		Evaluations:    data.Evaluations,
	})
	rec := store.GenerationRecord{
		Timestamp:  s.now(),
		ReportType: rt,
		Format:     "xlsx",
		Duration:   time.Since(start),
	}
	if err != nil {
		log.Error("Evaluation export failed", zap.Error(err))
		rec.Error = err.Error()
		s.logGeneration(ctx, log, rec)
		return "", nil, fmt.Errorf("failed to export evaluations: %w", err)
	}

	name := strings.TrimSuffix(pdfgen.FileName(data.ReportType, data.ChildName, s.now()), ".pdf") + ".xlsx"
	metrics.ReportFileSizeBytes.WithLabelValues("xlsx").Observe(float64(len(content)))
	log.Info("Evaluation export completed",
		zap.String("file_name", name),
		zap.Int("evaluations", len(data.Evaluations)),
	)

	rec.Success = true
	rec.FileName = name
	rec.SizeBytes = int64(len(content))
	s.logGeneration(ctx, log, rec)
	return name, content, nil
}

func (s *ServiceImpl) EffectiveSettings(ctx context.Context, rt templates.ReportType) (settings.Effective, error) {
	return settings.Resolve(rt, s.loadPersisted(ctx, logger.Named("settings")))
}

func (s *ServiceImpl) Settings(ctx context.Context) (*settings.Persisted, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.LoadSettings(ctx)
}

func (s *ServiceImpl) SaveSettings(ctx context.Context, p *settings.Persisted) error {
	if err := validateSettings(p); err != nil {
		return err
	}
	if s.store == nil {
		return ErrStoreNotConfigured
	}
	if err := s.store.SaveSettings(ctx, p); err != nil {
		logger.Error("Failed to save settings", zap.Error(err))
		return err
	}
	logger.Info("Settings saved")
	return nil
}

// loadPersisted читает сохраненные настройки с повторами на временных
// ошибках. Если хранилище недоступно, генерация продолжается на
// настройках по умолчанию.
func (s *ServiceImpl) loadPersisted(ctx context.Context, log *zap.Logger) *settings.Persisted {
	if s.store == nil {
		return nil
	}

	var persisted *settings.Persisted
	err := s.loadRetry.Do(ctx, func(ctx context.Context) error {
		p, err := s.store.LoadSettings(ctx)
		if err != nil {
			return err
		}
		persisted = p
		return nil
	})
	if err != nil {
		metrics.SettingsLoadTotal.WithLabelValues("degraded").Inc()
		log.Warn("Persisted settings unavailable, using report type defaults", zap.Error(err))
		return nil
	}

	if persisted == nil {
		metrics.SettingsLoadTotal.WithLabelValues("absent").Inc()
	} else {
		metrics.SettingsLoadTotal.WithLabelValues("success").Inc()
	}
	return persisted
}

func (s *ServiceImpl) logGeneration(ctx context.Context, log *zap.Logger, rec store.GenerationRecord) {
	if s.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.store.LogGeneration(ctx, rec); err != nil {
		log.Warn("Failed to record generation", zap.Error(err))
	}
}
