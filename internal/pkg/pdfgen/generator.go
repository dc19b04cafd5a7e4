// Package pdfgen рисует PDF-отчет об оценке ребенка: титульная страница,
// страница на каждый раздел из section_order и, для прогнозных отчетов,
// страница с диаграммой.
package pdfgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"report-service-go/internal/pkg/assets"
	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/templates"
	"report-service-go/internal/pkg/tracing"
)

// ErrNoReportData генерация вызвана без входных данных
var ErrNoReportData = errors.New("report data is required")

// LogoLoader загружает логотипы. Ошибки загрузки не возвращаются:
// отсутствующий логотип просто не попадает в результат.
type LogoLoader interface {
	LoadLogo(ctx context.Context, urls []string) (assets.Image, bool)
	LoadFooterLogos(ctx context.Context, urls []string) []assets.Image
}

// Options параметры одной генерации
type Options struct {
	// Persisted сохраненные глобальные настройки, nil если их нет
	Persisted *settings.Persisted
	// IncludeChart добавляет страницу с диаграммой для прогнозных отчетов
	IncludeChart bool
}

// Config настройки генератора
type Config struct {
	Compress bool
}

// Generator не хранит состояния между вызовами и может использоваться
// из нескольких горутин одновременно
type Generator struct {
	config Config
	logos  LogoLoader
	now    func() time.Time
	log    *zap.Logger
}

// NewGenerator создает генератор. logos может быть nil, тогда логотипы не загружаются.
func NewGenerator(cfg Config, logos LogoLoader, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		config: cfg,
		logos:  logos,
		now:    time.Now,
		log:    log,
	}
}

// WithClock подменяет источник текущего времени
func (g *Generator) WithClock(now func() time.Time) *Generator {
	cp := *g
	cp.now = now
	return &cp
}

// Generate строит документ. Ошибкой завершается только неизвестный тип
// отчета (и сбой записи PDF); проблемы с логотипами лишь логируются.
func (g *Generator) Generate(ctx context.Context, data *ReportData, opts Options) (*Document, error) {
	if data == nil {
		return nil, ErrNoReportData
	}

	ctx, span := tracing.StartSpan(ctx, "pdfgen.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("report.type", string(data.ReportType)))

	eff, err := settings.Resolve(data.ReportType, opts.Persisted)
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	tpl, _ := templates.Lookup(data.ReportType)

	now := g.now()
	log := g.log.With(zap.String("report_type", string(data.ReportType)))
	state := newRenderState(data, eff, tpl, now, g.config.Compress, log)

	logo, footer := g.loadLogos(ctx, eff)
	state.registerImages(logo, footer)

	state.renderCover()
	for _, id := range eff.SectionOrder {
		section, ok := tpl.Section(id)
		if !ok {
			log.Debug("Section in order has no definition, skipping", zap.String("section", id))
			continue
		}
		state.renderSection(section.Title, SectionBody(eff, section))
	}
	if opts.IncludeChart {
		state.renderChart()
	}

	var buf bytes.Buffer
	if err := state.pdf.Output(&buf); err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	doc := &Document{
		Name:  FileName(data.ReportType, data.ChildName, now),
		Data:  buf.Bytes(),
		Pages: state.pages,
	}
	span.SetAttributes(
		attribute.Int("report.pages", len(doc.Pages)),
		attribute.Int("report.size", len(doc.Data)),
	)
	return doc, nil
}

func (g *Generator) loadLogos(ctx context.Context, eff settings.Effective) (*assets.Image, []assets.Image) {
	if g.logos == nil {
		return nil, nil
	}

	var logo *assets.Image
	if img, ok := g.logos.LoadLogo(ctx, eff.LogoURLs); ok {
		logo = &img
	}
	return logo, g.logos.LoadFooterLogos(ctx, eff.FooterLogoURLs)
}
