package report

import (
	"context"

	"report-service-go/internal/pkg/pdfgen"
	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/templates"
)

type Service interface {
	GenerateReport(ctx context.Context, data *pdfgen.ReportData, opts GenerateOptions) (*pdfgen.Document, error)
	ExportEvaluations(ctx context.Context, data *pdfgen.ReportData) (string, []byte, error)
	EffectiveSettings(ctx context.Context, rt templates.ReportType) (settings.Effective, error)
	Settings(ctx context.Context) (*settings.Persisted, error)
	SaveSettings(ctx context.Context, p *settings.Persisted) error
}
