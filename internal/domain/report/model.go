package report

import (
	"errors"
	"fmt"

	"report-service-go/internal/pkg/color"
	"report-service-go/internal/pkg/pdfgen"
	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/templates"
)

var (
	ErrInvalidRequest  = errors.New("invalid report request")
	ErrInvalidSettings = errors.New("invalid settings")

	// ErrStoreNotConfigured возвращается при сохранении без хранилища настроек
	ErrStoreNotConfigured = errors.New("settings store is not configured")
)

// GenerateOptions параметры генерации PDF
type GenerateOptions struct {
	IncludeChart bool
}

// validateReportData проверяет обязательные поля запроса
func validateReportData(data *pdfgen.ReportData) error {
	if data == nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, pdfgen.ErrNoReportData)
	}
	if data.ChildName == "" {
		return fmt.Errorf("%w: childName is required", ErrInvalidRequest)
	}
	if _, err := templates.ParseReportType(string(data.ReportType)); err != nil {
		return fmt.Errorf("cannot generate report: %w", err)
	}
	return nil
}

// validateSettings проверяет значения, которые рендер не может исправить сам
func validateSettings(p *settings.Persisted) error {
	if p == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidSettings)
	}
	for _, values := range []settings.Values{p.Values, p.DynamicContent} {
		if t := values.String("template"); t != "" && !templates.VisualTemplate(t).Valid() {
			return fmt.Errorf("%w: unknown template %q", ErrInvalidSettings, t)
		}
		if c := values.String("primary_color"); c != "" && !color.IsValidHex(c) {
			return fmt.Errorf("%w: primary_color %q is not a #RRGGBB value", ErrInvalidSettings, c)
		}
	}
	return nil
}
