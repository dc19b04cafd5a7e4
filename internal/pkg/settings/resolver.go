// Package settings сводит сохраненные глобальные настройки с настройками
// типа отчета по умолчанию в итоговый набор для одной генерации.
package settings

import (
	"fmt"
	"strings"

	"report-service-go/internal/pkg/templates"
)

// Значения, которые используются, когда пусто и в сохраненных
// настройках, и в шаблоне типа отчета
const (
	DefaultHeaderText       = "Reporte de Evaluación"
	DefaultFooterText       = "Reporte generado por el Sistema de Evaluación"
	DefaultCompanyName      = "Institución Educativa"
	DefaultResponsibleAgent = "Equipo de Evaluación"
	DefaultPrimaryColor     = "#8EB8B5"
	DefaultTemplate         = templates.Classic
)

// Effective итоговые настройки одной генерации. После Resolve все
// потребляемые рендером поля заполнены.
type Effective struct {
	ReportType       templates.ReportType     `json:"report_type"`
	Template         templates.VisualTemplate `json:"template"`
	PrimaryColor     string                   `json:"primary_color"`
	HeaderText       string                   `json:"header_text"`
	FooterText       string                   `json:"footer_text"`
	CompanyName      string                   `json:"content_company_name"`
	ResponsibleAgent string                   `json:"content_responsible_agent"`
	SectionOrder     []string                 `json:"section_order"`
	SectionTexts     map[string]string        `json:"section_texts"`
	LogoURLs         []string                 `json:"logo_urls"`
	FooterLogoURLs   []string                 `json:"footer_logo_urls"`
}

// SectionText возвращает настроенный текст раздела или ""
func (e Effective) SectionText(sectionID string) string {
	return e.SectionTexts[sectionID]
}

// Resolve сводит настройки в порядке возрастания приоритета: значения по
// умолчанию типа отчета, поля сохраненной записи, ее dynamic_content.
// Слияние записи с dynamic_content поверхностное: пустой ключ в
// dynamic_content затирает поле верхнего уровня, и тогда берется значение
// типа отчета. Единственная ошибка - неизвестный тип отчета.
func Resolve(rt templates.ReportType, persisted *Persisted) (Effective, error) {
	tpl, err := templates.Get(rt)
	if err != nil {
		return Effective{}, fmt.Errorf("cannot generate report: %w", err)
	}
	def := tpl.Defaults

	base := persisted.Base()

	eff := Effective{
		ReportType:       rt,
		Template:         resolveTemplate(base.String("template"), def.Template),
		PrimaryColor:     firstNonEmpty(base.String("primary_color"), def.PrimaryColor, DefaultPrimaryColor),
		HeaderText:       firstNonEmpty(base.String("header_text"), def.HeaderText, DefaultHeaderText),
		FooterText:       firstNonEmpty(base.String("footer_text"), def.FooterText, DefaultFooterText),
		CompanyName:      firstNonEmpty(base.String("content_company_name"), def.CompanyName, DefaultCompanyName),
		ResponsibleAgent: firstNonEmpty(base.String("content_responsible_agent"), def.ResponsibleAgent, DefaultResponsibleAgent),
		SectionOrder:     base.Strings("section_order"),
		SectionTexts:     make(map[string]string),
		LogoURLs:         base.Strings("logo_urls"),
		FooterLogoURLs:   base.Strings("footer_logo_urls"),
	}
	if len(eff.SectionOrder) == 0 {
		eff.SectionOrder = append([]string(nil), def.SectionOrder...)
	}

	for id, text := range def.SectionTexts {
		eff.SectionTexts[id] = text
	}
	for key := range base {
		id, ok := sectionIDFromKey(key)
		if !ok {
			continue
		}
		if text := base.String(key); text != "" {
			eff.SectionTexts[id] = text
		}
	}

	return eff, nil
}

func resolveTemplate(configured string, def templates.VisualTemplate) templates.VisualTemplate {
	if v := templates.VisualTemplate(configured); v.Valid() {
		return v
	}
	if def.Valid() {
		return def
	}
	return DefaultTemplate
}

// sectionIDFromKey выделяет ID раздела из ключа вида content_<id>_text
func sectionIDFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, "content_") || !strings.HasSuffix(key, "_text") {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, "content_"), "_text")
	return id, id != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
