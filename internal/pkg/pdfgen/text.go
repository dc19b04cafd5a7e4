package pdfgen

import (
	"fmt"
	"strings"
	"time"

	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/templates"

	"github.com/goodsign/monday"
)

const dateLocale = monday.LocaleEsES

// LongDate форматирует дату как "5 de marzo de 2024"
func LongDate(t time.Time) string {
	return monday.Format(t, "2 de January de 2006", dateLocale)
}

// MonthYear форматирует дату как "marzo de 2024"
func MonthYear(t time.Time) string {
	return monday.Format(t, "January de 2006", dateLocale)
}

// FileName строит имя файла вида {тип}_{имя_через_подчеркивание}_{YYYY-MM-DD}.pdf
func FileName(rt templates.ReportType, childName string, generatedAt time.Time) string {
	name := strings.Join(strings.Fields(childName), "_")
	name = strings.NewReplacer("/", "-", "\\", "-").Replace(name)
	if name == "" {
		name = "sin_nombre"
	}
	return fmt.Sprintf("%s_%s_%s.pdf", rt, name, generatedAt.Format("2006-01-02"))
}

// SectionBody возвращает текст раздела: настроенный, затем текст шаблона
// по умолчанию, иначе заглушку "Contenido de {title}"
func SectionBody(eff settings.Effective, section templates.Section) string {
	if text := strings.TrimSpace(eff.SectionText(section.ID)); text != "" {
		return text
	}
	return "Contenido de " + section.Title
}

// cleanBody убирает маркеры жирного шрифта Markdown и приводит переводы строк к LF
func cleanBody(body string) string {
	body = strings.ReplaceAll(body, "**", "")
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.ReplaceAll(body, "\r", "\n")
}
