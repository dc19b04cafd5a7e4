package pdfgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"report-service-go/internal/pkg/templates"
)

// ReportData входные данные одной генерации
type ReportData struct {
	ChildName      string               `json:"childName" yaml:"childName"`
	ReportType     templates.ReportType `json:"reportType" yaml:"reportType"`
	EvaluationDate Date                 `json:"evaluationDate" yaml:"evaluationDate"`
	Predictions    *Predictions         `json:"predictions,omitempty" yaml:"predictions,omitempty"`
	Evaluations    []map[string]any     `json:"evaluations,omitempty" yaml:"evaluations,omitempty"`
}

// Predictions результат модели прогнозирования. Рендер использует
// только описание модели и оценки по измерениям.
type Predictions struct {
	ModelInfo       *ModelInfo       `json:"modelInfo,omitempty" yaml:"modelInfo,omitempty"`
	DimensionScores []DimensionScore `json:"dimensionScores,omitempty" yaml:"dimensionScores,omitempty"`
}

// ModelInfo описание модели
type ModelInfo struct {
	Algorithm  string   `json:"algorithm,omitempty" yaml:"algorithm,omitempty"`
	Confidence *float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"` // доля, 0..1
}

// DimensionScore прогнозируемый балл по измерению, в процентах
type DimensionScore struct {
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
}

// Date календарная дата. В JSON принимает YYYY-MM-DD и RFC3339.
type Date struct {
	time.Time
}

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04:05.000Z07:00"}

// ParseDate разбирает дату в одном из поддерживаемых форматов
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q", s)
}

// UnmarshalJSON реализует json.Unmarshaler
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON реализует json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format("2006-01-02"))
}

// UnmarshalYAML позволяет читать дату из YAML как строку
func (d *Date) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// PageKind вид страницы в документе
type PageKind string

const (
	PageCover        PageKind = "cover"
	PageContent      PageKind = "content"
	PageContinuation PageKind = "continuation"
	PageChart        PageKind = "chart"
)

// PageInfo описывает одну страницу сгенерированного документа
type PageInfo struct {
	Number          int             `json:"number"`
	Kind            PageKind        `json:"kind"`
	Title           string          `json:"title,omitempty"`
	LogoPlaceholder bool            `json:"logo_placeholder,omitempty"`
	Logos           []LogoPlacement `json:"logos,omitempty"`
}

// LogoPlacement прямоугольник, в который фактически выведен логотип, в мм
type LogoPlacement struct {
	Image string  `json:"image"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
}

// Document результат генерации
type Document struct {
	Name  string
	Data  []byte
	Pages []PageInfo
}

// PageCount возвращает число страниц
func (d *Document) PageCount() int {
	return len(d.Pages)
}
