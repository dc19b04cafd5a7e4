package pdfgen

import (
	"fmt"
	"math"
)

const (
	chartBandHeight = 40.0
	chartTop        = 60.0
	chartRowSpacing = 20.0
	chartLabelWidth = 55.0
	chartValueWidth = 15.0
	chartBarHeight  = 8.0

	chartCaption = "Análisis de Dimensiones Predictivas"
)

// illustrativeScores набор измерений, который рисуется, когда прогноз не
// содержит оценок по измерениям
var illustrativeScores = []DimensionScore{
	{Name: "Motricidad Fina", Score: 85},
	{Name: "Coordinación", Score: 78},
	{Name: "Atención", Score: 82},
	{Name: "Memoria", Score: 75},
	{Name: "Razonamiento", Score: 88},
	{Name: "Creatividad", Score: 90},
}

// ChartScores возвращает измерения для диаграммы: оценки из прогноза,
// если они есть, иначе иллюстративный набор
func ChartScores(p *Predictions) []DimensionScore {
	if p != nil && len(p.DimensionScores) > 0 {
		return p.DimensionScores
	}
	return illustrativeScores
}

// renderChart рисует страницу с горизонтальной столбчатой диаграммой.
// Только для прогнозных отчетов с переданным прогнозом.
func (s *renderState) renderChart() {
	if !s.data.ReportType.IsPrediction() || s.data.Predictions == nil {
		return
	}

	s.chartPage(PageChart)
	barX := margin + chartLabelWidth
	barW := pageWidth - 2*margin - chartLabelWidth - chartValueWidth

	y := chartTop
	for _, d := range ChartScores(s.data.Predictions) {
		if y > bottomLimit {
			s.chartPage(PageContinuation)
			y = chartTop
		}
		value := math.Max(0, math.Min(100, d.Score))

		s.font("", 11)
		s.setText(textDark)
		s.text(margin, y, d.Name)

		s.setFill(lightGray)
		s.pdf.Rect(barX, y-chartBarHeight+2, barW, chartBarHeight, "F")
		if filled := barW * value / 100; filled > 0 {
			s.setFill(s.brand)
			s.pdf.Rect(barX, y-chartBarHeight+2, filled, chartBarHeight, "F")
		}

		s.font("B", 11)
		s.setText(textDark)
		s.rightAligned(pageWidth-margin, y, fmt.Sprintf("%.0f%%", value))

		y += chartRowSpacing
	}
}

func (s *renderState) chartPage(kind PageKind) {
	s.addPage(kind, chartCaption)

	s.setFill(s.brand)
	s.pdf.Rect(0, 0, pageWidth, chartBandHeight, "F")
	s.font("B", 18)
	s.setText(white)
	s.centered(chartBandHeight/2+3, chartCaption)

	s.pageNumberFooter()
}
