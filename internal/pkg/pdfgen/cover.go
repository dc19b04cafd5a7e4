package pdfgen

import (
	"fmt"
	"math"
	"strings"
)

const (
	bannerHeight      = 60.0
	footerLogoW       = 20.0
	footerLogoH       = 12.0
	footerLogoSpacing = 5.0

	defaultAlgorithm  = "Random Forest"
	defaultConfidence = 0.95

	predictionSubtitle = "Sistema de Predicción Inteligente"
)

// renderCover рисует титульную страницу
func (s *renderState) renderCover() {
	page := s.addPage(PageCover, s.eff.HeaderText)

	s.setFill(s.brand)
	s.pdf.Rect(0, 0, pageWidth, bannerHeight, "F")

	page.LogoPlaceholder = !s.drawCoverLogo()

	s.variant.title(s)
	s.drawSubject()
	s.variant.footer(s)
}

// drawCoverLogo вписывает логотип в баннер, а при его отсутствии пишет "LOGO"
func (s *renderState) drawCoverLogo() bool {
	boxW, boxH := s.variant.logoBoxW, s.variant.logoBoxH
	if s.logo != nil {
		x := (pageWidth - boxW) / 2
		y := (bannerHeight - boxH) / 2
		if s.drawImage(*s.logo, x, y, boxW, boxH) {
			return true
		}
	}

	s.font("B", 24)
	s.setText(white)
	s.centered(bannerHeight/2+4, "LOGO")
	return false
}

// drawStylizedTitle двухстрочный заголовок варианта modern + прогноз
func drawStylizedTitle(s *renderState) {
	s.setDraw(s.brand)
	s.pdf.SetLineWidth(1)
	s.pdf.Line(pageWidth/2-30, 80, pageWidth/2+30, 80)

	s.font("B", 32)
	s.setText(s.brand)
	s.centered(95, "REPORTE")

	s.font("", 20)
	s.setText(textGray)
	s.centered(108, "de Evaluación")

	s.font("", 14)
	s.centered(122, s.eff.HeaderText)
}

// drawPlainTitle заголовок одной строкой
func drawPlainTitle(s *renderState) {
	s.font("B", 20)
	s.setText(textDark)
	s.centered(90, s.eff.HeaderText)
}

// drawSubject имя ребенка, подзаголовок, дата и данные модели
func (s *renderState) drawSubject() {
	y := s.variant.nameY

	s.font("B", 26)
	s.setText(textDark)
	s.centered(y, s.data.ChildName)

	subtitle := s.eff.CompanyName
	if s.data.ReportType.IsPrediction() {
		subtitle = predictionSubtitle
	}
	s.font("", 14)
	s.setText(textGray)
	s.centered(y+12, subtitle)

	date := s.now
	if !s.data.EvaluationDate.IsZero() {
		date = s.data.EvaluationDate.Time
	}
	s.font("", 12)
	s.centered(y+22, LongDate(date))

	if !s.data.ReportType.IsPrediction() || s.data.Predictions == nil {
		return
	}
	algorithm, confidence := modelSummary(s.data.Predictions)
	s.font("", 11)
	s.setText(s.brand)
	s.centered(y+34, "Algoritmo: "+algorithm)
	s.centered(y+41, fmt.Sprintf("Confianza del modelo: %d%%", confidence))
}

// modelSummary возвращает название алгоритма и уверенность в процентах
// с подстановкой значений по умолчанию
func modelSummary(p *Predictions) (string, int) {
	algorithm, confidence := defaultAlgorithm, defaultConfidence
	if p != nil && p.ModelInfo != nil {
		if a := strings.TrimSpace(p.ModelInfo.Algorithm); a != "" {
			algorithm = a
		}
		if p.ModelInfo.Confidence != nil {
			confidence = *p.ModelInfo.Confidence
		}
	}
	return algorithm, int(math.Round(confidence * 100))
}

// drawElaborateFooter организация, месяц и год, разделитель, логотипы
// справа налево и мелкий текст подвала
func drawElaborateFooter(s *renderState) {
	s.font("B", 12)
	s.setText(textDark)
	s.text(margin, pageHeight-55, s.eff.CompanyName)

	s.font("", 10)
	s.setText(textGray)
	s.text(margin, pageHeight-48, MonthYear(s.now))

	s.setDraw(s.brand)
	s.pdf.SetLineWidth(0.5)
	s.pdf.Line(margin, pageHeight-40, pageWidth-margin, pageHeight-40)

	x := pageWidth - margin - footerLogoW
	for _, img := range s.footerLogos {
		if s.drawImage(img, x, pageHeight-35, footerLogoW, footerLogoH) {
			x -= footerLogoW + footerLogoSpacing
		}
	}

	s.font("", 8)
	s.setText(textGray)
	s.centered(pageHeight-10, s.eff.FooterText)
}

// drawPlainFooter текст подвала по центру и ряд логотипов под ним
func drawPlainFooter(s *renderState) {
	s.font("", 9)
	s.setText(textGray)
	s.centered(pageHeight-30, s.eff.FooterText)

	n := float64(len(s.footerLogos))
	if n == 0 {
		return
	}
	total := n*footerLogoW + (n-1)*footerLogoSpacing
	x := (pageWidth - total) / 2
	for _, img := range s.footerLogos {
		s.drawImage(img, x, pageHeight-24, footerLogoW, footerLogoH)
		x += footerLogoW + footerLogoSpacing
	}
}
