package pdfgen

const (
	bodyTop         = 45.0
	continuationTop = 20.0
	lineHeight      = 6.0
	bottomLimit     = pageHeight - 25
)

// renderSection рисует страницу раздела. Текст переносится по словам и
// продолжается на новых страницах, когда курсор доходит до нижнего поля.
func (s *renderState) renderSection(title, body string) {
	s.addPage(PageContent, title)
	s.variant.header(s, title)
	s.pageNumberFooter()

	s.font("", 11)
	lines := s.pdf.SplitLines([]byte(s.tr(cleanBody(body))), pageWidth-2*margin)

	s.y = bodyTop
	for _, line := range lines {
		if s.y > bottomLimit {
			s.addPage(PageContinuation, title)
			s.pageNumberFooter()
			s.y = continuationTop
		}
		s.font("", 11)
		s.setText(textDark)
		s.pdf.Text(margin, s.y, string(line))
		s.y += lineHeight
	}
}

// drawModernHeader цветная полоса слева, заголовок и линия под ним
func drawModernHeader(s *renderState, title string) {
	s.setFill(s.brand)
	s.pdf.Rect(0, 0, 5, pageHeight, "F")

	s.font("B", 18)
	s.setText(s.brand)
	s.text(margin, 25, title)

	s.setDraw(s.brand)
	s.pdf.SetLineWidth(0.8)
	s.pdf.Line(margin, 30, pageWidth-margin, 30)
}

// drawClassicHeader линия, заголовок прописными по центру, тонкая линия
func drawClassicHeader(s *renderState, title string) {
	s.setDraw(s.brand)
	s.pdf.SetLineWidth(0.8)
	s.pdf.Line(margin, 18, pageWidth-margin, 18)

	s.font("B", 16)
	s.setText(s.brand)
	s.centered(28, s.upper.String(title))

	s.pdf.SetLineWidth(0.2)
	s.pdf.Line(margin, 33, pageWidth-margin, 33)
}

// drawMinimalHeader заголовок обычным начертанием и короткое подчеркивание
func drawMinimalHeader(s *renderState, title string) {
	s.font("", 18)
	s.setText(s.brand)
	s.text(margin, 25, title)

	s.setDraw(s.brand)
	s.pdf.SetLineWidth(0.5)
	s.pdf.Line(margin, 28, margin+40, 28)
}
