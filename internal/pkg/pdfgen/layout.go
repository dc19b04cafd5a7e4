package pdfgen

import "report-service-go/internal/pkg/templates"

// variant набор стратегий оформления, выбираемый по паре
// (визуальный пресет, прогнозный отчет)
type variant struct {
	elaborate bool // modern + прогноз

	logoBoxW, logoBoxH float64
	nameY              float64

	title  func(s *renderState)
	footer func(s *renderState)
	header func(s *renderState, title string)
}

func selectVariant(tpl templates.VisualTemplate, prediction bool) variant {
	v := variant{
		logoBoxW: 60,
		logoBoxH: 35,
		nameY:    125,
		title:    drawPlainTitle,
		footer:   drawPlainFooter,
		header:   contentHeaders[tpl],
	}
	if v.header == nil {
		v.header = drawClassicHeader
	}

	if tpl == templates.Modern && prediction {
		v.elaborate = true
		v.logoBoxW, v.logoBoxH = 80, 45
		v.nameY = 150
		v.title = drawStylizedTitle
		v.footer = drawElaborateFooter
	}
	return v
}

var contentHeaders = map[templates.VisualTemplate]func(s *renderState, title string){
	templates.Modern:  drawModernHeader,
	templates.Classic: drawClassicHeader,
	templates.Minimal: drawMinimalHeader,
}
