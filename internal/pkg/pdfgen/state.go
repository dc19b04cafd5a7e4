package pdfgen

import (
	"bytes"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"go.uber.org/zap"

	"report-service-go/internal/pkg/assets"
	"report-service-go/internal/pkg/color"
	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/templates"
)

// Геометрия страницы A4 в миллиметрах
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	margin     = 20.0
)

var (
	textDark  = color.RGB{R: 51, G: 51, B: 51}
	textGray  = color.RGB{R: 128, G: 128, B: 128}
	white     = color.RGB{R: 255, G: 255, B: 255}
	lightGray = color.RGB{R: 230, G: 230, B: 230}
)

// renderState состояние одной генерации. Создается на каждый вызов
// Generate и не разделяется между генерациями.
type renderState struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	upper cases.Caser

	data    *ReportData
	eff     settings.Effective
	tpl     templates.ReportTypeTemplate
	brand   color.RGB
	variant variant
	now     time.Time

	logo        *assets.Image
	footerLogos []assets.Image

	pages []PageInfo
	y     float64

	log *zap.Logger
}

func newRenderState(data *ReportData, eff settings.Effective, tpl templates.ReportTypeTemplate, now time.Time, compress bool, log *zap.Logger) *renderState {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetCreationDate(now)
	pdf.SetTitle(eff.HeaderText, true)
	pdf.SetAuthor(eff.ResponsibleAgent, true)
	pdf.SetCreator("report-service-go", false)

	return &renderState{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		upper:   cases.Upper(language.Spanish),
		data:    data,
		eff:     eff,
		tpl:     tpl,
		brand:   color.HexToRGB(eff.PrimaryColor),
		variant: selectVariant(eff.Template, data.ReportType.IsPrediction()),
		now:     now,
		log:     log,
	}
}

// registerImages регистрирует загруженные логотипы в документе.
// Логотип, который gofpdf не смог разобрать, отбрасывается.
func (s *renderState) registerImages(logo *assets.Image, footer []assets.Image) {
	if logo != nil && s.register(*logo) {
		s.logo = logo
	}
	for _, img := range footer {
		if s.register(img) {
			s.footerLogos = append(s.footerLogos, img)
		}
	}
}

func (s *renderState) register(img assets.Image) bool {
	s.pdf.RegisterImageOptionsReader(img.Name, gofpdf.ImageOptions{ImageType: img.Type}, bytes.NewReader(img.Data))
	if s.pdf.Err() {
		s.log.Warn("Logo rejected by PDF writer",
			zap.String("image", img.Name),
			zap.Error(s.pdf.Error()))
		s.pdf.ClearError()
		return false
	}
	return true
}

// addPage начинает страницу и заносит ее в манифест
func (s *renderState) addPage(kind PageKind, title string) *PageInfo {
	s.pdf.AddPage()
	s.pages = append(s.pages, PageInfo{
		Number: s.pdf.PageNo(),
		Kind:   kind,
		Title:  title,
	})
	return &s.pages[len(s.pages)-1]
}

func (s *renderState) setFill(c color.RGB) { s.pdf.SetFillColor(c.R, c.G, c.B) }
func (s *renderState) setDraw(c color.RGB) { s.pdf.SetDrawColor(c.R, c.G, c.B) }
func (s *renderState) setText(c color.RGB) { s.pdf.SetTextColor(c.R, c.G, c.B) }

func (s *renderState) font(style string, size float64) {
	s.pdf.SetFont("Helvetica", style, size)
}

// text выводит строку с базовой линией y
func (s *renderState) text(x, y float64, str string) {
	s.pdf.Text(x, y, s.tr(str))
}

// centered выводит строку по центру страницы
func (s *renderState) centered(y float64, str string) {
	t := s.tr(str)
	s.pdf.Text((pageWidth-s.pdf.GetStringWidth(t))/2, y, t)
}

// rightAligned выводит строку, выровненную по правой границе x
func (s *renderState) rightAligned(x, y float64, str string) {
	t := s.tr(str)
	s.pdf.Text(x-s.pdf.GetStringWidth(t), y, t)
}

// drawImage вписывает изображение в рамку w×h с сохранением пропорций и
// центрирует в ней. Ошибка отрисовки сбрасывается, чтобы не ломать документ.
// Выведенный логотип попадает в манифест текущей страницы.
func (s *renderState) drawImage(img assets.Image, x, y, boxW, boxH float64) bool {
	w, h := fitToBox(img.AspectRatio(), boxW, boxH)
	x, y = x+(boxW-w)/2, y+(boxH-h)/2
	s.pdf.ImageOptions(img.Name, x, y, w, h, false,
		gofpdf.ImageOptions{ImageType: img.Type}, 0, "")
	if s.pdf.Err() {
		s.log.Warn("Failed to draw logo",
			zap.String("image", img.Name),
			zap.Error(s.pdf.Error()))
		s.pdf.ClearError()
		return false
	}
	if n := len(s.pages); n > 0 {
		page := &s.pages[n-1]
		page.Logos = append(page.Logos, LogoPlacement{Image: img.Name, X: x, Y: y, W: w, H: h})
	}
	return true
}

// pageNumberFooter выводит "Página N" внизу текущей страницы
func (s *renderState) pageNumberFooter() {
	s.font("", 9)
	s.setText(textGray)
	s.centered(pageHeight-10, "Página "+strconv.Itoa(s.pdf.PageNo()))
}

// fitToBox возвращает наибольшие размеры с заданным соотношением сторон,
// помещающиеся в рамку
func fitToBox(aspect, boxW, boxH float64) (float64, float64) {
	if aspect <= 0 {
		aspect = 1
	}
	w, h := boxW, boxW/aspect
	if h > boxH {
		h = boxH
		w = boxH * aspect
	}
	return w, h
}
