package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/pdfgen"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// generateRequest тело запроса генерации: данные отчета и флаги рендера
type generateRequest struct {
	pdfgen.ReportData
	IncludeChart bool `json:"includeChart"`
}

type ReportHandler struct {
	service report.Service
}

func NewReportHandler(service report.Service) *ReportHandler {
	return &ReportHandler{service: service}
}

// Generate отдает PDF отчета
func (h *ReportHandler) Generate(c *gin.Context) {
	start := time.Now()

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doc, err := h.service.GenerateReport(c.Request.Context(), &req.ReportData, report.GenerateOptions{
		IncludeChart: req.IncludeChart,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(doc.Name))
	c.Header("X-Page-Count", strconv.Itoa(doc.PageCount()))
	c.Header("X-Total-Processing-Time", time.Since(start).String())
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// ExportXLSX отдает таблицу оценок
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	start := time.Now()

	var data pdfgen.ReportData
	if err := c.ShouldBindJSON(&data); err != nil {
		respondBindError(c, err)
		return
	}

	name, content, err := h.service.ExportEvaluations(c.Request.Context(), &data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", contentDisposition(name))
	c.Header("X-Total-Processing-Time", time.Since(start).String())
	c.Data(http.StatusOK, xlsxContentType, content)
}

// contentDisposition формирует заголовок вложения. Имя с не-ASCII
// символами передается через filename*, в filename остается ASCII вариант.
func contentDisposition(name string) string {
	fallback := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if fallback == name {
		return fmt.Sprintf(`attachment; filename="%s"`, name)
	}
	return fmt.Sprintf(`attachment; filename="%s"; filename*=UTF-8''%s`, fallback, url.PathEscape(name))
}
