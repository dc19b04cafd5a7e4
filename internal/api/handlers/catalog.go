package handlers

import (
	"errors"
	"net/http"

	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/templates"

	"github.com/gin-gonic/gin"
)

// CatalogHandler отдает реестры типов отчетов и тональных пресетов
type CatalogHandler struct {
	service report.Service
}

func NewCatalogHandler(service report.Service) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) ReportTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"report_types": templates.All()})
}

// EffectiveSettings показывает итоговые настройки типа отчета с учетом
// сохраненных значений
func (h *CatalogHandler) EffectiveSettings(c *gin.Context) {
	rt := templates.ReportType(c.Param("type"))
	eff, err := h.service.EffectiveSettings(c.Request.Context(), rt)
	if err != nil {
		if errors.Is(err, templates.ErrUnknownReportType) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eff)
}

type contentTemplateView struct {
	templates.ContentTemplate
	Prefill map[string]any `json:"prefill"`
}

func (h *CatalogHandler) ContentTemplates(c *gin.Context) {
	all := templates.ContentTemplates()
	out := make([]contentTemplateView, 0, len(all))
	for _, t := range all {
		out = append(out, contentTemplateView{ContentTemplate: t, Prefill: t.Prefill()})
	}
	c.JSON(http.StatusOK, gin.H{"content_templates": out})
}

// ContentTemplate отдает один пресет с готовыми полями настроек
func (h *CatalogHandler) ContentTemplate(c *gin.Context) {
	t, ok := templates.LookupContentTemplate(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown content template"})
		return
	}
	c.JSON(http.StatusOK, contentTemplateView{ContentTemplate: t, Prefill: t.Prefill()})
}
