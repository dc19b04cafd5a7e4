package handlers

import (
	"net/http"

	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/settings"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service report.Service
}

func NewSettingsHandler(service report.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Get возвращает сохраненные настройки. Пустой объект, если их нет.
func (h *SettingsHandler) Get(c *gin.Context) {
	p, err := h.service.Settings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if p == nil {
		p = &settings.Persisted{}
	}
	c.JSON(http.StatusOK, p)
}

// Put заменяет сохраненные настройки целиком
func (h *SettingsHandler) Put(c *gin.Context) {
	var p settings.Persisted
	if err := c.ShouldBindJSON(&p); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.service.SaveSettings(c.Request.Context(), &p); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &p)
}
