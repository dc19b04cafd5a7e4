package handlers

import (
	"context"
	"net/http"
	"time"

	"report-service-go/internal/pkg/circuitbreaker"

	"github.com/gin-gonic/gin"
)

// BreakerReporter источник состояний Circuit Breaker
type BreakerReporter interface {
	BreakerStates() map[string]circuitbreaker.State
}

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	breakers BreakerReporter
	store    Pinger
}

// NewHealthHandler создает обработчик. Оба аргумента могут быть nil.
func NewHealthHandler(breakers BreakerReporter, store Pinger) *HealthHandler {
	return &HealthHandler{breakers: breakers, store: store}
}

// Health всегда отвечает 200, пока процесс жив: без хранилища и логотипов
// отчеты все равно генерируются на настройках по умолчанию.
// Деградация видна в status и details.
func (h *HealthHandler) Health(c *gin.Context) {
	status := "healthy"
	details := gin.H{}

	hosts := gin.H{}
	if h.breakers != nil {
		for host, state := range h.breakers.BreakerStates() {
			hosts[host] = state.String()
			if state != circuitbreaker.StateClosed {
				status = "degraded"
			}
		}
	}
	details["logo_hosts"] = hosts

	storeStatus := "not_configured"
	if h.store != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		storeStatus = "up"
		if err := h.store.Ping(ctx); err != nil {
			storeStatus = "down"
			status = "degraded"
		}
	}
	details["settings_store"] = storeStatus

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"details":   details,
	})
}
