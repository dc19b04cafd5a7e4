package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"report-service-go/internal/domain/report"
	"report-service-go/internal/pkg/logger"
	"report-service-go/internal/pkg/templates"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// determineErrorStatus сопоставляет ошибку сервиса с HTTP статусом
func determineErrorStatus(err error) int {
	switch {
	case errors.Is(err, templates.ErrUnknownReportType),
		errors.Is(err, report.ErrInvalidRequest),
		errors.Is(err, report.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, report.ErrStoreNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError пишет ошибку в едином формате {"error": "..."}
func respondError(c *gin.Context, err error) {
	status := determineErrorStatus(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

// respondBindError отвечает 400 на тело, которое не удалось разобрать,
// и 413 на тело больше лимита
func respondBindError(c *gin.Context, err error) {
	logger.Warn("Failed to parse request",
		zap.Error(err),
		zap.String("content_type", c.GetHeader("Content-Type")),
	)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
		})
	case errors.Is(err, io.EOF):
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty request body"})
	case strings.Contains(err.Error(), "invalid character"):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON format"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request format: %v", err)})
	}
}
