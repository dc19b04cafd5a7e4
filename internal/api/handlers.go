package api

import (
	"report-service-go/internal/api/handlers"
	"report-service-go/internal/domain/report"
)

// Handlers содержит все обработчики API
type Handlers struct {
	Reports  *handlers.ReportHandler
	Catalog  *handlers.CatalogHandler
	Settings *handlers.SettingsHandler
	Health   *handlers.HealthHandler
}

// NewHandlers создает обработчики. breakers и store могут быть nil.
func NewHandlers(service report.Service, breakers handlers.BreakerReporter, store handlers.Pinger) *Handlers {
	return &Handlers{
		Reports:  handlers.NewReportHandler(service),
		Catalog:  handlers.NewCatalogHandler(service),
		Settings: handlers.NewSettingsHandler(service),
		Health:   handlers.NewHealthHandler(breakers, store),
	}
}
