// Package store хранит единственную запись глобальных настроек отчетов и
// журнал генераций.
package store

import (
	"context"
	"encoding/json"
	"time"

	"report-service-go/internal/pkg/settings"
)

// Store интерфейс хранилища настроек
type Store interface {
	// LoadSettings возвращает сохраненные настройки или nil, если записи нет
	LoadSettings(ctx context.Context) (*settings.Persisted, error)

	// SaveSettings создает или заменяет запись настроек
	SaveSettings(ctx context.Context, p *settings.Persisted) error

	// LogGeneration записывает информацию о генерации отчета
	LogGeneration(ctx context.Context, rec GenerationRecord) error

	// Ping проверяет доступность хранилища
	Ping(ctx context.Context) error

	// Close закрывает соединение с хранилищем
	Close() error
}

// GenerationRecord запись журнала генераций
type GenerationRecord struct {
	Timestamp  time.Time
	ReportType string
	Format     string // pdf или xlsx
	FileName   string
	Pages      int
	SizeBytes  int64
	Duration   time.Duration
	Success    bool
	Error      string
}

// clonePersisted возвращает глубокую копию записи
func clonePersisted(p *settings.Persisted) (*settings.Persisted, error) {
	if p == nil {
		return nil, nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var out settings.Persisted
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
