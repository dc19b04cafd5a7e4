package store

import (
	"context"
	"fmt"
	"sync"

	"report-service-go/internal/pkg/settings"
)

// Memory хранилище в памяти процесса, для тестов и офлайн-рендера
type Memory struct {
	mu          sync.RWMutex
	persisted   *settings.Persisted
	generations []GenerationRecord
}

// NewMemory создает хранилище, опционально с начальной записью настроек
func NewMemory(initial *settings.Persisted) *Memory {
	m := &Memory{}
	if initial != nil {
		m.persisted, _ = clonePersisted(initial)
	}
	return m
}

// LoadSettings реализует Store
func (m *Memory) LoadSettings(ctx context.Context) (*settings.Persisted, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clonePersisted(m.persisted)
}

// SaveSettings реализует Store
func (m *Memory) SaveSettings(ctx context.Context, p *settings.Persisted) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cp, err := clonePersisted(p)
	if err != nil {
		return fmt.Errorf("failed to copy settings: %w", err)
	}
	m.mu.Lock()
	m.persisted = cp
	m.mu.Unlock()
	return nil
}

// LogGeneration реализует Store
func (m *Memory) LogGeneration(_ context.Context, rec GenerationRecord) error {
	m.mu.Lock()
	m.generations = append(m.generations, rec)
	m.mu.Unlock()
	return nil
}

// Generations возвращает копию журнала генераций
func (m *Memory) Generations() []GenerationRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]GenerationRecord(nil), m.generations...)
}

// Ping реализует Store
func (m *Memory) Ping(context.Context) error {
	return nil
}

// Close реализует Store
func (m *Memory) Close() error {
	return nil
}
