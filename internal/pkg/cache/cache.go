package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"report-service-go/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ErrMiss возвращается, когда ключа нет в кэше или срок его жизни истек
var ErrMiss = errors.New("cache miss")

// item представляет элемент кэша с временем жизни
type item struct {
	value      []byte
	expiration time.Time
}

// Cache представляет кэш байтовых значений с поддержкой TTL
type Cache struct {
	items   sync.Map
	ttl     time.Duration
	metrics *Metrics
	now     func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewCache создает новый экземпляр кэша с глобальными метриками
func NewCache(ttl time.Duration) *Cache {
	return NewCacheWithMetrics(ttl, defaultMetrics)
}

// NewCacheWithMetrics создает кэш с указанным набором метрик
func NewCacheWithMetrics(ttl time.Duration, m *Metrics) *Cache {
	c := &Cache{
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if ttl > 0 {
		go c.startCleanupTimer()
	}
	return c
}

// Set добавляет значение в кэш. При ttl <= 0 кэш выключен и Set ничего не делает
func (c *Cache) Set(key string, value []byte) {
	if c.ttl <= 0 {
		return
	}
	c.items.Store(key, item{
		value:      value,
		expiration: c.now().Add(c.ttl),
	})
	c.metrics.items.Set(float64(c.Len()))
}

// Get получает значение из кэша
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Cache.Get")
	defer span.End()
	span.SetAttributes(attribute.String("cache.key", key))

	v, ok := c.items.Load(key)
	if !ok {
		c.metrics.misses.Inc()
		return nil, fmt.Errorf("%w: key %s not found", ErrMiss, key)
	}

	it := v.(item)
	if c.now().After(it.expiration) {
		c.items.Delete(key)
		c.metrics.misses.Inc()
		return nil, fmt.Errorf("%w: key %s expired", ErrMiss, key)
	}

	c.metrics.hits.Inc()
	tracing.AddEvent(ctx, "Cache hit")
	return it.value, nil
}

// Delete удаляет значение из кэша
func (c *Cache) Delete(key string) {
	c.items.Delete(key)
	c.metrics.items.Set(float64(c.Len()))
}

// Len возвращает количество элементов, включая еще не вычищенные просроченные
func (c *Cache) Len() int {
	n := 0
	c.items.Range(func(_, _ interface{}) bool {
		n++
		return true
	})
	return n
}

// Stop останавливает фоновую очистку
func (c *Cache) Stop() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// startCleanupTimer запускает периодическую очистку устаревших элементов
func (c *Cache) startCleanupTimer() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired()
		}
	}
}

func (c *Cache) removeExpired() {
	now := c.now()
	c.items.Range(func(key, value interface{}) bool {
		if now.After(value.(item).expiration) {
			c.items.Delete(key)
		}
		return true
	})
	c.metrics.items.Set(float64(c.Len()))
}
