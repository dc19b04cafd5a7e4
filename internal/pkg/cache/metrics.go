package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор коллекторов кэша
type Metrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
	items  prometheus.Gauge
}

var defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)

// NewMetrics создает и регистрирует метрики кэша в указанном регистре
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		hits: f.NewCounter(prometheus.CounterOpts{
			Name: "asset_cache_hits_total",
			Help: "Number of asset cache hits",
		}),
		misses: f.NewCounter(prometheus.CounterOpts{
			Name: "asset_cache_misses_total",
			Help: "Number of asset cache misses",
		}),
		items: f.NewGauge(prometheus.GaugeOpts{
			Name: "asset_cache_items",
			Help: "Number of items in asset cache",
		}),
	}
}
