package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal количество HTTP запросов
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration длительность HTTP запросов
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ReportGenerationTotal количество генераций отчетов по типу и результату
	ReportGenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_generation_total",
			Help: "Total number of report generations",
		},
		[]string{"report_type", "status"},
	)

	// ReportGenerationDuration длительность генерации отчета
	ReportGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_generation_duration_seconds",
			Help:    "Duration of report generation in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"report_type"},
	)

	// ReportFileSizeBytes размер сгенерированных документов
	ReportFileSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_file_size_bytes",
			Help:    "Size of generated report files in bytes",
			Buckets: []float64{10 * 1024, 50 * 1024, 100 * 1024, 500 * 1024, 1024 * 1024, 5 * 1024 * 1024},
		},
		[]string{"format"},
	)

	// ReportPages количество страниц в PDF
	ReportPages = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_pages",
			Help:    "Number of pages per generated PDF report",
			Buckets: []float64{1, 2, 4, 6, 8, 12, 20},
		},
		[]string{"report_type"},
	)

	// AssetFetchTotal количество загрузок логотипов по виду и результату
	AssetFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asset_fetch_total",
			Help: "Total number of logo fetches",
		},
		[]string{"kind", "status"},
	)

	// AssetFetchDuration длительность загрузки логотипа
	AssetFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asset_fetch_duration_seconds",
			Help:    "Duration of logo fetches in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// SettingsLoadTotal количество чтений сохраненных настроек
	SettingsLoadTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settings_load_total",
			Help: "Total number of persisted settings loads",
		},
		[]string{"status"},
	)
)
