// Package assets загружает логотипы обложки и подвала отчета.
// Любая ошибка загрузки или декодирования означает "логотипа нет" и
// никогда не прерывает генерацию.
package assets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"report-service-go/internal/pkg/cache"
	"report-service-go/internal/pkg/circuitbreaker"
	"report-service-go/internal/pkg/metrics"
	"report-service-go/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	kindCover  = "cover"
	kindFooter = "footer"
)

// Config настройки загрузчика
type Config struct {
	FetchTimeout   time.Duration // ограничение на одну загрузку
	MaxDimension   int           // максимальная сторона после уменьшения, пикселей
	MaxConcurrency int           // параллельные загрузки логотипов подвала
	Breaker        circuitbreaker.Config
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig() Config {
	return Config{
		FetchTimeout:   5 * time.Second,
		MaxDimension:   1024,
		MaxConcurrency: 4,
		Breaker:        circuitbreaker.DefaultConfig("logo_host"),
	}
}

// Loader загружает и подготавливает логотипы. Безопасен для
// одновременного использования несколькими генерациями.
type Loader struct {
	config   Config
	client   *http.Client
	cache    *cache.Cache
	breakers *circuitbreaker.Registry
	log      *zap.Logger
}

// NewLoader создает загрузчик. cache может быть nil.
func NewLoader(cfg Config, client *http.Client, c *cache.Cache, log *zap.Logger) *Loader {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultConfig().FetchTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = 1
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker = DefaultConfig().Breaker
	}
	if client == nil {
		client = NewHTTPClient(cfg.FetchTimeout)
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Loader{
		config:   cfg,
		client:   client,
		cache:    c,
		breakers: circuitbreaker.NewRegistry(cfg.Breaker),
		log:      log,
	}
}

// BreakerStates возвращает состояния Circuit Breaker по хостам логотипов
func (l *Loader) BreakerStates() map[string]circuitbreaker.State {
	return l.breakers.States()
}

// LoadLogo загружает логотип обложки. Используется только первый адрес,
// остальные игнорируются. false означает, что логотипа нет.
func (l *Loader) LoadLogo(ctx context.Context, urls []string) (Image, bool) {
	if len(urls) == 0 {
		return Image{}, false
	}

	img, err := l.Load(ctx, kindCover, urls[0])
	if err != nil {
		l.log.Warn("Cover logo unavailable, using placeholder",
			zap.String("url", urls[0]),
			zap.Error(err))
		return Image{}, false
	}
	return img, true
}

// LoadFooterLogos загружает все логотипы подвала параллельно. Неудачные
// пропускаются, порядок удачных совпадает с порядком адресов.
func (l *Loader) LoadFooterLogos(ctx context.Context, urls []string) []Image {
	if len(urls) == 0 {
		return nil
	}

	results := make([]*Image, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.config.MaxConcurrency)

	for i, u := range urls {
		i, u := i, u
		g.Go(func() error {
			img, err := l.Load(gctx, kindFooter, u)
			if err != nil {
				l.log.Warn("Footer logo skipped",
					zap.Int("index", i),
					zap.String("url", u),
					zap.Error(err))
				return nil
			}
			results[i] = &img
			return nil
		})
	}
	_ = g.Wait()

	images := make([]Image, 0, len(urls))
	for _, img := range results {
		if img != nil {
			images = append(images, *img)
		}
	}
	return images
}

// Load скачивает (или берет из кэша) и подготавливает одно изображение
func (l *Loader) Load(ctx context.Context, kind, rawURL string) (Image, error) {
	ctx, span := tracing.StartSpan(ctx, "assets.Load")
	defer span.End()
	span.SetAttributes(
		attribute.String("asset.kind", kind),
		attribute.String("asset.url", rawURL),
	)

	start := time.Now()
	data, err := l.fetch(ctx, rawURL)
	metrics.AssetFetchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AssetFetchTotal.WithLabelValues(kind, fetchStatus(err)).Inc()
		tracing.RecordError(ctx, err)
		return Image{}, err
	}

	img, err := prepare(rawURL, data, l.config.MaxDimension)
	if err != nil {
		metrics.AssetFetchTotal.WithLabelValues(kind, "decode_error").Inc()
		tracing.RecordError(ctx, err)
		if l.cache != nil {
			l.cache.Delete(rawURL)
		}
		return Image{}, err
	}

	metrics.AssetFetchTotal.WithLabelValues(kind, "success").Inc()
	return img, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if l.cache != nil {
		if data, err := l.cache.Get(ctx, rawURL); err == nil {
			return data, nil
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		if rawURL == "" {
			return nil, ErrEmptyURL
		}
		return nil, fmt.Errorf("%w: invalid url %q", ErrFetch, rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, l.config.FetchTimeout)
	defer cancel()

	var data []byte
	err = l.breakers.Get(u.Host).Execute(func() error {
		var fetchErr error
		data, fetchErr = download(ctx, l.client, rawURL)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(rawURL, data)
	}
	return data, nil
}

func fetchStatus(err error) string {
	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrEmptyURL):
		return "empty_url"
	default:
		return "error"
	}
}
