// Package config собирает конфигурацию сервиса: значения по умолчанию,
// затем необязательный YAML файл (CONFIG_FILE), затем переменные окружения.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"report-service-go/internal/api"
	"report-service-go/internal/pkg/assets"
	"report-service-go/internal/pkg/circuitbreaker"
	"report-service-go/internal/pkg/store"
	"report-service-go/internal/pkg/tracing"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel       string         `yaml:"log_level"`
	HTTP           HTTPConfig     `yaml:"http"`
	Postgres       PostgresConfig `yaml:"postgres"`
	Assets         AssetsConfig   `yaml:"assets"`
	CircuitBreaker BreakerConfig  `yaml:"circuit_breaker"`
	Tracing        TracingConfig  `yaml:"tracing"`
	Render         RenderConfig   `yaml:"render"`

	// UnidocLicenseKey ключ unioffice для выгрузки в Excel
	UnidocLicenseKey string `yaml:"unidoc_license_key"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

// PostgresConfig хранилище настроек. Пустой Host отключает хранилище.
type PostgresConfig struct {
	Host         string        `yaml:"host"`
	Port         string        `yaml:"port"`
	DBName       string        `yaml:"dbname"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxIdleTime  time.Duration `yaml:"max_idle_time"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

type AssetsConfig struct {
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	MaxDimension   int           `yaml:"max_dimension"`
	MaxConcurrency int           `yaml:"max_concurrency"`
}

type BreakerConfig struct {
	FailureThreshold int           `yaml:"failure_threshold"`
	ResetTimeout     time.Duration `yaml:"reset_timeout"`
	HalfOpenMaxCalls int           `yaml:"half_open_max_calls"`
	SuccessThreshold int           `yaml:"success_threshold"`
}

type TracingConfig struct {
	Endpoint     string  `yaml:"endpoint"`
	ServiceName  string  `yaml:"service_name"`
	Environment  string  `yaml:"environment"`
	SamplingRate float64 `yaml:"sampling_rate"`
}

type RenderConfig struct {
	Compress bool `yaml:"compress"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	srv := api.DefaultConfig()
	pool := store.DefaultPoolConfig()
	as := assets.DefaultConfig()
	cb := circuitbreaker.DefaultConfig("logo_host")

	return Config{
		LogLevel: "info",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			RequestTimeout:  srv.RequestTimeout,
			ReadTimeout:     srv.ReadTimeout,
			WriteTimeout:    srv.WriteTimeout,
			ShutdownTimeout: srv.ShutdownTimeout,
			MaxBodyBytes:    srv.MaxBodyBytes,
		},
		Postgres: PostgresConfig{
			Port:         "5432",
			DBName:       "reports",
			SSLMode:      "disable",
			MaxOpenConns: pool.MaxOpenConns,
			MaxIdleConns: pool.MaxIdleConns,
			MaxIdleTime:  pool.MaxIdleTime,
			MaxLifetime:  pool.MaxLifetime,
		},
		Assets: AssetsConfig{
			FetchTimeout:   as.FetchTimeout,
			CacheTTL:       10 * time.Minute,
			MaxDimension:   as.MaxDimension,
			MaxConcurrency: as.MaxConcurrency,
		},
		CircuitBreaker: BreakerConfig{
			FailureThreshold: cb.FailureThreshold,
			ResetTimeout:     cb.ResetTimeout,
			HalfOpenMaxCalls: cb.HalfOpenMaxCalls,
			SuccessThreshold: cb.SuccessThreshold,
		},
		Tracing: TracingConfig{
			ServiceName:  "report-service",
			Environment:  "development",
			SamplingRate: 1.0,
		},
		Render: RenderConfig{Compress: true},
	}
}

// Load читает YAML файл (если path не пуст), применяет переменные
// окружения и проверяет результат
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnvWithDefault("LOG_LEVEL", c.LogLevel)

	c.HTTP.Addr = getEnvWithDefault("HTTP_ADDR", c.HTTP.Addr)
	c.HTTP.RequestTimeout = getEnvDurationWithDefault("HTTP_REQUEST_TIMEOUT", c.HTTP.RequestTimeout)

	c.Postgres.Host = getEnvWithDefault("POSTGRES_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnvWithDefault("POSTGRES_PORT", c.Postgres.Port)
	c.Postgres.DBName = getEnvWithDefault("POSTGRES_DB", c.Postgres.DBName)
	c.Postgres.User = getEnvWithDefault("POSTGRES_USER", c.Postgres.User)
	c.Postgres.Password = getEnvWithDefault("POSTGRES_PASSWORD", c.Postgres.Password)
	c.Postgres.SSLMode = getEnvWithDefault("POSTGRES_SSLMODE", c.Postgres.SSLMode)
	c.Postgres.MaxOpenConns = getEnvIntWithDefault("POSTGRES_MAX_OPEN_CONNS", c.Postgres.MaxOpenConns)
	c.Postgres.MaxIdleConns = getEnvIntWithDefault("POSTGRES_MAX_IDLE_CONNS", c.Postgres.MaxIdleConns)

	c.Assets.FetchTimeout = getEnvDurationWithDefault("ASSET_FETCH_TIMEOUT", c.Assets.FetchTimeout)
	c.Assets.CacheTTL = getEnvDurationWithDefault("ASSET_CACHE_TTL", c.Assets.CacheTTL)
	c.Assets.MaxDimension = getEnvIntWithDefault("ASSET_MAX_DIMENSION", c.Assets.MaxDimension)
	c.Assets.MaxConcurrency = getEnvIntWithDefault("ASSET_MAX_CONCURRENCY", c.Assets.MaxConcurrency)

	c.CircuitBreaker.FailureThreshold = getEnvIntWithDefault("CIRCUIT_BREAKER_FAILURE_THRESHOLD", c.CircuitBreaker.FailureThreshold)
	c.CircuitBreaker.ResetTimeout = getEnvDurationWithDefault("CIRCUIT_BREAKER_RESET_TIMEOUT", c.CircuitBreaker.ResetTimeout)
	c.CircuitBreaker.HalfOpenMaxCalls = getEnvIntWithDefault("CIRCUIT_BREAKER_HALF_OPEN_MAX_CALLS", c.CircuitBreaker.HalfOpenMaxCalls)
	c.CircuitBreaker.SuccessThreshold = getEnvIntWithDefault("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", c.CircuitBreaker.SuccessThreshold)

	c.Tracing.Endpoint = getEnvWithDefault("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.Endpoint)
	c.Tracing.ServiceName = getEnvWithDefault("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.Environment = getEnvWithDefault("ENVIRONMENT", c.Tracing.Environment)

	c.Render.Compress = getEnvBoolWithDefault("PDF_COMPRESS", c.Render.Compress)

	c.UnidocLicenseKey = getEnvWithDefault("UNIDOC_LICENSE_API_KEY", c.UnidocLicenseKey)
}

// Validate проверяет значения, без которых сервис не сможет работать
func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("%w: http.addr is empty", ErrInvalidConfig)
	}
	if c.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("%w: http.request_timeout must be positive", ErrInvalidConfig)
	}
	if c.Assets.FetchTimeout <= 0 {
		return fmt.Errorf("%w: assets.fetch_timeout must be positive", ErrInvalidConfig)
	}
	if c.Assets.MaxDimension <= 0 {
		return fmt.Errorf("%w: assets.max_dimension must be positive", ErrInvalidConfig)
	}
	if c.CircuitBreaker.FailureThreshold <= 0 {
		return fmt.Errorf("%w: circuit_breaker.failure_threshold must be positive", ErrInvalidConfig)
	}
	if c.Postgres.Host != "" {
		if _, err := strconv.Atoi(c.Postgres.Port); err != nil {
			return fmt.Errorf("%w: postgres.port %q is not a number", ErrInvalidConfig, c.Postgres.Port)
		}
	}
	if c.Tracing.SamplingRate < 0 || c.Tracing.SamplingRate > 1 {
		return fmt.Errorf("%w: tracing.sampling_rate must be within 0..1", ErrInvalidConfig)
	}
	return nil
}

// StoreEnabled сообщает, настроено ли хранилище настроек
func (c Config) StoreEnabled() bool {
	return c.Postgres.Host != ""
}

func (c Config) ServerConfig() api.Config {
	return api.Config{
		RequestTimeout:  c.HTTP.RequestTimeout,
		ReadTimeout:     c.HTTP.ReadTimeout,
		WriteTimeout:    c.HTTP.WriteTimeout,
		ShutdownTimeout: c.HTTP.ShutdownTimeout,
		MaxBodyBytes:    c.HTTP.MaxBodyBytes,
	}
}

func (c Config) StoreConfig() store.Config {
	return store.Config{
		Host:     c.Postgres.Host,
		Port:     c.Postgres.Port,
		DBName:   c.Postgres.DBName,
		User:     c.Postgres.User,
		Password: c.Postgres.Password,
		SSLMode:  c.Postgres.SSLMode,
		Pool: store.PoolConfig{
			MaxOpenConns: c.Postgres.MaxOpenConns,
			MaxIdleConns: c.Postgres.MaxIdleConns,
			MaxIdleTime:  c.Postgres.MaxIdleTime,
			MaxLifetime:  c.Postgres.MaxLifetime,
		},
	}
}

func (c Config) AssetsConfig() assets.Config {
	cb := circuitbreaker.DefaultConfig("logo_host")
	cb.FailureThreshold = c.CircuitBreaker.FailureThreshold
	cb.ResetTimeout = c.CircuitBreaker.ResetTimeout
	cb.HalfOpenMaxCalls = c.CircuitBreaker.HalfOpenMaxCalls
	cb.SuccessThreshold = c.CircuitBreaker.SuccessThreshold

	return assets.Config{
		FetchTimeout:   c.Assets.FetchTimeout,
		MaxDimension:   c.Assets.MaxDimension,
		MaxConcurrency: c.Assets.MaxConcurrency,
		Breaker:        cb,
	}
}

func (c Config) TracingConfig(version string) tracing.Config {
	return tracing.Config{
		ServiceName:    c.Tracing.ServiceName,
		ServiceVersion: version,
		Environment:    c.Tracing.Environment,
		CollectorURL:   c.Tracing.Endpoint,
		SamplingRate:   c.Tracing.SamplingRate,
	}
}

// getEnvWithDefault возвращает значение переменной окружения или значение по умолчанию
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntWithDefault возвращает целочисленное значение переменной окружения или значение по умолчанию
func getEnvIntWithDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault возвращает значение длительности из переменной окружения или значение по умолчанию
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
