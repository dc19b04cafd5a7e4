package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"report-service-go/internal/pkg/settings"
	"report-service-go/internal/pkg/tracing"
)

// Config параметры подключения к PostgreSQL
type Config struct {
	Host     string
	Port     string
	DBName   string
	User     string
	Password string
	SSLMode  string
	Pool     PoolConfig
}

// PoolConfig настройки пула соединений database/sql
type PoolConfig struct {
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	MaxLifetime  time.Duration
}

// DefaultPoolConfig возвращает настройки пула по умолчанию
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		MaxIdleTime:  5 * time.Minute,
		MaxLifetime:  30 * time.Minute,
	}
}

// DSN строит строку подключения
func (c Config) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.DBName, c.User, c.Password, sslMode)
}

// Postgres хранилище на PostgreSQL
type Postgres struct {
	db *sql.DB
}

// NewPostgres подключается к базе и создает схему
func NewPostgres(ctx context.Context, cfg Config) (*Postgres, error) {
	return OpenPostgres(ctx, cfg.DSN(), cfg.Pool)
}

// OpenPostgres подключается по готовой строке подключения
func OpenPostgres(ctx context.Context, dsn string, pool PoolConfig) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	db.SetConnMaxIdleTime(pool.MaxIdleTime)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.InitSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return p, nil
}

// InitSchema создает таблицы, если их нет
func (p *Postgres) InitSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS report_settings (
			id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			settings JSONB NOT NULL DEFAULT '{}'::jsonb,
			dynamic_content JSONB NOT NULL DEFAULT '{}'::jsonb,
			logo_urls TEXT[] NOT NULL DEFAULT '{}',
			footer_logo_urls TEXT[] NOT NULL DEFAULT '{}',
			updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS report_generations (
			id SERIAL PRIMARY KEY,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			report_type TEXT NOT NULL,
			format TEXT NOT NULL,
			file_name TEXT NOT NULL,
			pages INTEGER NOT NULL,
			size_bytes BIGINT NOT NULL,
			duration_ns BIGINT NOT NULL,
			success BOOLEAN NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_report_generations_timestamp ON report_generations(timestamp);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadSettings реализует Store
func (p *Postgres) LoadSettings(ctx context.Context) (*settings.Persisted, error) {
	ctx, span := tracing.StartSpan(ctx, "store.LoadSettings")
	defer span.End()

	var (
		rawSettings, rawDynamic []byte
		logos, footerLogos      pq.StringArray
	)
	err := p.db.QueryRowContext(ctx,
		"SELECT settings, dynamic_content, logo_urls, footer_logo_urls FROM report_settings WHERE id = 1",
	).Scan(&rawSettings, &rawDynamic, &logos, &footerLogos)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	out := &settings.Persisted{Values: settings.Values{}, DynamicContent: settings.Values{}}
	if err := unmarshalValues(rawSettings, &out.Values); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := unmarshalValues(rawDynamic, &out.DynamicContent); err != nil {
		return nil, fmt.Errorf("failed to decode dynamic content: %w", err)
	}
	if len(logos) > 0 {
		out.Values["logo_urls"] = []string(logos)
	}
	if len(footerLogos) > 0 {
		out.Values["footer_logo_urls"] = []string(footerLogos)
	}
	return out, nil
}

// SaveSettings реализует Store
func (p *Postgres) SaveSettings(ctx context.Context, s *settings.Persisted) error {
	ctx, span := tracing.StartSpan(ctx, "store.SaveSettings")
	defer span.End()

	if s == nil {
		s = &settings.Persisted{}
	}

	values := settings.Values{}
	for k, v := range s.Values {
		values[k] = v
	}
	logos := s.Values.Strings("logo_urls")
	footerLogos := s.Values.Strings("footer_logo_urls")
	delete(values, "logo_urls")
	delete(values, "footer_logo_urls")

	rawSettings, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	dynamic := s.DynamicContent
	if dynamic == nil {
		dynamic = settings.Values{}
	}
	rawDynamic, err := json.Marshal(dynamic)
	if err != nil {
		return fmt.Errorf("failed to encode dynamic content: %w", err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO report_settings (id, settings, dynamic_content, logo_urls, footer_logo_urls, updated_at)
		VALUES (1, $1, $2, $3, $4, now())
		ON CONFLICT (id) DO UPDATE SET
			settings = EXCLUDED.settings,
			dynamic_content = EXCLUDED.dynamic_content,
			logo_urls = EXCLUDED.logo_urls,
			footer_logo_urls = EXCLUDED.footer_logo_urls,
			updated_at = EXCLUDED.updated_at`,
		rawSettings, rawDynamic, pq.Array(logos), pq.Array(footerLogos),
	)
	if err != nil {
		tracing.RecordError(ctx, err)
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// LogGeneration реализует Store
func (p *Postgres) LogGeneration(ctx context.Context, rec GenerationRecord) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO report_generations
			(timestamp, report_type, format, file_name, pages, size_bytes, duration_ns, success, error)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.Timestamp.UTC(), rec.ReportType, rec.Format, rec.FileName, rec.Pages,
		rec.SizeBytes, rec.Duration.Nanoseconds(), rec.Success, rec.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to log generation: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close закрывает соединение с базой данных
func (p *Postgres) Close() error {
	return p.db.Close()
}

func unmarshalValues(raw []byte, dst *settings.Values) error {
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, dst); err != nil {
			return err
		}
	}
	if *dst == nil {
		*dst = settings.Values{}
	}
	return nil
}
