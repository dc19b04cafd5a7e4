package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Operation представляет операцию, которую нужно повторить
type Operation func(ctx context.Context) error

// Retrier выполняет повторные попытки операции
type Retrier struct {
	config    *Config
	logger    *zap.Logger
	operation string
}

// New создает новый экземпляр Retrier
func New(operation string, logger *zap.Logger, opts ...Option) *Retrier {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Retrier{
		config:    config,
		logger:    logger,
		operation: operation,
	}
}

// Do выполняет операцию с повторными попытками
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	if r.config.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be positive", ErrInvalidConfig)
	}

	start := time.Now()
	defer func() {
		retryDuration.WithLabelValues(r.operation).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			retryAttempts.WithLabelValues(r.operation, "success").Inc()
			return nil
		}
		lastErr = err
		retryAttempts.WithLabelValues(r.operation, "failed").Inc()

		r.logger.Warn("retry attempt failed",
			zap.String("operation", r.operation),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		// Если контекст отменен, прекращаем попытки
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if r.config.ShouldRetry == nil || !r.config.ShouldRetry(err) {
			return &RetryError{Attempt: attempt, OriginalError: err}
		}

		if attempt == r.config.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.calculateDelay(attempt)):
		}
	}

	return &RetryError{Attempt: r.config.MaxAttempts, OriginalError: lastErr}
}

// calculateDelay вычисляет задержку для следующей попытки
func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= r.config.BackoffFactor
	}

	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	return time.Duration(delay)
}
