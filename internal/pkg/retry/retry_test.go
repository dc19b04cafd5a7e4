package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errTest = errors.New("test error")

func always(error) bool { return true }

func TestRetrier_Do(t *testing.T) {
	tests := []struct {
		name          string
		opts          []Option
		operation     func(calls int) error
		cancelled     bool
		expectedCalls int
		expectedErr   error
		expectedTry   int
	}{
		{
			name:          "success on first attempt",
			operation:     func(int) error { return nil },
			expectedCalls: 1,
		},
		{
			name: "success after retry",
			opts: []Option{WithRetryIf(always)},
			operation: func(calls int) error {
				if calls < 2 {
					return errTest
				}
				return nil
			},
			expectedCalls: 2,
		},
		{
			name:          "max attempts reached",
			opts:          []Option{WithRetryIf(always)},
			operation:     func(int) error { return errTest },
			expectedCalls: 3,
			expectedErr:   errTest,
			expectedTry:   3,
		},
		{
			name:          "non-retryable error stops immediately",
			operation:     func(int) error { return errTest },
			expectedCalls: 1,
			expectedErr:   errTest,
			expectedTry:   1,
		},
		{
			name:          "transient error is retried by default",
			operation:     func(int) error { return fmt.Errorf("query: %w", driver.ErrBadConn) },
			expectedCalls: 3,
			expectedErr:   driver.ErrBadConn,
			expectedTry:   3,
		},
		{
			name:          "context cancelled",
			opts:          []Option{WithRetryIf(always)},
			operation:     func(int) error { return errTest },
			cancelled:     true,
			expectedCalls: 1,
			expectedErr:   context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			opts := append([]Option{WithInitialDelay(time.Millisecond), WithMaxDelay(time.Millisecond)}, tt.opts...)
			r := New("test", zap.NewNop(), opts...)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if tt.cancelled {
				cancel()
			}

			err := r.Do(ctx, func(ctx context.Context) error {
				calls++
				return tt.operation(calls)
			})

			assert.Equal(t, tt.expectedCalls, calls)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
			if tt.expectedTry > 0 {
				var retryErr *RetryError
				require.ErrorAs(t, err, &retryErr)
				assert.Equal(t, tt.expectedTry, retryErr.Attempt)
			}
		})
	}
}

func TestRetrier_InvalidConfig(t *testing.T) {
	r := New("test", nil, WithMaxAttempts(0))
	err := r.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRetrier_Delay(t *testing.T) {
	tests := []struct {
		name     string
		maxDelay time.Duration
		attempt  int
		expected time.Duration
	}{
		{name: "first attempt", maxDelay: time.Second, attempt: 1, expected: 100 * time.Millisecond},
		{name: "second attempt", maxDelay: time.Second, attempt: 2, expected: 200 * time.Millisecond},
		{name: "max delay reached", maxDelay: 300 * time.Millisecond, attempt: 3, expected: 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("test", nil,
				WithInitialDelay(100*time.Millisecond),
				WithMaxDelay(tt.maxDelay),
				WithBackoffFactor(2.0),
			)
			assert.Equal(t, tt.expected, r.calculateDelay(tt.attempt))
		})
	}
}

func TestIsTransientError(t *testing.T) {
	assert.False(t, IsTransientError(nil))
	assert.False(t, IsTransientError(errTest))
	assert.True(t, IsTransientError(driver.ErrBadConn))
	assert.True(t, IsTransientError(&net.OpError{Op: "dial", Err: errTest}))
	assert.True(t, IsTransientError(context.DeadlineExceeded), "deadline exceeded reports Timeout()")
}
