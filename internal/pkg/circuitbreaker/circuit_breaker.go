package circuitbreaker

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// State представляет состояние Circuit Breaker
type State int

const (
	StateClosed   State = iota // Нормальное состояние, запросы проходят
	StateOpen                  // Состояние отказа, запросы блокируются
	StateHalfOpen              // Тестовое состояние, пропускается часть запросов
)

var (
	// ErrCircuitOpen возвращается, когда Circuit Breaker находится в открытом состоянии
	ErrCircuitOpen = errors.New("circuit breaker is open")

	circuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of the circuit breaker (0: Closed, 1: Open, 2: Half-Open)",
		},
		[]string{"name"},
	)

	circuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests passed through circuit breaker",
		},
		[]string{"name", "status"},
	)
)

// Config содержит настройки для Circuit Breaker
type Config struct {
	Name             string        // Имя для идентификации в метриках
	FailureThreshold int           // Количество ошибок подряд до перехода в Open
	ResetTimeout     time.Duration // Время до перехода из Open в Half-Open
	HalfOpenMaxCalls int           // Максимальное количество запросов в Half-Open
	SuccessThreshold int           // Количество успешных запросов для возврата в Closed
}

// DefaultConfig возвращает конфигурацию по умолчанию
func DefaultConfig(name string) Config {
	return Config{
		Name:             name,
		FailureThreshold: 3,
		ResetTimeout:     30 * time.Second,
		HalfOpenMaxCalls: 1,
		SuccessThreshold: 1,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker
type CircuitBreaker struct {
	config Config
	now    func() time.Time

	mu              sync.Mutex
	state           State
	failures        int
	successes       int
	halfOpenCalls   int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker
func NewCircuitBreaker(config Config) *CircuitBreaker {
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 1
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 1
	}

	cb := &CircuitBreaker{
		config:          config,
		now:             time.Now,
		state:           StateClosed,
		lastStateChange: time.Now(),
	}
	circuitBreakerState.WithLabelValues(config.Name).Set(float64(StateClosed))
	return cb
}

// Execute выполняет функцию с учетом состояния Circuit Breaker
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allowRequest() {
		circuitBreakerRequests.WithLabelValues(cb.config.Name, "rejected").Inc()
		return ErrCircuitOpen
	}

	err := fn()
	cb.handleResult(err)

	if err != nil {
		circuitBreakerRequests.WithLabelValues(cb.config.Name, "failure").Inc()
		return err
	}
	circuitBreakerRequests.WithLabelValues(cb.config.Name, "success").Inc()
	return nil
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) < cb.config.ResetTimeout {
			return false
		}
		cb.setState(StateHalfOpen)
		cb.halfOpenCalls = 1
		return true
	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.config.HalfOpenMaxCalls {
			return false
		}
		cb.halfOpenCalls++
		return true
	default:
		return false
	}
}

func (cb *CircuitBreaker) handleResult(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.FailureThreshold {
				cb.setState(StateOpen)
			}
		case StateHalfOpen:
			cb.setState(StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.setState(StateClosed)
		}
	}
}

// setState вызывается под мьютексом
func (cb *CircuitBreaker) setState(state State) {
	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
	cb.halfOpenCalls = 0
	circuitBreakerState.WithLabelValues(cb.config.Name).Set(float64(state))
}

// State возвращает текущее состояние Circuit Breaker
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// IsHealthy возвращает true, если Circuit Breaker пропускает запросы
func (cb *CircuitBreaker) IsHealthy() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state == StateClosed || (cb.state == StateHalfOpen && cb.halfOpenCalls < cb.config.HalfOpenMaxCalls)
}

// String возвращает строковое представление состояния
func (s State) String() string {
	switch s {
	case StateClosed:
		return "Closed"
	case StateOpen:
		return "Open"
	case StateHalfOpen:
		return "HalfOpen"
	default:
		return "Unknown"
	}
}
