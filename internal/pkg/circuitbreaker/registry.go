package circuitbreaker

import "sync"

// Registry хранит отдельный Circuit Breaker на каждый ключ (например, хост
// с логотипами), создавая их лениво с общей конфигурацией
type Registry struct {
	base Config

	mu       sync.Mutex
	breakers map[string]*CircuitBreaker
}

// NewRegistry создает реестр. base.Name используется как префикс имени в метриках
func NewRegistry(base Config) *Registry {
	return &Registry{
		base:     base,
		breakers: make(map[string]*CircuitBreaker),
	}
}

// Get возвращает Circuit Breaker для ключа
func (r *Registry) Get(key string) *CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[key]; ok {
		return cb
	}
	cfg := r.base
	cfg.Name = r.base.Name + ":" + key
	cb := NewCircuitBreaker(cfg)
	r.breakers[key] = cb
	return cb
}

// States возвращает снимок состояний всех известных Circuit Breaker
func (r *Registry) States() map[string]State {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make(map[string]State, len(r.breakers))
	for key, cb := range r.breakers {
		states[key] = cb.State()
	}
	return states
}
