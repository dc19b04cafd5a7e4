package settings

import (
	"encoding/json"
	"strings"
)

// Values плоский набор полей настроек в том виде, в каком они хранятся
// (JSON-объект). Помимо известных ключей допускает произвольные
// content_<id>_text.
type Values map[string]any

// String возвращает строковое значение ключа без пробелов по краям
// или "" если ключа нет либо это не строка
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return strings.TrimSpace(s)
}

// Strings возвращает непустые строки списка. Понимает []string и []any
// (последнее получается после json.Unmarshal).
func (v Values) Strings(key string) []string {
	var out []string
	switch list := v[key].(type) {
	case []string:
		for _, s := range list {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// merge возвращает копию v, поверх которой записаны все ключи over,
// включая пустые строки
func (v Values) merge(over Values) Values {
	out := make(Values, len(v)+len(over))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range over {
		out[k] = val
	}
	return out
}

const dynamicContentKey = "dynamic_content"

// Persisted единственная на систему запись глобальных настроек:
// поля верхнего уровня плюс вложенный объект dynamic_content той же формы
type Persisted struct {
	Values         Values
	DynamicContent Values
}

// Base собирает базовый объект для разрешения настроек:
// dynamic_content побеждает при совпадении ключей
func (p *Persisted) Base() Values {
	if p == nil {
		return Values{}
	}
	return Values(p.Values).merge(p.DynamicContent)
}

// MarshalJSON сериализует запись в форму строки таблицы
func (p Persisted) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Values)+1)
	for k, v := range p.Values {
		out[k] = v
	}
	dc := p.DynamicContent
	if dc == nil {
		dc = Values{}
	}
	out[dynamicContentKey] = dc
	return json.Marshal(out)
}

// UnmarshalJSON разбирает запись, отделяя dynamic_content от полей верхнего уровня
func (p *Persisted) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.DynamicContent = Values{}
	if dc, ok := raw[dynamicContentKey].(map[string]any); ok {
		p.DynamicContent = Values(dc)
	}
	delete(raw, dynamicContentKey)
	p.Values = Values(raw)
	return nil
}
