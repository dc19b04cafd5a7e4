package store

import (
	"errors"

	"report-service-go/internal/pkg/retry"

	"github.com/lib/pq"
)

// IsTransient сообщает, стоит ли повторить операцию с хранилищем.
// Кроме сетевых ошибок повторяются потеря соединения с сервером
// (класс 08), остановка сервера (57P01..57P03), нехватка соединений
// и конфликты сериализации.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if retry.IsTransientError(err) {
		return true
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if pqErr.Code.Class() == "08" {
		return true
	}
	switch pqErr.Code.Name() {
	case "admin_shutdown", "crash_shutdown", "cannot_connect_now",
		"too_many_connections",
		"serialization_failure", "deadlock_detected":
		return true
	}
	return false
}
