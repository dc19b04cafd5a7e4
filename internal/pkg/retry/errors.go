package retry

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig возникает при некорректной конфигурации
var ErrInvalidConfig = errors.New("invalid retry configuration")

// RetryError содержит информацию о последней неудачной попытке
type RetryError struct {
	// Attempt номер попытки, на которой операция окончательно завершилась ошибкой
	Attempt int
	// OriginalError исходная ошибка
	OriginalError error
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry attempt %d failed: %v", e.Attempt, e.OriginalError)
}

// Unwrap возвращает оригинальную ошибку
func (e *RetryError) Unwrap() error {
	return e.OriginalError
}
