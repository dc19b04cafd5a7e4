package retry

import (
	"database/sql/driver"
	"errors"
	"net"
	"os"
	"syscall"
)

// IsTimeout проверяет, является ли ошибка таймаутом
func IsTimeout(err error) bool {
	if os.IsTimeout(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return errors.Is(err, syscall.ETIMEDOUT)
}

// IsConnectionError проверяет, является ли ошибка проблемой соединения
func IsConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var sysErr syscall.Errno
	if errors.As(err, &sysErr) {
		switch sysErr {
		case syscall.ECONNREFUSED,
			syscall.ECONNRESET,
			syscall.ECONNABORTED,
			syscall.ENETUNREACH,
			syscall.ENETDOWN:
			return true
		}
	}

	return false
}

// IsTransientError проверяет, является ли ошибка временной
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	return IsTimeout(err) || IsConnectionError(err)
}
