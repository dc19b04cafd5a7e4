// Package color переводит hex-цвета настроек отчета в RGB для отрисовки.
package color

import (
	"regexp"
	"strconv"
)

// RGB цвет в 8-битных каналах
type RGB struct {
	R, G, B int
}

// Fallback возвращается для любого некорректного hex-значения.
// Совпадает с фирменным цветом по умолчанию (#8EB8B5).
var Fallback = RGB{R: 142, G: 184, B: 181}

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// HexToRGB разбирает строку вида "#RRGGBB" или "RRGGBB".
// Ошибки не возвращаются: для пустых, коротких и не-hex строк отдается Fallback.
func HexToRGB(hex string) RGB {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return Fallback
	}
	return RGB{R: channel(m[1]), G: channel(m[2]), B: channel(m[3])}
}

func channel(s string) int {
	v, _ := strconv.ParseUint(s, 16, 8)
	return int(v)
}

// IsValidHex сообщает, будет ли строка разобрана без подстановки Fallback
func IsValidHex(hex string) bool {
	return hexPattern.MatchString(hex)
}
