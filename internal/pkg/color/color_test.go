package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexToRGB(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#8EB8B5", RGB{142, 184, 181}},
		{"8eb8b5", RGB{142, 184, 181}},
		{"#000000", RGB{0, 0, 0}},
		{"#FFFFFF", RGB{255, 255, 255}},
		{"#1a2B3c", RGB{26, 43, 60}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, HexToRGB(tt.in))
		})
	}
}

func TestHexToRGB_Fallback(t *testing.T) {
	for _, in := range []string{"red", "", "#12", "#1234567", "##123456", "#GG0000", " #123456"} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, Fallback, HexToRGB(in))
		})
	}
}

func TestIsValidHex(t *testing.T) {
	assert.True(t, IsValidHex("#8EB8B5"))
	assert.True(t, IsValidHex("8eb8b5"))
	assert.False(t, IsValidHex("red"))
	assert.False(t, IsValidHex(""))
}
