package logger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thushan/llmsource/theme"
)

const ansiSample = "\x1b[31mSource:\x1b[0m localai fetched \x1b[1;33m(3)\x1b[0m"

func TestStripAnsiCodes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"colours", ansiSample, "Source: localai fetched (3)"},
		{"plain", "http://127.0.0.1:8080 [ok]", "http://127.0.0.1:8080 [ok]"},
		{"hyperlink bell", theme.Hyperlink("http://localhost:8080", "localhost"), "localhost"},
		{"hyperlink st", "\x1b]8;;http://x\x1b\\x\x1b]8;;\x1b\\", "x"},
		{"unterminated csi", "ok\x1b[31", "ok"},
		{"lone escape", "a\x1bb", "a\x1bb"},
		{"trailing escape", "a\x1b", "a\x1b"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripAnsiCodes(tt.in))
		})
	}
}

func BenchmarkStripAnsiCodes_Large(b *testing.B) {
	large := strings.Repeat(ansiSample, 1000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		stripAnsiCodes(large)
	}
}
