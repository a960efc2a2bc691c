package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorsFromEnv(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		tty  bool
		want bool
	}{
		{"tty default", nil, true, true},
		{"pipe default", nil, false, false},
		{"no color beats force", map[string]string{"NO_COLOR": "1", "FORCE_COLOR": "1"}, true, false},
		{"force color on pipe", map[string]string{"FORCE_COLOR": "1"}, false, true},
		{"force color zero", map[string]string{"FORCE_COLOR": "0"}, true, false},
		{"app override", map[string]string{"LLMSOURCE_FORCE_COLORS": "TRUE"}, false, true},
		{"app override off", map[string]string{"LLMSOURCE_FORCE_COLORS": "no"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			getenv := func(k string) string { return tt.env[k] }
			assert.Equal(t, tt.want, colorsFromEnv(getenv, tt.tty))
		})
	}
}
