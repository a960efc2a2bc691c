package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatency(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0ms"},
		{-time.Second, "0ms"},
		{250 * time.Microsecond, "250µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Latency(tt.in), tt.in.String())
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "500ms", Duration(500*time.Millisecond))
	assert.Equal(t, "42s", Duration(42*time.Second))
	assert.Equal(t, "2m5s", Duration(125*time.Second))
	assert.Equal(t, "1h0m1s", Duration(time.Hour+time.Second))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 model", Count(1, "model", "models"))
	assert.Equal(t, "0 models", Count(0, "model", "models"))
	assert.Equal(t, "3 models", Count(3, "model", "models"))
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, "-", OrDash(""))
	assert.Equal(t, "x", OrDash("x"))
}
