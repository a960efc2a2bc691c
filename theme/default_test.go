package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	for _, name := range []string{"default", "dark", "light", "neon", ""} {
		t.Run(name, func(t *testing.T) {
			th := GetTheme(name)
			assert.NotNil(t, th.Info)
			assert.NotNil(t, th.Muted)
			assert.NotNil(t, th.Source)
			assert.NotNil(t, th.Host)
			assert.NotNil(t, th.Counts)
		})
	}
}

func TestHyperlink(t *testing.T) {
	link := Hyperlink("http://localhost:8080", "localai")
	assert.Contains(t, link, "\x1b]8;;http://localhost:8080\x07localai")
}
