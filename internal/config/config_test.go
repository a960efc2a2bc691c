package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, DefaultSourceID, cfg.Sources[0].ID)
	assert.Nil(t, cfg.Sources[0].HostURL)

	assert.Equal(t, "http", cfg.Discovery.Client)
	assert.Equal(t, 30*time.Second, cfg.Discovery.Timeout)
	assert.Equal(t, 4096, cfg.Models.ContextTokens)
	assert.Equal(t, "Local model", cfg.Models.Description)
	assert.Equal(t, "", cfg.Defaults.HostURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_WithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Empty(t, cfg.Filename)
	assert.Equal(t, DefaultConfig().Sources, cfg.Sources)
	assert.Equal(t, DefaultStoreFile, cfg.Store.File)
	assert.Equal(t, 4096, cfg.Models.ContextTokens)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
sources:
  - id: localai
    label: Workstation
    host_url: http://127.0.0.1:8080
  - id: localai-2
store:
  file: /tmp/llmsource-test/sources.yaml
  watch: false
discovery:
  client: openai
  timeout: 5s
models:
  context_tokens: 8192
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Filename)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "Workstation", cfg.Sources[0].Label)
	require.NotNil(t, cfg.Sources[0].HostURL)
	assert.Equal(t, "http://127.0.0.1:8080", *cfg.Sources[0].HostURL)
	assert.Nil(t, cfg.Sources[1].HostURL)

	assert.False(t, cfg.Store.Watch)
	assert.Equal(t, "openai", cfg.Discovery.Client)
	assert.Equal(t, 5*time.Second, cfg.Discovery.Timeout)
	assert.Equal(t, 8192, cfg.Models.ContextTokens)
	assert.Equal(t, "Local model", cfg.Models.Description, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LLMSOURCE_DISCOVERY_CLIENT", "openai")
	t.Setenv("LLMSOURCE_DISCOVERY_TIMEOUT", "2m")
	t.Setenv("LLMSOURCE_MODELS_CONTEXT_TOKENS", "2048")
	t.Setenv("LLMSOURCE_DEFAULTS_HOST_URL", "http://localhost:8080")
	t.Setenv("LLMSOURCE_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.Discovery.Client)
	assert.Equal(t, 2*time.Minute, cfg.Discovery.Timeout)
	assert.Equal(t, 2048, cfg.Models.ContextTokens)
	assert.Equal(t, "http://localhost:8080", cfg.Defaults.HostURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_ConfigFileFromEnvironment(t *testing.T) {
	path := writeConfig(t, "models:\n  context_tokens: 1024\n")
	t.Setenv("LLMSOURCE_CONFIG_FILE", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Models.ContextTokens)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown client", func(c *Config) { c.Discovery.Client = "grpc" }, true},
		{"negative timeout", func(c *Config) { c.Discovery.Timeout = -time.Second }, true},
		{"zero context", func(c *Config) { c.Models.ContextTokens = 0 }, true},
		{"empty source id", func(c *Config) { c.Sources = []SourceConfig{{}} }, true},
		{"duplicate source id", func(c *Config) {
			c.Sources = []SourceConfig{{ID: "a"}, {ID: "a"}}
		}, true},
		{"unsupported vendor", func(c *Config) { c.Sources[0].Vendor = "ollama" }, true},
		{"bad response size", func(c *Config) { c.Discovery.MaxResponseSize = "lots" }, true},
		{"empty response size", func(c *Config) { c.Discovery.MaxResponseSize = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDiscoveryConfig_MaxResponseBytes(t *testing.T) {
	size, err := DiscoveryConfig{MaxResponseSize: "10MB"}.MaxResponseBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(10*1024*1024), size)

	size, err = DiscoveryConfig{MaxResponseSize: "512k"}.MaxResponseBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(512*1024), size)

	size, err = DiscoveryConfig{}.MaxResponseBytes()
	require.NoError(t, err)
	assert.Zero(t, size)

	_, err = DiscoveryConfig{MaxResponseSize: "0"}.MaxResponseBytes()
	assert.Error(t, err)
}
