package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/docker/go-units"
	"github.com/spf13/viper"

	"github.com/thushan/llmsource/internal/core/constants"
)

const (
	DefaultConfigName = "config"
	DefaultEnvPrefix  = "LLMSOURCE"
	DefaultSourceID   = constants.VendorLocalAI
	DefaultStoreFile  = "./data/sources.yaml"
	DefaultLogDir     = "./logs"

	DefaultDiscoveryClient  = "http"
	DefaultDiscoveryTimeout = 30 * time.Second
	DefaultMaxResponseSize  = "10MB"
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sources: []SourceConfig{
			{
				ID:     DefaultSourceID,
				Label:  constants.VendorDisplayLocalAI,
				Vendor: constants.VendorLocalAI,
			},
		},
		Store: StoreConfig{
			File:  DefaultStoreFile,
			Watch: true,
		},
		Discovery: DiscoveryConfig{
			Client:          DefaultDiscoveryClient,
			Timeout:         DefaultDiscoveryTimeout,
			MaxResponseSize: DefaultMaxResponseSize,
		},
		Models: ModelsConfig{
			ContextTokens: constants.DefaultContextTokens,
			Description:   constants.DefaultModelDescription,
		},
		Defaults: DefaultsConfig{
			HostURL: "",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Dir:        DefaultLogDir,
			Theme:      "default",
			FileOutput: true,
			MaxSize:    100,
			MaxBackups: 5,
			MaxAge:     30,
		},
	}
}

// Load reads configuration from the given file, LLMSOURCE_CONFIG_FILE or a
// config.yaml in . or ./config, then applies LLMSOURCE_* environment overrides.
// A missing config file is not an error.
func Load(configFile string) (*Config, error) {
	defaults := DefaultConfig()

	v := viper.New()
	setDefaults(v, defaults)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile == "" {
		configFile = os.Getenv(DefaultEnvPrefix + "_CONFIG_FILE")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	config.Filename = v.ConfigFileUsed()

	if len(config.Sources) == 0 {
		config.Sources = defaults.Sources
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.file", d.Store.File)
	v.SetDefault("store.watch", d.Store.Watch)
	v.SetDefault("discovery.client", d.Discovery.Client)
	v.SetDefault("discovery.timeout", d.Discovery.Timeout)
	v.SetDefault("discovery.user_agent", d.Discovery.UserAgent)
	v.SetDefault("discovery.max_response_size", d.Discovery.MaxResponseSize)
	v.SetDefault("models.context_tokens", d.Models.ContextTokens)
	v.SetDefault("models.description", d.Models.Description)
	v.SetDefault("defaults.host_url", d.Defaults.HostURL)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.dir", d.Logging.Dir)
	v.SetDefault("logging.theme", d.Logging.Theme)
	v.SetDefault("logging.file_output", d.Logging.FileOutput)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	switch c.Discovery.Client {
	case "http", "openai":
	default:
		return fmt.Errorf("discovery.client must be \"http\" or \"openai\", got %q", c.Discovery.Client)
	}

	if c.Discovery.Timeout < 0 {
		return fmt.Errorf("discovery.timeout must not be negative, got %v", c.Discovery.Timeout)
	}

	if _, err := c.Discovery.MaxResponseBytes(); err != nil {
		return err
	}

	if c.Models.ContextTokens <= 0 {
		return fmt.Errorf("models.context_tokens must be positive, got %d", c.Models.ContextTokens)
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for i, source := range c.Sources {
		if source.ID == "" {
			return fmt.Errorf("sources[%d]: id cannot be empty", i)
		}
		if _, dup := seen[source.ID]; dup {
			return fmt.Errorf("sources[%d]: duplicate id %q", i, source.ID)
		}
		seen[source.ID] = struct{}{}

		if source.Vendor != "" && source.Vendor != constants.VendorLocalAI {
			return fmt.Errorf("sources[%d]: unsupported vendor %q", i, source.Vendor)
		}
	}

	return nil
}

// MaxResponseBytes parses MaxResponseSize, binary units so "10MB" is 10 MiB
func (d DiscoveryConfig) MaxResponseBytes() (int64, error) {
	if d.MaxResponseSize == "" {
		return 0, nil
	}
	size, err := units.RAMInBytes(d.MaxResponseSize)
	if err != nil {
		return 0, fmt.Errorf("discovery.max_response_size: %w", err)
	}
	if size <= 0 {
		return 0, fmt.Errorf("discovery.max_response_size must be positive, got %q", d.MaxResponseSize)
	}
	return size, nil
}
