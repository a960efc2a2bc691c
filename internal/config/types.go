package config

import (
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Filename  string          `mapstructure:"-" yaml:"-"`
	Sources   []SourceConfig  `mapstructure:"sources" yaml:"sources"`
	Store     StoreConfig     `mapstructure:"store" yaml:"store"`
	Discovery DiscoveryConfig `mapstructure:"discovery" yaml:"discovery"`
	Models    ModelsConfig    `mapstructure:"models" yaml:"models"`
	Defaults  DefaultsConfig  `mapstructure:"defaults" yaml:"defaults"`
	Logging   LoggingConfig   `mapstructure:"logging" yaml:"logging"`
}

// SourceConfig seeds a source. A nil HostURL leaves the setup absent so the
// default host applies.
type SourceConfig struct {
	HostURL *string `mapstructure:"host_url" yaml:"host_url,omitempty"`
	ID      string  `mapstructure:"id" yaml:"id"`
	Label   string  `mapstructure:"label" yaml:"label"`
	Vendor  string  `mapstructure:"vendor" yaml:"vendor"`
}

// StoreConfig controls where source setups are persisted
type StoreConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Watch bool   `mapstructure:"watch" yaml:"watch"`
}

// DiscoveryConfig configures the list models call
type DiscoveryConfig struct {
	Client    string `mapstructure:"client" yaml:"client"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// MaxResponseSize caps a models listing, human sizes like "10MB"
	MaxResponseSize string        `mapstructure:"max_response_size" yaml:"max_response_size"`
	Timeout         time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ModelsConfig holds the values stamped onto every discovered model
type ModelsConfig struct {
	Description   string `mapstructure:"description" yaml:"description"`
	ContextTokens int    `mapstructure:"context_tokens" yaml:"context_tokens"`
}

type DefaultsConfig struct {
	HostURL string `mapstructure:"host_url" yaml:"host_url"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	Theme      string `mapstructure:"theme" yaml:"theme"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	FileOutput bool   `mapstructure:"file_output" yaml:"file_output"`
}
