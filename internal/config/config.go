package config

import (
	"time"

	"keyword-go/pkg/logger"
	"keyword-go/pkg/longtail"
	"keyword-go/pkg/provider"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Provider   ProviderConfig   `mapstructure:"provider"`
	Extraction ExtractionConfig `mapstructure:"extraction"`
	Logger     logger.Config    `mapstructure:"logger"`
}

type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	BodyLimitBytes  int    `mapstructure:"body_limit_bytes"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_ms"`
}

type ProviderConfig struct {
	Endpoint     string `mapstructure:"endpoint"`
	APIKey       string `mapstructure:"api_key"`
	TimeoutMs    int    `mapstructure:"timeout_ms"`
	MaxRetries   int    `mapstructure:"max_retries"`
	RetryDelayMs int    `mapstructure:"retry_delay_ms"`
}

type ExtractionConfig struct {
	MinWords int `mapstructure:"min_words"`
	MaxItems int `mapstructure:"max_items"`
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}

// Enabled reports whether a provider endpoint is configured.
func (p ProviderConfig) Enabled() bool {
	return p.Endpoint != ""
}

// ClientConfig converts to the provider client's configuration.
func (p ProviderConfig) ClientConfig() provider.Config {
	return provider.Config{
		Endpoint:   p.Endpoint,
		APIKey:     p.APIKey,
		Timeout:    time.Duration(p.TimeoutMs) * time.Millisecond,
		MaxRetries: p.MaxRetries,
		RetryDelay: time.Duration(p.RetryDelayMs) * time.Millisecond,
	}
}

// Options converts to extraction options.
func (e ExtractionConfig) Options() longtail.Options {
	return longtail.Options{MinWords: e.MinWords, MaxItems: e.MaxItems}
}

func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Millisecond
}
