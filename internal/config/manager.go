package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"keyword-go/pkg/longtail"
)

const EnvPrefix = "KEYWORD"

type manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
	loaded bool
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads configPath if given, then applies KEYWORD_* environment
// overrides (KEYWORD_PROVIDER_API_KEY sets provider.api_key). An empty path
// means defaults plus environment only.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setupViper(configPath)

	if configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return nil, err
	}

	m.config = config
	m.loaded = true
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return fmt.Errorf("config not loaded")
	}

	if m.viper.ConfigFileUsed() != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to reload config: %w", err)
		}
	}

	config, err := m.decode()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) decode() (*Config, error) {
	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (m *manager) setupViper(configPath string) {
	if configPath != "" {
		m.viper.SetConfigFile(configPath)
	}

	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()

	setDefaults(m.viper)
}

// setDefaults registers every key so AutomaticEnv can override keys absent
// from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit_bytes", 4*1024*1024)
	v.SetDefault("server.shutdown_timeout_ms", 5000)

	v.SetDefault("provider.endpoint", "")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.timeout_ms", 15000)
	v.SetDefault("provider.max_retries", 3)
	v.SetDefault("provider.retry_delay_ms", 1000)

	v.SetDefault("extraction.min_words", longtail.DefaultMinWords)
	v.SetDefault("extraction.max_items", 0)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.time_format", "")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Server.BodyLimitBytes <= 0 {
		return fmt.Errorf("body_limit_bytes must be positive")
	}

	if config.Provider.TimeoutMs <= 0 {
		return fmt.Errorf("provider timeout_ms must be positive")
	}

	if config.Provider.MaxRetries < 0 {
		return fmt.Errorf("provider max_retries cannot be negative")
	}

	if config.Extraction.MinWords < 0 {
		return fmt.Errorf("extraction min_words cannot be negative")
	}

	if config.Extraction.MaxItems < 0 {
		return fmt.Errorf("extraction max_items cannot be negative")
	}

	return nil
}
