// Package config loads keybot configuration from defaults, an optional config
// file and KEYBOT_ environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Bot      BotConfig
	Suggest  SuggestConfig
	Delivery DeliveryConfig
	Metrics  MetricsConfig
	Log      LogConfig
}

// BotConfig holds identity and trigger settings.
type BotConfig struct {
	ID      string
	Trigger string
}

// SuggestConfig holds suggestion service settings.
type SuggestConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	K       int
	Timeout time.Duration
}

// DeliveryConfig holds outbound delivery settings.
type DeliveryConfig struct {
	Timeout time.Duration
}

// MetricsConfig holds the metrics/health listener settings.
type MetricsConfig struct {
	Addr string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from file and env. Env var overrides use prefix
// KEYBOT_, e.g. KEYBOT_SUGGEST_BASE_URL.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("bot.id", "")
	v.SetDefault("bot.trigger", "keyboard")
	v.SetDefault("suggest.base_url", "http://localhost:8000")
	v.SetDefault("suggest.api_key", "")
	v.SetDefault("suggest.k", 5)
	v.SetDefault("suggest.timeout", "5s")
	v.SetDefault("delivery.timeout", "10s")
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("KEYBOT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "keybot"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KEYBOT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
