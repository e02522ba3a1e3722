package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Scraper  ScraperConfig
	Store    StoreConfig
	Database DatabaseConfig
}

// ServerConfig holds the dashboard API settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "debug" or "release"
}

// ScraperConfig holds the competitor-scan engine settings. The
// similarity threshold and candidate cap are fixed in the engine, not
// configured here.
type ScraperConfig struct {
	Headless      bool          `mapstructure:"headless"`
	NavTimeout    time.Duration `mapstructure:"nav_timeout"`
	ReadyTimeout  time.Duration `mapstructure:"ready_timeout"`
	JitterMin     time.Duration `mapstructure:"jitter_min"`
	JitterMax     time.Duration `mapstructure:"jitter_max"`
	JitterEnabled bool          `mapstructure:"jitter_enabled"`
	SourcesPath   string        `mapstructure:"sources_path"`
}

// StoreConfig holds the product store settings.
type StoreConfig struct {
	ProductsPath string `mapstructure:"products_path"`
}

// DatabaseConfig holds the optional Postgres snapshot mirror settings.
// An empty DSN disables the mirror entirely.
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// Load reads configuration from config.yaml (optional) and
// PRICEMASTER_* environment variables, applying defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PRICEMASTER")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; env vars and defaults apply.
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "release")

	v.SetDefault("scraper.headless", true)
	v.SetDefault("scraper.nav_timeout", "15s")
	v.SetDefault("scraper.ready_timeout", "5s")
	v.SetDefault("scraper.jitter_min", "500ms")
	v.SetDefault("scraper.jitter_max", "1500ms")
	v.SetDefault("scraper.jitter_enabled", true)
	v.SetDefault("scraper.sources_path", "sources.json")

	v.SetDefault("store.products_path", "products.json")

	v.SetDefault("database.dsn", "")
}

func validate(config *Config) error {
	if config.Scraper.NavTimeout <= 0 || config.Scraper.ReadyTimeout <= 0 {
		return fmt.Errorf("scraper timeouts must be positive")
	}

	if config.Scraper.JitterMin < 0 || config.Scraper.JitterMax < config.Scraper.JitterMin {
		return fmt.Errorf("jitter bounds must satisfy 0 <= min <= max")
	}

	if config.Scraper.SourcesPath == "" {
		return fmt.Errorf("sources path is required")
	}

	if config.Store.ProductsPath == "" {
		return fmt.Errorf("products path is required")
	}

	return nil
}
