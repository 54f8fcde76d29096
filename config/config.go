package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Extraction ExtractionConfig
	Cache      CacheConfig
	Planner    PlannerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog snapshot configuration
type CatalogConfig struct {
	Paths []string `mapstructure:"paths"`
}

// ExtractionConfig holds extraction API configuration
type ExtractionConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// PlannerConfig holds planning engine configuration
type PlannerConfig struct {
	MaxCandidates      int  `mapstructure:"max_candidates"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/mealcart/")

	// Environment variable settings
	v.SetEnvPrefix("MEALCART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.paths", []string{"./catalogs"})

	// Extraction defaults
	v.SetDefault("extraction.base_url", "https://extract.mealcart.dev")

	// Cache defaults
	v.SetDefault("cache.ttl", "1h")

	// Planner defaults
	v.SetDefault("planner.max_candidates", 25)
	v.SetDefault("planner.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if len(config.Catalog.Paths) == 0 {
		return fmt.Errorf("at least one catalog path is required (set MEALCART_CATALOG_PATHS)")
	}

	if config.Extraction.BaseURL == "" {
		return fmt.Errorf("extraction base URL is required (set MEALCART_EXTRACTION_BASE_URL)")
	}

	if config.Planner.MaxCandidates <= 0 {
		return fmt.Errorf("planner max candidates must be positive, got: %d", config.Planner.MaxCandidates)
	}

	return nil
}
