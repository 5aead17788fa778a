package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration. Missing warehouse or model
// credentials are a valid configuration: they drive the operating mode rather
// than failing startup.
type Config struct {
	Warehouse  WarehouseConfig `json:"warehouse"  envPrefix:"DWH_ANALYST_"`
	LLM        LLMConfig       `json:"llm"        envPrefix:"DWH_ANALYST_"`
	Query      QueryConfig     `json:"query"      envPrefix:"DWH_ANALYST_"`
	Logging    LoggingConfig   `json:"logging"    envPrefix:"DWH_ANALYST_"`
	Production bool            `json:"production" env:"DWH_ANALYST_PRODUCTION" envDefault:"false"`
}

// WarehouseConfig represents warehouse connection configuration. The warehouse
// speaks the Postgres wire protocol (Redshift) via the pgx driver, or a local
// DuckDB snapshot file for development.
type WarehouseConfig struct {
	Driver   string `json:"driver"   env:"WAREHOUSE_DRIVER"   envDefault:"pgx"` // pgx, duckdb
	Host     string `json:"host"     env:"WAREHOUSE_HOST"`
	Database string `json:"database" env:"WAREHOUSE_DATABASE"`
	Username string `json:"username" env:"WAREHOUSE_USERNAME"`
	Password string `json:"password" env:"WAREHOUSE_PASSWORD"`
	Port     int    `json:"port"     env:"WAREHOUSE_PORT"     envDefault:"5439"`
	Path     string `json:"path"     env:"WAREHOUSE_PATH"` // duckdb snapshot file
	Timeout  string `json:"timeout"  env:"WAREHOUSE_TIMEOUT"  envDefault:"30s"`
}

// LLMConfig represents language model client configuration
type LLMConfig struct {
	Provider    string  `json:"provider"    env:"LLM_PROVIDER"    envDefault:"openai"` // openai, anthropic, ollama
	Model       string  `json:"model"       env:"LLM_MODEL"       envDefault:"gpt-4o-mini"`
	APIKey      string  `json:"api_key"     env:"LLM_API_KEY"`
	BaseURL     string  `json:"base_url"    env:"LLM_BASE_URL"`
	Temperature float64 `json:"temperature" env:"LLM_TEMPERATURE" envDefault:"0.1"`
	MaxTokens   int     `json:"max_tokens"  env:"LLM_MAX_TOKENS"  envDefault:"500"`
	Timeout     string  `json:"timeout"     env:"LLM_TIMEOUT"     envDefault:"60s"`
}

// QueryConfig represents query pipeline limits
type QueryConfig struct {
	DefaultLimit int `json:"default_limit" env:"QUERY_DEFAULT_LIMIT" envDefault:"100"`
	MaxLimit     int `json:"max_limit"     env:"QUERY_MAX_LIMIT"     envDefault:"1000"`
	ExampleCount int `json:"example_count" env:"QUERY_EXAMPLE_COUNT" envDefault:"5"`
	CacheEntries int `json:"cache_entries" env:"QUERY_CACHE_ENTRIES" envDefault:"64"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"  env:"LOG_LEVEL"  envDefault:"info"`   // debug, info, warn, error
	Format string `json:"format" env:"LOG_FORMAT" envDefault:"text"`   // text, json
	Output string `json:"output" env:"LOG_OUTPUT" envDefault:"stderr"` // stdout, stderr, file
	File   string `json:"file"   env:"LOG_FILE"   envDefault:"~/.config/dwh-analyst/logs/app.log"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	configPath := getConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := loadConfigFromFile(config, configPath); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ModelConfigured reports whether the language model collaborator has enough
// configuration to attempt a call. Ollama needs no API key.
func (c *Config) ModelConfigured() bool {
	switch strings.ToLower(c.LLM.Provider) {
	case "ollama", "local":
		return true
	default:
		return c.LLM.APIKey != ""
	}
}

// WarehouseConfigured reports whether warehouse credentials are present.
func (c *Config) WarehouseConfigured() bool {
	if strings.ToLower(c.Warehouse.Driver) == "duckdb" {
		return c.Warehouse.Path != ""
	}

	return c.Warehouse.Host != "" && c.Warehouse.Database != "" && c.Warehouse.Username != ""
}

// WarehouseTimeout returns the parsed warehouse call timeout.
func (c *Config) WarehouseTimeout() time.Duration {
	d, err := time.ParseDuration(c.Warehouse.Timeout)
	if err != nil {
		return 30 * time.Second
	}

	return d
}

// LLMTimeout returns the parsed language model call timeout.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return 60 * time.Second
	}

	return d
}

// loadConfigFromFile loads configuration from a JSON file
func loadConfigFromFile(config *Config, configPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig Config
	if err := json.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	mergeConfigs(config, &fileConfig)

	return nil
}

// mergeConfigs merges source configuration into target configuration
func mergeConfigs(target, source *Config) {
	var mergeValues func(t, s reflect.Value)
	mergeValues = func(t, s reflect.Value) {
		if t.Kind() != s.Kind() {
			return
		}

		if t.Kind() == reflect.Struct {
			for i := range s.NumField() {
				mergeValues(t.Field(i), s.Field(i))
			}
		} else if s.Kind() == reflect.Bool {
			t.Set(s)
		} else if !s.IsZero() {
			t.Set(s)
		}
	}

	mergeValues(reflect.ValueOf(target).Elem(), reflect.ValueOf(source).Elem())
}

// validateConfig validates the configuration for common errors
func validateConfig(config *Config) error {
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf(
			"invalid log level: %s (must be debug, info, warn, or error)",
			config.Logging.Level,
		)
	}

	validLogFormats := map[string]bool{
		"text": true, "json": true,
	}
	if !validLogFormats[strings.ToLower(config.Logging.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", config.Logging.Format)
	}

	validDrivers := map[string]bool{
		"pgx": true, "duckdb": true,
	}
	if !validDrivers[strings.ToLower(config.Warehouse.Driver)] {
		return fmt.Errorf(
			"invalid warehouse driver: %s (must be pgx or duckdb)",
			config.Warehouse.Driver,
		)
	}

	if _, err := time.ParseDuration(config.Warehouse.Timeout); err != nil {
		return fmt.Errorf("invalid warehouse timeout: %s", config.Warehouse.Timeout)
	}

	if _, err := time.ParseDuration(config.LLM.Timeout); err != nil {
		return fmt.Errorf("invalid LLM timeout: %s", config.LLM.Timeout)
	}

	if config.Query.DefaultLimit <= 0 {
		return fmt.Errorf("query default limit must be positive: %d", config.Query.DefaultLimit)
	}

	if config.Query.MaxLimit < config.Query.DefaultLimit {
		return fmt.Errorf(
			"query max limit %d must be >= default limit %d",
			config.Query.MaxLimit, config.Query.DefaultLimit,
		)
	}

	return nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() string {
	if configPath := os.Getenv("DWH_ANALYST_CONFIG"); configPath != "" {
		return expandPath(configPath)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}

	return filepath.Join(homeDir, ".config", "dwh-analyst", "config.json")
}

// expandPath expands ~ to home directory in file paths
func expandPath(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return homeDir
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}

	return path
}

// ExpandAllPaths expands all paths in the configuration
func (c *Config) ExpandAllPaths() {
	c.Warehouse.Path = expandPath(c.Warehouse.Path)
	c.Logging.File = expandPath(c.Logging.File)
}
