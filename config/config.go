package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Retry         RetryConfig         `yaml:"retry"`
	HTTP          HTTPConfig          `yaml:"http"`
	Redis         RedisConfig         `yaml:"redis"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DatabaseConfig holds the SQLite store settings.
type DatabaseConfig struct {
	Path        string        `yaml:"path"`
	BusyTimeout time.Duration `yaml:"busy_timeout"`
	JournalMode string        `yaml:"journal_mode"`
}

// RetryConfig controls the retry-on-lock policy applied to storage operations.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Backoff     time.Duration `yaml:"backoff"`
}

// HTTPConfig holds HTTP API configuration.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	UploadDir      string   `yaml:"upload_dir"`
	MaxUploadBytes int64    `yaml:"max_upload_bytes"`
	UploadRate     float64  `yaml:"upload_rate"`
	UploadBurst    int      `yaml:"upload_burst"`
}

// RedisConfig holds the optional ranking cache settings. An empty URL disables the cache.
type RedisConfig struct {
	URL string        `yaml:"url"`
	TTL time.Duration `yaml:"ttl"`
}

// ObservabilityConfig holds configuration for logging and metrics.
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

const (
	defaultDatabasePath   = "./data/basketball_stats.db"
	defaultBusyTimeout    = 30 * time.Second
	defaultJournalMode    = "WAL"
	defaultMaxAttempts    = 5
	defaultBackoff        = 2 * time.Second
	defaultHTTPAddr       = ":8080"
	defaultUploadDir      = "./data"
	defaultMaxUploadBytes = 10 << 20
	defaultUploadRate     = 1
	defaultUploadBurst    = 5
	defaultRedisTTL       = 10 * time.Minute
	defaultLogLevel       = "info"
)

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// Try reading configuration from the file first
	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, try loading from environment variables
		return loadConfigFromEnv()
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	return &cfg, nil
}

// loadConfigFromEnv loads the configuration from environment variables.
func loadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("DATABASE_BUSY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_BUSY_TIMEOUT value: %w", err)
		}
		cfg.Database.BusyTimeout = d
	}
	if v := os.Getenv("RETRY_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid RETRY_MAX_ATTEMPTS value: %w", err)
		}
		cfg.Retry.MaxAttempts = n
	}
	if v := os.Getenv("RETRY_BACKOFF"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RETRY_BACKOFF value: %w", err)
		}
		cfg.Retry.Backoff = d
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		cfg.HTTP.UploadDir = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Observability.MetricsEnabled = v == "true"
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = defaultDatabasePath
	}
	if cfg.Database.BusyTimeout == 0 {
		cfg.Database.BusyTimeout = defaultBusyTimeout
	}
	if cfg.Database.JournalMode == "" {
		cfg.Database.JournalMode = defaultJournalMode
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry.MaxAttempts = defaultMaxAttempts
	}
	if cfg.Retry.Backoff == 0 {
		cfg.Retry.Backoff = defaultBackoff
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = defaultHTTPAddr
	}
	if cfg.HTTP.UploadDir == "" {
		cfg.HTTP.UploadDir = defaultUploadDir
	}
	if cfg.HTTP.MaxUploadBytes <= 0 {
		cfg.HTTP.MaxUploadBytes = defaultMaxUploadBytes
	}
	if cfg.HTTP.UploadRate <= 0 {
		cfg.HTTP.UploadRate = defaultUploadRate
	}
	if cfg.HTTP.UploadBurst <= 0 {
		cfg.HTTP.UploadBurst = defaultUploadBurst
	}
	if cfg.Redis.TTL == 0 {
		cfg.Redis.TTL = defaultRedisTTL
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = defaultLogLevel
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
