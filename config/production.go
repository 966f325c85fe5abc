// Package config provides configuration management and environment variable handling for the application
package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ProductionConfig holds all configuration for the pricing service
type ProductionConfig struct {
	Database  DatabaseConfig  `json:"database"`
	Server    ServerConfig    `json:"server"`
	Security  SecurityConfig  `json:"security"`
	Logging   LoggingConfig   `json:"logging"`
	Metrics   MetricsConfig   `json:"metrics"`
	Cache     CacheConfig     `json:"cache"`
	Weather   WeatherConfig   `json:"weather"`
	Events    EventsConfig    `json:"events"`
	Geocoding GeocodingConfig `json:"geocoding"`
	Scheduler SchedulerConfig `json:"scheduler"`
}

type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Name            string        `json:"name"`
	User            string        `json:"user"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"ssl_mode"`
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time"`
	SlowQueryLog    bool          `json:"slow_query_log"`
	SlowQueryTime   time.Duration `json:"slow_query_time"`
}

type ServerConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	BodyLimit       int           `json:"body_limit"`
}

type SecurityConfig struct {
	// CORS
	AllowedOrigins   []string `json:"allowed_origins"`
	AllowedMethods   []string `json:"allowed_methods"`
	AllowedHeaders   []string `json:"allowed_headers"`
	AllowCredentials bool     `json:"allow_credentials"`
	CORSMaxAge       int      `json:"cors_max_age"`

	// Rate limiting
	GlobalRateLimit int           `json:"global_rate_limit"` // requests per window
	WriteRateLimit  int           `json:"write_rate_limit"`  // requests per window on collector endpoints
	RateLimitWindow time.Duration `json:"rate_limit_window"`

	// Collector API keys guard the market data write endpoints
	RequireCollectorKey  bool     `json:"require_collector_key"`
	CollectorKeyHeader   string   `json:"collector_key_header"`
	AllowedCollectorKeys []string `json:"allowed_collector_keys"`
}

type LoggingConfig struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Output     string `json:"output"` // stdout, file, both
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // MB
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type CacheConfig struct {
	Enabled       bool          `json:"enabled"`
	RedisURL      string        `json:"redis_url"`
	RedisDB       int           `json:"redis_db"`
	RedisPassword string        `json:"redis_password"`
	DefaultTTL    time.Duration `json:"default_ttl"`
}

// WeatherConfig configures the forecast provider
type WeatherConfig struct {
	Enabled bool          `json:"enabled"`
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"api_key"`
	Timeout time.Duration `json:"timeout"`
}

// EventsConfig configures the local events provider
type EventsConfig struct {
	Enabled bool          `json:"enabled"`
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"api_key"`
	Timeout time.Duration `json:"timeout"`
}

// GeocodingConfig configures the neighborhood score provider
type GeocodingConfig struct {
	Enabled bool          `json:"enabled"`
	BaseURL string        `json:"base_url"`
	APIKey  string        `json:"api_key"`
	Timeout time.Duration `json:"timeout"`
}

// SchedulerConfig configures the background price refresh job
type SchedulerConfig struct {
	Enabled   bool          `json:"enabled"`
	Interval  time.Duration `json:"interval"`
	BatchSize int           `json:"batch_size"`
}

// LoadProductionConfig loads configuration from the environment, with an
// optional .env file for local development.
func LoadProductionConfig() (*ProductionConfig, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &ProductionConfig{
		Database: DatabaseConfig{
			Host:            getEnvString("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			Name:            getEnvString("DB_NAME", "hostthub_pricing"),
			User:            getEnvString("DB_USER", "postgres"),
			Password:        getEnvString("DB_PASSWORD", ""),
			SSLMode:         getEnvString("DB_SSL_MODE", "require"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 15*time.Minute),
			SlowQueryLog:    getEnvBool("DB_SLOW_QUERY_LOG", true),
			SlowQueryTime:   getEnvDuration("DB_SLOW_QUERY_TIME", 1*time.Second),
		},
		Server: ServerConfig{
			Host:            getEnvString("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			BodyLimit:       getEnvInt("SERVER_BODY_LIMIT", 4*1024*1024),
		},
		Security: SecurityConfig{
			AllowedOrigins:       getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"https://hostthub.com", "https://app.hostthub.com", "https://api.hostthub.com"}),
			AllowedMethods:       getEnvStringSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders:       getEnvStringSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID", "X-API-Key"}),
			AllowCredentials:     getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			CORSMaxAge:           getEnvInt("CORS_MAX_AGE", 86400),
			GlobalRateLimit:      getEnvInt("GLOBAL_RATE_LIMIT", 2000),
			WriteRateLimit:       getEnvInt("WRITE_RATE_LIMIT", 200),
			RateLimitWindow:      getEnvDuration("RATE_LIMIT_WINDOW", 1*time.Minute),
			RequireCollectorKey:  getEnvBool("REQUIRE_COLLECTOR_KEY", false),
			CollectorKeyHeader:   getEnvString("COLLECTOR_KEY_HEADER", "X-API-Key"),
			AllowedCollectorKeys: getEnvStringSlice("ALLOWED_COLLECTOR_KEYS", []string{}),
		},
		Logging: LoggingConfig{
			Level:      getEnvString("LOG_LEVEL", "info"),
			Output:     getEnvString("LOG_OUTPUT", "stdout"),
			FilePath:   getEnvString("LOG_FILE_PATH", "/var/log/hostthub-pricing/app.log"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 100),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 7),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", true),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnvString("METRICS_PATH", "/metrics"),
		},
		Cache: CacheConfig{
			Enabled:       getEnvBool("CACHE_ENABLED", true),
			RedisURL:      getEnvString("REDIS_URL", "localhost:6379"),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			RedisPassword: getEnvString("REDIS_PASSWORD", ""),
			DefaultTTL:    getEnvDuration("CACHE_DEFAULT_TTL", 15*time.Minute),
		},
		Weather: WeatherConfig{
			Enabled: getEnvBool("WEATHER_ENABLED", false),
			BaseURL: getEnvString("WEATHER_BASE_URL", ""),
			APIKey:  getEnvString("WEATHER_API_KEY", ""),
			Timeout: getEnvDuration("WEATHER_TIMEOUT", 5*time.Second),
		},
		Events: EventsConfig{
			Enabled: getEnvBool("EVENTS_ENABLED", false),
			BaseURL: getEnvString("EVENTS_BASE_URL", ""),
			APIKey:  getEnvString("EVENTS_API_KEY", ""),
			Timeout: getEnvDuration("EVENTS_TIMEOUT", 5*time.Second),
		},
		Geocoding: GeocodingConfig{
			Enabled: getEnvBool("GEOCODING_ENABLED", false),
			BaseURL: getEnvString("GEOCODING_BASE_URL", ""),
			APIKey:  getEnvString("GEOCODING_API_KEY", ""),
			Timeout: getEnvDuration("GEOCODING_TIMEOUT", 5*time.Second),
		},
		Scheduler: SchedulerConfig{
			Enabled:   getEnvBool("SCHEDULER_ENABLED", true),
			Interval:  getEnvDuration("SCHEDULER_INTERVAL", 6*time.Hour),
			BatchSize: getEnvInt("SCHEDULER_BATCH_SIZE", 20),
		},
	}

	if err := ValidateProductionConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ValidateProductionConfig validates the loaded configuration
func ValidateProductionConfig(cfg *ProductionConfig) error {
	var errors []string

	if cfg.Database.Host == "" {
		errors = append(errors, "database host is required")
	}
	if cfg.Database.Name == "" {
		errors = append(errors, "database name is required")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		errors = append(errors, "server port must be between 1 and 65535")
	}
	if cfg.Security.RequireCollectorKey && len(cfg.Security.AllowedCollectorKeys) == 0 {
		errors = append(errors, "collector API keys are required when REQUIRE_COLLECTOR_KEY is set")
	}
	if cfg.Weather.Enabled && cfg.Weather.BaseURL == "" {
		errors = append(errors, "weather base URL is required when the weather provider is enabled")
	}
	if cfg.Events.Enabled && cfg.Events.BaseURL == "" {
		errors = append(errors, "events base URL is required when the events provider is enabled")
	}
	if cfg.Geocoding.Enabled && cfg.Geocoding.BaseURL == "" {
		errors = append(errors, "geocoding base URL is required when the geocoding provider is enabled")
	}
	if cfg.Scheduler.Enabled && cfg.Scheduler.Interval < time.Minute {
		errors = append(errors, "scheduler interval must be at least one minute")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

func loadEnvFile() error {
	envFile := ".env"

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}

	file, err := os.Open(envFile)
	if err != nil {
		return fmt.Errorf("failed to open .env file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			if len(parts) == 2 {
				key := strings.TrimSpace(parts[0])
				value := strings.TrimSpace(parts[1])
				if (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
					(strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`)) {
					value = value[1 : len(value)-1]
				}
				if os.Getenv(key) == "" {
					os.Setenv(key, value)
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvStringSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var result []string
		for _, item := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
