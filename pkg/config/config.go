package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External providers
	Yahoo   YahooConfig
	NewsAPI NewsAPIConfig
	EDGAR   EDGARConfig

	// Collection
	Collection CollectionConfig

	// Validation thresholds
	Validation ValidationConfig

	// Logging
	LogLevel  string
	LogFormat string

	// Monitoring
	MetricsEnabled bool
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration. Redis is optional; with it
// disabled, provider response caching and shared rate limiting degrade to
// no-ops.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// YahooConfig holds Yahoo Finance configuration.
type YahooConfig struct {
	BaseURL           string
	RequestsPerSecond float64
}

// NewsAPIConfig holds News API configuration. The provider is skipped
// cleanly when no key is configured.
type NewsAPIConfig struct {
	APIKey            string
	BaseURL           string
	RequestsPerSecond float64
}

// EDGARConfig holds SEC EDGAR configuration. EDGAR requires a contact
// User-Agent and publishes a 10 req/s fair-use limit.
type EDGARConfig struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
}

// CollectionConfig holds the scheduling surface: how often each data type
// refreshes, how often the manager polls for due tasks, and where the
// task list snapshot lives.
type CollectionConfig struct {
	MarketDataInterval time.Duration
	FinancialsInterval time.Duration
	NewsInterval       time.Duration
	FilingsInterval    time.Duration

	PollInterval time.Duration
	DataDir      string
}

// ValidationConfig holds data validation thresholds.
type ValidationConfig struct {
	MaxPriceChangePercent float64
	MinDataCompleteness   float64
	MaxPERatio            float64
	MaxOutlierStd         float64
}

// Load reads configuration from environment variables. A .env file is
// honoured when present.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8085"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		// External providers
		Yahoo: YahooConfig{
			BaseURL:           getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			RequestsPerSecond: getEnvAsFloat("YAHOO_RPS", 2),
		},
		NewsAPI: NewsAPIConfig{
			APIKey:            getEnv("NEWS_API_KEY", ""),
			BaseURL:           getEnv("NEWS_API_BASE_URL", "https://newsapi.org/v2"),
			RequestsPerSecond: getEnvAsFloat("NEWS_API_RPS", 1),
		},
		EDGAR: EDGARConfig{
			BaseURL:           getEnv("EDGAR_BASE_URL", "https://data.sec.gov"),
			UserAgent:         getEnv("EDGAR_USER_AGENT", "TumkweInvest contact@tumkwe.example"),
			RequestsPerSecond: getEnvAsFloat("EDGAR_RPS", 10),
		},

		// Collection
		Collection: CollectionConfig{
			MarketDataInterval: getEnvAsDuration("REFRESH_MARKET_DATA", "4h"),
			FinancialsInterval: getEnvAsDuration("REFRESH_FINANCIAL_STATEMENTS", "168h"),
			NewsInterval:       getEnvAsDuration("REFRESH_NEWS", "6h"),
			FilingsInterval:    getEnvAsDuration("REFRESH_SEC_FILINGS", "24h"),
			PollInterval:       getEnvAsDuration("COLLECTION_POLL_INTERVAL", "1m"),
			DataDir:            getEnv("DATA_DIR", "data"),
		},

		// Validation thresholds
		Validation: ValidationConfig{
			MaxPriceChangePercent: getEnvAsFloat("VALIDATION_MAX_PRICE_CHANGE_PCT", 25),
			MinDataCompleteness:   getEnvAsFloat("VALIDATION_MIN_COMPLETENESS", 0.95),
			MaxPERatio:            getEnvAsFloat("VALIDATION_MAX_PE_RATIO", 500),
			MaxOutlierStd:         getEnvAsFloat("VALIDATION_MAX_OUTLIER_STD", 3),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// Monitoring
		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Collection.PollInterval <= 0 {
		return fmt.Errorf("COLLECTION_POLL_INTERVAL must be positive")
	}

	if c.Validation.MinDataCompleteness < 0 || c.Validation.MinDataCompleteness > 1 {
		return fmt.Errorf("VALIDATION_MIN_COMPLETENESS must be within [0, 1]")
	}

	return nil
}

// RefreshInterval returns the configured refresh period for a data type
// name as used in task definitions.
func (c *CollectionConfig) RefreshInterval(dataType string) time.Duration {
	switch dataType {
	case "market_data":
		return c.MarketDataInterval
	case "financial_statements":
		return c.FinancialsInterval
	case "news":
		return c.NewsInterval
	case "sec_filings":
		return c.FilingsInterval
	default:
		return 24 * time.Hour
	}
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
