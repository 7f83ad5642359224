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
// Every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// External services
	Market MarketConfig
	Social SocialConfig

	// Pipeline
	Pipeline PipelineConfig

	// Logging
	LogLevel  string
	LogFormat string
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

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// MarketConfig holds market-data provider configuration.
type MarketConfig struct {
	Provider            string // "eodhd" or "mock"
	BaseURL             string
	APIToken            string
	BenchmarkSymbol     string
	EntryLookaheadDays  int
	MaxRequestsPerMin   int
	CompanyPageBaseURL  string
	QuoteCacheTTL       time.Duration
}

// SocialConfig holds the social-media post source configuration.
type SocialConfig struct {
	APIKey  string
	BaseURL string
}

// PipelineConfig holds analysis pipeline knobs.
type PipelineConfig struct {
	SpamTickerThreshold int
	FanOutWidth         int
	RunTimeout          time.Duration
	ScorecardCacheTTL   time.Duration
	RefreshCronSpec     string
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		Market: MarketConfig{
			Provider:           getEnv("MARKET_PROVIDER", "eodhd"),
			BaseURL:            getEnv("MARKET_BASE_URL", "https://eodhd.com/api"),
			APIToken:           getEnv("MARKET_API_TOKEN", ""),
			BenchmarkSymbol:    getEnv("BENCHMARK_SYMBOL", "SPY"),
			EntryLookaheadDays: getEnvAsInt("ENTRY_LOOKAHEAD_DAYS", 10),
			MaxRequestsPerMin:  getEnvAsInt("MARKET_MAX_REQUESTS_PER_MIN", 60),
			CompanyPageBaseURL: getEnv("COMPANY_PAGE_BASE_URL", "https://stockanalysis.com/stocks"),
			QuoteCacheTTL:      getEnvAsDuration("QUOTE_CACHE_TTL", "5m"),
		},

		Social: SocialConfig{
			APIKey:  getEnv("SOCIAL_API_KEY", ""),
			BaseURL: getEnv("SOCIAL_BASE_URL", "https://api.twitterapi.io"),
		},

		Pipeline: PipelineConfig{
			SpamTickerThreshold: getEnvAsInt("SPAM_TICKER_THRESHOLD", 10),
			FanOutWidth:         getEnvAsInt("PIPELINE_FANOUT_WIDTH", 4),
			RunTimeout:          getEnvAsDuration("PIPELINE_RUN_TIMEOUT", "2m"),
			ScorecardCacheTTL:   getEnvAsDuration("SCORECARD_CACHE_TTL", "24h"),
			RefreshCronSpec:     getEnv("REFRESH_CRON_SPEC", "0 0 6 * * *"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
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

	if c.Market.Provider != "eodhd" && c.Market.Provider != "mock" {
		return fmt.Errorf("MARKET_PROVIDER must be one of: eodhd, mock")
	}

	if c.Market.Provider == "eodhd" && c.Market.APIToken == "" {
		return fmt.Errorf("MARKET_API_TOKEN is required when MARKET_PROVIDER=eodhd")
	}

	if c.Pipeline.SpamTickerThreshold < 1 {
		return fmt.Errorf("SPAM_TICKER_THRESHOLD must be positive")
	}

	return nil
}

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

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fallback, _ := time.ParseDuration(defaultValue)
		return fallback
	}
	return value
}
