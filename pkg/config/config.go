package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read in this package and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis
	Redis RedisConfig

	// Shopify source system
	Shopify ShopifyConfig

	// Analytics tuning
	Analytics AnalyticsConfig

	// Export
	ExportDir string

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// ShopifyConfig holds the source shop's Admin API configuration
type ShopifyConfig struct {
	ShopURL     string // GraphQL Admin API endpoint
	AccessToken string
	StartDate   string // ISO timestamp, orders created at or after
	PageSize    int    // orders per page, API maximum is 250
}

// AnalyticsConfig holds the business constants of the profile derivation.
// Defaults mirror the reporting rules agreed with the CRM team.
type AnalyticsConfig struct {
	FlaggedCategoryKeywords []string // product groups that set the journey flag
	OutlierQuantile         float64  // payment amounts above this quantile are dropped
	RecencyNewCustomerDays  int      // "New Customers" recency cutoff
	ChurnRecencyDays        int      // churn flag threshold
	LifespanActiveYears     float64  // expected lifespan while active
	LifespanChurnedYears    float64  // expected lifespan once churned
	SequenceSeparator       string   // joins the product category sequence
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	// Try multiple paths for .env file
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "insight"),
			User:            getEnv("DB_USER", "insight"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Redis
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", true),
		},

		// Shopify
		Shopify: ShopifyConfig{
			ShopURL:     getEnv("SHOPIFY_SHOP_URL", ""),
			AccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
			StartDate:   getEnv("SHOPIFY_START_DATE", "2025-01-01T00:00:00Z"),
			PageSize:    getEnvAsInt("SHOPIFY_PAGE_SIZE", 250),
		},

		// Analytics
		Analytics: AnalyticsConfig{
			FlaggedCategoryKeywords: getEnvAsList("FLAGGED_CATEGORY_KEYWORDS", "Akademie1990,AKADEMIE,Akademie 3750"),
			OutlierQuantile:         getEnvAsFloat("OUTLIER_QUANTILE", 0.99),
			RecencyNewCustomerDays:  getEnvAsInt("RECENCY_NEW_CUSTOMER_DAYS", 71),
			ChurnRecencyDays:        getEnvAsInt("CHURN_RECENCY_DAYS", 90),
			LifespanActiveYears:     getEnvAsFloat("LIFESPAN_ACTIVE_YEARS", 1.5),
			LifespanChurnedYears:    getEnvAsFloat("LIFESPAN_CHURNED_YEARS", 0.5),
			SequenceSeparator:       getEnv("SEQUENCE_SEPARATOR", " › "),
		},

		// Export
		ExportDir: getEnv("EXPORT_DIR", "exports"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	// Database URL is required
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	// Validate environment
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Analytics.OutlierQuantile <= 0 || c.Analytics.OutlierQuantile > 1 {
		return fmt.Errorf("OUTLIER_QUANTILE must be in (0, 1], got %v", c.Analytics.OutlierQuantile)
	}

	if c.Analytics.ChurnRecencyDays <= 0 {
		return fmt.Errorf("CHURN_RECENCY_DAYS must be positive, got %d", c.Analytics.ChurnRecencyDays)
	}

	if c.Shopify.PageSize <= 0 || c.Shopify.PageSize > 250 {
		return fmt.Errorf("SHOPIFY_PAGE_SIZE must be in [1, 250], got %d", c.Shopify.PageSize)
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	// Try paths in order of priority
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
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
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
