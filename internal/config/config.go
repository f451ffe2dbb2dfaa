package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string
	LogLevel    string
	Database    DatabaseConfig
	Risk        RiskConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// RiskConfig holds the tunable policy of the risk assessment pipeline.
// The thresholds encode clinical judgment calls, so they are exposed as
// configuration instead of being buried in code.
type RiskConfig struct {
	UnderweightFallbackKg float64
	RecomputeMaxRetries   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "maternal_health"),
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	underweightFallbackKg, err := getEnvFloat("RISK_UNDERWEIGHT_FALLBACK_KG", 45)
	if err != nil {
		return nil, fmt.Errorf("invalid RISK_UNDERWEIGHT_FALLBACK_KG: %w", err)
	}

	recomputeMaxRetries, err := getEnvInt("RISK_RECOMPUTE_MAX_RETRIES", 3)
	if err != nil {
		return nil, fmt.Errorf("invalid RISK_RECOMPUTE_MAX_RETRIES: %w", err)
	}

	// Return complete configuration
	return &Config{
		Port:        getEnv("PORT", "3001"),
		Origin:      getEnv("ORIGIN", "http://localhost:4200"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Database:    dbConfig,
		Risk: RiskConfig{
			UnderweightFallbackKg: underweightFallbackKg,
			RecomputeMaxRetries:   recomputeMaxRetries,
		},
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	return strconv.ParseFloat(value, 64)
}
