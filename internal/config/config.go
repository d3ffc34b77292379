package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port              string
	DBConn            string
	LogLevel          string
	JWTSecret         string
	CostIndexURL      string
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
	AlertEmail        string
	AlertSchedule     string
	BaselineMinMonths int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=obratrack password=obratrack dbname=obratrack sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		CostIndexURL:  getEnv("COST_INDEX_URL", "https://servicios.ine.es/wstempus/series/ICCO"),
		SMTPHost:      getEnv("SMTP_HOST", "localhost"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "no-reply@obratrack.local"),
		AlertEmail:    getEnv("ALERT_EMAIL", ""),
		AlertSchedule: getEnv("ALERT_SCHEDULE", "0 8 * * *"),
	}

	// Floor applied to the programmed-baseline month count; configurable
	// because the value is a business heuristic, not a derived constant.
	minMonths, err := strconv.Atoi(getEnv("BASELINE_MIN_MONTHS", "6"))
	if err != nil || minMonths < 1 {
		return nil, fmt.Errorf("BASELINE_MIN_MONTHS must be a positive integer")
	}
	cfg.BaselineMinMonths = minMonths

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
