package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	SSLMode  string `json:"ssl_mode" yaml:"ssl_mode"`
}

func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnv("DATABASE_HOST", "localhost"),
		Port:     getEnvInt("DATABASE_PORT", 5432),
		Database: getEnv("DATABASE_NAME", "tiendascan"),
		Username: getEnv("DATABASE_USER", "postgres"),
		Password: getEnv("DATABASE_PASSWORD", ""),
		SSLMode:  getEnv("DATABASE_SSLMODE", "disable"),
	}
}

// DSN builds a PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	password := url.QueryEscape(c.Password)
	username := url.QueryEscape(c.Username)

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		username, password, c.Host, c.Port, c.Database, c.SSLMode)
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Address  string `json:"address" yaml:"address"`
	Port     int    `json:"port" yaml:"port"`
	APIToken string `json:"api_token" yaml:"api_token"`
}

func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:  getEnv("SERVER_ADDRESS", "0.0.0.0"),
		Port:     getEnvInt("SERVER_PORT", 5000),
		APIToken: getEnv("API_TOKEN", ""),
	}
}

// IndicatorConfig holds the CLP/USD rate provider settings
type IndicatorConfig struct {
	BaseURL   string  `json:"base_url" yaml:"base_url"`
	Timeout   int     `json:"timeout" yaml:"timeout"`      // seconds
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit"` // requests per second
	RateBurst int     `json:"rate_burst" yaml:"rate_burst"`
}

func NewIndicatorConfig() *IndicatorConfig {
	return &IndicatorConfig{
		BaseURL:   getEnv("INDICATOR_URL", "https://mindicador.cl/api/dolar"),
		Timeout:   getEnvInt("INDICATOR_TIMEOUT", 10),
		RateLimit: 2,
		RateBurst: 1,
	}
}

// SearchConfig holds the product search backend settings
type SearchConfig struct {
	BaseURL string `json:"base_url" yaml:"base_url"`
	Timeout int    `json:"timeout" yaml:"timeout"` // seconds
}

func NewSearchConfig() *SearchConfig {
	return &SearchConfig{
		BaseURL: getEnv("SEARCH_BASE_URL", "http://localhost:5000"),
		Timeout: getEnvInt("SEARCH_TIMEOUT", 10),
	}
}

// AlertsConfig holds SSE hub and alert retention settings
type AlertsConfig struct {
	PingInterval int `json:"ping_interval" yaml:"ping_interval"` // seconds
	HistorySize  int `json:"history_size" yaml:"history_size"`
}

func NewAlertsConfig() *AlertsConfig {
	return &AlertsConfig{
		PingInterval: getEnvInt("ALERTS_PING_INTERVAL", 5),
		HistorySize:  getEnvInt("ALERTS_HISTORY_SIZE", 100),
	}
}

// SchedulerConfig holds low-stock sweep settings
type SchedulerConfig struct {
	Enabled           bool   `json:"enabled" yaml:"enabled"`
	Cron              string `json:"cron" yaml:"cron"`
	LowStockThreshold int    `json:"low_stock_threshold" yaml:"low_stock_threshold"`
}

func NewSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		Enabled:           getEnvBool("SCHEDULER_ENABLED", false),
		Cron:              getEnv("SCHEDULER_CRON", "*/10 * * * *"),
		LowStockThreshold: getEnvInt("SCHEDULER_LOW_STOCK_THRESHOLD", 1),
	}
}

// CheckoutConfig holds the payment page handoff settings
type CheckoutConfig struct {
	PaymentURL string `json:"payment_url" yaml:"payment_url"`
}

func NewCheckoutConfig() *CheckoutConfig {
	return &CheckoutConfig{
		PaymentURL: getEnv("CHECKOUT_URL", "/pago"),
	}
}

// AppConfig holds application-level settings
type AppConfig struct {
	LogLevel    string `json:"log_level" yaml:"log_level"`
	LogFile     string `json:"log_file" yaml:"log_file"`
	Development bool   `json:"development" yaml:"development"`
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", ""),
		Development: getEnvBool("APP_DEVELOPMENT", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}
