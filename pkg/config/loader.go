package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from the given path.
// An empty path probes the default locations; a missing file yields defaults.
func LoadConfig(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return getDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigNotFound, err)
	}

	config := &Config{}
	ext := filepath.Ext(configPath)

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: JSON parsing failed: %v", ErrInvalidFormat, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("%w: YAML parsing failed: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	mergeEnvVars(config)
	return config, nil
}

// SaveConfig writes the configuration to the given path
func SaveConfig(config *Config, configPath string) error {
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ext := filepath.Ext(configPath)
	var data []byte
	var err error

	switch ext {
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	default:
		return fmt.Errorf("%w: unsupported config file format: %s", ErrInvalidFormat, ext)
	}

	if err != nil {
		return fmt.Errorf("config serialization failed: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// getDefaultConfigPath probes the usual config locations in priority order
func getDefaultConfigPath() string {
	paths := []string{
		"./config.yaml",
		"./config.json",
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(homeDir, ".tiendascan", "config.yaml"),
			filepath.Join(homeDir, ".tiendascan", "config.json"),
		)
	}

	paths = append(paths,
		"/etc/tiendascan/config.yaml",
		"/etc/tiendascan/config.json",
	)

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return "./config.yaml"
}

// mergeEnvVars overlays environment variables on top of the file values
func mergeEnvVars(config *Config) {
	mergeDatabaseEnvVars(config)
	mergeServerEnvVars(config)
	mergeIndicatorEnvVars(config)
	mergeSearchEnvVars(config)
	mergeAlertsEnvVars(config)
	mergeSchedulerEnvVars(config)
	mergeCheckoutEnvVars(config)
	mergeAppEnvVars(config)
}

func mergeDatabaseEnvVars(config *Config) {
	if config.Database == nil {
		config.Database = NewDatabaseConfig()
		return
	}

	db := config.Database
	if host := os.Getenv("DATABASE_HOST"); host != "" {
		db.Host = host
	}
	if port := getEnvInt("DATABASE_PORT", 0); port != 0 {
		db.Port = port
	}
	if name := os.Getenv("DATABASE_NAME"); name != "" {
		db.Database = name
	}
	if user := os.Getenv("DATABASE_USER"); user != "" {
		db.Username = user
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		db.Password = password
	}
	if sslMode := os.Getenv("DATABASE_SSLMODE"); sslMode != "" {
		db.SSLMode = sslMode
	}
}

func mergeServerEnvVars(config *Config) {
	if config.Server == nil {
		config.Server = NewServerConfig()
		return
	}

	if port := getEnvInt("SERVER_PORT", 0); port != 0 {
		config.Server.Port = port
	}
	if address := os.Getenv("SERVER_ADDRESS"); address != "" {
		config.Server.Address = address
	}
	if token := os.Getenv("API_TOKEN"); token != "" {
		config.Server.APIToken = token
	}
}

func mergeIndicatorEnvVars(config *Config) {
	if config.Indicator == nil {
		config.Indicator = NewIndicatorConfig()
		return
	}

	if baseURL := os.Getenv("INDICATOR_URL"); baseURL != "" {
		config.Indicator.BaseURL = baseURL
	}
	if timeout := getEnvInt("INDICATOR_TIMEOUT", 0); timeout != 0 {
		config.Indicator.Timeout = timeout
	}
}

func mergeSearchEnvVars(config *Config) {
	if config.Search == nil {
		config.Search = NewSearchConfig()
		return
	}

	if baseURL := os.Getenv("SEARCH_BASE_URL"); baseURL != "" {
		config.Search.BaseURL = baseURL
	}
	if timeout := getEnvInt("SEARCH_TIMEOUT", 0); timeout != 0 {
		config.Search.Timeout = timeout
	}
}

func mergeAlertsEnvVars(config *Config) {
	if config.Alerts == nil {
		config.Alerts = NewAlertsConfig()
		return
	}

	if interval := getEnvInt("ALERTS_PING_INTERVAL", 0); interval != 0 {
		config.Alerts.PingInterval = interval
	}
	if size := getEnvInt("ALERTS_HISTORY_SIZE", 0); size != 0 {
		config.Alerts.HistorySize = size
	}
}

func mergeSchedulerEnvVars(config *Config) {
	if config.Scheduler == nil {
		config.Scheduler = NewSchedulerConfig()
		return
	}

	if enabled := os.Getenv("SCHEDULER_ENABLED"); enabled != "" {
		config.Scheduler.Enabled = enabled == "true" || enabled == "1"
	}
	if spec := os.Getenv("SCHEDULER_CRON"); spec != "" {
		config.Scheduler.Cron = spec
	}
	if threshold := getEnvInt("SCHEDULER_LOW_STOCK_THRESHOLD", 0); threshold != 0 {
		config.Scheduler.LowStockThreshold = threshold
	}
}

func mergeCheckoutEnvVars(config *Config) {
	if config.Checkout == nil {
		config.Checkout = NewCheckoutConfig()
		return
	}

	if paymentURL := os.Getenv("CHECKOUT_URL"); paymentURL != "" {
		config.Checkout.PaymentURL = paymentURL
	}
}

func mergeAppEnvVars(config *Config) {
	if config.App == nil {
		config.App = NewAppConfig()
		return
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.App.LogLevel = logLevel
	}
	if logFile := os.Getenv("LOG_FILE"); logFile != "" {
		config.App.LogFile = logFile
	}
}
