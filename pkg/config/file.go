package config

// Config is the root configuration structure
type Config struct {
	Database  *DatabaseConfig  `json:"database" yaml:"database"`
	Server    *ServerConfig    `json:"server" yaml:"server"`
	Indicator *IndicatorConfig `json:"indicator" yaml:"indicator"`
	Search    *SearchConfig    `json:"search" yaml:"search"`
	Alerts    *AlertsConfig    `json:"alerts" yaml:"alerts"`
	Scheduler *SchedulerConfig `json:"scheduler" yaml:"scheduler"`
	Checkout  *CheckoutConfig  `json:"checkout" yaml:"checkout"`
	App       *AppConfig       `json:"app" yaml:"app"`
}

// getDefaultConfig builds a configuration where every section uses its defaults
func getDefaultConfig() *Config {
	return &Config{
		Database:  NewDatabaseConfig(),
		Server:    NewServerConfig(),
		Indicator: NewIndicatorConfig(),
		Search:    NewSearchConfig(),
		Alerts:    NewAlertsConfig(),
		Scheduler: NewSchedulerConfig(),
		Checkout:  NewCheckoutConfig(),
		App:       NewAppConfig(),
	}
}

// GetIndicatorConfig returns the indicator section, falling back to defaults
func (c *Config) GetIndicatorConfig() *IndicatorConfig {
	if c.Indicator != nil {
		return c.Indicator
	}
	return NewIndicatorConfig()
}

// GetSearchConfig returns the search section, falling back to defaults
func (c *Config) GetSearchConfig() *SearchConfig {
	if c.Search != nil {
		return c.Search
	}
	return NewSearchConfig()
}

// GetAlertsConfig returns the alerts section, falling back to defaults
func (c *Config) GetAlertsConfig() *AlertsConfig {
	if c.Alerts != nil {
		return c.Alerts
	}
	return NewAlertsConfig()
}

// GetSchedulerConfig returns the scheduler section, falling back to defaults
func (c *Config) GetSchedulerConfig() *SchedulerConfig {
	if c.Scheduler != nil {
		return c.Scheduler
	}
	return NewSchedulerConfig()
}

// GetCheckoutConfig returns the checkout section, falling back to defaults
func (c *Config) GetCheckoutConfig() *CheckoutConfig {
	if c.Checkout != nil {
		return c.Checkout
	}
	return NewCheckoutConfig()
}
