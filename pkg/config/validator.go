package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidateConfig validates the complete configuration
func (c *Config) ValidateConfig() error {
	if err := c.validateDatabaseConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseConfig, err)
	}

	if err := c.validateServerConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrServerConfig, err)
	}

	if err := c.validateIndicatorConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrIndicatorConfig, err)
	}

	if err := c.validateSearchConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrSearchConfig, err)
	}

	if err := c.validateSchedulerConfig(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchedulerConfig, err)
	}

	return nil
}

func (c *Config) validateDatabaseConfig() error {
	if c.Database == nil {
		return fmt.Errorf("%w: database section", ErrMissingRequired)
	}

	db := c.Database

	if db.Host == "" {
		return fmt.Errorf("%w: host", ErrMissingRequired)
	}

	if db.Port <= 0 || db.Port > 65535 {
		return fmt.Errorf("%w: port must be within 1-65535", ErrInvalidValue)
	}

	if db.Database == "" {
		return fmt.Errorf("%w: database", ErrMissingRequired)
	}

	if db.SSLMode != "" {
		valid := []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}
		if !isValidValue(db.SSLMode, valid) {
			return fmt.Errorf("%w: ssl_mode must be one of %v", ErrInvalidValue, valid)
		}
	}

	return nil
}

func (c *Config) validateServerConfig() error {
	if c.Server == nil {
		return nil // server section is optional, defaults apply
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port must be within 1-65535", ErrInvalidValue)
	}

	return nil
}

func (c *Config) validateIndicatorConfig() error {
	if c.Indicator == nil {
		return nil
	}

	ind := c.Indicator

	if ind.BaseURL == "" {
		return fmt.Errorf("%w: base_url", ErrMissingRequired)
	}

	if _, err := url.Parse(ind.BaseURL); err != nil {
		return fmt.Errorf("%w: base_url: %v", ErrInvalidValue, err)
	}

	if ind.Timeout <= 0 {
		ind.Timeout = 10
	}

	if ind.RateLimit <= 0 {
		ind.RateLimit = 2
	}

	if ind.RateBurst <= 0 {
		ind.RateBurst = 1
	}

	return nil
}

func (c *Config) validateSearchConfig() error {
	if c.Search == nil {
		return nil
	}

	if c.Search.BaseURL == "" {
		return fmt.Errorf("%w: base_url", ErrMissingRequired)
	}

	if !strings.HasPrefix(c.Search.BaseURL, "http://") && !strings.HasPrefix(c.Search.BaseURL, "https://") {
		return fmt.Errorf("%w: base_url must be an http(s) URL", ErrInvalidValue)
	}

	if c.Search.Timeout <= 0 {
		c.Search.Timeout = 10
	}

	return nil
}

func (c *Config) validateSchedulerConfig() error {
	if c.Scheduler == nil || !c.Scheduler.Enabled {
		return nil
	}

	if c.Scheduler.Cron == "" {
		return fmt.Errorf("%w: cron", ErrMissingRequired)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.Scheduler.Cron); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidCron, c.Scheduler.Cron, err)
	}

	if c.Scheduler.LowStockThreshold < 0 {
		return fmt.Errorf("%w: low_stock_threshold must not be negative", ErrInvalidValue)
	}

	return nil
}

func isValidValue(value string, valid []string) bool {
	for _, v := range valid {
		if value == v {
			return true
		}
	}
	return false
}
