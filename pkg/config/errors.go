package config

import "errors"

// Configuration-related error definitions using sentinel errors pattern
var (
	// Generic errors
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrInvalidFormat  = errors.New("invalid configuration file format")

	// Configuration validation errors
	ErrMissingRequired = errors.New("missing required configuration item")
	ErrInvalidValue    = errors.New("invalid configuration value")

	// Section-specific errors
	ErrDatabaseConfig  = errors.New("database configuration error")
	ErrServerConfig    = errors.New("server configuration error")
	ErrIndicatorConfig = errors.New("indicator configuration error")
	ErrSearchConfig    = errors.New("search configuration error")
	ErrSchedulerConfig = errors.New("scheduler configuration error")
	ErrInvalidCron     = errors.New("invalid cron expression")
)
