package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the timekeeper core
type Config struct {
	Database   DatabaseConfig
	Reporting  ReportingConfig
	Entries    EntriesConfig
	Validation ValidationConfig
	Application ApplicationConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"TK_DB_DIR"`
	Filename       string        `env:"TK_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"TK_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"TK_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"TK_DB_DIR_PERMISSIONS"`
}

// ReportingConfig holds aggregation and display configuration
type ReportingConfig struct {
	// Timezone is the IANA name of the zone used to bucket entries by
	// calendar date. "Local" uses the process timezone.
	Timezone      string `env:"TK_REPORT_TIMEZONE"`
	DisplayFormat string `env:"TK_TIME_DISPLAY_FORMAT"`
}

// EntriesConfig holds time-entry policy configuration
type EntriesConfig struct {
	// BillableDefault is applied when a new entry does not state billability.
	BillableDefault bool `env:"TK_BILLABLE_DEFAULT"`
	DefaultPageSize int  `env:"TK_ENTRIES_PAGE_SIZE"`
	MaxPageSize     int  `env:"TK_ENTRIES_MAX_PAGE_SIZE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	DescriptionMaxLength int           `env:"TK_VALIDATION_DESCRIPTION_MAX"`
	MaxDuration          time.Duration `env:"TK_VALIDATION_MAX_DURATION"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TK_APP_TIMEOUT"`
	Verbose bool          `env:"TK_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".timekeeper")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "timekeeper.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Reporting: ReportingConfig{
			Timezone:      "Local",
			DisplayFormat: "2006-01-02 15:04:05",
		},
		Entries: EntriesConfig{
			BillableDefault: true,
			DefaultPageSize: 50,
			MaxPageSize:     500,
		},
		Validation: ValidationConfig{
			DescriptionMaxLength: 500,
			MaxDuration:          24 * time.Hour,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// ReportingLocation resolves the configured reporting timezone.
// Falls back to the process timezone on an unknown name.
func (c *Config) ReportingLocation() *time.Location {
	if c.Reporting.Timezone == "" || c.Reporting.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Reporting.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("TK_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TK_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("TK_DB_QUERY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.QueryTimeout = d
		}
	}
	if timeout := os.Getenv("TK_DB_WRITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Database.WriteTimeout = d
		}
	}
	if perms := os.Getenv("TK_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Reporting configuration
	if tz := os.Getenv("TK_REPORT_TIMEZONE"); tz != "" {
		c.Reporting.Timezone = tz
	}
	if format := os.Getenv("TK_TIME_DISPLAY_FORMAT"); format != "" {
		c.Reporting.DisplayFormat = format
	}

	// Entries configuration
	if billable := os.Getenv("TK_BILLABLE_DEFAULT"); billable != "" {
		if b, err := strconv.ParseBool(billable); err == nil {
			c.Entries.BillableDefault = b
		}
	}
	if size := os.Getenv("TK_ENTRIES_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Entries.DefaultPageSize = n
		}
	}
	if size := os.Getenv("TK_ENTRIES_MAX_PAGE_SIZE"); size != "" {
		if n, err := strconv.Atoi(size); err == nil {
			c.Entries.MaxPageSize = n
		}
	}

	// Validation configuration
	if maxLen := os.Getenv("TK_VALIDATION_DESCRIPTION_MAX"); maxLen != "" {
		if n, err := strconv.Atoi(maxLen); err == nil {
			c.Validation.DescriptionMaxLength = n
		}
	}
	if maxDur := os.Getenv("TK_VALIDATION_MAX_DURATION"); maxDur != "" {
		if d, err := time.ParseDuration(maxDur); err == nil {
			c.Validation.MaxDuration = d
		}
	}

	// Application configuration
	if timeout := os.Getenv("TK_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("TK_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Reporting.Timezone != "" && c.Reporting.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Reporting.Timezone); err != nil {
			return &ConfigError{Field: "reporting.timezone", Message: "unknown timezone name"}
		}
	}
	if c.Reporting.DisplayFormat == "" {
		return &ConfigError{Field: "reporting.display_format", Message: "display format cannot be empty"}
	}

	if c.Entries.DefaultPageSize < 1 {
		return &ConfigError{Field: "entries.default_page_size", Message: "default page size must be at least 1"}
	}
	if c.Entries.MaxPageSize < c.Entries.DefaultPageSize {
		return &ConfigError{Field: "entries.max_page_size", Message: "max page size must be at least the default page size"}
	}

	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description max length must be at least 1"}
	}
	if c.Validation.MaxDuration <= 0 {
		return &ConfigError{Field: "validation.max_duration", Message: "max duration must be positive"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return "config error for " + e.Field + ": " + e.Message
}

// Load creates a configuration from defaults, environment overrides, and
// validates the result.
func Load() (*Config, error) {
	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
