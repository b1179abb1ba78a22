package models

import "time"

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig
	Provider ProviderConfig
	Scraper  ScraperConfig
	Log      LogConfig
}

// DatabaseConfig holds datastore connection settings.
// Url selects the backend: postgres:// and postgresql:// use the hosted
// Postgres store, anything else is treated as a SQLite path.
type DatabaseConfig struct {
	Url             string
	ServiceKey      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	CurrenciesFile  string
}

// ProviderConfig holds rate-history provider settings
type ProviderConfig struct {
	ApiKey          string
	BaseUrl         string
	Timeout         time.Duration
	RequestDelay    time.Duration
	InsertBatchSize int
}

// ScraperConfig holds currency info site settings
type ScraperConfig struct {
	BaseUrl      string
	UserAgent    string
	Timeout      time.Duration
	RequestDelay time.Duration
}

// LogConfig holds optional file logging settings
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}
