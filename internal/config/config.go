/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"currency-data-sync/internal/models"
)

const (
	defaultProviderBaseUrl = "https://v6.exchangerate-api.com/v6"
	defaultInfoBaseUrl     = "https://www.exchange-rates.org/currency"
	defaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// ErrMissingProviderKey is returned by RequireProviderKey when EXCHANGE_RATE_API_KEY is unset
var ErrMissingProviderKey = errors.New("missing required environment variable: EXCHANGE_RATE_API_KEY")

func Load() (*models.Config, error) {
	databaseUrl := os.Getenv("DATABASE_URL")
	serviceKey := os.Getenv("DATABASE_SERVICE_KEY")

	var missing []string
	if databaseUrl == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if serviceKey == "" {
		missing = append(missing, "DATABASE_SERVICE_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	connMaxLifetime, err := getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	connMaxIdleTime, err := getEnvDuration("DB_CONN_MAX_IDLE_TIME", 30*time.Second)
	if err != nil {
		return nil, err
	}

	pingTimeout, err := getEnvDuration("DB_PING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	providerTimeout, err := getEnvDuration("PROVIDER_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	importDelay, err := getEnvDuration("IMPORT_REQUEST_DELAY", time.Second)
	if err != nil {
		return nil, err
	}

	scraperTimeout, err := getEnvDuration("SCRAPER_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	scrapeDelay, err := getEnvDuration("SCRAPE_REQUEST_DELAY", 2*time.Second)
	if err != nil {
		return nil, err
	}

	batchSize := getEnvInt("IMPORT_INSERT_BATCH_SIZE", 1000)
	if batchSize <= 0 {
		return nil, fmt.Errorf("IMPORT_INSERT_BATCH_SIZE must be positive, got %d", batchSize)
	}

	return &models.Config{
		Database: models.DatabaseConfig{
			Url:             databaseUrl,
			ServiceKey:      serviceKey,
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: connMaxLifetime,
			ConnMaxIdleTime: connMaxIdleTime,
			PingTimeout:     pingTimeout,
			CurrenciesFile:  getEnvString("CURRENCIES_FILE", "currencies.yaml"),
		},
		Provider: models.ProviderConfig{
			ApiKey:          os.Getenv("EXCHANGE_RATE_API_KEY"),
			BaseUrl:         strings.TrimRight(getEnvString("EXCHANGE_RATE_BASE_URL", defaultProviderBaseUrl), "/"),
			Timeout:         providerTimeout,
			RequestDelay:    importDelay,
			InsertBatchSize: batchSize,
		},
		Scraper: models.ScraperConfig{
			BaseUrl:      strings.TrimRight(getEnvString("CURRENCY_INFO_BASE_URL", defaultInfoBaseUrl), "/"),
			UserAgent:    getEnvString("SCRAPER_USER_AGENT", defaultUserAgent),
			Timeout:      scraperTimeout,
			RequestDelay: scrapeDelay,
		},
		Log: LoadLog(),
	}, nil
}

// LoadLog reads the file logging settings on their own so the logger can
// be built before the rest of the configuration is validated.
func LoadLog() models.LogConfig {
	return models.LogConfig{
		File:       os.Getenv("LOG_FILE"),
		MaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		MaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),
	}
}

// RequireProviderKey fails when the importer would run without a provider key
func RequireProviderKey(cfg *models.Config) error {
	if cfg.Provider.ApiKey == "" {
		return ErrMissingProviderKey
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %q (%w)", key, value, err)
		}
		return duration, nil
	}
	return defaultValue, nil
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
