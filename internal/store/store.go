package store

import (
	"context"
	"errors"

	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrCurrencyNotFound   = errors.New("currency not found")
	ErrNoActiveCurrencies = errors.New("no active currencies")
)

// CurrencyStore reads and seeds the currencies reference table.
type CurrencyStore interface {
	GetActiveCurrencies(ctx context.Context) ([]models.Currency, error)
	GetActiveCurrencyByCode(ctx context.Context, code string) (*models.Currency, error)
	UpsertCurrency(ctx context.Context, currency models.Currency) error
}

// HistoricalStore persists USD-based daily rates.
type HistoricalStore interface {
	// GetHistoricalsByDate returns every stored rate for one day, all currencies.
	GetHistoricalsByDate(ctx context.Context, date string) ([]models.HistoricalRate, error)
	// InsertHistoricals writes rows in a single statement batch; callers chunk.
	InsertHistoricals(ctx context.Context, rows []models.HistoricalRate) error
	UpdateHistoricalRate(ctx context.Context, id int64, rate decimal.Decimal) error
}

// InfoStore persists scraped currency metadata, one row per currency.
type InfoStore interface {
	// GetCurrencyInfo returns nil, nil when the currency has no row yet.
	GetCurrencyInfo(ctx context.Context, currencyId int64) (*models.CurrencyInfo, error)
	InsertCurrencyInfo(ctx context.Context, info *models.CurrencyInfo) error
	UpdateCurrencyInfo(ctx context.Context, info *models.CurrencyInfo) error
}

// RatesStore defines the contract that every backend (SQLite, Postgres) must satisfy.
type RatesStore interface {
	CurrencyStore
	HistoricalStore
	InfoStore

	InitSchema(ctx context.Context) error
	Close()
}
