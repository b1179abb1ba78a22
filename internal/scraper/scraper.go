package scraper

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"go.uber.org/zap"
)

// PageFetcher returns the raw info page for a currency code
type PageFetcher interface {
	FetchPage(ctx context.Context, code string) (string, error)
}

// Status is the outcome of scraping one currency
type Status string

const (
	StatusInserted  Status = "inserted"
	StatusUpdated   Status = "updated"
	StatusUnchanged Status = "unchanged"
	StatusEmpty     Status = "empty"
	StatusFailed    Status = "failed"
)

// Result is handed back for every currency processed
type Result struct {
	Code   string
	Status Status
	Err    error
}

// Summary counts results by status
type Summary struct {
	Total     int
	Inserted  int
	Updated   int
	Unchanged int
	Empty     int
	Failed    int
}

func (s *Summary) add(r Result) {
	s.Total++
	switch r.Status {
	case StatusInserted:
		s.Inserted++
	case StatusUpdated:
		s.Updated++
	case StatusUnchanged:
		s.Unchanged++
	case StatusEmpty:
		s.Empty++
	default:
		s.Failed++
	}
}

// Scraper fills the info table from the currency info site
type Scraper struct {
	pages      PageFetcher
	currencies store.CurrencyStore
	info       store.InfoStore
	delay      time.Duration
	logger     *zap.Logger
}

func New(pages PageFetcher, currencies store.CurrencyStore, info store.InfoStore, delay time.Duration, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.L()
	}
	return &Scraper{
		pages:      pages,
		currencies: currencies,
		info:       info,
		delay:      delay,
		logger:     logger,
	}
}

// Run scrapes a single currency when code is set, otherwise every active
// currency in code order. Per-currency failures are counted, not returned.
// The error is for an unknown code, a failed currency load or cancellation.
func (s *Scraper) Run(ctx context.Context, code string) (Summary, error) {
	var summary Summary

	targets, err := s.targets(ctx, code)
	if err != nil {
		return summary, err
	}

	for i, currency := range targets {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				return summary, err
			}
		}

		s.logger.Info(fmt.Sprintf("[%d/%d] Scraping %s", i+1, len(targets), currency.Code))
		result := s.ScrapeCurrency(ctx, currency)
		summary.add(result)

		if result.Status == StatusFailed {
			s.logger.Warn("Scrape failed", zap.String("code", currency.Code), zap.Error(result.Err))
		} else {
			s.logger.Info("Scrape finished", zap.String("code", currency.Code), zap.String("status", string(result.Status)))
		}
	}

	s.logger.Info("Currency info scrape completed",
		zap.Int("total", summary.Total),
		zap.Int("inserted", summary.Inserted),
		zap.Int("updated", summary.Updated),
		zap.Int("unchanged", summary.Unchanged),
		zap.Int("empty", summary.Empty),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

func (s *Scraper) targets(ctx context.Context, code string) ([]models.Currency, error) {
	if code != "" {
		currency, err := s.currencies.GetActiveCurrencyByCode(ctx, strings.ToUpper(code))
		if err != nil {
			return nil, err
		}
		return []models.Currency{*currency}, nil
	}

	currencies, err := s.currencies.GetActiveCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to load active currencies: %w", err)
	}
	if len(currencies) == 0 {
		return nil, store.ErrNoActiveCurrencies
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].Code < currencies[j].Code })
	return currencies, nil
}

// ScrapeCurrency fetches, extracts and persists one currency's info
func (s *Scraper) ScrapeCurrency(ctx context.Context, currency models.Currency) Result {
	result := Result{Code: currency.Code}

	raw, err := s.pages.FetchPage(ctx, currency.Code)
	if err != nil {
		return failedResult(result, fmt.Errorf("fetch: %w", err))
	}

	ex := Extract(raw)
	scraped := BuildInfo(currency.Id, ex)

	existing, err := s.info.GetCurrencyInfo(ctx, currency.Id)
	if err != nil {
		return failedResult(result, fmt.Errorf("load existing info: %w", err))
	}

	action, record := Decide(existing, scraped)
	s.logger.Debug("Extracted currency info",
		zap.String("code", currency.Code),
		zap.Bool("structured", ex.Structured),
		zap.Int("countries", len(scraped.CountryCodes)),
		zap.Bool("minor_unit_value", scraped.MinorUnitValue.Valid),
		zap.String("action", string(action)))

	switch action {
	case ActionSkipEmpty:
		result.Status = StatusEmpty
	case ActionUnchanged:
		result.Status = StatusUnchanged
	case ActionInsert:
		if err := s.info.InsertCurrencyInfo(ctx, record); err != nil {
			return failedResult(result, err)
		}
		result.Status = StatusInserted
	case ActionUpdate:
		if err := s.info.UpdateCurrencyInfo(ctx, record); err != nil {
			return failedResult(result, err)
		}
		result.Status = StatusUpdated
	}
	return result
}

func (s *Scraper) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsUnknownCurrency reports whether Run failed because the requested code
// is not an active currency.
func IsUnknownCurrency(err error) bool {
	return errors.Is(err, store.ErrCurrencyNotFound)
}

func failedResult(result Result, err error) Result {
	result.Status = StatusFailed
	result.Err = err
	return result
}
