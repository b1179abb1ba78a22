package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/models"
	"currency-data-sync/internal/provider"
	"currency-data-sync/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidRange is returned when the start year is older than the end year
var ErrInvalidRange = errors.New("start year must be greater than or equal to end year")

// RateFetcher returns a day's USD-based rate table
type RateFetcher interface {
	GetHistory(ctx context.Context, day time.Time) (map[string]decimal.Decimal, error)
}

// DayStatus is the terminal state of one day's processing
type DayStatus string

const (
	DaySucceeded DayStatus = "success"
	DayFailed    DayStatus = "failed"
)

// DayResult is what processing one day hands back to the orchestrator
type DayResult struct {
	Date     string
	Status   DayStatus
	Reason   string // set when failed
	Inserted int
	Updated  int
	Skipped  int
	Err      error
}

// Counts accumulates per-year and per-run totals
type Counts struct {
	Inserted int
	Updated  int
	Skipped  int
	Failed   int
}

func (c *Counts) add(r DayResult) {
	if r.Status == DayFailed {
		c.Failed++
		return
	}
	c.Inserted += r.Inserted
	c.Updated += r.Updated
	c.Skipped += r.Skipped
}

func (c *Counts) merge(o Counts) {
	c.Inserted += o.Inserted
	c.Updated += o.Updated
	c.Skipped += o.Skipped
	c.Failed += o.Failed
}

// Config holds the importer's tunables
type Config struct {
	RequestDelay    time.Duration
	InsertBatchSize int
	Now             func() time.Time
}

// Importer backfills historical rates year by year, newest first
type Importer struct {
	fetcher     RateFetcher
	historicals store.HistoricalStore
	currencies  common.CurrencyMap
	delay       time.Duration
	batchSize   int
	now         func() time.Time
	logger      *zap.Logger

	planWarned bool
}

func New(fetcher RateFetcher, historicals store.HistoricalStore, currencies common.CurrencyMap, cfg Config, logger *zap.Logger) *Importer {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.L()
	}
	return &Importer{
		fetcher:     fetcher,
		historicals: historicals,
		currencies:  currencies,
		delay:       cfg.RequestDelay,
		batchSize:   cfg.InsertBatchSize,
		now:         now,
		logger:      logger,
	}
}

// Run imports every year from startYear down to endYear. A failing day or
// year never stops the run; only context cancellation does.
func (im *Importer) Run(ctx context.Context, startYear, endYear int) (Counts, error) {
	if startYear < endYear {
		return Counts{}, ErrInvalidRange
	}

	im.logger.Info("Starting historical import",
		zap.Int("start_year", startYear),
		zap.Int("end_year", endYear),
		zap.Int("currencies", len(im.currencies)))

	var total Counts
	for year := startYear; year >= endYear; year-- {
		counts, err := im.runYear(ctx, year)
		total.merge(counts)

		if ctx.Err() != nil {
			im.logger.Warn("Import interrupted", zap.Int("year", year), zap.Error(ctx.Err()))
			return total, ctx.Err()
		}
		if err != nil {
			im.logger.Error("Year aborted, continuing with next year", zap.Int("year", year), zap.Error(err))
		}

		im.logger.Info("Year completed",
			zap.Int("year", year),
			zap.Int("inserted", counts.Inserted),
			zap.Int("updated", counts.Updated),
			zap.Int("skipped", counts.Skipped),
			zap.Int("failed", counts.Failed))
	}

	im.logger.Info("Historical import completed",
		zap.Int("inserted", total.Inserted),
		zap.Int("updated", total.Updated),
		zap.Int("skipped", total.Skipped),
		zap.Int("failed", total.Failed))

	return total, nil
}

// runYear isolates a year: a panic while processing it is reported as an
// error together with the counts gathered so far.
func (im *Importer) runYear(ctx context.Context, year int) (counts Counts, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic processing year %d: %v", year, r)
		}
	}()

	days := DaysInYear(year, im.now())
	im.logger.Info("Processing year", zap.Int("year", year), zap.Int("days", len(days)))

	for _, day := range days {
		if ctx.Err() != nil {
			return counts, ctx.Err()
		}

		result := im.ProcessDay(ctx, day)
		counts.add(result)

		if err := im.throttle(ctx); err != nil {
			return counts, err
		}
	}
	return counts, nil
}

// ProcessDay runs FETCH → TRANSFORM → RECONCILE → PERSIST for one day
func (im *Importer) ProcessDay(ctx context.Context, day time.Time) DayResult {
	date := day.Format(models.DateLayout)
	result := DayResult{Date: date}

	table, err := im.fetcher.GetHistory(ctx, day)
	if err != nil {
		return im.fetchFailed(result, err)
	}

	incoming := BuildRates(table, im.currencies, date)
	if len(incoming) == 0 {
		return failed(result, "no known currencies in response", nil)
	}

	existing, err := im.historicals.GetHistoricalsByDate(ctx, date)
	if err != nil {
		im.logger.Error("Failed to load existing rates", zap.String("date", date), zap.Error(err))
		return failed(result, "select existing", err)
	}

	plan := Reconcile(existing, incoming)
	if err := persist(ctx, im.historicals, plan, im.batchSize); err != nil {
		im.logger.Error("Failed to persist rates", zap.String("date", date), zap.Error(err))
		return failed(result, "persist", err)
	}

	result.Status = DaySucceeded
	result.Inserted = len(plan.Inserts)
	result.Updated = len(plan.Updates)
	result.Skipped = plan.Skipped

	im.logger.Debug("Day processed",
		zap.String("date", date),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("skipped", result.Skipped))
	return result
}

func (im *Importer) fetchFailed(result DayResult, err error) DayResult {
	var perr *provider.ProviderError
	switch {
	case errors.As(err, &perr):
		switch perr.Kind() {
		case provider.FailurePlanRestricted:
			if !im.planWarned {
				im.planWarned = true
				im.logger.Warn("Provider plan does not cover historical data", zap.String("reason", perr.Reason))
			}
		case provider.FailureUnavailable:
			// expected for today, future dates and dates before coverage
		default:
			im.logger.Error("Provider error", zap.String("date", result.Date), zap.Error(err))
		}
		return failed(result, perr.Kind().String(), err)
	case errors.Is(err, provider.ErrNoRates):
		return failed(result, "no rates", err)
	case errors.Is(err, context.Canceled):
		return failed(result, "canceled", err)
	case provider.IsTimeout(err):
		return failed(result, "timeout", err)
	default:
		im.logger.Error("Failed to fetch rates", zap.String("date", result.Date), zap.Error(err))
		return failed(result, "transport", err)
	}
}

func (im *Importer) throttle(ctx context.Context) error {
	if im.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(im.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func failed(result DayResult, reason string, err error) DayResult {
	result.Status = DayFailed
	result.Reason = reason
	result.Err = err
	return result
}
