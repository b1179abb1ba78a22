package postgres

import (
	"context"
	"fmt"

	"currency-data-sync/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Service) GetHistoricalsByDate(ctx context.Context, date string) ([]models.HistoricalRate, error) {
	rows, err := s.pool.Query(ctx, queryGetHistoricalsByDate, date)
	if err != nil {
		return nil, fmt.Errorf("unable to query historicals for %s: %w", date, err)
	}
	defer rows.Close()

	var rates []models.HistoricalRate
	for rows.Next() {
		var r models.HistoricalRate
		var rateStr string
		if err := rows.Scan(&r.Id, &r.CurrencyId, &rateStr, &r.Date, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("unable to scan historical row: %w", err)
		}
		r.Rate, err = decimal.NewFromString(rateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored rate '%s': %w", rateStr, err)
		}
		rates = append(rates, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating historical rows: %w", err)
	}
	return rates, nil
}

// InsertHistoricals streams the batch through COPY inside a transaction
func (s *Service) InsertHistoricals(ctx context.Context, rows []models.HistoricalRate) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// COPY cannot cast, so stage as text and convert on the way in
	_, err = tx.Exec(ctx, `CREATE TEMP TABLE historicals_staging (currency_id BIGINT, rate TEXT, date TEXT) ON COMMIT DROP`)
	if err != nil {
		return fmt.Errorf("failed to create staging table: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"historicals_staging"},
		[]string{"currency_id", "rate", "date"},
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return []any{rows[i].CurrencyId, rows[i].Rate.String(), rows[i].Date}, nil
		}))
	if err != nil {
		return fmt.Errorf("failed to copy historicals: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO historicals (currency_id, rate, date)
		SELECT currency_id, rate::numeric, date::date FROM historicals_staging`)
	if err != nil {
		return fmt.Errorf("failed to insert historicals: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit historicals: %w", err)
	}

	zap.L().Debug("Inserted historicals", zap.Int64("count", copied))
	return nil
}

func (s *Service) UpdateHistoricalRate(ctx context.Context, id int64, rate decimal.Decimal) error {
	tag, err := s.pool.Exec(ctx, queryUpdateHistoricalRate, rate.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update historical %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("historical %d not found", id)
	}
	return nil
}
