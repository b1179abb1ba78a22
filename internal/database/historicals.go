package database

import (
	"context"
	"fmt"
	"time"

	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (s *Service) GetHistoricalsByDate(ctx context.Context, date string) ([]models.HistoricalRate, error) {
	rows, err := s.db.QueryContext(ctx, queryGetHistoricalsByDate, date)
	if err != nil {
		return nil, fmt.Errorf("unable to query historicals for %s: %w", date, err)
	}
	defer closeRows(rows)

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

// InsertHistoricals writes all rows inside one transaction so a rejected
// row leaves nothing of the batch behind.
func (s *Service) InsertHistoricals(ctx context.Context, rows []models.HistoricalRate) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, queryInsertHistorical)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx, r.CurrencyId, r.Rate.String(), r.Date, now); err != nil {
			return fmt.Errorf("failed to insert rate for currency %d on %s: %w", r.CurrencyId, r.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit historicals: %w", err)
	}

	zap.L().Debug("Inserted historicals", zap.Int("count", len(rows)))
	return nil
}

func (s *Service) UpdateHistoricalRate(ctx context.Context, id int64, rate decimal.Decimal) error {
	result, err := s.db.ExecContext(ctx, queryUpdateHistoricalRate, rate.String(), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update historical %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("historical %d not found", id)
	}
	return nil
}
