package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"go.uber.org/zap"
)

func (s *Service) GetActiveCurrencies(ctx context.Context) ([]models.Currency, error) {
	rows, err := s.db.QueryContext(ctx, queryGetActiveCurrencies)
	if err != nil {
		zap.L().Error("Failed to query active currencies", zap.Error(err))
		return nil, fmt.Errorf("unable to query currencies: %w", err)
	}
	defer closeRows(rows)

	var currencies []models.Currency
	for rows.Next() {
		var c models.Currency
		if err := rows.Scan(&c.Id, &c.Code, &c.Name, &c.IsActive); err != nil {
			return nil, fmt.Errorf("unable to scan currency row: %w", err)
		}
		currencies = append(currencies, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currency rows: %w", err)
	}

	zap.L().Debug("Retrieved active currencies", zap.Int("count", len(currencies)))
	return currencies, nil
}

func (s *Service) GetActiveCurrencyByCode(ctx context.Context, code string) (*models.Currency, error) {
	var c models.Currency
	err := s.db.QueryRowContext(ctx, queryGetActiveCurrencyByCode, code).Scan(&c.Id, &c.Code, &c.Name, &c.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrCurrencyNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query currency %s: %w", code, err)
	}
	return &c, nil
}

func (s *Service) UpsertCurrency(ctx context.Context, currency models.Currency) error {
	if _, err := s.db.ExecContext(ctx, queryUpsertCurrency, currency.Code, currency.Name, currency.IsActive); err != nil {
		return fmt.Errorf("unable to upsert currency %s: %w", currency.Code, err)
	}
	return nil
}
