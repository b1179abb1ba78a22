package postgres

import (
	"context"
	"errors"
	"fmt"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Service) GetActiveCurrencies(ctx context.Context) ([]models.Currency, error) {
	rows, err := s.pool.Query(ctx, queryGetActiveCurrencies)
	if err != nil {
		return nil, fmt.Errorf("unable to query currencies: %w", err)
	}
	defer rows.Close()

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
	return currencies, nil
}

func (s *Service) GetActiveCurrencyByCode(ctx context.Context, code string) (*models.Currency, error) {
	var c models.Currency
	err := s.pool.QueryRow(ctx, queryGetActiveCurrencyByCode, code).Scan(&c.Id, &c.Code, &c.Name, &c.IsActive)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrCurrencyNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query currency %s: %w", code, err)
	}
	return &c, nil
}

func (s *Service) UpsertCurrency(ctx context.Context, currency models.Currency) error {
	if _, err := s.pool.Exec(ctx, queryUpsertCurrency, currency.Code, currency.Name, currency.IsActive); err != nil {
		return fmt.Errorf("unable to upsert currency %s: %w", currency.Code, err)
	}
	return nil
}
