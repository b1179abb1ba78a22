package postgres

import (
	"context"
	"errors"
	"fmt"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"github.com/jackc/pgx/v5"
)

func (s *Service) GetCurrencyInfo(ctx context.Context, currencyId int64) (*models.CurrencyInfo, error) {
	var cols store.InfoColumns
	err := s.pool.QueryRow(ctx, queryGetInfoByCurrency, currencyId).Scan(
		&cols.Id, &cols.CurrencyId, &cols.CountryCodes, &cols.MajorUnitName, &cols.MinorUnitName, &cols.MinorUnitValue,
		&cols.Banknotes, &cols.Coins, &cols.Overview, &cols.CentralBank, &cols.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query info for currency %d: %w", currencyId, err)
	}
	return store.DecodeInfo(&cols)
}

func (s *Service) InsertCurrencyInfo(ctx context.Context, info *models.CurrencyInfo) error {
	return s.writeInfo(ctx, queryInsertInfo, info)
}

func (s *Service) UpdateCurrencyInfo(ctx context.Context, info *models.CurrencyInfo) error {
	return s.writeInfo(ctx, queryUpdateInfo, info)
}

func (s *Service) writeInfo(ctx context.Context, query string, info *models.CurrencyInfo) error {
	cols, err := store.EncodeInfo(info)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, query,
		cols.CurrencyId, cols.CountryCodes, cols.MajorUnitName, cols.MinorUnitName, cols.MinorUnitValue,
		cols.Banknotes, cols.Coins, cols.Overview, cols.CentralBank)
	if err != nil {
		return fmt.Errorf("unable to write info for currency %d: %w", info.CurrencyId, err)
	}
	return nil
}
