package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"go.uber.org/zap"
)

func (s *Service) GetCurrencyInfo(ctx context.Context, currencyId int64) (*models.CurrencyInfo, error) {
	var cols store.InfoColumns
	err := s.db.QueryRowContext(ctx, queryGetInfoByCurrency, currencyId).Scan(
		&cols.Id, &cols.CurrencyId, &cols.CountryCodes, &cols.MajorUnitName, &cols.MinorUnitName, &cols.MinorUnitValue,
		&cols.Banknotes, &cols.Coins, &cols.Overview, &cols.CentralBank, &cols.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to query info for currency %d: %w", currencyId, err)
	}
	return store.DecodeInfo(&cols)
}

func (s *Service) InsertCurrencyInfo(ctx context.Context, info *models.CurrencyInfo) error {
	cols, err := store.EncodeInfo(info)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, queryInsertInfo,
		cols.CurrencyId, cols.CountryCodes, cols.MajorUnitName, cols.MinorUnitName, cols.MinorUnitValue,
		cols.Banknotes, cols.Coins, cols.Overview, cols.CentralBank, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("unable to insert info for currency %d: %w", info.CurrencyId, err)
	}

	zap.L().Debug("Inserted currency info", zap.Int64("currency_id", info.CurrencyId))
	return nil
}

func (s *Service) UpdateCurrencyInfo(ctx context.Context, info *models.CurrencyInfo) error {
	cols, err := store.EncodeInfo(info)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, queryUpdateInfo,
		cols.CountryCodes, cols.MajorUnitName, cols.MinorUnitName, cols.MinorUnitValue,
		cols.Banknotes, cols.Coins, cols.Overview, cols.CentralBank, time.Now().UTC(),
		cols.CurrencyId)
	if err != nil {
		return fmt.Errorf("unable to update info for currency %d: %w", info.CurrencyId, err)
	}

	zap.L().Debug("Updated currency info", zap.Int64("currency_id", info.CurrencyId))
	return nil
}
