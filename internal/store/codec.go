package store

import (
	"fmt"
	"time"

	"currency-data-sync/internal/models"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// InfoColumns is the column-level form of models.CurrencyInfo shared by
// backends that keep lists and denominations as JSON text.
type InfoColumns struct {
	Id             int64
	CurrencyId     int64
	CountryCodes   string
	MajorUnitName  *string
	MinorUnitName  *string
	MinorUnitValue *string
	Banknotes      string
	Coins          string
	Overview       *string
	CentralBank    *string
	UpdatedAt      time.Time
}

// EncodeInfo flattens a CurrencyInfo into storable columns
func EncodeInfo(info *models.CurrencyInfo) (*InfoColumns, error) {
	countryCodes := info.CountryCodes
	if countryCodes == nil {
		countryCodes = []string{}
	}
	codes, err := json.Marshal(countryCodes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode country codes: %w", err)
	}
	banknotes, err := json.Marshal(normalizeDenominations(info.Banknotes))
	if err != nil {
		return nil, fmt.Errorf("failed to encode banknotes: %w", err)
	}
	coins, err := json.Marshal(normalizeDenominations(info.Coins))
	if err != nil {
		return nil, fmt.Errorf("failed to encode coins: %w", err)
	}

	cols := &InfoColumns{
		Id:            info.Id,
		CurrencyId:    info.CurrencyId,
		CountryCodes:  string(codes),
		MajorUnitName: info.MajorUnitName,
		MinorUnitName: info.MinorUnitName,
		Banknotes:     string(banknotes),
		Coins:         string(coins),
		Overview:      info.Overview,
		CentralBank:   info.CentralBank,
		UpdatedAt:     info.UpdatedAt,
	}
	if info.MinorUnitValue.Valid {
		v := info.MinorUnitValue.Decimal.String()
		cols.MinorUnitValue = &v
	}
	return cols, nil
}

// DecodeInfo rebuilds a CurrencyInfo from stored columns
func DecodeInfo(cols *InfoColumns) (*models.CurrencyInfo, error) {
	info := &models.CurrencyInfo{
		Id:            cols.Id,
		CurrencyId:    cols.CurrencyId,
		MajorUnitName: cols.MajorUnitName,
		MinorUnitName: cols.MinorUnitName,
		Overview:      cols.Overview,
		CentralBank:   cols.CentralBank,
		UpdatedAt:     cols.UpdatedAt,
	}

	if cols.CountryCodes != "" {
		if err := json.Unmarshal([]byte(cols.CountryCodes), &info.CountryCodes); err != nil {
			return nil, fmt.Errorf("failed to decode country codes: %w", err)
		}
	}
	if cols.Banknotes != "" {
		if err := json.Unmarshal([]byte(cols.Banknotes), &info.Banknotes); err != nil {
			return nil, fmt.Errorf("failed to decode banknotes: %w", err)
		}
	}
	if cols.Coins != "" {
		if err := json.Unmarshal([]byte(cols.Coins), &info.Coins); err != nil {
			return nil, fmt.Errorf("failed to decode coins: %w", err)
		}
	}
	if cols.MinorUnitValue != nil {
		v, err := decimal.NewFromString(*cols.MinorUnitValue)
		if err != nil {
			return nil, fmt.Errorf("failed to parse minor unit value '%s': %w", *cols.MinorUnitValue, err)
		}
		info.MinorUnitValue = decimal.NewNullDecimal(v)
	}
	return info, nil
}

func normalizeDenominations(d models.Denominations) models.Denominations {
	if d.Frequently == nil {
		d.Frequently = []float64{}
	}
	if d.Rarely == nil {
		d.Rarely = []float64{}
	}
	return d
}
