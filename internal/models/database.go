package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the storage format of historical rate dates
const DateLayout = "2006-01-02"

// Currency represents a row of the currencies reference table
type Currency struct {
	Id       int64  `db:"id"`
	Code     string `db:"code"`
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}

// HistoricalRate is the USD-based rate of one currency on one day.
// (CurrencyId, Date) is the natural key.
type HistoricalRate struct {
	Id         int64           `db:"id"`
	CurrencyId int64           `db:"currency_id"`
	Rate       decimal.Decimal `db:"rate"`
	Date       string          `db:"date"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// Denominations splits banknotes or coins by how often they circulate
type Denominations struct {
	Frequently []float64 `json:"frequently"`
	Rarely     []float64 `json:"rarely"`
}

// IsEmpty reports whether neither list carries a value
func (d Denominations) IsEmpty() bool {
	return len(d.Frequently) == 0 && len(d.Rarely) == 0
}

// CurrencyInfo is the descriptive metadata scraped for a currency.
// MinorUnitValue is a NullDecimal so that a value of 0 stays distinct
// from an unknown value.
type CurrencyInfo struct {
	Id             int64               `db:"id"`
	CurrencyId     int64               `db:"currency_id"`
	CountryCodes   []string            `db:"country_codes"`
	MajorUnitName  *string             `db:"major_unit_name"`
	MinorUnitName  *string             `db:"minor_unit_name"`
	MinorUnitValue decimal.NullDecimal `db:"minor_unit_value"`
	Banknotes      Denominations       `db:"banknotes"`
	Coins          Denominations       `db:"coins"`
	Overview       *string             `db:"overview"`
	CentralBank    *string             `db:"central_bank"`
	UpdatedAt      time.Time           `db:"updated_at"`
}

// IsEmpty reports whether a scrape produced nothing worth storing
func (c *CurrencyInfo) IsEmpty() bool {
	return len(c.CountryCodes) == 0 &&
		c.MajorUnitName == nil &&
		c.Banknotes.IsEmpty() &&
		c.Coins.IsEmpty()
}
