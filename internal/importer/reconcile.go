package importer

import (
	"currency-data-sync/internal/common"
	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
)

// Plan is the classification of one day's incoming rates against stored rows
type Plan struct {
	Inserts []models.HistoricalRate
	Updates []models.HistoricalRate // Id set to the stored row
	Skipped int
}

// BuildRates maps a provider rate table to rows for date. Codes missing from
// currencies are dropped, never stored.
func BuildRates(table map[string]decimal.Decimal, currencies common.CurrencyMap, date string) []models.HistoricalRate {
	rates := make([]models.HistoricalRate, 0, len(table))
	for code, rate := range table {
		currencyId, ok := currencies.Lookup(code)
		if !ok {
			continue
		}
		rates = append(rates, models.HistoricalRate{
			CurrencyId: currencyId,
			Rate:       rate,
			Date:       date,
		})
	}
	return rates
}

// Reconcile partitions incoming rows by the (currency_id, date) natural key:
// absent rows are inserted, rows whose rate differs are updated in place and
// numerically equal rates are skipped.
func Reconcile(existing, incoming []models.HistoricalRate) Plan {
	stored := make(map[rateKey]models.HistoricalRate, len(existing))
	for _, row := range existing {
		stored[rateKey{row.CurrencyId, row.Date}] = row
	}

	var plan Plan
	for _, row := range incoming {
		current, ok := stored[rateKey{row.CurrencyId, row.Date}]
		switch {
		case !ok:
			plan.Inserts = append(plan.Inserts, row)
		case current.Rate.Equal(row.Rate):
			plan.Skipped++
		default:
			row.Id = current.Id
			plan.Updates = append(plan.Updates, row)
		}
	}
	return plan
}

type rateKey struct {
	currencyId int64
	date       string
}
