package scraper

import (
	"strings"

	"currency-data-sync/internal/models"
)

// Action is what the replace policy decided for a scraped record
type Action string

const (
	ActionInsert    Action = "insert"
	ActionUpdate    Action = "update"
	ActionUnchanged Action = "unchanged"
	ActionSkipEmpty Action = "empty"
)

// Decide applies the replace policy. An empty scrape is never written. A
// new record is inserted. Otherwise the scrape is merged over the stored
// record, fields the scrape missed keeping their stored value, and the
// result is written only when minor unit value, overview or central bank
// changed. The returned record is what should be written.
func Decide(existing, scraped *models.CurrencyInfo) (Action, *models.CurrencyInfo) {
	if scraped == nil || scraped.IsEmpty() {
		return ActionSkipEmpty, nil
	}
	if existing == nil {
		return ActionInsert, scraped
	}

	merged := merge(existing, scraped)
	if !infoChanged(existing, merged) {
		return ActionUnchanged, nil
	}
	return ActionUpdate, merged
}

func merge(existing, scraped *models.CurrencyInfo) *models.CurrencyInfo {
	out := *scraped
	out.Id = existing.Id
	out.CurrencyId = existing.CurrencyId

	if len(out.CountryCodes) == 0 {
		out.CountryCodes = existing.CountryCodes
	}
	if out.MajorUnitName == nil {
		out.MajorUnitName = existing.MajorUnitName
	}
	if out.MinorUnitName == nil {
		out.MinorUnitName = existing.MinorUnitName
	}
	if !out.MinorUnitValue.Valid {
		out.MinorUnitValue = existing.MinorUnitValue
	}
	if out.Banknotes.IsEmpty() {
		out.Banknotes = existing.Banknotes
	}
	if out.Coins.IsEmpty() {
		out.Coins = existing.Coins
	}
	if out.Overview == nil {
		out.Overview = existing.Overview
	}
	if out.CentralBank == nil {
		out.CentralBank = existing.CentralBank
	}
	return &out
}

// infoChanged compares only minor unit value, overview and central bank.
// Country codes and denominations are treated as stable.
func infoChanged(a, b *models.CurrencyInfo) bool {
	if a.MinorUnitValue.Valid != b.MinorUnitValue.Valid {
		return true
	}
	if a.MinorUnitValue.Valid && !a.MinorUnitValue.Decimal.Equal(b.MinorUnitValue.Decimal) {
		return true
	}
	return !sameText(a.Overview, b.Overview) || !sameText(a.CentralBank, b.CentralBank)
}

func sameText(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return strings.EqualFold(*a, *b)
}
