package scraper

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const yenOverview = "The yen is the official currency of Japan and widely traded."

func newTestScraper(pages *staticPages, currencies []models.Currency, info *memoryInfo) *Scraper {
	return New(pages, &fakeCurrencies{currencies: currencies}, info, 0, zap.NewNop())
}

func TestScrapeCurrencyInserts(t *testing.T) {
	pages := &staticPages{pages: map[string]string{
		"JPY": infoPage("jp", "Yen", "0", yenOverview, "Bank of Japan"),
	}}
	info := newMemoryInfo()
	s := newTestScraper(pages, nil, info)

	result := s.ScrapeCurrency(context.Background(), models.Currency{Id: 10, Code: "JPY", IsActive: true})

	if result.Status != StatusInserted {
		t.Fatalf("Expected inserted, got %s (%v)", result.Status, result.Err)
	}
	row := info.rows[10]
	if !reflect.DeepEqual(row.CountryCodes, []string{"JP"}) {
		t.Errorf("Unexpected country codes %v", row.CountryCodes)
	}
	if !row.MinorUnitValue.Valid || !row.MinorUnitValue.Decimal.IsZero() {
		t.Errorf("Expected stored minor unit value 0, got %v", row.MinorUnitValue)
	}
	if *row.CentralBank != "bank of japan" {
		t.Errorf("Expected lower-cased central bank, got %q", *row.CentralBank)
	}
}

func TestScrapeCurrencyZeroPreservation(t *testing.T) {
	pages := &staticPages{pages: map[string]string{
		"JPY": infoPage("jp", "Yen", "0", yenOverview, "Bank of Japan"),
	}}
	info := newMemoryInfo()
	info.rows[10] = &models.CurrencyInfo{
		Id:             1,
		CurrencyId:     10,
		CountryCodes:   []string{"JP"},
		MajorUnitName:  strPtr("Yen"),
		MinorUnitValue: decimal.NewNullDecimal(decimal.Zero),
		Overview:       strPtr("the yen is the official currency of japan and widely traded."),
		CentralBank:    strPtr("bank of japan"),
	}
	s := newTestScraper(pages, nil, info)

	result := s.ScrapeCurrency(context.Background(), models.Currency{Id: 10, Code: "JPY"})

	if result.Status != StatusUnchanged {
		t.Errorf("Expected a re-scrape yielding 0 to compare equal, got %s", result.Status)
	}
	if info.updates != 0 {
		t.Errorf("Expected no update, got %d", info.updates)
	}
}

func TestScrapeCurrencyEmptyScrapeKeepsStoredInfo(t *testing.T) {
	pages := &staticPages{pages: map[string]string{
		"JPY": "<html><body><p>Please enable JavaScript</p></body></html>",
	}}
	info := newMemoryInfo()
	stored := &models.CurrencyInfo{CurrencyId: 10, MajorUnitName: strPtr("Yen"), CentralBank: strPtr("bank of japan")}
	info.rows[10] = stored
	s := newTestScraper(pages, nil, info)

	result := s.ScrapeCurrency(context.Background(), models.Currency{Id: 10, Code: "JPY"})

	if result.Status != StatusEmpty {
		t.Errorf("Expected empty, got %s", result.Status)
	}
	if info.inserts != 0 || info.updates != 0 {
		t.Errorf("Expected no writes, got %d inserts %d updates", info.inserts, info.updates)
	}
	if *info.rows[10].CentralBank != "bank of japan" {
		t.Errorf("Stored info was modified")
	}
}

func TestScrapeCurrencyUpdatesChangedOverview(t *testing.T) {
	pages := &staticPages{pages: map[string]string{
		"JPY": infoPage("jp", "Yen", "", yenOverview, ""),
	}}
	info := newMemoryInfo()
	info.rows[10] = &models.CurrencyInfo{
		CurrencyId:     10,
		MajorUnitName:  strPtr("Yen"),
		MinorUnitValue: decimal.NewNullDecimal(decimal.Zero),
		Overview:       strPtr("an older description of the yen."),
		CentralBank:    strPtr("bank of japan"),
	}
	s := newTestScraper(pages, nil, info)

	result := s.ScrapeCurrency(context.Background(), models.Currency{Id: 10, Code: "JPY"})

	if result.Status != StatusUpdated {
		t.Fatalf("Expected updated, got %s (%v)", result.Status, result.Err)
	}
	row := info.rows[10]
	if !row.MinorUnitValue.Valid || !row.MinorUnitValue.Decimal.IsZero() {
		t.Errorf("Expected minor unit value 0 to survive the update, got %v", row.MinorUnitValue)
	}
	if row.CentralBank == nil || *row.CentralBank != "bank of japan" {
		t.Errorf("Expected central bank to survive the update, got %v", row.CentralBank)
	}
}

func TestRunContinuesAfterFailures(t *testing.T) {
	pages := &staticPages{
		pages: map[string]string{
			"EUR": infoPage("de", "Euro", "0.01", "", ""),
			"JPY": infoPage("jp", "Yen", "0", "", ""),
		},
		errs: map[string]error{"GBP": errors.New("connection reset")},
	}
	currencies := []models.Currency{
		{Id: 3, Code: "JPY", IsActive: true},
		{Id: 1, Code: "EUR", IsActive: true},
		{Id: 2, Code: "GBP", IsActive: true},
		{Id: 4, Code: "ZWL", IsActive: false},
		{Id: 5, Code: "USD", IsActive: true},
	}
	info := newMemoryInfo()
	s := newTestScraper(pages, currencies, info)

	summary, err := s.Run(context.Background(), "")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !reflect.DeepEqual(pages.fetched, []string{"EUR", "GBP", "JPY", "USD"}) {
		t.Errorf("Expected active currencies in code order, got %v", pages.fetched)
	}
	want := Summary{Total: 4, Inserted: 2, Failed: 2}
	if summary != want {
		t.Errorf("Expected summary %+v, got %+v", want, summary)
	}
}

func TestRunSingleCode(t *testing.T) {
	pages := &staticPages{pages: map[string]string{"EUR": infoPage("de", "Euro", "", "", "")}}
	currencies := []models.Currency{{Id: 1, Code: "EUR", IsActive: true}, {Id: 2, Code: "GBP", IsActive: true}}
	s := newTestScraper(pages, currencies, newMemoryInfo())

	summary, err := s.Run(context.Background(), "eur")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.Total != 1 || summary.Inserted != 1 {
		t.Errorf("Unexpected summary %+v", summary)
	}
	if !reflect.DeepEqual(pages.fetched, []string{"EUR"}) {
		t.Errorf("Expected only EUR to be fetched, got %v", pages.fetched)
	}
}

func TestRunUnknownCode(t *testing.T) {
	s := newTestScraper(&staticPages{}, []models.Currency{{Id: 1, Code: "EUR", IsActive: true}}, newMemoryInfo())

	_, err := s.Run(context.Background(), "XXX")

	if !IsUnknownCurrency(err) {
		t.Errorf("Expected unknown currency error, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pages := &staticPages{pages: map[string]string{"EUR": infoPage("de", "Euro", "", "", "")}}
	s := newTestScraper(pages, []models.Currency{{Id: 1, Code: "EUR", IsActive: true}}, newMemoryInfo())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Run(ctx, "")

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(pages.fetched) != 0 {
		t.Errorf("Expected no fetches after cancel, got %v", pages.fetched)
	}
}
