package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) (*Service, func()) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// a single connection keeps every query on the same in-memory database
	db.SetMaxOpenConns(1)

	service := &Service{db: db}
	if err := service.InitSchema(context.Background()); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	for _, c := range []models.Currency{
		{Code: "EUR", Name: "Euro", IsActive: true},
		{Code: "GBP", Name: "Pound Sterling", IsActive: true},
		{Code: "ZWL", Name: "Zimbabwe Dollar", IsActive: false},
	} {
		if err := service.UpsertCurrency(context.Background(), c); err != nil {
			t.Fatalf("Failed to seed currency %s: %v", c.Code, err)
		}
	}

	cleanup := func() {
		db.Close()
	}

	return service, cleanup
}

func TestGetActiveCurrencies(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	currencies, err := service.GetActiveCurrencies(context.Background())
	if err != nil {
		t.Fatalf("GetActiveCurrencies failed: %v", err)
	}

	if len(currencies) != 2 {
		t.Fatalf("Expected 2 active currencies, got %d", len(currencies))
	}
	if currencies[0].Code != "EUR" || currencies[1].Code != "GBP" {
		t.Errorf("Expected EUR, GBP in code order, got %s, %s", currencies[0].Code, currencies[1].Code)
	}
}

func TestGetActiveCurrencyByCode(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	eur, err := service.GetActiveCurrencyByCode(ctx, "EUR")
	if err != nil {
		t.Fatalf("GetActiveCurrencyByCode failed: %v", err)
	}
	if eur.Name != "Euro" {
		t.Errorf("Expected name Euro, got %s", eur.Name)
	}

	_, err = service.GetActiveCurrencyByCode(ctx, "ZWL")
	if !errors.Is(err, store.ErrCurrencyNotFound) {
		t.Errorf("Expected ErrCurrencyNotFound for inactive currency, got %v", err)
	}
}

func TestUpsertCurrency_UpdatesExisting(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := service.UpsertCurrency(ctx, models.Currency{Code: "ZWL", Name: "Zimbabwe Dollar", IsActive: true}); err != nil {
		t.Fatalf("UpsertCurrency failed: %v", err)
	}

	currencies, err := service.GetActiveCurrencies(ctx)
	if err != nil {
		t.Fatalf("GetActiveCurrencies failed: %v", err)
	}
	if len(currencies) != 3 {
		t.Errorf("Expected 3 active currencies after reactivation, got %d", len(currencies))
	}
}

func TestHistoricals_InsertSelectUpdate(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	eur, _ := service.GetActiveCurrencyByCode(ctx, "EUR")
	gbp, _ := service.GetActiveCurrencyByCode(ctx, "GBP")

	rows := []models.HistoricalRate{
		{CurrencyId: eur.Id, Rate: decimal.RequireFromString("0.92"), Date: "2024-03-01"},
		{CurrencyId: gbp.Id, Rate: decimal.RequireFromString("0.7891"), Date: "2024-03-01"},
		{CurrencyId: eur.Id, Rate: decimal.RequireFromString("0.93"), Date: "2024-03-02"},
	}
	if err := service.InsertHistoricals(ctx, rows); err != nil {
		t.Fatalf("InsertHistoricals failed: %v", err)
	}

	stored, err := service.GetHistoricalsByDate(ctx, "2024-03-01")
	if err != nil {
		t.Fatalf("GetHistoricalsByDate failed: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("Expected 2 rows for 2024-03-01, got %d", len(stored))
	}

	var eurRow models.HistoricalRate
	for _, r := range stored {
		if r.CurrencyId == eur.Id {
			eurRow = r
		}
	}
	if !eurRow.Rate.Equal(decimal.RequireFromString("0.92")) {
		t.Errorf("Expected EUR rate 0.92, got %s", eurRow.Rate.String())
	}

	if err := service.UpdateHistoricalRate(ctx, eurRow.Id, decimal.RequireFromString("0.9215")); err != nil {
		t.Fatalf("UpdateHistoricalRate failed: %v", err)
	}

	stored, _ = service.GetHistoricalsByDate(ctx, "2024-03-01")
	for _, r := range stored {
		if r.Id == eurRow.Id && !r.Rate.Equal(decimal.RequireFromString("0.9215")) {
			t.Errorf("Expected updated rate 0.9215, got %s", r.Rate.String())
		}
	}
}

func TestInsertHistoricals_DuplicateRollsBackBatch(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	eur, _ := service.GetActiveCurrencyByCode(ctx, "EUR")
	gbp, _ := service.GetActiveCurrencyByCode(ctx, "GBP")

	first := []models.HistoricalRate{{CurrencyId: eur.Id, Rate: decimal.RequireFromString("0.92"), Date: "2024-03-01"}}
	if err := service.InsertHistoricals(ctx, first); err != nil {
		t.Fatalf("InsertHistoricals failed: %v", err)
	}

	batch := []models.HistoricalRate{
		{CurrencyId: gbp.Id, Rate: decimal.RequireFromString("0.79"), Date: "2024-03-01"},
		{CurrencyId: eur.Id, Rate: decimal.RequireFromString("0.95"), Date: "2024-03-01"},
	}
	if err := service.InsertHistoricals(ctx, batch); err == nil {
		t.Fatal("Expected unique constraint error")
	}

	stored, _ := service.GetHistoricalsByDate(ctx, "2024-03-01")
	if len(stored) != 1 {
		t.Errorf("Expected failed batch to leave 1 row, got %d", len(stored))
	}
}

func TestUpdateHistoricalRate_UnknownId(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	if err := service.UpdateHistoricalRate(context.Background(), 9999, decimal.NewFromInt(1)); err == nil {
		t.Error("Expected error updating unknown row")
	}
}

func TestCurrencyInfo_InsertGetUpdate(t *testing.T) {
	service, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	eur, _ := service.GetActiveCurrencyByCode(ctx, "EUR")

	missing, err := service.GetCurrencyInfo(ctx, eur.Id)
	if err != nil {
		t.Fatalf("GetCurrencyInfo failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("Expected nil info before insert, got %+v", missing)
	}

	overview := "the euro is the official currency of 20 of the 27 member states"
	info := &models.CurrencyInfo{
		CurrencyId:     eur.Id,
		CountryCodes:   []string{"DE", "FR"},
		MinorUnitValue: decimal.NewNullDecimal(decimal.RequireFromString("0.01")),
		Coins:          models.Denominations{Frequently: []float64{0.01, 0.02, 1, 2}},
		Overview:       &overview,
	}
	if err := service.InsertCurrencyInfo(ctx, info); err != nil {
		t.Fatalf("InsertCurrencyInfo failed: %v", err)
	}

	stored, err := service.GetCurrencyInfo(ctx, eur.Id)
	if err != nil {
		t.Fatalf("GetCurrencyInfo failed: %v", err)
	}
	if len(stored.CountryCodes) != 2 || stored.CountryCodes[1] != "FR" {
		t.Errorf("Unexpected country codes %v", stored.CountryCodes)
	}
	if stored.Overview == nil || *stored.Overview != overview {
		t.Errorf("Unexpected overview %v", stored.Overview)
	}
	if stored.CentralBank != nil {
		t.Errorf("Expected nil central bank, got %q", *stored.CentralBank)
	}

	bank := "european central bank"
	stored.CentralBank = &bank
	stored.MinorUnitValue = decimal.NewNullDecimal(decimal.Zero)
	if err := service.UpdateCurrencyInfo(ctx, stored); err != nil {
		t.Fatalf("UpdateCurrencyInfo failed: %v", err)
	}

	updated, _ := service.GetCurrencyInfo(ctx, eur.Id)
	if updated.CentralBank == nil || *updated.CentralBank != bank {
		t.Errorf("Expected central bank %q, got %v", bank, updated.CentralBank)
	}
	if !updated.MinorUnitValue.Valid || !updated.MinorUnitValue.Decimal.IsZero() {
		t.Errorf("Expected minor unit value 0 to survive storage, got %+v", updated.MinorUnitValue)
	}
}
