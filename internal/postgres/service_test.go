package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
)

func TestIsPostgresUrl(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"postgres://user@db.example.supabase.co:5432/postgres", true},
		{"postgresql://localhost/rates", true},
		{"rates.db", false},
		{"file:rates.db", false},
		{"https://example.supabase.co", false},
	}
	for _, tt := range tests {
		if got := IsPostgresUrl(tt.url); got != tt.want {
			t.Errorf("IsPostgresUrl(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestNewService_RejectsNonPostgresUrl(t *testing.T) {
	_, err := NewService(context.Background(), models.DatabaseConfig{Url: "rates.db", MaxOpenConns: 1})
	if err == nil {
		t.Fatal("expected error for sqlite path")
	}
}

// Runs only against a real database: POSTGRES_TEST_URL=postgres://... go test ./internal/postgres
func TestService_Integration(t *testing.T) {
	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	service, err := NewService(ctx, models.DatabaseConfig{Url: url, MaxOpenConns: 2, PingTimeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	defer service.Close()

	if err := service.UpsertCurrency(ctx, models.Currency{Code: "TST", Name: "Test", IsActive: true}); err != nil {
		t.Fatalf("UpsertCurrency failed: %v", err)
	}
	tst, err := service.GetActiveCurrencyByCode(ctx, "TST")
	if err != nil {
		t.Fatalf("GetActiveCurrencyByCode failed: %v", err)
	}

	date := "1999-01-01"
	existing, err := service.GetHistoricalsByDate(ctx, date)
	if err != nil {
		t.Fatalf("GetHistoricalsByDate failed: %v", err)
	}
	for _, r := range existing {
		if r.CurrencyId == tst.Id {
			if err := service.UpdateHistoricalRate(ctx, r.Id, decimal.RequireFromString("1.2345")); err != nil {
				t.Fatalf("UpdateHistoricalRate failed: %v", err)
			}
			return
		}
	}

	rows := []models.HistoricalRate{{CurrencyId: tst.Id, Rate: decimal.RequireFromString("1.2345"), Date: date}}
	if err := service.InsertHistoricals(ctx, rows); err != nil {
		t.Fatalf("InsertHistoricals failed: %v", err)
	}
}
