package store

import (
	"testing"

	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func TestEncodeDecodeInfo_ZeroMinorUnit(t *testing.T) {
	info := &models.CurrencyInfo{
		CurrencyId:     7,
		CountryCodes:   []string{"JP"},
		MajorUnitName:  strPtr("yen"),
		MinorUnitValue: decimal.NewNullDecimal(decimal.Zero),
		Banknotes:      models.Denominations{Frequently: []float64{1000, 5000, 10000}},
	}

	cols, err := EncodeInfo(info)
	if err != nil {
		t.Fatalf("EncodeInfo failed: %v", err)
	}
	if cols.MinorUnitValue == nil || *cols.MinorUnitValue != "0" {
		t.Fatalf("expected minor unit value \"0\", got %v", cols.MinorUnitValue)
	}
	if cols.Coins != `{"frequently":[],"rarely":[]}` {
		t.Errorf("expected empty coin lists, got %s", cols.Coins)
	}

	decoded, err := DecodeInfo(cols)
	if err != nil {
		t.Fatalf("DecodeInfo failed: %v", err)
	}
	if !decoded.MinorUnitValue.Valid || !decoded.MinorUnitValue.Decimal.IsZero() {
		t.Errorf("expected valid zero minor unit value, got %+v", decoded.MinorUnitValue)
	}
	if len(decoded.Banknotes.Frequently) != 3 || decoded.Banknotes.Frequently[2] != 10000 {
		t.Errorf("unexpected banknotes %+v", decoded.Banknotes)
	}
}

func TestEncodeInfo_NullMinorUnit(t *testing.T) {
	cols, err := EncodeInfo(&models.CurrencyInfo{CurrencyId: 1})
	if err != nil {
		t.Fatalf("EncodeInfo failed: %v", err)
	}
	if cols.MinorUnitValue != nil {
		t.Errorf("expected nil minor unit value, got %q", *cols.MinorUnitValue)
	}
	if cols.CountryCodes != "[]" {
		t.Errorf("expected [] country codes, got %s", cols.CountryCodes)
	}
}
