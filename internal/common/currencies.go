package common

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

// CurrencyMap resolves ISO codes to currency ids. It is built once per run
// and passed to every unit of work.
type CurrencyMap map[string]int64

// LoadCurrencyMap reads every active currency; an empty result is an error
func LoadCurrencyMap(ctx context.Context, currencies store.CurrencyStore) (CurrencyMap, error) {
	active, err := currencies.GetActiveCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	if len(active) == 0 {
		return nil, store.ErrNoActiveCurrencies
	}

	m := make(CurrencyMap, len(active))
	for _, c := range active {
		m[strings.ToUpper(c.Code)] = c.Id
	}

	zap.L().Info("Loaded currency map", zap.Int("count", len(m)))
	return m, nil
}

// Lookup returns the id for code, case-insensitively
func (m CurrencyMap) Lookup(code string) (int64, bool) {
	id, ok := m[strings.ToUpper(code)]
	return id, ok
}

type CurrencySeed struct {
	Currencies []CurrencySeedEntry `yaml:"currencies"`
}

type CurrencySeedEntry struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Active *bool  `yaml:"active"` // defaults to true
}

// LoadCurrencySeed reads the reference currencies list used by setup
func LoadCurrencySeed(seedFile string) ([]models.Currency, error) {
	var seedPath string
	if filepath.IsAbs(seedFile) {
		seedPath = seedFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		seedPath = filepath.Join(wd, seedFile)
	}

	data, err := os.ReadFile(seedPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", seedFile, err)
	}

	return parseCurrencySeed(data, seedFile)
}

func parseCurrencySeed(data []byte, source string) ([]models.Currency, error) {
	var seed CurrencySeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", source, err)
	}

	currencies := make([]models.Currency, 0, len(seed.Currencies))
	seen := make(map[string]bool, len(seed.Currencies))
	for i, entry := range seed.Currencies {
		code := strings.ToUpper(strings.TrimSpace(entry.Code))
		if code == "" {
			return nil, fmt.Errorf("currency at index %d missing code", i)
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate currency code %s", code)
		}
		seen[code] = true

		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		currencies = append(currencies, models.Currency{Code: code, Name: entry.Name, IsActive: active})
	}

	return currencies, nil
}
