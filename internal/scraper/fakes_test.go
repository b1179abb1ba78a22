package scraper

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"
)

type fakeCurrencies struct {
	currencies []models.Currency
}

func (f *fakeCurrencies) GetActiveCurrencies(_ context.Context) ([]models.Currency, error) {
	var out []models.Currency
	for _, c := range f.currencies {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCurrencies) GetActiveCurrencyByCode(_ context.Context, code string) (*models.Currency, error) {
	for _, c := range f.currencies {
		if c.IsActive && c.Code == code {
			c := c
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", store.ErrCurrencyNotFound, code)
}

func (f *fakeCurrencies) UpsertCurrency(_ context.Context, currency models.Currency) error {
	f.currencies = append(f.currencies, currency)
	return nil
}

// memoryInfo is an in-memory InfoStore keyed by currency id
type memoryInfo struct {
	mu      sync.Mutex
	rows    map[int64]*models.CurrencyInfo
	inserts int
	updates int
	failGet error
}

func newMemoryInfo() *memoryInfo {
	return &memoryInfo{rows: make(map[int64]*models.CurrencyInfo)}
}

func (m *memoryInfo) GetCurrencyInfo(_ context.Context, currencyId int64) (*models.CurrencyInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	row, ok := m.rows[currencyId]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (m *memoryInfo) InsertCurrencyInfo(_ context.Context, info *models.CurrencyInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[info.CurrencyId]; ok {
		return fmt.Errorf("duplicate info for currency %d", info.CurrencyId)
	}
	m.inserts++
	cp := *info
	m.rows[info.CurrencyId] = &cp
	return nil
}

func (m *memoryInfo) UpdateCurrencyInfo(_ context.Context, info *models.CurrencyInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[info.CurrencyId]; !ok {
		return fmt.Errorf("no info for currency %d", info.CurrencyId)
	}
	m.updates++
	cp := *info
	m.rows[info.CurrencyId] = &cp
	return nil
}

// staticPages serves canned HTML per code and records the fetch order
type staticPages struct {
	pages   map[string]string
	errs    map[string]error
	fetched []string
}

func (s *staticPages) FetchPage(_ context.Context, code string) (string, error) {
	s.fetched = append(s.fetched, code)
	if err, ok := s.errs[code]; ok {
		return "", err
	}
	page, ok := s.pages[code]
	if !ok {
		return "", &StatusError{Code: code, StatusCode: 404}
	}
	return page, nil
}

func strPtr(s string) *string {
	return &s
}

// infoPage renders a minimal markup-only info page
func infoPage(country, major, minorValue, overview, bank string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	if country != "" {
		b.WriteString(`<h2>Countries using this currency</h2><ul><li><img src="/images/flags/` + country + `.svg"></li></ul>`)
	}
	if major != "" {
		b.WriteString(`<div><h3>Major Unit</h3><span>Name:</span><span class="font-medium">` + major + `</span></div>`)
	}
	if minorValue != "" {
		b.WriteString(`<div><h3>Minor Unit</h3><span>Symbol:</span><span class="font-medium text-lg">` + minorValue + `</span></div>`)
	}
	if overview != "" {
		b.WriteString(`<h2>Overview</h2><p>` + overview + `</p>`)
	}
	if bank != "" {
		b.WriteString(`<div><span>Central Bank:</span><span>` + bank + `</span></div>`)
	}
	b.WriteString("</body></html>")
	return b.String()
}
