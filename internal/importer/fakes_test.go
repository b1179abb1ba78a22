package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"currency-data-sync/internal/models"

	"github.com/shopspring/decimal"
)

// memoryStore is an in-memory HistoricalStore that records call counts
type memoryStore struct {
	mu          sync.Mutex
	rows        []models.HistoricalRate
	nextId      int64
	insertCalls []int
	updateCalls int
	selectCalls int
	failInsert  error
	failUpdate  error
}

func (m *memoryStore) GetHistoricalsByDate(_ context.Context, date string) ([]models.HistoricalRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectCalls++

	var out []models.HistoricalRate
	for _, r := range m.rows {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryStore) InsertHistoricals(_ context.Context, rows []models.HistoricalRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertCalls = append(m.insertCalls, len(rows))
	if m.failInsert != nil {
		return m.failInsert
	}

	for _, r := range rows {
		m.nextId++
		r.Id = m.nextId
		m.rows = append(m.rows, r)
	}
	return nil
}

func (m *memoryStore) UpdateHistoricalRate(_ context.Context, id int64, rate decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateCalls++
	if m.failUpdate != nil {
		return m.failUpdate
	}

	for i := range m.rows {
		if m.rows[i].Id == id {
			m.rows[i].Rate = rate
			return nil
		}
	}
	return fmt.Errorf("row %d not found", id)
}

func (m *memoryStore) find(currencyId int64, date string) (models.HistoricalRate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.CurrencyId == currencyId && r.Date == date {
			return r, true
		}
	}
	return models.HistoricalRate{}, false
}

// staticFetcher returns the same table for every day unless overridden
type staticFetcher struct {
	table  map[string]decimal.Decimal
	perDay map[string]error
	calls  int
}

func (f *staticFetcher) GetHistory(_ context.Context, day time.Time) (map[string]decimal.Decimal, error) {
	f.calls++
	if err, ok := f.perDay[day.Format(models.DateLayout)]; ok {
		return nil, err
	}
	if f.table == nil {
		return nil, errors.New("no table configured")
	}
	return f.table, nil
}

func rates(pairs ...string) map[string]decimal.Decimal {
	table := make(map[string]decimal.Decimal)
	for i := 0; i+1 < len(pairs); i += 2 {
		table[pairs[i]] = decimal.RequireFromString(pairs[i+1])
	}
	return table
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 15, 30, 0, 0, time.UTC) }
}
