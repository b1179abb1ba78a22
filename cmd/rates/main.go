/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"
	"time"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/config"
	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"go.uber.org/zap"
)

type rateLine struct {
	code string
	rate models.HistoricalRate
}

// collectRates joins the day's rates to currency codes, sorted by code.
// Rates of currencies no longer active are labelled by id.
func collectRates(ctx context.Context, rates store.HistoricalStore, currencies store.CurrencyStore, date, code string) ([]rateLine, error) {
	active, err := currencies.GetActiveCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load currencies: %w", err)
	}
	codes := make(map[int64]string, len(active))
	for _, c := range active {
		codes[c.Id] = c.Code
	}

	rows, err := rates.GetHistoricalsByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates: %w", err)
	}

	lines := make([]rateLine, 0, len(rows))
	for _, row := range rows {
		label, ok := codes[row.CurrencyId]
		if !ok {
			label = fmt.Sprintf("#%d", row.CurrencyId)
		}
		if code != "" && !strings.EqualFold(label, code) {
			continue
		}
		lines = append(lines, rateLine{code: label, rate: row})
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].code < lines[j].code })
	return lines, nil
}

func printRates(lines []rateLine) {
	for i, line := range lines {
		fmt.Printf("%s %-6s: %24s (updated: %s)\n",
			common.BoxPrefix(i == len(lines)-1),
			line.code,
			line.rate.Rate.String(),
			line.rate.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger(config.LoadLog())
	defer loggerCleanup()

	dateFlag := flag.String("date", time.Now().UTC().AddDate(0, 0, -1).Format(models.DateLayout), "Date to report (YYYY-MM-DD)")
	codeFlag := flag.String("code", "", "Filter by currency code (optional)")
	flag.Parse()

	if _, err := time.Parse(models.DateLayout, *dateFlag); err != nil {
		logger.Fatal("Invalid date", zap.String("date", *dateFlag), zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	dbService, err := common.InitializeStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize datastore", zap.Error(err))
	}
	defer dbService.Close()

	lines, err := collectRates(ctx, dbService, dbService, *dateFlag, *codeFlag)
	if err != nil {
		logger.Fatal("Failed to build report", zap.Error(err))
	}

	common.PrintHeader(fmt.Sprintf("USD RATES FOR %s", *dateFlag), common.DefaultWidth)
	printRates(lines)
	common.PrintFooter(fmt.Sprintf("SUMMARY: %d rates stored for %s", len(lines), *dateFlag), common.DefaultWidth)
}
