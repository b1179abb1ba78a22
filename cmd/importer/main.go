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
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/config"
	"currency-data-sync/internal/importer"
	"currency-data-sync/internal/models"
	"currency-data-sync/internal/provider"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const defaultYear = 2025

var errUsage = errors.New("usage")

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [-schedule \"<cron spec>\"] [startYear] [endYear]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "  Imports USD-based daily rates for every year from startYear down to endYear (default %d %d).\n", defaultYear, defaultYear)
	flag.PrintDefaults()
}

// parseYears reads the optional positional years
func parseYears(args []string) (int, int, error) {
	if len(args) > 2 {
		return 0, 0, errUsage
	}

	years := []int{defaultYear, defaultYear}
	for i, arg := range args {
		year, err := strconv.Atoi(arg)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %q is not a year", errUsage, arg)
		}
		years[i] = year
	}
	// a single year imports just that year
	if len(args) == 1 {
		years[1] = years[0]
	}
	if years[0] < years[1] {
		return 0, 0, fmt.Errorf("%w: %v", errUsage, importer.ErrInvalidRange)
	}
	return years[0], years[1], nil
}

func printSummary(title string, counts importer.Counts, elapsed time.Duration) {
	common.PrintHeader(title, common.DefaultWidth)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Inserted", counts.Inserted)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Updated", counts.Updated)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Skipped", counts.Skipped)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(true), "Failed", counts.Failed)
	common.PrintFooter(fmt.Sprintf("SUMMARY: %d rows written, %d days failed in %s",
		counts.Inserted+counts.Updated, counts.Failed, elapsed.Round(time.Second)), common.DefaultWidth)
}

func runImport(ctx context.Context, cfg *models.Config, fetcher importer.RateFetcher, startYear, endYear int) error {
	ctx, logger := common.NewRunContext(ctx, "importer")

	dbService, err := common.InitializeStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize datastore: %w", err)
	}
	defer dbService.Close()

	currencies, err := common.LoadCurrencyMap(ctx, dbService)
	if err != nil {
		return err
	}

	im := importer.New(fetcher, dbService, currencies, importer.Config{
		RequestDelay:    cfg.Provider.RequestDelay,
		InsertBatchSize: cfg.Provider.InsertBatchSize,
	}, logger)

	started := time.Now()
	counts, err := im.Run(ctx, startYear, endYear)
	printSummary(fmt.Sprintf("HISTORICAL IMPORT %d-%d", startYear, endYear), counts, time.Since(started))
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runScheduled imports the current year on every tick of spec until ctx ends
func runScheduled(ctx context.Context, cfg *models.Config, fetcher importer.RateFetcher, spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		year := time.Now().UTC().Year()
		zap.L().Info("Scheduled import triggered", zap.Int("year", year))
		if err := runImport(ctx, cfg, fetcher, year, year); err != nil {
			zap.L().Error("Scheduled import failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c.Start()
	zap.L().Info("Import scheduler started", zap.String("schedule", spec))

	<-ctx.Done()
	zap.L().Info("Stopping import scheduler")
	<-c.Stop().Done()
	return nil
}

func main() {
	flag.Usage = usage
	schedule := flag.String("schedule", "", "Cron spec; run the current-year import on this schedule instead of once")
	flag.Parse()

	startYear, endYear, err := parseYears(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	_, loggerCleanup := common.InitializeLogger(config.LoadLog())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}
	if err := config.RequireProviderKey(cfg); err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := provider.NewClient(cfg.Provider)
	if err != nil {
		zap.L().Fatal("Failed to initialize provider client", zap.Error(err))
	}

	if *schedule != "" {
		err = runScheduled(ctx, cfg, client, *schedule)
	} else {
		err = runImport(ctx, cfg, client, startYear, endYear)
	}
	if err != nil {
		zap.L().Fatal("Import failed", zap.Error(err))
	}
}
