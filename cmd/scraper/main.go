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
	"syscall"
	"time"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/config"
	"currency-data-sync/internal/scraper"

	"go.uber.org/zap"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [currencyCode]\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "  Scrapes currency info for one code, or every active currency when omitted.")
}

func printSummary(summary scraper.Summary, elapsed time.Duration) {
	common.PrintHeader("CURRENCY INFO SCRAPE", common.DefaultWidth)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Inserted", summary.Inserted)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Updated", summary.Updated)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Unchanged", summary.Unchanged)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(false), "Empty", summary.Empty)
	fmt.Printf("%s %-10s: %d\n", common.BoxPrefix(true), "Failed", summary.Failed)
	common.PrintFooter(fmt.Sprintf("SUMMARY: %d currencies processed in %s",
		summary.Total, elapsed.Round(time.Second)), common.DefaultWidth)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() > 1 {
		usage()
		os.Exit(1)
	}
	code := flag.Arg(0)

	_, loggerCleanup := common.InitializeLogger(config.LoadLog())
	defer loggerCleanup()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, logger := common.NewRunContext(ctx, "scraper")

	dbService, err := common.InitializeStore(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize datastore", zap.Error(err))
	}
	defer dbService.Close()

	pages, err := scraper.NewPageClient(cfg.Scraper)
	if err != nil {
		logger.Fatal("Failed to initialize page client", zap.Error(err))
	}

	s := scraper.New(pages, dbService, dbService, cfg.Scraper.RequestDelay, logger)

	started := time.Now()
	summary, err := s.Run(ctx, code)
	if scraper.IsUnknownCurrency(err) {
		logger.Fatal("Unknown or inactive currency", zap.String("code", code), zap.Error(err))
	}
	printSummary(summary, time.Since(started))
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("Scrape failed", zap.Error(err))
	}
}
