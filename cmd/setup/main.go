package main

import (
	"context"
	"flag"
	"fmt"

	"currency-data-sync/internal/common"
	"currency-data-sync/internal/config"
	"currency-data-sync/internal/models"
	"currency-data-sync/internal/store"

	"go.uber.org/zap"
)

// seedCurrencies upserts every currency from the seed file and returns how
// many were written
func seedCurrencies(ctx context.Context, currencies store.CurrencyStore, seed []models.Currency) (int, error) {
	var seeded int
	for _, currency := range seed {
		if err := currencies.UpsertCurrency(ctx, currency); err != nil {
			zap.L().Error("Error seeding currency",
				zap.String("code", currency.Code),
				zap.Error(err))
			return seeded, err
		}
		seeded++
		zap.L().Debug("Seeded currency",
			zap.String("code", currency.Code),
			zap.Bool("active", currency.IsActive))
	}
	return seeded, nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger(config.LoadLog())
	defer loggerCleanup()

	seedFlag := flag.String("currencies", "", "Path to the currencies seed file (default: CURRENCIES_FILE)")
	schemaOnly := flag.Bool("schema-only", false, "Create the schema without seeding currencies")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	dbService, err := common.InitializeStore(ctx, cfg.Database)
	if err != nil {
		zap.L().Fatal("Failed to initialize datastore", zap.Error(err))
	}
	defer dbService.Close()

	if err := dbService.InitSchema(ctx); err != nil {
		zap.L().Fatal("Failed to create schema", zap.Error(err))
	}
	zap.L().Info("Schema ready")

	if *schemaOnly {
		return
	}

	seedFile := cfg.Database.CurrenciesFile
	if *seedFlag != "" {
		seedFile = *seedFlag
	}

	zap.L().Info("Loading currency seed", zap.String("file", seedFile))
	seed, err := common.LoadCurrencySeed(seedFile)
	if err != nil {
		zap.L().Fatal("Failed to load currency seed", zap.Error(err))
	}

	seeded, err := seedCurrencies(ctx, dbService, seed)
	if err != nil {
		zap.L().Fatal("Failed to seed currencies", zap.Int("seeded", seeded), zap.Error(err))
	}

	common.PrintFooter(fmt.Sprintf("SETUP COMPLETE: %d currencies seeded from %s", seeded, seedFile), common.DefaultWidth)
	zap.L().Info("Setup completed", zap.Int("currencies", seeded))
}
