package importer

import (
	"context"
	"fmt"

	"currency-data-sync/internal/store"

	"golang.org/x/sync/errgroup"
)

// DefaultInsertBatchSize is the largest insert the datastore accepts per request
const DefaultInsertBatchSize = 1000

// persist writes a plan: inserts in chunks of batchSize, updates concurrently.
// The first failure is returned; nothing is retried.
func persist(ctx context.Context, historicals store.HistoricalStore, plan Plan, batchSize int) error {
	if batchSize <= 0 {
		batchSize = DefaultInsertBatchSize
	}

	for start := 0; start < len(plan.Inserts); start += batchSize {
		end := min(start+batchSize, len(plan.Inserts))
		if err := historicals.InsertHistoricals(ctx, plan.Inserts[start:end]); err != nil {
			return fmt.Errorf("insert batch %d-%d: %w", start, end, err)
		}
	}

	if len(plan.Updates) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, row := range plan.Updates {
		row := row
		g.Go(func() error {
			if err := historicals.UpdateHistoricalRate(gctx, row.Id, row.Rate); err != nil {
				return fmt.Errorf("update currency %d: %w", row.CurrencyId, err)
			}
			return nil
		})
	}
	return g.Wait()
}
