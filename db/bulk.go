package db

import (
	"context"

	"github.com/uptrace/bun"
)

// BatchSize is the number of rows per multi-row INSERT.
const BatchSize = 500

// BulkInsert inserts rows in batches. onConflict is the ON clause, e.g.
// "CONFLICT DO NOTHING" for idempotent re-runs.
func BulkInsert[T any](ctx context.Context, db bun.IDB, rows []T, onConflict string) (int, error) {
	total := 0
	for start := 0; start < len(rows); start += BatchSize {
		batch := rows[start:min(start+BatchSize, len(rows))]
		q := db.NewInsert().Model(&batch)
		if onConflict != "" {
			q = q.On(onConflict)
		}
		if _, err := q.Exec(ctx); err != nil {
			return total, err
		}
		total += len(batch)
	}
	return total, nil
}
