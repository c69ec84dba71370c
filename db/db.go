package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/padraicbc/canape/config"
	"github.com/padraicbc/canape/models"
)

const pingTimeout = 10 * time.Second

// Setup opens the pool database and exits the process when it is unreachable.
func Setup(cfg *config.Config) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.PostgresDSN()),
		pgdriver.WithApplicationName("canape"),
	))
	sqldb.SetMaxOpenConns(16)
	sqldb.SetConnMaxIdleTime(5 * time.Minute)

	bdb := bun.NewDB(sqldb, pgdialect.New())
	if cfg.Debug {
		bdb.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := bdb.PingContext(ctx); err != nil {
		log.Fatalf("database unreachable (%s): %v", cfg.DBHost, err)
	}
	return bdb
}

// schema lists the tables parents first so foreign keys resolve.
var schema = []interface{}{
	(*models.Participant)(nil),
	(*models.Match)(nil),
	(*models.Prediction)(nil),
}

// extras are applied after the tables exist. Each one is idempotent.
var extras = []struct{ name, stmt string }{
	{"predictions_no_dupes", `DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'predictions_no_dupes') THEN ALTER TABLE predictions ADD CONSTRAINT predictions_no_dupes UNIQUE (participant_id, match_id); END IF; END $$`},
	{"matches_season_idx", `CREATE INDEX IF NOT EXISTS matches_season_idx ON matches (season, competition, matchday)`},
	{"predictions_match_idx", `CREATE INDEX IF NOT EXISTS predictions_match_idx ON predictions (match_id)`},
}

// CreateTables creates the participants, matches and predictions tables with
// their constraints. Existing tables are left alone.
func CreateTables(ctx context.Context, bdb *bun.DB) error {
	for _, model := range schema {
		if _, err := bdb.NewCreateTable().Model(model).IfNotExists().WithForeignKeys().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}
	for _, x := range extras {
		if _, err := bdb.ExecContext(ctx, x.stmt); err != nil {
			return fmt.Errorf("applying %s: %w", x.name, err)
		}
	}
	return nil
}
