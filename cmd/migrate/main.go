// cmd/migrate/main.go
// Migrates a legacy MySQL pool database (participants, matchs, pronostics)
// into the local PostgreSQL database.
//
// Usage:
//
//	MYSQL_DSN="user:pass@tcp(host:3306)/canape?parseTime=true" \
//	DB_PASS="pgpass" \
//	go run ./cmd/migrate
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"

	"github.com/padraicbc/canape/config"
	bundb "github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/models"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadCLI()

	// --- MySQL ---
	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN required, e.g.: user:pass@tcp(host:3306)/canape?parseTime=true")
	}
	myDB, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("open mysql: %v", err)
	}
	defer myDB.Close()
	myDB.SetMaxOpenConns(4)
	if err := myDB.PingContext(ctx); err != nil {
		log.Fatalf("ping mysql: %v", err)
	}
	log.Println("connected to MySQL")

	// --- PostgreSQL ---
	pgDB := bundb.Setup(cfg)
	defer pgDB.Close()
	log.Println("connected to PostgreSQL")

	// Create tables (idempotent)
	if err := bundb.CreateTables(ctx, pgDB); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	// Disable FK enforcement so we can load in bulk without strict ordering
	if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'replica'"); err != nil {
		log.Fatalf("disable FK: %v", err)
	}
	defer func() {
		if _, err := pgDB.ExecContext(ctx, "SET session_replication_role = 'origin'"); err != nil {
			log.Printf("re-enable FK: %v", err)
		}
	}()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"participants", func() (int, error) { return migrateParticipants(ctx, myDB, pgDB) }},
		{"matches", func() (int, error) { return migrateMatches(ctx, myDB, pgDB) }},
		{"predictions", func() (int, error) { return migratePredictions(ctx, myDB, pgDB) }},
	}

	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("migrate %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows migrated", s.name, n)
	}

	resetSequences(ctx, pgDB)
	log.Println("migration complete")
}

// --- helpers ---

func nullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

// copyRows streams a MySQL query into PostgreSQL in batches, skipping rows
// that already exist (idempotent re-runs).
func copyRows[T any](ctx context.Context, myDB *sql.DB, pgDB *bun.DB, query string, scan func(*sql.Rows) (T, error)) (int, error) {
	rows, err := myDB.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var batch []T
	total := 0
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return total, err
		}
		batch = append(batch, r)
		if len(batch) >= bundb.BatchSize {
			n, err := bundb.BulkInsert(ctx, pgDB, batch, "CONFLICT DO NOTHING")
			total += n
			if err != nil {
				return total, err
			}
			batch = batch[:0]
		}
	}
	n, err := bundb.BulkInsert(ctx, pgDB, batch, "CONFLICT DO NOTHING")
	if err != nil {
		return total, err
	}
	return total + n, rows.Err()
}

// --- per-table migrations ---

func migrateParticipants(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		"SELECT id, nom, COALESCE(password, ''), COALESCE(is_admin, 0) FROM participants",
		func(rows *sql.Rows) (models.Participant, error) {
			var p models.Participant
			err := rows.Scan(&p.ID, &p.Name, &p.Password, &p.Admin)
			return p, err
		})
}

func migrateMatches(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT match_id, saison, COALESCE(competition, ''), journee,
		        COALESCE(equipe_domicile_nom, ''), COALESCE(equipe_exterieure_nom, ''),
		        score_domicile, score_exterieur, cote_domicile, cote_exterieur, cote_nul
		 FROM matchs`,
		func(rows *sql.Rows) (models.Match, error) {
			var (
				m                   models.Match
				home, away          sql.NullInt64
				oddsH, oddsA, oddsD sql.NullFloat64
			)
			err := rows.Scan(&m.MatchID, &m.Season, &m.Competition, &m.Matchday,
				&m.HomeTeam, &m.AwayTeam, &home, &away, &oddsH, &oddsA, &oddsD)
			m.HomeGoals, m.AwayGoals = nullInt(home), nullInt(away)
			m.OddsHome, m.OddsAway, m.OddsDraw = nullFloat(oddsH), nullFloat(oddsA), nullFloat(oddsD)
			return m, err
		})
}

func migratePredictions(ctx context.Context, myDB *sql.DB, pgDB *bun.DB) (int, error) {
	return copyRows(ctx, myDB, pgDB,
		`SELECT id, participant_id, match_id, score_domicile, score_exterieur
		 FROM pronostics
		 WHERE score_domicile IS NOT NULL AND score_exterieur IS NOT NULL`,
		func(rows *sql.Rows) (models.Prediction, error) {
			var p models.Prediction
			err := rows.Scan(&p.ID, &p.ParticipantID, &p.MatchID, &p.Home, &p.Away)
			return p, err
		})
}

// resetSequences advances each PG sequence to MAX(id) so new inserts don't conflict.
func resetSequences(ctx context.Context, pgDB *bun.DB) {
	seqs := []struct{ seq, table, col string }{
		{"predictions_id_seq", "predictions", "id"},
	}
	for _, s := range seqs {
		q := fmt.Sprintf(
			"SELECT setval('%s', COALESCE((SELECT MAX(%s) FROM %s), 1))",
			s.seq, s.col, s.table,
		)
		if _, err := pgDB.ExecContext(ctx, q); err != nil {
			log.Printf("reset seq %s: %v", s.seq, err)
		}
	}
	log.Println("sequences reset")
}
