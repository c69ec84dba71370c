// cmd/import/main.go
// Loads the pool's CSV exports into PostgreSQL. Re-running is safe: matches
// are upserted (results and odds refreshed), participants and predictions
// that already exist are kept.
//
// Usage:
//
//	go run ./cmd/import -dir csv
package main

import (
	"context"
	"flag"
	"log"
	"slices"
	"strings"

	"github.com/padraicbc/canape/config"
	"github.com/padraicbc/canape/csvload"
	bundb "github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/models"
)

const matchUpsert = `CONFLICT (match_id) DO UPDATE SET
	season = EXCLUDED.season, competition = EXCLUDED.competition, matchday = EXCLUDED.matchday,
	home_team = EXCLUDED.home_team, away_team = EXCLUDED.away_team,
	home_goals = EXCLUDED.home_goals, away_goals = EXCLUDED.away_goals,
	odds_home = EXCLUDED.odds_home, odds_away = EXCLUDED.odds_away, odds_draw = EXCLUDED.odds_draw`

func main() {
	cfg := config.LoadCLI()
	dir := flag.String("dir", cfg.CSVDir, "directory holding the CSV exports")
	flag.Parse()

	tables, err := csvload.Load(*dir)
	if err != nil {
		log.Fatalf("load %s: %v", *dir, err)
	}
	log.Printf("read %d matches, %d predictions, %d participants", len(tables.Matches), len(tables.Predictions), len(tables.Participants))

	if err := tables.Unresolved(); err != nil {
		log.Fatalf("refusing import: %v", err)
	}

	ctx := context.Background()
	db := bundb.Setup(cfg)
	defer db.Close()
	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	participants := participantRows(tables)
	matches := make([]models.Match, len(tables.Matches))
	for i, m := range tables.Matches {
		matches[i] = models.MatchFromResult(m)
	}
	preds := make([]models.Prediction, len(tables.Predictions))
	for i, p := range tables.Predictions {
		preds[i] = models.Prediction{ParticipantID: p.ParticipantID, MatchID: p.MatchID, Home: p.Home, Away: p.Away}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name string
		fn   func() (int, error)
	}{
		{"participants", func() (int, error) { return bundb.BulkInsert(ctx, tx, participants, "CONFLICT (id) DO NOTHING") }},
		{"matches", func() (int, error) { return bundb.BulkInsert(ctx, tx, matches, matchUpsert) }},
		{"predictions", func() (int, error) {
			return bundb.BulkInsert(ctx, tx, preds, "CONFLICT (participant_id, match_id) DO NOTHING")
		}},
	}
	for _, s := range steps {
		n, err := s.fn()
		if err != nil {
			log.Fatalf("import %s: %v", s.name, err)
		}
		log.Printf("%-15s  %d rows written", s.name, n)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("commit: %v", err)
	}
	log.Println("import complete")
}

// participantRows merges participants.csv with every participant seen in the
// predictions, so foreign keys always resolve.
func participantRows(t *csvload.Tables) []models.Participant {
	byID := make(map[string]string)
	for _, p := range t.Participants {
		byID[p.ID] = p.Name
	}
	for _, p := range t.Predictions {
		if name := byID[p.ParticipantID]; name == "" {
			byID[p.ParticipantID] = strings.TrimSpace(p.ParticipantName)
		}
	}

	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]models.Participant, len(ids))
	for i, id := range ids {
		name := byID[id]
		if name == "" {
			name = id
		}
		out[i] = models.Participant{ID: id, Name: name}
	}
	return out
}
