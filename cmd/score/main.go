// cmd/score/main.go
// Scores a season straight from the CSV exports and prints the result as JSON.
// No database is involved.
//
// Usage:
//
//	go run ./cmd/score -dir csv -season 2425 [-competition "Ligue 1"] [-dense]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/padraicbc/canape/csvload"
	"github.com/padraicbc/canape/scoring"
)

type output struct {
	Season      string                 `json:"season"`
	Competition string                 `json:"competition,omitempty"`
	Standings   []scoring.SeasonRow    `json:"standings"`
	Rankings    []scoring.RankingEntry `json:"rankings"`
	Summary     scoring.Summary        `json:"summary"`
	Stats       []scoring.Stats        `json:"stats,omitempty"`
}

func main() {
	dir := flag.String("dir", "csv", "directory holding the CSV exports")
	season := flag.String("season", "", "season to score (required)")
	competition := flag.String("competition", "", "restrict to one competition")
	dense := flag.Bool("dense", false, "emit carried ranking rows for skipped matchdays")
	played := flag.Bool("played", false, "keep only matchdays with positive total points")
	withStats := flag.Bool("stats", false, "include per-participant statistics")
	flag.Parse()

	if *season == "" {
		log.Fatal("-season is required")
	}

	tables, err := csvload.Load(*dir)
	if err != nil {
		log.Fatalf("load %s: %v", *dir, err)
	}
	preds, results, err := tables.Select(*season, *competition)
	if err != nil {
		reportUnresolved(err)
		log.Fatalf("select: %v", err)
	}
	if len(results) == 0 {
		log.Fatalf("no matches for season %q", *season)
	}

	s, err := scoring.ComputeSeason(preds, results, scoring.SeasonOptions{
		Rankings: scoring.RankingOptions{Dense: *dense, PlayedOnly: *played},
	})
	if err != nil {
		reportUnresolved(err)
		log.Fatalf("score: %v", err)
	}

	out := output{
		Season:      *season,
		Competition: *competition,
		Standings:   s.Standings,
		Rankings:    s.Rankings,
		Summary:     s.Summary,
	}
	if *withStats {
		for _, row := range s.Standings {
			st, _ := s.Stats(row.ParticipantID)
			out.Stats = append(out.Stats, st)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal(err)
	}
}

// reportUnresolved lists every orphan prediction on stderr.
func reportUnresolved(err error) {
	var ure *scoring.UnresolvedReferenceError
	if errors.As(err, &ure) {
		for _, r := range ure.Refs {
			fmt.Fprintf(os.Stderr, "unresolved: participant %s match %s\n", r.ParticipantID, r.MatchID)
		}
	}
}
