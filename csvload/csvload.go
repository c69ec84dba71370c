// Package csvload reads the pool's CSV exports (matches, predictions and
// participants) into scoring records.
package csvload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"github.com/padraicbc/canape/scoring"
)

// File names inside a CSV directory.
const (
	MatchesFile      = "all_matchs_football.csv"
	PredictionsFile  = "all_pronostics.csv"
	ParticipantsFile = "participants.csv"
)

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing column")

// Participant is a row of participants.csv.
type Participant struct {
	ID   string
	Name string
}

// Tables is the content of a CSV directory.
type Tables struct {
	Matches      []scoring.MatchResult
	Predictions  []scoring.Prediction
	Participants []Participant
}

// Load reads the three tables from dir. participants.csv is optional.
func Load(dir string) (*Tables, error) {
	var t Tables
	var err error

	if t.Matches, err = readFile(filepath.Join(dir, MatchesFile), ReadMatches); err != nil {
		return nil, err
	}
	if t.Predictions, err = readFile(filepath.Join(dir, PredictionsFile), ReadPredictions); err != nil {
		return nil, err
	}
	t.Participants, err = readFile(filepath.Join(dir, ParticipantsFile), ReadParticipants)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &t, nil
}

// Unresolved reports predictions whose match_id names no row of the matches
// table, as a *scoring.UnresolvedReferenceError.
func (t *Tables) Unresolved() error {
	known := make(map[string]bool, len(t.Matches))
	for _, m := range t.Matches {
		known[m.MatchID] = true
	}
	var missing []scoring.Reference
	for _, p := range t.Predictions {
		if !known[p.MatchID] {
			missing = append(missing, scoring.Reference{ParticipantID: p.ParticipantID, MatchID: p.MatchID})
		}
	}
	if len(missing) > 0 {
		return &scoring.UnresolvedReferenceError{Refs: missing}
	}
	return nil
}

// Select returns the matches of a season (and competition when set) and the
// predictions made on them. It fails when any prediction, in any season,
// points at an unknown match.
func (t *Tables) Select(season, competition string) ([]scoring.Prediction, []scoring.MatchResult, error) {
	if err := t.Unresolved(); err != nil {
		return nil, nil, err
	}
	var results []scoring.MatchResult
	keep := make(map[string]bool)
	for _, m := range t.Matches {
		if m.Season != season || (competition != "" && m.Competition != competition) {
			continue
		}
		results = append(results, m)
		keep[m.MatchID] = true
	}
	var preds []scoring.Prediction
	for _, p := range t.Predictions {
		if keep[p.MatchID] {
			preds = append(preds, p)
		}
	}
	return preds, results, nil
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// ReadMatches parses all_matchs_football.csv.
func ReadMatches(r io.Reader) ([]scoring.MatchResult, error) {
	return readRows(r, []string{"match_id", "saison", "journee"}, func(row record) (scoring.MatchResult, error) {
		m := scoring.MatchResult{
			MatchID:     row.text("match_id"),
			Season:      row.text("saison"),
			Competition: row.text("competition"),
			HomeTeam:    row.text("equipe_domicile_nom"),
			AwayTeam:    row.text("equipe_exterieure_nom"),
		}
		var err error
		matchday, e := row.whole("journee")
		err = multierr.Append(err, e)
		if matchday != nil {
			m.Matchday = *matchday
		}

		m.Home, e = row.whole("score_domicile")
		err = multierr.Append(err, e)
		m.Away, e = row.whole("score_exterieur")
		err = multierr.Append(err, e)
		m.Odds.Home, e = row.number("cote_domicile")
		err = multierr.Append(err, e)
		m.Odds.Away, e = row.number("cote_exterieur")
		err = multierr.Append(err, e)
		m.Odds.Draw, e = row.number("cote_nul")
		err = multierr.Append(err, e)

		if m.MatchID == "" {
			err = multierr.Append(err, errors.New("empty match_id"))
		}
		if matchday == nil {
			err = multierr.Append(err, errors.New("empty journee"))
		}
		return m, err
	})
}

// ReadPredictions parses all_pronostics.csv.
func ReadPredictions(r io.Reader) ([]scoring.Prediction, error) {
	required := []string{"participant_id", "match_id", "score_domicile", "score_exterieur"}
	return readRows(r, required, func(row record) (scoring.Prediction, error) {
		p := scoring.Prediction{
			ParticipantID:   row.text("participant_id"),
			ParticipantName: row.text("participant_nom"),
			MatchID:         row.text("match_id"),
		}
		var err error
		home, e := row.whole("score_domicile")
		err = multierr.Append(err, e)
		away, e := row.whole("score_exterieur")
		err = multierr.Append(err, e)

		if p.ParticipantID == "" || p.MatchID == "" {
			err = multierr.Append(err, errors.New("empty participant_id or match_id"))
		}
		if home == nil || away == nil {
			err = multierr.Append(err, errors.New("prediction without a scoreline"))
		} else {
			p.Home, p.Away = *home, *away
		}
		return p, err
	})
}

// ReadParticipants parses participants.csv.
func ReadParticipants(r io.Reader) ([]Participant, error) {
	return readRows(r, []string{"id", "nom"}, func(row record) (Participant, error) {
		p := Participant{ID: row.text("id"), Name: row.text("nom")}
		if p.ID == "" {
			return p, errors.New("empty id")
		}
		return p, nil
	})
}

type record struct {
	cols   map[string]int
	fields []string
}

func (r record) text(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return strings.TrimSpace(r.fields[i])
}

// whole parses a whole number, accepting float renderings such as "2.0".
// Empty cells are nil.
func (r record) whole(name string) (*int, error) {
	s := r.text(name)
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && math.IsNaN(f) {
		return nil, nil
	}
	if err != nil || f != math.Trunc(f) {
		return nil, fmt.Errorf("%s: %q is not a whole number", name, s)
	}
	n := int(f)
	return &n, nil
}

func (r record) number(name string) (*float64, error) {
	s := r.text(name)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: %q is not a number", name, s)
	}
	if math.IsNaN(f) {
		return nil, nil
	}
	return &f, nil
}

// readRows locates columns by header name and converts every data row.
// Row errors are collected and returned together with their line numbers.
func readRows[T any](r io.Reader, required []string, convert func(record) (T, error)) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	var (
		out  []T
		errs error
	)
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError already carries its line
			errs = multierr.Append(errs, err)
			continue
		}
		line, _ := cr.FieldPos(0)
		v, err := convert(record{cols: cols, fields: fields})
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		out = append(out, v)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
