package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"

	"github.com/padraicbc/canape/models"
	"github.com/padraicbc/canape/scoring"
)

// Filter selects the matches of one season, optionally narrowed to a
// competition.
type Filter struct {
	Season      string
	Competition string
}

func (f Filter) String() string {
	if f.Competition == "" {
		return f.Season
	}
	return f.Season + "/" + f.Competition
}

func (f Filter) apply(q *bun.SelectQuery) *bun.SelectQuery {
	q = q.Where("m.season = ?", f.Season)
	if f.Competition != "" {
		q = q.Where("m.competition = ?", f.Competition)
	}
	return q
}

// predictionRow is a flat scan target for the predictions join query.
type predictionRow struct {
	ParticipantID   string `bun:"participant_id"`
	ParticipantName string `bun:"participant_name"`
	MatchID         string `bun:"match_id"`
	Home            int    `bun:"home"`
	Away            int    `bun:"away"`
}

const predictionsJoinSQL = `
SELECT
	pr.participant_id, p.name AS participant_name, pr.match_id, pr.home, pr.away
FROM predictions pr
INNER JOIN participants p ON pr.participant_id = p.id
INNER JOIN matches      m ON pr.match_id       = m.match_id
`

func predictionsQuery(f Filter) (string, []any) {
	var (
		where = []string{"m.season = ?"}
		args  = []any{f.Season}
	)
	if f.Competition != "" {
		where = append(where, "m.competition = ?")
		args = append(args, f.Competition)
	}
	return predictionsJoinSQL + "WHERE " + strings.Join(where, " AND ") + " ORDER BY pr.participant_id, pr.match_id", args
}

// LoadSeason reads the predictions and matches selected by f. Both queries
// run concurrently.
func LoadSeason(ctx context.Context, db bun.IDB, f Filter) ([]scoring.Prediction, []scoring.MatchResult, error) {
	var (
		rows    []predictionRow
		matches []models.Match
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		q, args := predictionsQuery(f)
		if err := db.NewRaw(q, args...).Scan(ctx, &rows); err != nil {
			return fmt.Errorf("load predictions %s: %w", f, err)
		}
		return nil
	})
	g.Go(func() error {
		q := f.apply(db.NewSelect().Model(&matches)).Order("m.matchday", "m.match_id")
		if err := q.Scan(ctx); err != nil {
			return fmt.Errorf("load matches %s: %w", f, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	preds := make([]scoring.Prediction, len(rows))
	for i, r := range rows {
		preds[i] = scoring.Prediction{
			ParticipantID:   r.ParticipantID,
			ParticipantName: r.ParticipantName,
			MatchID:         r.MatchID,
			Home:            r.Home,
			Away:            r.Away,
		}
	}
	results := make([]scoring.MatchResult, len(matches))
	for i := range matches {
		results[i] = matches[i].Result()
	}
	return preds, results, nil
}

// Seasons lists every season with at least one match, newest first.
func Seasons(ctx context.Context, db bun.IDB) ([]string, error) {
	var out []string
	err := db.NewSelect().Model((*models.Match)(nil)).
		ColumnExpr("DISTINCT m.season").
		OrderExpr("m.season DESC").
		Scan(ctx, &out)
	return out, err
}

// Competitions lists the competitions played in a season.
func Competitions(ctx context.Context, db bun.IDB, season string) ([]string, error) {
	var out []string
	err := db.NewSelect().Model((*models.Match)(nil)).
		ColumnExpr("DISTINCT m.competition").
		Where("m.season = ?", season).
		Where("m.competition <> ''").
		OrderExpr("m.competition").
		Scan(ctx, &out)
	return out, err
}

// Matchdays lists the matchdays selected by f in ascending order.
func Matchdays(ctx context.Context, db bun.IDB, f Filter) ([]int, error) {
	var out []int
	q := db.NewSelect().Model((*models.Match)(nil)).ColumnExpr("DISTINCT m.matchday")
	err := f.apply(q).OrderExpr("m.matchday").Scan(ctx, &out)
	return out, err
}
