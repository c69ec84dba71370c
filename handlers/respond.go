package handlers

import (
	"github.com/shopspring/decimal"

	"github.com/padraicbc/canape/scoring"
)

// round2 rounds to cents for responses; the engine keeps full precision.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func round2p(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := round2(*f)
	return &v
}

func roundSeasonRows(rows []scoring.SeasonRow) []scoring.SeasonRow {
	out := make([]scoring.SeasonRow, len(rows))
	for i, r := range rows {
		r.Total = round2(r.Total)
		out[i] = r
	}
	return out
}

func roundRankings(entries []scoring.RankingEntry) []scoring.RankingEntry {
	out := make([]scoring.RankingEntry, len(entries))
	for i, e := range entries {
		e.Points = round2(e.Points)
		e.Cumulative = round2(e.Cumulative)
		e.Gap = round2(e.Gap)
		out[i] = e
	}
	return out
}

func roundStandings(rows []scoring.StandingRow) []scoring.StandingRow {
	out := make([]scoring.StandingRow, len(rows))
	for i, r := range rows {
		r.Raw = round2(r.Raw)
		r.Final = round2(r.Final)
		r.Gap = round2(r.Gap)
		out[i] = r
	}
	return out
}

func roundSummary(s scoring.Summary) scoring.Summary {
	s.TotalPoints = round2(s.TotalPoints)
	s.MeanPerParticipant = round2(s.MeanPerParticipant)
	s.MeanPerParticipantMatch = round2(s.MeanPerParticipantMatch)
	curve := make([]scoring.CurvePoint, len(s.Curve))
	for i, p := range s.Curve {
		curve[i] = scoring.CurvePoint{Matchday: p.Matchday, Mean: round2(p.Mean), Cumulative: round2(p.Cumulative)}
	}
	s.Curve = curve
	return s
}

func roundStats(s scoring.Stats) scoring.Stats {
	s.Total = round2(s.Total)
	s.Mean = round2(s.Mean)
	s.Max = round2(s.Max)
	s.Min = round2(s.Min)
	s.BestMatchdayPoints = round2(s.BestMatchdayPoints)
	s.MeanCorrectOdds = round2p(s.MeanCorrectOdds)
	s.ROI = round2(s.ROI)
	return s
}

// scoredRow is one prediction as shown in the detailed table.
type scoredRow struct {
	ParticipantID   string          `json:"participantID"`
	ParticipantName string          `json:"participantName,omitempty"`
	MatchID         string          `json:"matchID"`
	Matchday        int             `json:"matchday"`
	HomeTeam        string          `json:"homeTeam,omitempty"`
	AwayTeam        string          `json:"awayTeam,omitempty"`
	Home            int             `json:"home"`
	Away            int             `json:"away"`
	ActualHome      *int            `json:"actualHome,omitempty"`
	ActualAway      *int            `json:"actualAway,omitempty"`
	Odds            scoring.Odds    `json:"odds"`
	Points          float64         `json:"points"`
	Predicted       scoring.Outcome `json:"predicted"`
	Actual          scoring.Outcome `json:"actual"`
	Exact           bool            `json:"exact"`
	Correct         bool            `json:"correct"`
	ROI             float64         `json:"roi"`
}

func newScoredRow(sp scoring.ScoredPrediction) scoredRow {
	c, _ := scoring.Compare(sp.Prediction, sp.Result)
	bet := scoring.Settle(sp.Prediction, sp.Result)
	return scoredRow{
		ParticipantID:   sp.ParticipantID,
		ParticipantName: sp.ParticipantName,
		MatchID:         sp.MatchID,
		Matchday:        sp.Result.Matchday,
		HomeTeam:        sp.Result.HomeTeam,
		AwayTeam:        sp.Result.AwayTeam,
		Home:            sp.Home,
		Away:            sp.Away,
		ActualHome:      sp.Result.Home,
		ActualAway:      sp.Result.Away,
		Odds:            sp.Result.Odds,
		Points:          round2(sp.Points),
		Predicted:       bet.Predicted,
		Actual:          bet.Actual,
		Exact:           c.Exact,
		Correct:         c.OutcomeCorrect,
		ROI:             round2(bet.Net),
	}
}
