// Package scoring computes prediction pool points: the per-prediction formula,
// matchday streak bonuses and cumulative rankings. It performs no I/O and holds
// no state between calls.
package scoring

// Outcome is the direction of a scoreline.
type Outcome int

const (
	Unknown Outcome = iota
	HomeWin
	AwayWin
	Draw
)

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return "home_win"
	case AwayWin:
		return "away_win"
	case Draw:
		return "draw"
	}
	return "unknown"
}

// MarshalText renders the outcome as its string form in JSON.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText parses the form written by MarshalText. Unrecognised text
// yields Unknown.
func (o *Outcome) UnmarshalText(text []byte) error {
	switch string(text) {
	case "home_win":
		*o = HomeWin
	case "away_win":
		*o = AwayWin
	case "draw":
		*o = Draw
	default:
		*o = Unknown
	}
	return nil
}

func outcomeOf(home, away int) Outcome {
	switch {
	case home > away:
		return HomeWin
	case home < away:
		return AwayWin
	default:
		return Draw
	}
}

// Odds holds the decimal 1X2 odds of a match. Any field may be missing.
type Odds struct {
	Home *float64 `json:"home,omitempty"`
	Away *float64 `json:"away,omitempty"`
	Draw *float64 `json:"draw,omitempty"`
}

// Any reports whether at least one of the three odds is present.
func (o Odds) Any() bool {
	return o.Home != nil || o.Away != nil || o.Draw != nil
}

// For returns the odds paying out on the given outcome.
func (o Odds) For(out Outcome) *float64 {
	switch out {
	case HomeWin:
		return o.Home
	case AwayWin:
		return o.Away
	case Draw:
		return o.Draw
	}
	return nil
}

// Min returns the smallest present odds value. Missing fields are skipped.
func (o Odds) Min() (float64, bool) {
	var (
		min float64
		ok  bool
	)
	for _, v := range []*float64{o.Home, o.Away, o.Draw} {
		if v == nil {
			continue
		}
		if !ok || *v < min {
			min, ok = *v, true
		}
	}
	return min, ok
}

// Prediction is one participant's forecast for one match.
type Prediction struct {
	ParticipantID   string `json:"participantID"`
	ParticipantName string `json:"participantName,omitempty"`
	MatchID         string `json:"matchID"`
	Home            int    `json:"home"`
	Away            int    `json:"away"`
}

// Outcome is the direction the participant called.
func (p Prediction) Outcome() Outcome {
	return outcomeOf(p.Home, p.Away)
}

// MatchResult is the actual outcome of a match. Nil goals mean the match has
// not been played yet.
type MatchResult struct {
	MatchID     string `json:"matchID"`
	Season      string `json:"season"`
	Competition string `json:"competition,omitempty"`
	Matchday    int    `json:"matchday"`
	HomeTeam    string `json:"homeTeam,omitempty"`
	AwayTeam    string `json:"awayTeam,omitempty"`
	Home        *int   `json:"home,omitempty"`
	Away        *int   `json:"away,omitempty"`
	Odds        Odds   `json:"odds"`
}

// Played reports whether both goal counts are known.
func (r MatchResult) Played() bool {
	return r.Home != nil && r.Away != nil
}

// Outcome is the actual direction, or Unknown before the match is played.
func (r MatchResult) Outcome() Outcome {
	if !r.Played() {
		return Unknown
	}
	return outcomeOf(*r.Home, *r.Away)
}

// ScoredPrediction is a prediction joined with its result and its points.
type ScoredPrediction struct {
	Prediction
	Result MatchResult `json:"result"`
	Points float64     `json:"points"`
}

// MatchdayScore is one participant's aggregated points for one matchday.
// Final is always Raw * Multiplier.
type MatchdayScore struct {
	ParticipantID string  `json:"participantID"`
	Matchday      int     `json:"matchday"`
	Predictions   int     `json:"predictions"`
	Resolved      int     `json:"resolved"`
	Correct       int     `json:"correct"`
	OddsPresent   bool    `json:"oddsPresent"`
	Raw           float64 `json:"raw"`
	Multiplier    float64 `json:"multiplier"`
	Final         float64 `json:"final"`
}

// RankingEntry is a participant's cumulative standing after a matchday.
type RankingEntry struct {
	ParticipantID string  `json:"participantID"`
	Matchday      int     `json:"matchday"`
	Points        float64 `json:"points"`
	Cumulative    float64 `json:"cumulative"`
	Rank          int     `json:"rank"`
	Gap           float64 `json:"gap"`
	Carried       bool    `json:"carried,omitempty"`
}
