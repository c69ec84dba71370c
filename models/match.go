package models

import (
	"github.com/uptrace/bun"

	"github.com/padraicbc/canape/scoring"
)

// Match is a fixture with its result and 1X2 odds once known.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	MatchID     string   `bun:"match_id,pk" json:"matchID"`
	Season      string   `bun:"season,notnull" json:"season"`
	Competition string   `bun:"competition,notnull,default:''" json:"competition"`
	Matchday    int      `bun:"matchday,notnull" json:"matchday"`
	HomeTeam    string   `bun:"home_team,notnull,default:''" json:"homeTeam"`
	AwayTeam    string   `bun:"away_team,notnull,default:''" json:"awayTeam"`
	HomeGoals   *int     `bun:"home_goals" json:"homeGoals,omitempty"`
	AwayGoals   *int     `bun:"away_goals" json:"awayGoals,omitempty"`
	OddsHome    *float64 `bun:"odds_home" json:"oddsHome,omitempty"`
	OddsAway    *float64 `bun:"odds_away" json:"oddsAway,omitempty"`
	OddsDraw    *float64 `bun:"odds_draw" json:"oddsDraw,omitempty"`
}

// Result converts the row to the engine's record.
func (m *Match) Result() scoring.MatchResult {
	return scoring.MatchResult{
		MatchID:     m.MatchID,
		Season:      m.Season,
		Competition: m.Competition,
		Matchday:    m.Matchday,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		Home:        m.HomeGoals,
		Away:        m.AwayGoals,
		Odds:        scoring.Odds{Home: m.OddsHome, Away: m.OddsAway, Draw: m.OddsDraw},
	}
}

// MatchFromResult is the inverse of Result.
func MatchFromResult(r scoring.MatchResult) Match {
	return Match{
		MatchID:     r.MatchID,
		Season:      r.Season,
		Competition: r.Competition,
		Matchday:    r.Matchday,
		HomeTeam:    r.HomeTeam,
		AwayTeam:    r.AwayTeam,
		HomeGoals:   r.Home,
		AwayGoals:   r.Away,
		OddsHome:    r.Odds.Home,
		OddsAway:    r.Odds.Away,
		OddsDraw:    r.Odds.Draw,
	}
}
