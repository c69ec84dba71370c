package scoring

import (
	"cmp"
	"math"
	"slices"
)

// StandingRow is one line of a single matchday's table.
type StandingRow struct {
	ParticipantID string  `json:"participantID"`
	Rank          int     `json:"rank"`
	Raw           float64 `json:"raw"`
	Final         float64 `json:"final"`
	Correct       int     `json:"correct"`
	Predictions   int     `json:"predictions"`
	Multiplier    float64 `json:"multiplier"`
	Performance   float64 `json:"performance"`
	Leader        string  `json:"leader"`
	Gap           float64 `json:"gap"`
}

// MatchdayStandings ranks the participants who played the given matchday by
// their final (bonus) points.
func MatchdayStandings(scores []MatchdayScore, matchday int) []StandingRow {
	var day []MatchdayScore
	for _, s := range scores {
		if s.Matchday == matchday {
			day = append(day, s)
		}
	}
	if len(day) == 0 {
		return nil
	}
	slices.SortFunc(day, compareScores)

	finals := make([]float64, len(day))
	for i, s := range day {
		finals[i] = s.Final
	}
	ranks := MinRanks(finals)

	best, leader := day[0].Final, day[0].ParticipantID
	for _, s := range day[1:] {
		if s.Final > best {
			best, leader = s.Final, s.ParticipantID
		}
	}

	rows := make([]StandingRow, len(day))
	for i, s := range day {
		var perf float64
		if best > 0 {
			perf = math.Round(s.Final/best*1000) / 10
		}
		rows[i] = StandingRow{
			ParticipantID: s.ParticipantID,
			Rank:          ranks[i],
			Raw:           s.Raw,
			Final:         s.Final,
			Correct:       s.Correct,
			Predictions:   s.Predictions,
			Multiplier:    s.Multiplier,
			Performance:   perf,
			Leader:        leader,
			Gap:           best - s.Final,
		}
	}
	slices.SortStableFunc(rows, func(a, b StandingRow) int { return cmp.Compare(a.Rank, b.Rank) })
	return rows
}

// SeasonRow is a participant's season total.
type SeasonRow struct {
	ParticipantID string  `json:"participantID"`
	Rank          int     `json:"rank"`
	Total         float64 `json:"total"`
	Matchdays     int     `json:"matchdays"`
	Predictions   int     `json:"predictions"`
	Correct       int     `json:"correct"`
}

// SeasonStandings totals every participant's matchday scores and ranks them.
func SeasonStandings(scores []MatchdayScore) []SeasonRow {
	sorted := slices.Clone(scores)
	slices.SortFunc(sorted, compareScores)

	byID := make(map[string]*SeasonRow)
	var rows []*SeasonRow
	last := make(map[string]int)
	for _, s := range sorted {
		row, ok := byID[s.ParticipantID]
		if !ok {
			row = &SeasonRow{ParticipantID: s.ParticipantID}
			byID[s.ParticipantID] = row
			rows = append(rows, row)
		}
		row.Total += s.Final
		// rows arrive ordered by matchday; repeats of one matchday count once
		if !ok || last[s.ParticipantID] != s.Matchday {
			row.Matchdays++
			last[s.ParticipantID] = s.Matchday
		}
		row.Predictions += s.Predictions
		row.Correct += s.Correct
	}

	totals := make([]float64, len(rows))
	for i, r := range rows {
		totals[i] = r.Total
	}
	ranks := MinRanks(totals)

	out := make([]SeasonRow, len(rows))
	for i, r := range rows {
		r.Rank = ranks[i]
		out[i] = *r
	}
	slices.SortStableFunc(out, func(a, b SeasonRow) int { return cmp.Compare(a.Rank, b.Rank) })
	return out
}
