package scoring

import (
	"cmp"
	"slices"

	"github.com/sourcegraph/conc/iter"
)

// SeasonOptions tunes ComputeSeason.
type SeasonOptions struct {
	Rankings RankingOptions
}

// Season is every derived view of one season's predictions.
type Season struct {
	Scored    []ScoredPrediction `json:"scored"`
	Matchdays []MatchdayScore    `json:"matchdays"`
	Rankings  []RankingEntry     `json:"rankings"`
	Standings []SeasonRow        `json:"standings"`
	Summary   Summary            `json:"summary"`
}

// Summary holds season-wide KPIs.
type Summary struct {
	Matches                 int          `json:"matches"`
	Predictions             int          `json:"predictions"`
	Participants            int          `json:"participants"`
	Matchdays               int          `json:"matchdays"`
	TotalPoints             float64      `json:"totalPoints"`
	MeanPerParticipant      float64      `json:"meanPerParticipant"`
	MeanPerParticipantMatch float64      `json:"meanPerParticipantMatch"`
	Curve                   []CurvePoint `json:"curve"`
}

// CurvePoint is the mean final score on a matchday among those who played it,
// and the running sum of those means.
type CurvePoint struct {
	Matchday   int     `json:"matchday"`
	Mean       float64 `json:"mean"`
	Cumulative float64 `json:"cumulative"`
}

// ComputeSeason joins, scores, aggregates and ranks a season. The caller has
// already filtered predictions and results to the season of interest.
func ComputeSeason(predictions []Prediction, results []MatchResult, opts SeasonOptions) (*Season, error) {
	scored, err := Join(predictions, results)
	if err != nil {
		return nil, err
	}

	scores := AggregateAll(scored)
	s := &Season{
		Scored:    scored,
		Matchdays: scores,
		Rankings:  BuildRankings(scores, opts.Rankings),
		Standings: SeasonStandings(scores),
	}
	s.Summary = summarise(len(results), scored, scores)
	return s, nil
}

// Stats returns the KPIs of one participant of the season.
func (s *Season) Stats(participantID string) (Stats, bool) {
	for _, row := range s.Standings {
		if row.ParticipantID == participantID {
			return ParticipantStats(s.Scored, s.Matchdays, participantID), true
		}
	}
	return Stats{}, false
}

// Matchday returns the table of a single matchday.
func (s *Season) Matchday(matchday int) []StandingRow {
	return MatchdayStandings(s.Matchdays, matchday)
}

type participantGroup struct {
	id     string
	scored []ScoredPrediction
}

// AggregateAll groups scored predictions by participant and matchday and
// aggregates each participant in parallel. The result is ordered by
// participant then matchday.
func AggregateAll(scored []ScoredPrediction) []MatchdayScore {
	index := make(map[string]int)
	var groups []participantGroup
	for _, sp := range scored {
		i, ok := index[sp.ParticipantID]
		if !ok {
			i = len(groups)
			index[sp.ParticipantID] = i
			groups = append(groups, participantGroup{id: sp.ParticipantID})
		}
		groups[i].scored = append(groups[i].scored, sp)
	}
	slices.SortFunc(groups, func(a, b participantGroup) int { return cmp.Compare(a.id, b.id) })

	perParticipant := iter.Map(groups, func(g *participantGroup) []MatchdayScore {
		return aggregateParticipant(g.scored)
	})

	var out []MatchdayScore
	for _, scores := range perParticipant {
		out = append(out, scores...)
	}
	return out
}

func aggregateParticipant(scored []ScoredPrediction) []MatchdayScore {
	byMatchday := make(map[int][]ScoredPrediction)
	for _, sp := range scored {
		byMatchday[sp.Result.Matchday] = append(byMatchday[sp.Result.Matchday], sp)
	}
	matchdays := make([]int, 0, len(byMatchday))
	for m := range byMatchday {
		matchdays = append(matchdays, m)
	}
	slices.Sort(matchdays)

	out := make([]MatchdayScore, len(matchdays))
	for i, m := range matchdays {
		day := byMatchday[m]
		// sum in a fixed order so shuffled input yields identical floats
		slices.SortStableFunc(day, func(a, b ScoredPrediction) int { return cmp.Compare(a.MatchID, b.MatchID) })
		out[i] = AggregateMatchday(day)
	}
	return out
}

func summarise(matches int, scored []ScoredPrediction, scores []MatchdayScore) Summary {
	sum := Summary{Matches: matches, Predictions: len(scored)}

	participants := make(map[string]struct{})
	type dayTotal struct {
		total float64
		n     int
	}
	days := make(map[int]*dayTotal)
	for _, s := range scores {
		participants[s.ParticipantID] = struct{}{}
		sum.TotalPoints += s.Final
		d, ok := days[s.Matchday]
		if !ok {
			d = &dayTotal{}
			days[s.Matchday] = d
		}
		d.total += s.Final
		d.n++
	}
	sum.Participants = len(participants)
	sum.Matchdays = len(days)

	if sum.Participants > 0 {
		sum.MeanPerParticipant = sum.TotalPoints / float64(sum.Participants)
		if matches > 0 {
			sum.MeanPerParticipantMatch = sum.TotalPoints / float64(sum.Participants*matches)
		}
	}

	matchdays := make([]int, 0, len(days))
	for m := range days {
		matchdays = append(matchdays, m)
	}
	slices.Sort(matchdays)

	var running float64
	for _, m := range matchdays {
		d := days[m]
		mean := d.total / float64(d.n)
		running += mean
		sum.Curve = append(sum.Curve, CurvePoint{Matchday: m, Mean: mean, Cumulative: running})
	}
	return sum
}
