package scoring

import (
	"cmp"
	"slices"
	"sort"
)

// RankingOptions tunes BuildRankings.
type RankingOptions struct {
	// Dense emits a carried row for every matchday after a participant's
	// first appearance, even when they skipped it.
	Dense bool
	// PlayedOnly keeps only matchdays whose points, summed over every
	// participant, are positive.
	PlayedOnly bool
}

type timelinePoint struct {
	matchday   int
	points     float64
	cumulative float64
}

// BuildRankings turns matchday scores into running totals and "min" ranks,
// grouped by matchday ascending. Each matchday ranks every participant who
// has a total by then; rows within a matchday are ordered by rank then
// participant.
func BuildRankings(scores []MatchdayScore, opts RankingOptions) []RankingEntry {
	if len(scores) == 0 {
		return nil
	}

	sorted := slices.Clone(scores)
	slices.SortFunc(sorted, compareScores)

	sums := make(map[int]float64)
	for _, s := range sorted {
		sums[s.Matchday] += s.Final
	}
	keep := func(matchday int) bool { return !opts.PlayedOnly || sums[matchday] > 0 }

	var (
		participants []string
		timelines    = make(map[string][]timelinePoint)
		matchdaySet  = make(map[int]struct{})
	)
	for _, s := range sorted {
		if !keep(s.Matchday) {
			continue
		}
		matchdaySet[s.Matchday] = struct{}{}

		tl, seen := timelines[s.ParticipantID]
		if !seen {
			participants = append(participants, s.ParticipantID)
		}
		var prev float64
		if n := len(tl); n > 0 {
			prev = tl[n-1].cumulative
			// repeated rows for one matchday fold into a single point
			if tl[n-1].matchday == s.Matchday {
				tl[n-1].points += s.Final
				tl[n-1].cumulative += s.Final
				timelines[s.ParticipantID] = tl
				continue
			}
		}
		timelines[s.ParticipantID] = append(tl, timelinePoint{
			matchday:   s.Matchday,
			points:     s.Final,
			cumulative: prev + s.Final,
		})
	}

	matchdays := make([]int, 0, len(matchdaySet))
	for m := range matchdaySet {
		matchdays = append(matchdays, m)
	}
	slices.Sort(matchdays)

	next := make(map[string]int, len(participants))
	current := make(map[string]float64, len(participants))
	var out []RankingEntry

	for _, m := range matchdays {
		var (
			pool    []string
			present = make(map[string]float64)
		)
		for _, id := range participants {
			tl, i := timelines[id], next[id]
			if i < len(tl) && tl[i].matchday == m {
				current[id] = tl[i].cumulative
				present[id] = tl[i].points
				next[id] = i + 1
			}
			if _, started := current[id]; started {
				pool = append(pool, id)
			}
		}

		totals := make([]float64, len(pool))
		for i, id := range pool {
			totals[i] = current[id]
		}
		ranks := MinRanks(totals)
		leader := slices.Max(totals)

		start := len(out)
		for i, id := range pool {
			points, ok := present[id]
			if !ok && !opts.Dense {
				continue
			}
			out = append(out, RankingEntry{
				ParticipantID: id,
				Matchday:      m,
				Points:        points,
				Cumulative:    totals[i],
				Rank:          ranks[i],
				Gap:           leader - totals[i],
				Carried:       !ok,
			})
		}
		slices.SortFunc(out[start:], func(a, b RankingEntry) int {
			if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
				return c
			}
			return cmp.Compare(a.ParticipantID, b.ParticipantID)
		})
	}
	return out
}

// MinRanks ranks values descending with ties sharing the best rank:
// 1 + the number of strictly greater values.
func MinRanks(values []float64) []int {
	desc := slices.Clone(values)
	slices.SortFunc(desc, func(a, b float64) int { return cmp.Compare(b, a) })

	ranks := make([]int, len(values))
	for i, v := range values {
		ranks[i] = sort.Search(len(desc), func(j int) bool { return desc[j] <= v }) + 1
	}
	return ranks
}

func compareScores(a, b MatchdayScore) int {
	if c := cmp.Compare(a.ParticipantID, b.ParticipantID); c != 0 {
		return c
	}
	return cmp.Compare(a.Matchday, b.Matchday)
}
