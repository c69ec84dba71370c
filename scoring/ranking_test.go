package scoring

import (
	"math/rand"
	"reflect"
	"slices"
	"testing"
)

func ms(id string, matchday int, final float64) MatchdayScore {
	return MatchdayScore{ParticipantID: id, Matchday: matchday, Predictions: 1, Resolved: 1, Raw: final, Multiplier: 1, Final: final}
}

func TestMinRanks(t *testing.T) {
	tests := []struct {
		values []float64
		want   []int
	}{
		{[]float64{10, 10, 8}, []int{1, 1, 3}},
		{[]float64{8, 10, 10}, []int{3, 1, 1}},
		{[]float64{-1, 3, 3, 3, 0}, []int{5, 1, 1, 1, 4}},
		{[]float64{5}, []int{1}},
		{nil, []int{}},
	}
	for _, tt := range tests {
		got := MinRanks(tt.values)
		if !slices.Equal(got, tt.want) {
			t.Errorf("MinRanks(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestBuildRankings_TiesShareRank(t *testing.T) {
	got := BuildRankings([]MatchdayScore{ms("c", 1, 8), ms("a", 1, 10), ms("b", 1, 10)}, RankingOptions{})

	want := []RankingEntry{
		{ParticipantID: "a", Matchday: 1, Points: 10, Cumulative: 10, Rank: 1, Gap: 0},
		{ParticipantID: "b", Matchday: 1, Points: 10, Cumulative: 10, Rank: 1, Gap: 0},
		{ParticipantID: "c", Matchday: 1, Points: 8, Cumulative: 8, Rank: 3, Gap: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestBuildRankings_PrefixSums(t *testing.T) {
	finals := []float64{4, -1, -1, 9.5, 0, -0.9}
	var scores []MatchdayScore
	for i, f := range finals {
		scores = append(scores, ms("p1", i+1, f))
	}

	got := BuildRankings(scores, RankingOptions{})
	if len(got) != len(finals) {
		t.Fatalf("got %d entries, want %d", len(got), len(finals))
	}
	var sum float64
	for i, e := range got {
		sum += finals[i]
		if e.Matchday != i+1 {
			t.Errorf("entry %d matchday = %d", i, e.Matchday)
		}
		if !approx(e.Cumulative, sum) {
			t.Errorf("matchday %d cumulative = %v, want %v", e.Matchday, e.Cumulative, sum)
		}
	}
}

func TestBuildRankings_CarriedTotalsInPool(t *testing.T) {
	// b skips matchday 2 but still counts against a's rank there
	scores := []MatchdayScore{ms("a", 1, 1), ms("b", 1, 10), ms("a", 2, 3)}

	got := BuildRankings(scores, RankingOptions{})
	want := []RankingEntry{
		{ParticipantID: "b", Matchday: 1, Points: 10, Cumulative: 10, Rank: 1},
		{ParticipantID: "a", Matchday: 1, Points: 1, Cumulative: 1, Rank: 2, Gap: 9},
		{ParticipantID: "a", Matchday: 2, Points: 3, Cumulative: 4, Rank: 2, Gap: 6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	dense := BuildRankings(scores, RankingOptions{Dense: true})
	if len(dense) != 4 {
		t.Fatalf("dense entries = %d, want 4", len(dense))
	}
	carried := dense[2]
	if carried.ParticipantID != "b" || carried.Matchday != 2 || !carried.Carried || carried.Points != 0 || carried.Cumulative != 10 || carried.Rank != 1 {
		t.Errorf("carried entry = %+v", carried)
	}
}

func TestBuildRankings_LateJoinerNotBackfilled(t *testing.T) {
	scores := []MatchdayScore{ms("a", 1, 2), ms("a", 2, 2), ms("b", 2, 5)}
	got := BuildRankings(scores, RankingOptions{Dense: true})
	for _, e := range got {
		if e.ParticipantID == "b" && e.Matchday == 1 {
			t.Fatalf("b ranked before first appearance: %+v", e)
		}
	}
	if len(got) != 3 {
		t.Errorf("entries = %d, want 3", len(got))
	}
}

func TestBuildRankings_PlayedOnly(t *testing.T) {
	pending := MatchdayScore{ParticipantID: "a", Matchday: 3, Predictions: 2, Multiplier: 1}
	scores := []MatchdayScore{
		ms("a", 1, 2), ms("a", 2, 1), pending,
		// resolved but net negative over participants
		ms("a", 4, -1), ms("b", 4, 0),
		// one loser offset by a winner still counts
		ms("a", 5, -1), ms("b", 5, 3),
	}

	all := BuildRankings(scores, RankingOptions{})
	if len(all) != 7 {
		t.Fatalf("entries = %d, want 7", len(all))
	}
	played := BuildRankings(scores, RankingOptions{PlayedOnly: true})
	var days []int
	for _, e := range played {
		if len(days) == 0 || days[len(days)-1] != e.Matchday {
			days = append(days, e.Matchday)
		}
	}
	if !slices.Equal(days, []int{1, 2, 5}) {
		t.Errorf("played-only matchdays = %v, want [1 2 5]", days)
	}
}

func TestBuildRankings_Deterministic(t *testing.T) {
	var scores []MatchdayScore
	for m := 1; m <= 6; m++ {
		for _, id := range []string{"ana", "ben", "cat", "dan", "eve"} {
			scores = append(scores, ms(id, m, float64((len(id)*m+int(id[0]))%7)-2))
		}
	}
	want := BuildRankings(scores, RankingOptions{Dense: true})

	r := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(scores)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if got := BuildRankings(shuffled, RankingOptions{Dense: true}); !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d changed the rankings", i)
		}
	}
}

func TestBuildRankings_OrderWithinMatchday(t *testing.T) {
	scores := []MatchdayScore{ms("z", 1, 5), ms("y", 1, 5), ms("x", 1, 7), ms("z", 2, 1)}
	got := BuildRankings(scores, RankingOptions{})

	var ids []string
	for _, e := range got {
		ids = append(ids, e.ParticipantID)
	}
	if want := []string{"x", "y", "z", "z"}; !slices.Equal(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Matchday < got[i-1].Matchday {
			t.Errorf("matchdays out of order at %d", i)
		}
	}
}

func TestBuildRankings_Empty(t *testing.T) {
	if got := BuildRankings(nil, RankingOptions{Dense: true}); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
