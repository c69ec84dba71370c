package scoring

import (
	"math"
	"testing"
)

func goals(n int) *int { return &n }

func odds(v float64) *float64 { return &v }

func played(home, away int, o Odds) MatchResult {
	return MatchResult{MatchID: "m1", Season: "2425", Matchday: 1, Home: goals(home), Away: goals(away), Odds: o}
}

func pred(home, away int) Prediction {
	return Prediction{ParticipantID: "p1", MatchID: "m1", Home: home, Away: away}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

var fullOdds = Odds{Home: odds(1.8), Away: odds(4.0), Draw: odds(3.2)}

func TestScore_UnplayedMatchIsZero(t *testing.T) {
	results := []MatchResult{
		{MatchID: "m1"},
		{MatchID: "m1", Home: goals(1)},
		{MatchID: "m1", Away: goals(1), Odds: fullOdds},
	}
	for _, r := range results {
		if got := Score(pred(1, 0), r); got != 0 {
			t.Errorf("Score against %+v = %v, want 0", r, got)
		}
		if got := ROI(pred(1, 0), r); got != 0 {
			t.Errorf("ROI against %+v = %v, want 0", r, got)
		}
	}
}

func TestScore_NoOdds(t *testing.T) {
	tests := []struct {
		name           string
		ph, pa, rh, ra int
		want           float64
	}{
		{"exact home win", 2, 1, 2, 1, 4},
		{"exact draw", 1, 1, 1, 1, 4},
		{"correct direction", 3, 1, 1, 0, 1},
		{"draw called other draw", 0, 0, 2, 2, 1},
		{"wrong direction", 1, 0, 0, 1, -1},
		{"called draw lost", 1, 1, 2, 0, -1},
		{"margin right but no odds", 3, 2, 2, 1, 1},
	}
	for _, tt := range tests {
		got := Score(pred(tt.ph, tt.pa), played(tt.rh, tt.ra, Odds{}))
		if got != tt.want {
			t.Errorf("%s: Score = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScore_NoOddsRange(t *testing.T) {
	for ph := 0; ph <= 4; ph++ {
		for pa := 0; pa <= 4; pa++ {
			for rh := 0; rh <= 4; rh++ {
				for ra := 0; ra <= 4; ra++ {
					got := Score(pred(ph, pa), played(rh, ra, Odds{}))
					if got != -1 && got != 1 && got != 4 {
						t.Fatalf("Score(%d-%d vs %d-%d) = %v, outside {-1,1,4}", ph, pa, rh, ra, got)
					}
				}
			}
		}
	}
}

func TestCompare_MarginNeverOnDraw(t *testing.T) {
	for ph := 0; ph <= 5; ph++ {
		for pa := 0; pa <= 5; pa++ {
			for g := 0; g <= 5; g++ {
				c, ok := Compare(pred(ph, pa), played(g, g, Odds{}))
				if !ok {
					t.Fatal("played match reported unplayed")
				}
				if c.MarginCorrect {
					t.Errorf("margin credited for %d-%d against draw %d-%d", ph, pa, g, g)
				}
			}
		}
	}
}

func TestCompare_ExactImpliesOutcome(t *testing.T) {
	for h := 0; h <= 5; h++ {
		for a := 0; a <= 5; a++ {
			c, _ := Compare(pred(h, a), played(h, a, Odds{}))
			if !c.Exact || !c.OutcomeCorrect || c.MarginCorrect {
				t.Errorf("%d-%d: got %+v", h, a, c)
			}
		}
	}
}

func TestScore_WithOdds(t *testing.T) {
	tests := []struct {
		name           string
		ph, pa, rh, ra int
		odds           Odds
		want           float64
	}{
		// 1.8 * (3 + 2)
		{"exact home win", 2, 1, 2, 1, fullOdds, 9.0},
		// 1.8 * (3 + 1.33)
		{"margin", 2, 1, 3, 2, fullOdds, 1.8 * 4.33},
		// 1.8 * (3 + 1.33 - 0.5)
		{"margin high predicted", 3, 2, 2, 1, fullOdds, 1.8 * 3.83},
		// 1.8 * 3
		{"direction only", 3, 0, 1, 0, fullOdds, 5.4},
		// 3.2 * (3 + 2)
		{"exact draw", 1, 1, 1, 1, fullOdds, 16.0},
		// 3.2 * 3, no margin on draws
		{"other draw", 0, 0, 2, 2, fullOdds, 9.6},
		// wrong: min odds 1.8 * 0
		{"wrong low scoring", 0, 1, 1, 0, fullOdds, 0},
		// 4.0 * (3 + 2 + 1.25)
		{"exact high scoring away", 1, 3, 1, 3, fullOdds, 25.0},
		// wrong and predicted high scoring: 1.8 * -0.5
		{"wrong high predicted", 3, 3, 1, 0, fullOdds, -0.9},
		// 1.8 * (3 - 0.5)
		{"correct high predicted low actual", 4, 0, 1, 0, fullOdds, 4.5},
		// wrong but both high: 1.8 * 1.25
		{"wrong both high", 3, 1, 1, 3, fullOdds, 2.25},
	}
	for _, tt := range tests {
		got := Score(pred(tt.ph, tt.pa), played(tt.rh, tt.ra, tt.odds))
		if !approx(got, tt.want) {
			t.Errorf("%s: Score = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScore_PartialOdds(t *testing.T) {
	// only draw odds: the odds branch still applies
	drawOnly := Odds{Draw: odds(3.0)}

	if got := Score(pred(1, 1), played(0, 0, drawOnly)); !approx(got, 9.0) {
		t.Errorf("correct draw with draw odds = %v, want 9", got)
	}
	// correct home call but no home odds to pay out
	if got := Score(pred(2, 0), played(1, 0, drawOnly)); got != 0 {
		t.Errorf("correct call without matching odds = %v, want 0", got)
	}
	// wrong call uses the minimum of the present odds
	partial := Odds{Home: odds(2.5), Away: odds(2.0)}
	if got := Score(pred(4, 1), played(0, 0, partial)); !approx(got, -1.0) {
		t.Errorf("wrong high-scoring call = %v, want -1", got)
	}
}

func TestOddsMin(t *testing.T) {
	if _, ok := (Odds{}).Min(); ok {
		t.Error("Min of empty odds reported a value")
	}
	if v, ok := (Odds{Away: odds(5), Draw: odds(3)}).Min(); !ok || v != 3 {
		t.Errorf("Min = %v, %v, want 3, true", v, ok)
	}
}
