package scoring

const (
	highScoringGoals = 4

	correctPoints = 1.0
	wrongPoints   = -1.0
	exactPoints   = 3.0

	correctFactor      = 3.0
	exactFactor        = 2.0
	marginFactor       = 1.33
	highScoringFactor  = 1.25
	highScoringPenalty = 0.5
)

// Check describes how a prediction compares with a played match.
type Check struct {
	Exact          bool `json:"exact"`
	OutcomeCorrect bool `json:"outcomeCorrect"`
	// MarginCorrect is only ever set for decisive matches that were not
	// called exactly.
	MarginCorrect bool `json:"marginCorrect"`
}

// Compare checks a prediction against its result. ok is false when the match
// has not been played.
func Compare(p Prediction, r MatchResult) (c Check, ok bool) {
	if !r.Played() {
		return Check{}, false
	}
	home, away := *r.Home, *r.Away

	c.Exact = p.Home == home && p.Away == away
	c.OutcomeCorrect = p.Outcome() == outcomeOf(home, away)
	if home != away {
		c.MarginCorrect = p.Home-p.Away == home-away && !c.Exact
	}
	return c, true
}

// OutcomeCorrect reports whether the participant called the direction of a
// played match.
func OutcomeCorrect(p Prediction, r MatchResult) bool {
	c, ok := Compare(p, r)
	return ok && c.OutcomeCorrect
}

// Score returns the points a prediction earns against its result. An unplayed
// match scores 0. Without any odds the flat table applies (exact 4, correct 1,
// wrong -1); otherwise the odds-weighted formula does.
func Score(p Prediction, r MatchResult) float64 {
	c, ok := Compare(p, r)
	if !ok {
		return 0
	}
	if !r.Odds.Any() {
		return flatScore(c)
	}

	payout, ok := payoutOdds(c, r)
	if !ok {
		return 0
	}
	return payout * factor(c, p, r)
}

func flatScore(c Check) float64 {
	var points float64
	if c.Exact {
		points += exactPoints
	}
	if c.OutcomeCorrect {
		points += correctPoints
	} else {
		points += wrongPoints
	}
	return points
}

// payoutOdds is the odds of the actual outcome when it was called, else the
// lowest odds on offer.
func payoutOdds(c Check, r MatchResult) (float64, bool) {
	if c.OutcomeCorrect {
		v := r.Odds.For(r.Outcome())
		if v == nil {
			return 0, false
		}
		return *v, true
	}
	return r.Odds.Min()
}

func factor(c Check, p Prediction, r MatchResult) float64 {
	highPredicted := p.Home+p.Away >= highScoringGoals
	highActual := *r.Home+*r.Away >= highScoringGoals

	var f float64
	if c.OutcomeCorrect {
		f += correctFactor
		if c.Exact {
			f += exactFactor
		}
		if c.MarginCorrect {
			f += marginFactor
		}
	}
	switch {
	case highPredicted && highActual:
		f += highScoringFactor
	case highPredicted:
		f -= highScoringPenalty
	}
	return f
}

// Scored joins a prediction with its result and computes its points.
func Scored(p Prediction, r MatchResult) ScoredPrediction {
	return ScoredPrediction{Prediction: p, Result: r, Points: Score(p, r)}
}
