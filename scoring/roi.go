package scoring

// Bet is the settlement of a notional 1-unit stake on the predicted outcome.
type Bet struct {
	Predicted Outcome  `json:"predicted"`
	Actual    Outcome  `json:"actual"`
	Odds      *float64 `json:"odds,omitempty"`
	Net       float64  `json:"net"`
	Settled   bool     `json:"settled"`
}

// Settle places 1 unit on the predicted outcome at the matching odds. An
// unplayed match is not settled and nets 0. Missing odds count as a lost stake.
func Settle(p Prediction, r MatchResult) Bet {
	b := Bet{Predicted: p.Outcome(), Actual: r.Outcome()}
	if !r.Played() {
		return b
	}
	b.Settled = true
	b.Odds = r.Odds.For(b.Predicted)

	switch {
	case b.Odds == nil:
		b.Net = -1
	case b.Predicted == b.Actual:
		b.Net = *b.Odds - 1
	default:
		b.Net = -1
	}
	return b
}

// ROI is the net profit or loss of Settle.
func ROI(p Prediction, r MatchResult) float64 {
	return Settle(p, r).Net
}
