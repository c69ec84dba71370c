package scoring

const (
	perfectMultiplier = 2.0
	oneMissMultiplier = 1.66
	twoMissMultiplier = 1.33
	baseMultiplier    = 1.0
)

// StreakMultiplier is the matchday bonus for calling correct outcomes out
// of n predictions. It only applies when the matchday had odds.
func StreakMultiplier(correct, n int, oddsPresent bool) float64 {
	if !oddsPresent || n == 0 {
		return baseMultiplier
	}
	switch correct {
	case n:
		return perfectMultiplier
	case n - 1:
		return oneMissMultiplier
	case n - 2:
		return twoMissMultiplier
	}
	return baseMultiplier
}

// AggregateMatchday sums one participant's scored predictions for one matchday
// and applies the streak multiplier. The participant and matchday are taken
// from the first prediction; callers group before calling.
func AggregateMatchday(scored []ScoredPrediction) MatchdayScore {
	ms := MatchdayScore{Multiplier: baseMultiplier}
	if len(scored) == 0 {
		return ms
	}
	ms.ParticipantID = scored[0].ParticipantID
	ms.Matchday = scored[0].Result.Matchday

	for _, sp := range scored {
		ms.Predictions++
		ms.Raw += sp.Points
		if sp.Result.Played() {
			ms.Resolved++
		}
		if OutcomeCorrect(sp.Prediction, sp.Result) {
			ms.Correct++
		}
		if sp.Result.Odds.Any() {
			ms.OddsPresent = true
		}
	}

	ms.Multiplier = StreakMultiplier(ms.Correct, ms.Predictions, ms.OddsPresent)
	ms.Final = ms.Raw * ms.Multiplier
	return ms
}
