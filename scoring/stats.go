package scoring

import "math"

// Stats summarises one participant's season.
type Stats struct {
	ParticipantID      string   `json:"participantID"`
	Predictions        int      `json:"predictions"`
	Resolved           int      `json:"resolved"`
	Correct            int      `json:"correct"`
	Exact              int      `json:"exact"`
	CorrectPct         float64  `json:"correctPct"`
	Total              float64  `json:"total"`
	Mean               float64  `json:"mean"`
	Max                float64  `json:"max"`
	Min                float64  `json:"min"`
	BestMatchday       int      `json:"bestMatchday,omitempty"`
	BestMatchdayPoints float64  `json:"bestMatchdayPoints"`
	MatchdaysWon       int      `json:"matchdaysWon"`
	Bonus133           int      `json:"bonus133"`
	Bonus166           int      `json:"bonus166"`
	Bonus200           int      `json:"bonus200"`
	MeanCorrectOdds    *float64 `json:"meanCorrectOdds,omitempty"`
	ROI                float64  `json:"roi"`
}

// ParticipantStats computes a participant's KPIs from the season's scored
// predictions and matchday scores. Both slices may hold every participant;
// other participants' matchday scores decide matchdays won.
func ParticipantStats(scored []ScoredPrediction, scores []MatchdayScore, participantID string) Stats {
	st := Stats{ParticipantID: participantID}

	var (
		oddsSum float64
		oddsN   int
	)
	for _, sp := range scored {
		if sp.ParticipantID != participantID {
			continue
		}
		if st.Predictions == 0 || sp.Points > st.Max {
			st.Max = sp.Points
		}
		if st.Predictions == 0 || sp.Points < st.Min {
			st.Min = sp.Points
		}
		st.Predictions++
		st.Total += sp.Points
		st.ROI += ROI(sp.Prediction, sp.Result)

		c, ok := Compare(sp.Prediction, sp.Result)
		if !ok {
			continue
		}
		st.Resolved++
		if c.Exact {
			st.Exact++
		}
		if c.OutcomeCorrect {
			st.Correct++
			if v := sp.Result.Odds.For(sp.Outcome()); v != nil {
				oddsSum += *v
				oddsN++
			}
		}
	}
	if st.Predictions > 0 {
		st.Mean = st.Total / float64(st.Predictions)
		st.CorrectPct = math.Round(float64(st.Correct)/float64(st.Predictions)*1000) / 10
	}
	if oddsN > 0 {
		mean := oddsSum / float64(oddsN)
		st.MeanCorrectOdds = &mean
	}

	bestRaw := make(map[int]float64)
	for _, s := range scores {
		if best, ok := bestRaw[s.Matchday]; !ok || s.Raw > best {
			bestRaw[s.Matchday] = s.Raw
		}
	}

	first := true
	for _, s := range scores {
		if s.ParticipantID != participantID {
			continue
		}
		if first || s.Final > st.BestMatchdayPoints ||
			(s.Final == st.BestMatchdayPoints && s.Matchday < st.BestMatchday) {
			st.BestMatchday, st.BestMatchdayPoints = s.Matchday, s.Final
			first = false
		}
		if s.Raw == bestRaw[s.Matchday] {
			st.MatchdaysWon++
		}
		switch s.Multiplier {
		case twoMissMultiplier:
			st.Bonus133++
		case oneMissMultiplier:
			st.Bonus166++
		case perfectMultiplier:
			st.Bonus200++
		}
	}
	return st
}
