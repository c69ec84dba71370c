package scoring

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedReference marks predictions pointing at a match the caller
	// did not supply.
	ErrUnresolvedReference = errors.New("unresolved match reference")
	// ErrDuplicateMatch marks two result records sharing one match ID.
	ErrDuplicateMatch = errors.New("duplicate match result")
)

// Reference identifies a single prediction.
type Reference struct {
	ParticipantID string `json:"participantID"`
	MatchID       string `json:"matchID"`
}

// UnresolvedReferenceError lists every prediction whose match is unknown.
type UnresolvedReferenceError struct {
	Refs []Reference
}

func (e *UnresolvedReferenceError) Error() string {
	const shown = 5
	parts := make([]string, 0, shown)
	for i, r := range e.Refs {
		if i == shown {
			parts = append(parts, fmt.Sprintf("and %d more", len(e.Refs)-shown))
			break
		}
		parts = append(parts, r.ParticipantID+"/"+r.MatchID)
	}
	return fmt.Sprintf("%s: %d predictions (%s)", ErrUnresolvedReference, len(e.Refs), strings.Join(parts, ", "))
}

func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// IndexResults keys results by match ID.
func IndexResults(results []MatchResult) (map[string]MatchResult, error) {
	index := make(map[string]MatchResult, len(results))
	for _, r := range results {
		if _, ok := index[r.MatchID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMatch, r.MatchID)
		}
		index[r.MatchID] = r
	}
	return index, nil
}

// Join scores every prediction against its match, keeping input order.
// Predictions for matches missing from results fail the whole join.
func Join(predictions []Prediction, results []MatchResult) ([]ScoredPrediction, error) {
	index, err := IndexResults(results)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredPrediction, 0, len(predictions))
	var missing []Reference
	for _, p := range predictions {
		r, ok := index[p.MatchID]
		if !ok {
			missing = append(missing, Reference{ParticipantID: p.ParticipantID, MatchID: p.MatchID})
			continue
		}
		scored = append(scored, Scored(p, r))
	}
	if len(missing) > 0 {
		return nil, &UnresolvedReferenceError{Refs: missing}
	}
	return scored, nil
}
