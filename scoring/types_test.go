package scoring

import (
	"encoding/json"
	"testing"
)

func TestOutcomeJSON(t *testing.T) {
	for _, o := range []Outcome{Unknown, HomeWin, AwayWin, Draw} {
		b, err := json.Marshal(o)
		if err != nil {
			t.Fatal(err)
		}
		var back Outcome
		if err := json.Unmarshal(b, &back); err != nil || back != o {
			t.Errorf("%s round-tripped to %s (%v)", o, back, err)
		}
	}
}

func TestMatchResultOutcome(t *testing.T) {
	if got := (MatchResult{Home: goals(1)}).Outcome(); got != Unknown {
		t.Errorf("half-known score = %s, want unknown", got)
	}
	if got := played(1, 2, Odds{}).Outcome(); got != AwayWin {
		t.Errorf("1-2 = %s", got)
	}
	if got := pred(3, 3).Outcome(); got != Draw {
		t.Errorf("3-3 = %s", got)
	}
}
