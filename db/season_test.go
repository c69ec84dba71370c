package db

import (
	"strings"
	"testing"
)

func TestPredictionsQuery(t *testing.T) {
	q, args := predictionsQuery(Filter{Season: "2425"})
	if !strings.Contains(q, "WHERE m.season = ? ORDER BY") {
		t.Errorf("query = %s", q)
	}
	if len(args) != 1 || args[0] != "2425" {
		t.Errorf("args = %v", args)
	}

	q, args = predictionsQuery(Filter{Season: "2425", Competition: "L1"})
	if !strings.Contains(q, "m.season = ? AND m.competition = ?") {
		t.Errorf("query = %s", q)
	}
	if len(args) != 2 || args[1] != "L1" {
		t.Errorf("args = %v", args)
	}
}

func TestFilterString(t *testing.T) {
	if got := (Filter{Season: "2425"}).String(); got != "2425" {
		t.Errorf("got %q", got)
	}
	if got := (Filter{Season: "2425", Competition: "L1"}).String(); got != "2425/L1" {
		t.Errorf("got %q", got)
	}
}
