package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/canape/db"
	mw "github.com/padraicbc/canape/middleware"
	"github.com/padraicbc/canape/scoring"
)

func intp(n int) *int { return &n }

func floatp(f float64) *float64 { return &f }

// fixtureHandler serves season 2425 from a preloaded cache so no database
// is needed.
func fixtureHandler(t *testing.T) *Handler {
	t.Helper()
	results := []scoring.MatchResult{
		{MatchID: "m1", Season: "2425", Matchday: 1, Home: intp(2), Away: intp(1),
			Odds: scoring.Odds{Home: floatp(1.8), Away: floatp(4.0), Draw: floatp(3.2)}},
		{MatchID: "m2", Season: "2425", Matchday: 2, Home: intp(0), Away: intp(1)},
	}
	preds := []scoring.Prediction{
		{ParticipantID: "ana", MatchID: "m1", Home: 2, Away: 1},
		{ParticipantID: "ana", MatchID: "m2", Home: 1, Away: 0},
		{ParticipantID: "bob", MatchID: "m1", Home: 0, Away: 0},
	}
	s, err := scoring.ComputeSeason(preds, results, scoring.SeasonOptions{})
	if err != nil {
		t.Fatal(err)
	}
	h := New(nil, []byte("k"), nil)
	h.seasons.m.Store(db.Filter{Season: "2425"}, s)
	return h
}

func call(t *testing.T, handler echo.HandlerFunc, target string, body string, set map[string]interface{}) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	method := http.MethodGet
	var req *http.Request
	if body != "" {
		method = http.MethodPost
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range set {
		c.Set(k, v)
	}
	return rec, handler(c)
}

func status(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return 0
}

func TestLeaderboard(t *testing.T) {
	h := fixtureHandler(t)
	rec, err := call(t, h.Leaderboard, "/pool/leaderboard?season=2425", "", nil)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	var got leaderboard
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	// ana: 9.0 * 2.0 on matchday 1, -1 on matchday 2
	if len(got.Standings) != 2 || got.Standings[0].ParticipantID != "ana" || got.Standings[0].Total != 17 {
		t.Errorf("standings = %+v", got.Standings)
	}
	if got.Summary.Participants != 2 || got.Summary.Matches != 2 {
		t.Errorf("summary = %+v", got.Summary)
	}
}

func TestLeaderboard_MissingSeason(t *testing.T) {
	h := fixtureHandler(t)
	if _, err := call(t, h.Leaderboard, "/pool/leaderboard", "", nil); status(err) != http.StatusBadRequest {
		t.Errorf("err = %v, want 400", err)
	}
}

func TestRankings(t *testing.T) {
	h := fixtureHandler(t)
	var sparse, dense []scoring.RankingEntry

	rec, err := call(t, h.Rankings, "/pool/rankings?season=2425", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &sparse)
	rec, err = call(t, h.Rankings, "/pool/rankings?season=2425&dense=true", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &dense)

	if len(sparse) != 3 || len(dense) != 4 {
		t.Fatalf("sparse %d dense %d, want 3 and 4", len(sparse), len(dense))
	}
	last := dense[len(dense)-1]
	if last.ParticipantID != "bob" || !last.Carried || last.Matchday != 2 {
		t.Errorf("carried row = %+v", last)
	}
}

func TestMatchday(t *testing.T) {
	h := fixtureHandler(t)
	tests := []struct {
		target string
		want   int
	}{
		{"/pool/matchday?season=2425&matchday=1", http.StatusOK},
		{"/pool/matchday?season=2425&matchday=9", http.StatusNotFound},
		{"/pool/matchday?season=2425", http.StatusBadRequest},
		{"/pool/matchday?season=2425&matchday=x", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec, err := call(t, h.Matchday, tt.target, "", nil)
		got := rec.Code
		if err != nil {
			got = status(err)
		}
		if got != tt.want {
			t.Errorf("%s: status %d, want %d", tt.target, got, tt.want)
		}
	}
}

func TestScored(t *testing.T) {
	h := fixtureHandler(t)
	rec, err := call(t, h.Scored, "/pool/scored?season=2425&participant=ana&matchday=1", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	var rows []scoredRow
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if r := rows[0]; r.Points != 9 || !r.Exact || r.ROI != 0.8 {
		t.Errorf("row = %+v", r)
	}
}

func TestStats(t *testing.T) {
	h := fixtureHandler(t)

	rec, err := call(t, h.MyStats, "/pool/me/stats?season=2425", "", map[string]interface{}{mw.ParticipantKey: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	var st scoring.Stats
	_ = json.Unmarshal(rec.Body.Bytes(), &st)
	if st.ParticipantID != "bob" || st.Predictions != 1 {
		t.Errorf("stats = %+v", st)
	}

	if _, err := call(t, h.MyStats, "/pool/me/stats?season=2425", "", nil); status(err) != http.StatusUnauthorized {
		t.Errorf("anonymous: err = %v", err)
	}

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/pool/participants/zed/stats?season=2425", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("zed")
	if err := h.ParticipantStats(c); status(err) != http.StatusNotFound {
		t.Errorf("unknown participant: err = %v", err)
	}
}

func TestEngineError(t *testing.T) {
	f := db.Filter{Season: "2425"}
	unresolved := &scoring.UnresolvedReferenceError{Refs: []scoring.Reference{{ParticipantID: "p", MatchID: "m"}}}
	tests := []struct {
		err  error
		want int
	}{
		{unresolved, http.StatusUnprocessableEntity},
		{fmt.Errorf("wrap: %w", scoring.ErrDuplicateMatch), http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := status(engineError(f, tt.err)); got != tt.want {
			t.Errorf("engineError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestSubmitPrediction_Validation(t *testing.T) {
	h := fixtureHandler(t)
	as := map[string]interface{}{mw.ParticipantKey: "ana"}
	for _, body := range []string{
		`{"matchID":"m3","home":1}`,
		`{"matchID":"m3","home":100,"away":0}`,
		`{"home":1,"away":0}`,
		`not json`,
	} {
		if _, err := call(t, h.SubmitPrediction, "/pool/predictions", body, as); status(err) != http.StatusBadRequest {
			t.Errorf("%s: err = %v, want 400", body, err)
		}
	}
	if _, err := call(t, h.SubmitPrediction, "/pool/predictions", `{"matchID":"m3","home":1,"away":0}`, nil); status(err) != http.StatusUnauthorized {
		t.Errorf("anonymous: err = %v, want 401", err)
	}
}

func TestValidator_ZeroGoalsAccepted(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&predictionRequest{MatchID: "m1", Home: intp(0), Away: intp(0)}); err != nil {
		t.Errorf("0-0 rejected: %v", err)
	}
	if err := v.Validate(&resultRequest{MatchID: "m1", OddsHome: floatp(0.9)}); status(err) != http.StatusBadRequest {
		t.Errorf("odds below 1 accepted: %v", err)
	}
}

func TestResultColumns(t *testing.T) {
	r := &resultRequest{MatchID: "m1", Home: intp(1)}
	if _, err := r.columns(); err == nil {
		t.Error("lone home goals accepted")
	}
	r = &resultRequest{MatchID: "m1"}
	if _, err := r.columns(); err == nil {
		t.Error("empty update accepted")
	}
	r = &resultRequest{MatchID: "m1", Home: intp(1), Away: intp(0), OddsDraw: floatp(3.1)}
	cols, err := r.columns()
	if err != nil || len(cols) != 3 || cols[2].name != "odds_draw" {
		t.Errorf("columns = %+v, %v", cols, err)
	}
}

func TestRound2(t *testing.T) {
	tests := map[float64]float64{
		19.919999999999998: 19.92,
		1.005:              1.01,
		-0.904:             -0.9,
		7.794:              7.79,
	}
	for in, want := range tests {
		if got := round2(in); got != want {
			t.Errorf("round2(%v) = %v, want %v", in, got, want)
		}
	}
	if round2p(nil) != nil {
		t.Error("round2p(nil) != nil")
	}
}
