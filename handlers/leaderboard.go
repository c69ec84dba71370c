package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/scoring"
)

// Seasons returns every season with matches, newest first.
func (h *Handler) Seasons(c echo.Context) error {
	seasons, err := db.Seasons(c.Request().Context(), h.db)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if seasons == nil {
		seasons = []string{}
	}
	return c.JSON(http.StatusOK, seasons)
}

// Competitions returns the competitions of a season.
func (h *Handler) Competitions(c echo.Context) error {
	season := c.QueryParam("season")
	if season == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing season param")
	}
	comps, err := db.Competitions(c.Request().Context(), h.db, season)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comps == nil {
		comps = []string{}
	}
	return c.JSON(http.StatusOK, comps)
}

// Matchdays returns the matchdays of a season ascending.
func (h *Handler) Matchdays(c echo.Context) error {
	f, err := filterParams(c)
	if err != nil {
		return err
	}
	days, err := db.Matchdays(c.Request().Context(), h.db, f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if days == nil {
		days = []int{}
	}
	return c.JSON(http.StatusOK, days)
}

type leaderboard struct {
	Season      string              `json:"season"`
	Competition string              `json:"competition,omitempty"`
	Standings   []scoring.SeasonRow `json:"standings"`
	Summary     scoring.Summary     `json:"summary"`
}

// Leaderboard returns the season table and its summary KPIs.
func (h *Handler) Leaderboard(c echo.Context) error {
	f, s, err := h.seasonFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, leaderboard{
		Season:      f.Season,
		Competition: f.Competition,
		Standings:   roundSeasonRows(s.Standings),
		Summary:     roundSummary(s.Summary),
	})
}

// Rankings returns cumulative standings after every matchday. dense=true adds
// carried rows for skipped matchdays; played=true keeps only matchdays whose
// points sum to more than zero.
func (h *Handler) Rankings(c echo.Context) error {
	_, s, err := h.seasonFor(c)
	if err != nil {
		return err
	}
	opts := scoring.RankingOptions{Dense: boolParam(c, "dense"), PlayedOnly: boolParam(c, "played")}

	entries := s.Rankings
	if opts != (scoring.RankingOptions{}) {
		entries = scoring.BuildRankings(s.Matchdays, opts)
	}
	return c.JSON(http.StatusOK, roundRankings(entries))
}

// Matchday returns the table of a single matchday.
func (h *Handler) Matchday(c echo.Context) error {
	matchday, ok, err := optionalInt(c, "matchday")
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing matchday param")
	}
	_, s, err := h.seasonFor(c)
	if err != nil {
		return err
	}
	rows := s.Matchday(matchday)
	if rows == nil {
		return echo.NewHTTPError(http.StatusNotFound, "no predictions for that matchday")
	}
	return c.JSON(http.StatusOK, roundStandings(rows))
}

// Scored returns every scored prediction, optionally narrowed to a
// participant and a matchday.
func (h *Handler) Scored(c echo.Context) error {
	matchday, byMatchday, err := optionalInt(c, "matchday")
	if err != nil {
		return err
	}
	_, s, err := h.seasonFor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scoredRows(s.Scored, c.QueryParam("participant"), matchday, byMatchday))
}

func scoredRows(scored []scoring.ScoredPrediction, participant string, matchday int, byMatchday bool) []scoredRow {
	out := []scoredRow{}
	for _, sp := range scored {
		if participant != "" && sp.ParticipantID != participant {
			continue
		}
		if byMatchday && sp.Result.Matchday != matchday {
			continue
		}
		out = append(out, newScoredRow(sp))
	}
	return out
}
