package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/canape/middleware"
)

// ParticipantStats returns the season KPIs of the participant in the path.
func (h *Handler) ParticipantStats(c echo.Context) error {
	return h.stats(c, c.Param("id"))
}

// MyStats returns the caller's own season KPIs.
func (h *Handler) MyStats(c echo.Context) error {
	id, _ := c.Get(mw.ParticipantKey).(string)
	if id == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return h.stats(c, id)
}

func (h *Handler) stats(c echo.Context, participantID string) error {
	if participantID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing participant id")
	}
	_, s, err := h.seasonFor(c)
	if err != nil {
		return err
	}
	st, ok := s.Stats(participantID)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "participant has no predictions this season")
	}
	return c.JSON(http.StatusOK, roundStats(st))
}
