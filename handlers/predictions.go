package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/padraicbc/canape/middleware"
	"github.com/padraicbc/canape/models"
)

type predictionRequest struct {
	MatchID string `json:"matchID" validate:"required"`
	Home    *int   `json:"home" validate:"required,gte=0,lte=99"`
	Away    *int   `json:"away" validate:"required,gte=0,lte=99"`
}

// SubmitPrediction stores the caller's scoreline for a match that has not
// been played. Predictions cannot be changed once made.
func (h *Handler) SubmitPrediction(c echo.Context) error {
	participantID, _ := c.Get(mw.ParticipantKey).(string)
	if participantID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req predictionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	match := &models.Match{}
	err = tx.NewSelect().Model(match).Where("m.match_id = ?", req.MatchID).For("SHARE").Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown match")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if match.Result().Played() {
		return echo.NewHTTPError(http.StatusConflict, "match already has a result")
	}

	pred := &models.Prediction{
		ParticipantID: participantID,
		MatchID:       req.MatchID,
		Home:          *req.Home,
		Away:          *req.Away,
	}
	// A conflicting insert returns no row, which bun reports as sql.ErrNoRows.
	res, err := tx.NewInsert().Model(pred).On("CONFLICT (participant_id, match_id) DO NOTHING").Returning("*").Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return echo.NewHTTPError(http.StatusConflict, "prediction already made for this match")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return echo.NewHTTPError(http.StatusConflict, "prediction already made for this match")
	}

	if err = tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	h.seasons.invalidate(match.Season)
	return c.JSON(http.StatusCreated, pred)
}
