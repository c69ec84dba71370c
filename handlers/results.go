package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	mw "github.com/padraicbc/canape/middleware"
	"github.com/padraicbc/canape/models"
)

type resultRequest struct {
	MatchID  string   `json:"matchID" validate:"required"`
	Home     *int     `json:"home" validate:"omitempty,gte=0,lte=99"`
	Away     *int     `json:"away" validate:"omitempty,gte=0,lte=99"`
	OddsHome *float64 `json:"oddsHome" validate:"omitempty,gt=1"`
	OddsAway *float64 `json:"oddsAway" validate:"omitempty,gt=1"`
	OddsDraw *float64 `json:"oddsDraw" validate:"omitempty,gt=1"`
}

type setColumn struct {
	name  string
	value interface{}
}

// columns lists the fields present in the request. Goals come in pairs.
func (r *resultRequest) columns() ([]setColumn, error) {
	if (r.Home == nil) != (r.Away == nil) {
		return nil, errors.New("home and away goals must be set together")
	}
	var cols []setColumn
	if r.Home != nil {
		cols = append(cols, setColumn{"home_goals", *r.Home}, setColumn{"away_goals", *r.Away})
	}
	if r.OddsHome != nil {
		cols = append(cols, setColumn{"odds_home", *r.OddsHome})
	}
	if r.OddsAway != nil {
		cols = append(cols, setColumn{"odds_away", *r.OddsAway})
	}
	if r.OddsDraw != nil {
		cols = append(cols, setColumn{"odds_draw", *r.OddsDraw})
	}
	if len(cols) == 0 {
		return nil, errors.New("nothing to update")
	}
	return cols, nil
}

// RecordResult sets the final score and/or odds of a match. Fields left out
// of the body keep their stored value.
func (h *Handler) RecordResult(c echo.Context) error {
	var req resultRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	cols, err := req.columns()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	match := &models.Match{}
	err = h.db.NewSelect().Model(match).Column("match_id", "season").Where("m.match_id = ?", req.MatchID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "unknown match")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	q := h.db.NewUpdate().Model((*models.Match)(nil)).Where("match_id = ?", req.MatchID)
	for _, col := range cols {
		q = q.Set("? = ?", bun.Ident(col.name), col.value)
	}
	if _, err := q.Exec(ctx); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.seasons.invalidate(match.Season)
	by, _ := c.Get(mw.ParticipantKey).(string)
	zap.L().Info("result recorded", zap.String("match", req.MatchID), zap.String("season", match.Season), zap.String("by", by))
	return c.NoContent(http.StatusAccepted)
}
