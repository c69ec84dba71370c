package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/canape/db"
	"github.com/padraicbc/canape/scoring"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db      *bun.DB
	JWTKey  []byte
	isAdmin func(participantID string) bool
	seasons *seasonCache
}

// New creates a Handler with the given database connection and JWT signing
// key. isAdmin may be nil.
func New(db *bun.DB, jwtKey []byte, isAdmin func(string) bool) *Handler {
	if isAdmin == nil {
		isAdmin = func(string) bool { return false }
	}
	return &Handler{db: db, JWTKey: jwtKey, isAdmin: isAdmin, seasons: newSeasonCache()}
}

// filterParams reads the season and optional competition query params.
func filterParams(c echo.Context) (db.Filter, error) {
	f := db.Filter{Season: c.QueryParam("season"), Competition: c.QueryParam("competition")}
	if f.Season == "" {
		return f, echo.NewHTTPError(http.StatusBadRequest, "missing season param")
	}
	return f, nil
}

func optionalInt(c echo.Context, name string) (int, bool, error) {
	s := c.QueryParam(name)
	if s == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" param")
	}
	return n, true, nil
}

func boolParam(c echo.Context, name string) bool {
	b, _ := strconv.ParseBool(c.QueryParam(name))
	return b
}

// season returns the computed season selected by f, from cache when possible.
func (h *Handler) season(ctx context.Context, f db.Filter) (*scoring.Season, error) {
	return h.seasons.get(f, func() (*scoring.Season, error) { return h.compute(ctx, f) })
}

func (h *Handler) compute(ctx context.Context, f db.Filter) (*scoring.Season, error) {
	preds, results, err := db.LoadSeason(ctx, h.db, f)
	if err != nil {
		return nil, err
	}
	return scoring.ComputeSeason(preds, results, scoring.SeasonOptions{})
}

// seasonFor is season with errors already translated for the client.
func (h *Handler) seasonFor(c echo.Context) (db.Filter, *scoring.Season, error) {
	f, err := filterParams(c)
	if err != nil {
		return f, nil, err
	}
	s, err := h.season(c.Request().Context(), f)
	if err != nil {
		return f, nil, engineError(f, err)
	}
	return f, s, nil
}

// engineError maps a season computation failure to an HTTP error. Broken
// references are a data problem and are reported as such.
func engineError(f db.Filter, err error) error {
	switch {
	case errors.Is(err, scoring.ErrUnresolvedReference), errors.Is(err, scoring.ErrDuplicateMatch):
		zap.L().Error("season data inconsistent", zap.Stringer("filter", f), zap.Error(err))
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// WarmCache recomputes the newest season for every competition, picking up
// rows written outside the API (imports, migrations).
func (h *Handler) WarmCache(ctx context.Context) error {
	seasons, err := db.Seasons(ctx, h.db)
	if err != nil || len(seasons) == 0 {
		return err
	}
	latest := seasons[0]
	comps, err := db.Competitions(ctx, h.db, latest)
	if err != nil {
		return err
	}

	filters := []db.Filter{{Season: latest}}
	for _, comp := range comps {
		filters = append(filters, db.Filter{Season: latest, Competition: comp})
	}
	for _, f := range filters {
		_, err := h.seasons.refresh(f, func() (*scoring.Season, error) { return h.compute(ctx, f) })
		if err != nil {
			return fmt.Errorf("warm %s: %w", f, err)
		}
	}
	zap.L().Debug("season cache warmed", zap.String("season", latest), zap.Int("entries", h.seasons.size()))
	return nil
}
