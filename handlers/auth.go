package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/padraicbc/canape/middleware"
	"github.com/padraicbc/canape/models"
)

const tokenTTL = 30 * 24 * time.Hour

type credentials struct {
	Participant string `json:"participant" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

// HashPassword validates participant/password input and returns a bcrypt hash for storage.
func HashPassword(participantID, password string) (string, error) {
	if strings.TrimSpace(participantID) == "" {
		return "", errors.New("participant id is required")
	}
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedPassword), nil
}

// Signin validates credentials and returns a JWT token valid for 30 days.
func (h *Handler) Signin(c echo.Context) error {
	var creds credentials
	if err := bindValid(c, &creds); err != nil {
		return err
	}
	creds.Participant = strings.TrimSpace(creds.Participant)

	p := &models.Participant{}
	err := h.db.NewSelect().Model(p).
		Where("p.id = ?", creds.Participant).
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "incorrect participant or password")
	}
	if p.Password == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "no login for this participant")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(creds.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	admin := p.Admin || h.isAdmin(p.ID)
	token, err := mw.IssueToken(h.JWTKey, p.ID, p.Name, admin, tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"token": token, "participant": p.ID, "admin": admin})
}
