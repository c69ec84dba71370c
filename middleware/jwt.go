package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by JWT.
const (
	ParticipantKey = "participant_id"
	AdminKey       = "admin"
)

// Claims extends jwt.RegisteredClaims with the participant's identity.
type Claims struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Admin         bool   `json:"admin"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for a participant valid for ttl.
func IssueToken(key []byte, participantID, name string, admin bool, ttl time.Duration) (string, error) {
	claims := &Claims{
		ParticipantID: participantID,
		Name:          name,
		Admin:         admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   participantID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

// JWT returns an Echo middleware that validates the Authorization header token
// using the provided signing key. A "Bearer " prefix is optional.
func JWT(key []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := strings.TrimSpace(c.Request().Header.Get("Authorization"))
			token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
			if token == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "missing authorization header")
			}

			claims := &Claims{}
			tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil {
				switch {
				case errors.Is(err, jwt.ErrTokenSignatureInvalid):
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token signature")
				case errors.Is(err, jwt.ErrTokenExpired):
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusBadRequest, err.Error())
			}
			if !tkn.Valid || claims.ParticipantID == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ParticipantKey, claims.ParticipantID)
			c.Set(AdminKey, claims.Admin)
			return next(c)
		}
	}
}

// Admin rejects callers whose token does not carry the admin claim.
// isAdmin, when set, may promote a participant from configuration.
func Admin(isAdmin func(participantID string) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(ParticipantKey).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if admin, _ := c.Get(AdminKey).(bool); admin || (isAdmin != nil && isAdmin(id)) {
				return next(c)
			}
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
	}
}
