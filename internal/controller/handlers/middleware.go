package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avoshchina/tutorhub/internal/access"
	"github.com/avoshchina/tutorhub/internal/apperr"
)

const sessionContextKey = "session"

// adminKeyHeader is the shared-secret header carried by administrative
// callers.
const adminKeyHeader = "X-Admin-Key"

// requireSession authenticates the bearer token and attaches the session to
// the request context. Role gating happens per handler; this only moves the
// request out of the anonymous state.
func (h *Handlers) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			return apperr.ErrUnauthorized
		}

		session, err := h.gate.Authenticate(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(sessionContextKey, session)
		return next(c)
	}
}

func sessionFrom(c echo.Context) *access.Session {
	session, _ := c.Get(sessionContextKey).(*access.Session)
	return session
}

// requireAdminKey guards administrative endpoints with the configured shared
// secret. An unconfigured key is a server misconfiguration, not a client
// error.
func (h *Handlers) requireAdminKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.adminKey == "" {
			return echo.NewHTTPError(http.StatusInternalServerError,
				"ADMIN_API_KEY is not configured on the backend")
		}

		if c.Request().Header.Get(adminKeyHeader) != h.adminKey {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid admin key")
		}

		return next(c)
	}
}
