// Package middleware holds the echo middleware shared by the API
// routes: session authentication and per-client rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orgai/hr-assistant/server/service/auth"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session_token"

// claimsContextKey is the echo context key for verified session claims.
const claimsContextKey = "session-claims"

// publicPaths are reachable without a session.
var publicPaths = map[string]bool{
	"/health":                 true,
	"/api/v1/auth/send-otp":   true,
	"/api/v1/auth/verify-otp": true,
	"/api/v1/auth/resend-otp": true,
}

// SessionAuth verifies the session token from the session cookie or a
// bearer Authorization header. When disabled it injects no claims and
// lets every request through.
func SessionAuth(secret string, disabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if disabled || publicPaths[c.Path()] {
				return next(c)
			}

			token := tokenFromRequest(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			claims, err := auth.VerifySessionToken(token, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired session")
			}
			c.Set(claimsContextKey, claims)
			return next(c)
		}
	}
}

// SessionClaims returns the verified claims for the request, or nil
// when the request is unauthenticated (public path or auth disabled).
func SessionClaims(c echo.Context) *auth.SessionClaims {
	claims, _ := c.Get(claimsContextKey).(*auth.SessionClaims)
	return claims
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
