package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orgai/hr-assistant/server/service/auth"
	"github.com/orgai/hr-assistant/store"
)

const testSecret = "test-secret"

func newAuthTestServer(disabled bool) *echo.Echo {
	e := echo.New()
	e.Use(SessionAuth(testSecret, disabled))
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/api/v1/protected", func(c echo.Context) error {
		claims := SessionClaims(c)
		if claims == nil {
			return c.String(http.StatusOK, "anonymous")
		}
		return c.String(http.StatusOK, claims.Email)
	})
	return e
}

func TestSessionAuthAllowsPublicPath(t *testing.T) {
	e := newAuthTestServer(false)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthRejectsMissingToken(t *testing.T) {
	e := newAuthTestServer(false)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthRejectsInvalidToken(t *testing.T) {
	e := newAuthTestServer(false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthAcceptsCookieToken(t *testing.T) {
	e := newAuthTestServer(false)
	token, err := auth.NewSessionToken(&store.Employee{EmpID: 42, Email: "asha@example.com"}, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "asha@example.com", rec.Body.String())
}

func TestSessionAuthAcceptsBearerToken(t *testing.T) {
	e := newAuthTestServer(false)
	token, err := auth.NewSessionToken(&store.Employee{EmpID: 42, Email: "asha@example.com"}, testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionAuthDisabledSkipsVerification(t *testing.T) {
	e := newAuthTestServer(true)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/protected", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(10, 3)

	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.1"))
	assert.False(t, rl.Allow("10.0.0.1"))

	// Independent bucket per client.
	assert.True(t, rl.Allow("10.0.0.2"))
}
