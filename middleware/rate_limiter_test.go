package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginRequest(t *testing.T, e *echo.Echo, mw echo.MiddlewareFunc) int {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/auth/login")

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter()
	mw := limiter.RateLimit()

	// The login endpoint allows a burst of 5 before limiting kicks in
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, loginRequest(t, e, mw), "request %d", i+1)
	}

	assert.Equal(t, http.StatusTooManyRequests, loginRequest(t, e, mw))

	// The offending IP stays blocked on subsequent requests
	assert.Equal(t, http.StatusTooManyRequests, loginRequest(t, e, mw))
}
