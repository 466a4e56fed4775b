package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := SecurityHeaders()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))

	headers := rec.Header()
	assert.Equal(t, "DENY", headers.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", headers.Get("X-Content-Type-Options"))
	assert.Contains(t, headers.Get("Content-Security-Policy"), "connect-src 'self' https://lykr.io")
	assert.Contains(t, headers.Get("Content-Security-Policy"), "wss://api.elevenlabs.io")
	assert.Contains(t, headers.Get("Permissions-Policy"), "microphone=(self)")
}

func TestBuildCSP(t *testing.T) {
	csp := buildCSP(SecurityConfig{ConnectDomains: []string{"https://example.com"}, AllowInlineJS: true})
	assert.Contains(t, csp, "script-src 'self' 'unsafe-inline'")
	assert.Contains(t, csp, "connect-src 'self' https://example.com")

	csp = buildCSP(SecurityConfig{})
	assert.Contains(t, csp, "script-src 'self'")
	assert.NotContains(t, csp, "connect-src")
}
