// middleware/security_headers.go
package middleware

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
)

// SecurityConfig controls the Content-Security-Policy emitted by
// SecurityHeadersWithConfig.
type SecurityConfig struct {
	ConnectDomains []string
	AllowInlineJS  bool
}

// SecurityHeaders applies the default policy: connect-src limited to the lykr
// frontends plus the transcription and voice-agent endpoints, and the
// microphone left available for the interview recorder.
func SecurityHeaders() echo.MiddlewareFunc {
	domains := []string{
		"https://lykr.io",
		"https://www.lykr.io",
		"https://app.lykr.io",
		"https://api.openai.com",
		"wss://api.elevenlabs.io",
	}
	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				domains = append(domains, trimmed)
			}
		}
	}
	return SecurityHeadersWithConfig(SecurityConfig{ConnectDomains: domains})
}

func SecurityHeadersWithConfig(config SecurityConfig) echo.MiddlewareFunc {
	csp := buildCSP(config)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("X-Frame-Options", "DENY")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-XSS-Protection", "1; mode=block")
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
			h.Set("Content-Security-Policy", csp)
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			// the voice interview records from the browser microphone
			h.Set("Permissions-Policy", "geolocation=(), microphone=(self), camera=()")

			h.Del("Server")
			h.Del("X-Powered-By")

			return next(c)
		}
	}
}

func buildCSP(config SecurityConfig) string {
	csp := []string{
		"default-src 'self'",
		"img-src 'self' data: https:",
		"style-src 'self' 'unsafe-inline'",
	}

	if config.AllowInlineJS {
		csp = append(csp, "script-src 'self' 'unsafe-inline'")
	} else {
		csp = append(csp, "script-src 'self'")
	}

	if len(config.ConnectDomains) > 0 {
		csp = append(csp, "connect-src 'self' "+strings.Join(config.ConnectDomains, " "))
	}

	return strings.Join(csp, "; ")
}
