package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// healthPaths are probe endpoints hit every few seconds by orchestrators.
// Successful probes are logged once and then suppressed; failures and
// success-after-failure transitions always log.
var healthPaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
}

// RequestLog returns Echo middleware that logs requests with structured
// fields. It generates a request ID when none is provided and propagates
// it through the response header and echo context.
func RequestLog(log *slog.Logger) echo.MiddlewareFunc {
	var mu sync.Mutex
	lastHealthStatus := map[string]int{}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqID := c.Request().Header.Get(requestIDHeader)
			if reqID == "" {
				reqID = uuid.NewString()
			}

			c.Set("request_id", reqID)
			c.Response().Header().Set(requestIDHeader, reqID)

			err := next(c)

			path := c.Request().URL.Path
			status := c.Response().Status

			if _, probe := healthPaths[path]; probe {
				ok := status >= 200 && status < 300

				mu.Lock()
				suppressed := ok && lastHealthStatus[path] == status
				lastHealthStatus[path] = status
				mu.Unlock()

				if suppressed {
					return err
				}
				if !ok {
					log.Warn("request",
						"method", c.Request().Method,
						"path", path,
						"status", status,
						"duration_ms", time.Since(start).Milliseconds(),
						"request_id", reqID,
					)
					return err
				}
			}

			log.Info("request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", reqID,
			)

			return err
		}
	}
}
