package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/clinicsite/internal/logging"
)

// RequestLogger writes one access line per request. Handler errors are
// passed to echo's error handler first so the logged status is the one sent.
func RequestLogger(log logging.Logger) echo.MiddlewareFunc {
	log = log.With("module", "http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			res := c.Response()
			args := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"size", res.Size,
				"ip", c.RealIP(),
				"request_id", res.Header().Get(echo.HeaderXRequestID),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if res.Status >= 500 {
				log.Warn(req.Context(), "request failed", args...)
			} else {
				log.Info(req.Context(), "request completed", args...)
			}
			return nil
		}
	}
}
