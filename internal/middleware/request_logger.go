package middleware

import (
	"time"

	"github.com/dafibh/pennywise/pennywise-backend/internal/metrics"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// RequestLogger logs every request with zerolog and records it with recorder.
// The route label is the registered path pattern, so ids in URLs do not
// create new series.
func RequestLogger(recorder metrics.Recorder) echo.MiddlewareFunc {
	if recorder == nil {
		recorder = metrics.NoOpRecorder{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			latency := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			recorder.RecordRequest(req.Method, route, res.Status, latency)

			evt := log.Info()
			if res.Status >= 500 {
				evt = log.Error()
			}
			evt.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", latency).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
