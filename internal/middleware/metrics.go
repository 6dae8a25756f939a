package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Adityadhvn/Partier/internal/monitoring"
	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records request latency per route pattern and
// status. The chi route pattern is used instead of the raw path so
// /api/tickets/42 and /api/tickets/43 land in the same series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		path := r.URL.Path
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
			if pattern := routeCtx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		monitoring.RequestDuration.
			WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).
			Observe(time.Since(start).Seconds())
	})
}
