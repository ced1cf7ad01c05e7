package middleware

import (
	"net/http"
	"time"

	"github.com/festhub/festival-api/internal/pkg/metrics"
)

// Metrics records request duration and status for Prometheus.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		metrics.ObserveRequest(r.Method, wrapped.statusCode, time.Since(start))
	})
}
