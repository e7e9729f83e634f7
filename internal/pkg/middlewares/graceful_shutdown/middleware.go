package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

// Middleware отвечает 503 на новые запросы, когда сервер уже гасится.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() || ongoingCtx.Err() != nil {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"service is shutting down"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
