package rate_limiter

import (
	"net"
	"net/http"
	"strconv"
	"sync"

	"dispatch/pkg/logger"
	"github.com/gorilla/mux"
)

// Middleware ограничивает запросы каждого клиента отдельно, ключ - адрес клиента.
// Сверх лимита отвечает 429.
func Middleware(log handlerLogger, rateLimiterQPS int, limiter Limiter) func(http.Handler) http.Handler {
	// клиенты, уже получившие 429 и еще не пропущенные
	var limited sync.Map

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)

			if limiter.Allow(client) {
				limited.Delete(client)
				next.ServeHTTP(w, r)
				return
			}

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}

			RateLimitedRequestsTotal.WithLabelValues(r.Method, route).Inc()
			if _, seen := limited.LoadOrStore(client, struct{}{}); !seen {
				RateLimitedClientsTotal.Inc()
				log.Warn("rate limit exceeded",
					logger.NewField("client", client),
					logger.NewField("method", r.Method),
					logger.NewField("route", route),
				)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rateLimiterQPS))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			_, err := w.Write([]byte(`{"error":"rate limit exceeded"}`))
			if err != nil {
				log.Error("failed to write rate limit response", logger.NewField("error", err))
			}
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
