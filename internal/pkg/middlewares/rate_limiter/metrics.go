package rate_limiter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RateLimitedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_requests_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
		[]string{"method", "route"},
	)

	// курьерское приложение опрашивает доску чаще остальных
	RateLimitedClientsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_clients_total",
			Help: "Rejections counted once per client until it is allowed again",
		},
	)
)
