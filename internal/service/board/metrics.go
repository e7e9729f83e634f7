package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_transitions_total",
			Help: "Total number of delivery status transitions by target status and result",
		},
		[]string{"status", "result"},
	)

	RollbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_rollbacks_total",
			Help: "Total number of optimistic transitions rolled back after a persistence failure",
		},
	)

	DeliveryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "delivery_duration_seconds",
			Help:    "Time from departure to delivery for completed deliveries",
			Buckets: []float64{60, 300, 600, 900, 1200, 1800, 2700, 3600, 5400, 7200},
		},
	)
)
