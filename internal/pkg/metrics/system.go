package metrics

import (
	"context"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

const defaultCollectInterval = 5 * time.Second

var (
	SystemCPUUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_cpu_usage_percent",
			Help: "CPU usage percentage",
		},
	)

	SystemMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "system_memory_usage_bytes",
			Help: "System memory usage in bytes",
		},
	)

	ApplicationMemoryUsage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "application_memory_usage_bytes",
			Help: "Application memory usage in bytes (Go heap allocation)",
		},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "application_goroutines",
			Help: "Number of running goroutines",
		},
	)

	DBPoolConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "db_pool_connections",
			Help: "Database pool connections by state",
		},
		[]string{"state"},
	)
)

// PoolStater - источник статистики пула, *pgxpool.Pool подходит напрямую.
type PoolStater interface {
	Stat() *pgxpool.Stat
}

// StartSystemMetricsCollector собирает метрики процесса и пула до отмены ctx.
// pool может быть nil.
func StartSystemMetricsCollector(ctx context.Context, interval time.Duration, pool PoolStater) {
	if interval <= 0 {
		interval = defaultCollectInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				collectSystemMetrics()
				if pool != nil {
					CollectPoolMetrics(pool)
				}
			}
		}
	}()
}

func CollectPoolMetrics(pool PoolStater) {
	stat := pool.Stat()
	DBPoolConnections.WithLabelValues("total").Set(float64(stat.TotalConns()))
	DBPoolConnections.WithLabelValues("idle").Set(float64(stat.IdleConns()))
	DBPoolConnections.WithLabelValues("acquired").Set(float64(stat.AcquiredConns()))
	DBPoolConnections.WithLabelValues("max").Set(float64(stat.MaxConns()))
}

func collectSystemMetrics() {
	// без ожидания: сравнение с прошлым вызовом
	cpuPercent, err := cpu.Percent(0, false)
	if err == nil && len(cpuPercent) > 0 {
		SystemCPUUsage.Set(cpuPercent[0])
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	vmStat, err := mem.VirtualMemory()
	if err == nil {
		SystemMemoryUsage.Set(float64(vmStat.Used))
	}

	ApplicationMemoryUsage.Set(float64(m.Alloc))
	Goroutines.Set(float64(runtime.NumGoroutine()))
}
