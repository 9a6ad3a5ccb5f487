package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flatmoney"

var (
	// Registry 应用自有的 Prometheus 注册表
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	lifecycleTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "transitions_total",
			Help:      "Floor and apartment create, restore and delete transitions.",
		},
		[]string{"entity", "transition"},
	)

	obligationsIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "bulk_obligations_total",
			Help:      "Obligations created by bulk fan-out.",
		},
	)

	accessDenied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "access",
			Name:      "denied_total",
			Help:      "Building access checks that were denied.",
		},
		[]string{"required"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		lifecycleTransitions,
		obligationsIssued,
		accessDenied,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler 暴露注册表中的指标
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// RequestStarted 请求开始，返回结束时调用的记录函数
func RequestStarted() func(method, path, status string) {
	start := time.Now()
	httpInFlight.Inc()
	return func(method, path, status string) {
		httpInFlight.Dec()
		httpRequests.WithLabelValues(method, path, status).Inc()
		httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordLifecycle 记录楼层/公寓的状态迁移，transition 为 created、restored、deleted、purged
func RecordLifecycle(entity, transition string) {
	lifecycleTransitions.WithLabelValues(entity, transition).Inc()
}

// RecordObligationsIssued 记录批量创建的应缴款项数量
func RecordObligationsIssued(count int) {
	obligationsIssued.Add(float64(count))
}

// RecordAccessDenied 记录被拒绝的权限检查
func RecordAccessDenied(required string) {
	accessDenied.WithLabelValues(required).Inc()
}
