package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queueOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "noque_queue_operations_total",
			Help: "Queue membership operations by outcome",
		},
		[]string{"operation", "status"},
	)

	liveMembers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "noque_queue_members",
			Help: "Live member count per queue",
		},
		[]string{"queue_id"},
	)

	historyAnomalies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "noque_history_anomalies_total",
			Help: "Membership terminations with no matching open history entry",
		},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "noque_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

func RecordQueueOperation(operation string, status string) {
	queueOperations.WithLabelValues(operation, status).Inc()
}

func SetLiveMembers(queueID string, count int) {
	liveMembers.WithLabelValues(queueID).Set(float64(count))
}

func RecordHistoryAnomaly() {
	historyAnomalies.Inc()
}

func ObserveRequest(method string, path string, d time.Duration) {
	requestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}
