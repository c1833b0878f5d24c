package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lwpctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lwpctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	bridgeMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lwpctl",
			Subsystem: "bridge",
			Name:      "messages_total",
			Help:      "Wire messages handled by the bridge.",
		},
		[]string{"node", "direction", "type"},
	)
	bridgePorts = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lwpctl",
			Subsystem: "bridge",
			Name:      "connected_ports",
			Help:      "Device ports currently registered with the bridge.",
		},
		[]string{"node"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bridgeMessages, bridgePorts)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordBridgeMessage(node, direction, msgType string) {
	RegisterMetrics()
	bridgeMessages.WithLabelValues(node, direction, msgType).Inc()
}

func SetConnectedPorts(node string, count int) {
	RegisterMetrics()
	bridgePorts.WithLabelValues(node).Set(float64(count))
}
