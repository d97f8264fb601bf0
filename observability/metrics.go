package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pairchat"

// Metrics owns its own registry so several instances can live in one test binary.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	connections     prometheus.Gauge
	messages        *prometheus.CounterVec
	droppedPushes   *prometheus.CounterVec
	frames          *prometheus.CounterVec
	relayed         prometheus.Counter
	workerRestarts  *prometheus.CounterVec
	storageFailures prometheus.Counter
}

// NewMetrics registers every collector; onlineUsers is sampled on scrape.
func NewMetrics(onlineUsers func() int) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_connections",
			Help:      "Joined connections currently held by the registry.",
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_total",
			Help:      "Messages by delivery state reached.",
		}, []string{"state"}),
		droppedPushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_pushes_total",
			Help:      "Outbound frames that could not be queued on a connection.",
		}, []string{"kind"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbound_frames_total",
			Help:      "Inbound frames by type and outcome.",
		}, []string{"type", "outcome"}),
		relayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relayed_events_total",
			Help:      "External events pushed to at least one partner connection.",
		}),
		workerRestarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "worker_restarts_total",
			Help:      "Supervised workers restarted after a crash.",
		}, []string{"worker"}),
		storageFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_failures_total",
			Help:      "Failed calls to the message store.",
		}),
	}

	reg.MustRegister(
		m.connections, m.messages, m.droppedPushes, m.frames,
		m.relayed, m.workerRestarts, m.storageFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if onlineUsers != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "online_users",
			Help:      "Users with at least one live connection.",
		}, func() float64 { return float64(onlineUsers()) }))
	}
	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) IncrConnections() {
	if m != nil {
		m.connections.Inc()
	}
}

func (m *Metrics) DecrConnections() {
	if m != nil {
		m.connections.Dec()
	}
}

// IncrMessages counts a message reaching state ("sent", "delivered", "read").
func (m *Metrics) IncrMessages(state string) {
	if m != nil {
		m.messages.WithLabelValues(state).Inc()
	}
}

func (m *Metrics) IncrDroppedPush(kind string) {
	if m != nil {
		m.droppedPushes.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrFrame(frameType, outcome string) {
	if m != nil {
		m.frames.WithLabelValues(frameType, outcome).Inc()
	}
}

func (m *Metrics) IncrRelayed() {
	if m != nil {
		m.relayed.Inc()
	}
}

func (m *Metrics) IncrWorkerRestart(worker string) {
	if m != nil {
		m.workerRestarts.WithLabelValues(worker).Inc()
	}
}

func (m *Metrics) IncrStorageFailure() {
	if m != nil {
		m.storageFailures.Inc()
	}
}
