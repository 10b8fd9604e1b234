package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "greenindex"

// Metrics is the Prometheus sink for the services and the HTTP layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	readingsIngested *prometheus.CounterVec
	readingsRejected *prometheus.CounterVec
	persistFailures  prometheus.Counter
	wastageAlerts    *prometheus.CounterVec
	simTicks         prometheus.Counter
	simSensors       prometheus.Gauge
	simTickDuration  prometheus.Histogram
	datasetRows      *prometheus.CounterVec
	streamDrops      *prometheus.CounterVec
}

// NewMetrics registers every collector on reg. Pass a fresh
// prometheus.NewRegistry() in tests.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		readingsIngested: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_ingested_total",
			Help:      "Device readings accepted by the engine, by source.",
		}, []string{"source"}),
		readingsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "readings_rejected_total",
			Help:      "Device readings rejected at the ingestion boundary.",
		}, []string{"source", "reason"}),
		persistFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reading_persist_failures_total",
			Help:      "Readings the engine accepted but storage did not.",
		}),
		wastageAlerts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wastage_alerts_total",
			Help:      "Wastage alerts raised, by zone.",
		}, []string{"zone"}),
		simTicks: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "simulation_ticks_total",
			Help:      "Completed simulation ticks.",
		}),
		simSensors: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "simulation_sensors",
			Help:      "Sensors updated by the latest simulation tick.",
		}),
		simTickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulation_tick_duration_seconds",
			Help:      "Wall time spent in one simulation tick.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		datasetRows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dataset_rows_total",
			Help:      "Uploaded dataset rows by validation result.",
		}, []string{"result"}),
		streamDrops: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_events_dropped_total",
			Help:      "Events dropped because a buffered subscriber was full.",
		}, []string{"stream"}),
	}
}

func (m *Metrics) ReadingIngested(source string) {
	if m == nil {
		return
	}
	m.readingsIngested.WithLabelValues(source).Inc()
}

func (m *Metrics) ReadingRejected(source, reason string) {
	if m == nil {
		return
	}
	m.readingsRejected.WithLabelValues(source, reason).Inc()
}

func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) WastageDetected(zone string) {
	if m == nil {
		return
	}
	m.wastageAlerts.WithLabelValues(zone).Inc()
}

func (m *Metrics) SimulationTick(sensors int, took time.Duration) {
	if m == nil {
		return
	}
	m.simTicks.Inc()
	m.simSensors.Set(float64(sensors))
	m.simTickDuration.Observe(took.Seconds())
}

func (m *Metrics) DatasetIngested(valid, invalid int) {
	if m == nil {
		return
	}
	m.datasetRows.WithLabelValues("valid").Add(float64(valid))
	m.datasetRows.WithLabelValues("invalid").Add(float64(invalid))
}

// StreamDropped returns an onDrop callback for a buffered subscription.
func (m *Metrics) StreamDropped(stream string) func() {
	if m == nil {
		return func() {}
	}
	c := m.streamDrops.WithLabelValues(stream)
	return c.Inc
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
