package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the sequence inference service
type Metrics struct {
	// Inference request metrics
	RequestsReceived prometheus.Counter
	ResponsesSent    prometheus.Counter
	InferErrors      prometheus.Counter
	RequestDuration  prometheus.Histogram

	// Stream metrics
	ActiveStreams prometheus.Gauge
	StreamsOpened prometheus.Counter
	StreamsClosed prometheus.Counter

	// Sequence metrics
	ActiveSequences    prometheus.Gauge
	SequencesStarted   prometheus.Counter
	SequencesCompleted prometheus.Counter
	SequencesExpired   prometheus.Counter
	SequenceDuration   prometheus.Histogram
	SequenceLength     prometheus.Histogram

	// HTTP API metrics
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		// Inference request metrics
		RequestsReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_requests_received_total",
			Help: "Total number of inference requests received",
		}),
		ResponsesSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_responses_sent_total",
			Help: "Total number of inference responses sent",
		}),
		InferErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_errors_total",
			Help: "Total number of failed inference requests",
		}),
		RequestDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "seqinfer_request_duration_seconds",
			Help:    "Time spent processing one inference request",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 0.1ms to ~0.4s
		}),

		// Stream metrics
		ActiveStreams: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "seqinfer_active_streams",
			Help: "Current number of open inference streams",
		}),
		StreamsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_streams_opened_total",
			Help: "Total number of inference streams opened",
		}),
		StreamsClosed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_streams_closed_total",
			Help: "Total number of inference streams closed",
		}),

		// Sequence metrics
		ActiveSequences: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "seqinfer_active_sequences",
			Help: "Current number of active sequences",
		}),
		SequencesStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_sequences_started_total",
			Help: "Total number of sequences started",
		}),
		SequencesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_sequences_completed_total",
			Help: "Total number of sequences completed by sequence_end",
		}),
		SequencesExpired: promauto.NewCounter(prometheus.CounterOpts{
			Name: "seqinfer_sequences_expired_total",
			Help: "Total number of sequences expired by the idle timeout",
		}),
		SequenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "seqinfer_sequence_duration_seconds",
			Help:    "Lifetime of completed sequences in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4.5 minutes
		}),
		SequenceLength: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "seqinfer_sequence_length_requests",
			Help:    "Number of requests in completed sequences",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10), // 1 to 512
		}),

		// HTTP API metrics
		HTTPRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "seqinfer_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "endpoint", "status_code"}),
		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "seqinfer_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
	}
}

// RecordRequestReceived increments the requests received counter
func (m *Metrics) RecordRequestReceived() {
	m.RequestsReceived.Inc()
}

// RecordResponseSent records a successful response and its processing time
func (m *Metrics) RecordResponseSent(durationSeconds float64) {
	m.ResponsesSent.Inc()
	m.RequestDuration.Observe(durationSeconds)
}

// RecordInferError increments the failed request counter
func (m *Metrics) RecordInferError() {
	m.InferErrors.Inc()
}

// RecordStreamOpened increments the stream counters
func (m *Metrics) RecordStreamOpened() {
	m.StreamsOpened.Inc()
	m.ActiveStreams.Inc()
}

// RecordStreamClosed increments the stream counters
func (m *Metrics) RecordStreamClosed() {
	m.StreamsClosed.Inc()
	m.ActiveStreams.Dec()
}

// SetActiveSequences sets the active sequence gauge
func (m *Metrics) SetActiveSequences(count int) {
	m.ActiveSequences.Set(float64(count))
}

// RecordSequenceStarted increments the sequences started counter
func (m *Metrics) RecordSequenceStarted() {
	m.SequencesStarted.Inc()
}

// RecordSequenceCompleted records a completed sequence and its lifetime
func (m *Metrics) RecordSequenceCompleted(durationSeconds float64) {
	m.SequencesCompleted.Inc()
	m.SequenceDuration.Observe(durationSeconds)
}

// RecordSequenceLength observes the request count of a completed sequence
func (m *Metrics) RecordSequenceLength(requests uint64) {
	m.SequenceLength.Observe(float64(requests))
}

// RecordSequencesExpired adds to the expired sequence counter
func (m *Metrics) RecordSequencesExpired(count int) {
	m.SequencesExpired.Add(float64(count))
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, durationSeconds float64) {
	m.HTTPRequests.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(durationSeconds)
}
