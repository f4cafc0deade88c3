package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the telemetry server
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Buffer read metrics
	bufferReadsTotal   *prometheus.CounterVec
	bufferReadDuration *prometheus.HistogramVec

	// Exported sensor telemetry
	sensorReading     *prometheus.GaugeVec
	sensorUpdateCount *prometheus.GaugeVec
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ocsd_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ocsd_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ocsd_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		bufferReadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ocsd_buffer_reads_total",
				Help: "Total number of reads against the mapped buffer",
			},
			[]string{"record", "status"},
		),

		bufferReadDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ocsd_buffer_read_duration_seconds",
				Help:    "Mapped buffer read duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"record"},
		),

		sensorReading: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ocsd_sensor_reading_celsius",
				Help: "Last observed sensor reading in degrees Celsius",
			},
			[]string{"slot", "sensor"},
		),

		sensorUpdateCount: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ocsd_sensor_update_count",
				Help: "Last observed sensor update counter",
			},
			[]string{"slot", "sensor"},
		),
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordBufferRead records one read of the header or a device slot
func (m *Metrics) RecordBufferRead(record string, success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.bufferReadsTotal.WithLabelValues(record, status).Inc()
	m.bufferReadDuration.WithLabelValues(record).Observe(duration.Seconds())
}

// RecordSensor exports one observed sensor as gauges
func (m *Metrics) RecordSensor(slot, sensor int, reading int16, updateCount uint16) {
	slotLabel := strconv.Itoa(slot)
	sensorLabel := strconv.Itoa(sensor)
	m.sensorReading.WithLabelValues(slotLabel, sensorLabel).Set(float64(reading))
	m.sensorUpdateCount.WithLabelValues(slotLabel, sensorLabel).Set(float64(updateCount))
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
