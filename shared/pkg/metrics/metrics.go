package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

const namespace = "nepdate"

// Metrics holds Prometheus metrics for a service
type Metrics struct {
	RequestCounter   *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight *prometheus.GaugeVec
	DBConnPoolStats  *prometheus.GaugeVec

	// Conversions counts calendar conversions by direction (tobs, toad)
	// and by the strategy that served them (table, astronomical).
	Conversions *prometheus.CounterVec
	CacheLookup *prometheus.CounterVec
}

// NewMetrics creates a new metrics instance registered with the default registry
func NewMetrics(serviceName string) *Metrics {
	return NewMetricsWith(serviceName, prometheus.DefaultRegisterer)
}

// NewMetricsWith creates a metrics instance registered with reg.
func NewMetricsWith(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "Request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "requests_in_flight",
				Help:      "Number of requests currently being processed",
			},
			[]string{"method"},
		),
		DBConnPoolStats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"},
		),
		Conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "conversions_total",
				Help:      "Calendar conversions by direction and strategy",
			},
			[]string{"direction", "method"},
		),
		CacheLookup: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: serviceName,
				Name:      "cache_lookups_total",
				Help:      "Conversion cache lookups by result",
			},
			[]string{"result"}, // hit, miss, error
		),
	}
}

// RecordConversion counts one conversion.
func (m *Metrics) RecordConversion(direction, method string) {
	m.Conversions.WithLabelValues(direction, method).Inc()
}

// RecordCacheLookup counts one cache lookup.
func (m *Metrics) RecordCacheLookup(result string) {
	m.CacheLookup.WithLabelValues(result).Inc()
}

// UnaryServerInterceptor returns a new unary server interceptor for metrics
func UnaryServerInterceptor(metrics *Metrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		method := info.FullMethod

		metrics.RequestsInFlight.WithLabelValues(method).Inc()
		defer metrics.RequestsInFlight.WithLabelValues(method).Dec()

		start := time.Now()
		defer func() {
			metrics.RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		}()

		resp, err := handler(ctx, req)

		statusCode := "ok"
		if err != nil {
			st, _ := status.FromError(err)
			statusCode = st.Code().String()
		}
		metrics.RequestCounter.WithLabelValues(method, statusCode).Inc()

		return resp, err
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware records request metrics for an HTTP handler. Requests are
// labelled by route pattern so path parameters do not explode cardinality.
func HTTPMiddleware(metrics *Metrics, route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.RequestsInFlight.WithLabelValues(route).Inc()
		defer metrics.RequestsInFlight.WithLabelValues(route).Dec()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		metrics.RequestCounter.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	})
}

// RecordDBPoolStats records database connection pool statistics
func (m *Metrics) RecordDBPoolStats(open, inUse, idle int, waitCount int64, waitDuration time.Duration) {
	m.DBConnPoolStats.WithLabelValues("open").Set(float64(open))
	m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(inUse))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(idle))
	m.DBConnPoolStats.WithLabelValues("wait_count").Set(float64(waitCount))
	m.DBConnPoolStats.WithLabelValues("wait_duration_ms").Set(float64(waitDuration.Milliseconds()))
}
