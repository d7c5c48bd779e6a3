package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the salon API collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "groomer",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "groomer",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "groomer",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Booking attempts by result.",
		},
		[]string{"result"},
	)

	transitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "groomer",
			Subsystem: "appointments",
			Name:      "transitions_total",
			Help:      "Successful appointment state transitions by action.",
		},
		[]string{"action"},
	)

	pendingExpired = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "groomer",
			Subsystem: "appointments",
			Name:      "pending_expired_total",
			Help:      "Pending requests rejected by the expiry sweep.",
		},
	)

	liveSubscribers = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "groomer",
			Subsystem: "live",
			Name:      "subscribers",
			Help:      "Open live-update streams by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		bookings,
		transitions,
		pendingExpired,
		liveSubscribers,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records one sample per request, labelled by the matched route
// so that ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := strings.ToUpper(c.Request.Method)

		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Booking results: created, slot_taken, rejected (validation/state), error.
func RecordBooking(result string) {
	bookings.WithLabelValues(result).Inc()
}

func RecordTransition(action string) {
	transitions.WithLabelValues(action).Inc()
}

func RecordExpired(n int) {
	pendingExpired.Add(float64(n))
}

// TrackSubscriber increments the gauge and returns the matching decrement.
func TrackSubscriber(kind string) func() {
	g := liveSubscribers.WithLabelValues(kind)
	g.Inc()
	return g.Dec
}
