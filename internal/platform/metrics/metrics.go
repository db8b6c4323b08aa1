package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application. Services treat
// the pointer as optional; a nil *Metrics disables instrumentation.
type Metrics struct {
	BooksCreated    prometheus.Counter
	MembersCreated  prometheus.Counter
	BooksLent       prometheus.Counter
	BooksReturned   prometheus.Counter
	LendingRejected prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
// Call it once per process.
func New() *Metrics {
	return &Metrics{
		BooksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_books_created_total",
			Help: "Total number of book records created or incremented",
		}),
		MembersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_members_created_total",
			Help: "Total number of members registered",
		}),
		BooksLent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_books_lent_total",
			Help: "Total number of successful lend operations",
		}),
		BooksReturned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_books_returned_total",
			Help: "Total number of returns that released a copy",
		}),
		LendingRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "biblio_lending_rejected_total",
			Help: "Total number of lend attempts rejected for lack of quantity",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "biblio_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
}

// ObserveRequest records one HTTP request observation.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	m.RequestDuration.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}
