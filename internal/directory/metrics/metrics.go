package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module.
// Tracks resolver latency, disclosure decisions and directory writes.
type Metrics struct {
	OperationDuration *prometheus.HistogramVec
	Disclosures       *prometheus.CounterVec
	SpamReported      prometheus.Counter
	ContactsAdded     prometheus.Counter
	StoreFailures     *prometheus.CounterVec
}

// New registers the directory metrics on reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "callerid_directory_operation_duration_seconds",
			Help:    "Duration of directory resolver operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		Disclosures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "callerid_email_disclosure_decisions_total",
			Help: "Email disclosure decisions by outcome (disclosed, withheld)",
		}, []string{"outcome"}),
		SpamReported: factory.NewCounter(prometheus.CounterOpts{
			Name: "callerid_spam_reports_total",
			Help: "Total number of spam reports accepted",
		}),
		ContactsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "callerid_contacts_added_total",
			Help: "Total number of contacts added",
		}),
		StoreFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "callerid_directory_store_failures_total",
			Help: "Store faults surfaced as service unavailable, by operation",
		}, []string{"operation"}),
	}
}

// ObserveOperation records the duration of a resolver operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) RecordDisclosure(disclosed bool) {
	outcome := "withheld"
	if disclosed {
		outcome = "disclosed"
	}
	m.Disclosures.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementSpamReported() {
	m.SpamReported.Inc()
}

func (m *Metrics) IncrementContactsAdded() {
	m.ContactsAdded.Inc()
}

func (m *Metrics) IncrementStoreFailure(operation string) {
	m.StoreFailures.WithLabelValues(operation).Inc()
}
