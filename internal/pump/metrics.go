package pump

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ircpump"

// Metrics instruments the pipeline. A nil *Metrics records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	LinesReceived    prometheus.Counter
	LinesPersisted   prometheus.Counter
	PersistFailures  prometheus.Counter
	IdentifyAttempts prometheus.Counter
}

func NewMetrics() *Metrics {
	r := prometheus.NewRegistry()
	m := &Metrics{
		registry: r,
		LinesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_received_total",
			Help:      "Total lines received from the irc session",
		}),
		LinesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_persisted_total",
			Help:      "Total lines inserted into the database",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Total lines dropped because the insert failed",
		}),
		IdentifyAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identify_attempts_total",
			Help:      "Total identification attempts against the irc server",
		}),
	}
	r.MustRegister(m.LinesReceived, m.LinesPersisted, m.PersistFailures, m.IdentifyAttempts)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) observeQueue(depth func() float64) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "queue_depth",
		Help:      "Lines received but not yet handed to the database",
	}, depth))
}

func (m *Metrics) lineReceived() {
	if m != nil {
		m.LinesReceived.Inc()
	}
}

func (m *Metrics) linePersisted() {
	if m != nil {
		m.LinesPersisted.Inc()
	}
}

func (m *Metrics) persistFailed() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) identifyAttempted() {
	if m != nil {
		m.IdentifyAttempts.Inc()
	}
}
