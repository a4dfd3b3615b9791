package batch

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments batch ingestion.
type Metrics struct {
	filesTotal    *prometheus.CounterVec
	parseDuration prometheus.Histogram
}

// NewMetrics creates ingestion metrics and registers them with the
// given registerer. Pass nil to skip registration (useful in tests).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "belanno",
			Subsystem: "ingest",
			Name:      "files_total",
			Help:      "Annotation files processed, by outcome.",
		}, []string{"status"}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "belanno",
			Subsystem: "ingest",
			Name:      "parse_duration_seconds",
			Help:      "Time spent parsing one annotation file.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.filesTotal, m.parseDuration)
	}
	return m
}

// Outcome labels for files_total.
const (
	statusParsed  = "parsed"
	statusInvalid = "invalid"
	statusFailed  = "failed"
)

func (m *Metrics) observe(status string, seconds float64) {
	if m == nil {
		return
	}
	m.filesTotal.WithLabelValues(status).Inc()
	m.parseDuration.Observe(seconds)
}
