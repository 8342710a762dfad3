package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder exposes the Prometheus collectors used by the stats service.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	snapshotLoad *prometheus.HistogramVec
	aggregations *prometheus.CounterVec
	records      *prometheus.GaugeVec
}

// New registers the collectors with reg. Passing nil uses a private registry,
// which keeps tests from colliding on the default one.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	r := &Recorder{
		snapshotLoad: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "academy",
			Subsystem: "stats",
			Name:      "snapshot_load_seconds",
			Help:      "Time spent reading record collections for one snapshot.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"result"}),
		aggregations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "academy",
			Subsystem: "stats",
			Name:      "aggregations_total",
			Help:      "Aggregation calls by operation.",
		}, []string{"operation"}),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "academy",
			Subsystem: "stats",
			Name:      "snapshot_records",
			Help:      "Records in the most recently loaded snapshot by collection.",
		}, []string{"collection"}),
	}
	reg.MustRegister(r.snapshotLoad, r.aggregations, r.records)
	return r
}

// ObserveSnapshotLoad records how long a snapshot read took.
func (r *Recorder) ObserveSnapshotLoad(started time.Time, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.snapshotLoad.WithLabelValues(result).Observe(time.Since(started).Seconds())
}

// CountAggregation increments the call counter for operation.
func (r *Recorder) CountAggregation(operation string) {
	if r == nil {
		return
	}
	r.aggregations.WithLabelValues(operation).Inc()
}

// SetRecords stores the size of a collection in the last snapshot.
func (r *Recorder) SetRecords(collection string, n int) {
	if r == nil {
		return
	}
	r.records.WithLabelValues(collection).Set(float64(n))
}
