package bufvec

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// metricSet holds the counters of vectors created without WithMetrics.
var metricSet = metrics.NewSet()

// WriteMetrics writes the counters of all vectors using the package metric
// set to w in Prometheus text exposition format.
//
// Exposed metrics, labelled by vector kind ("generic" or "index"):
//   - bufvec_updates_total: Update calls
//   - bufvec_reallocations_total: updates that allocated a new buffer
//   - bufvec_uploaded_bytes_total: bytes submitted for upload
//   - bufvec_update_errors_total: updates that returned an error
//
// Importing the metrics library may log one PSI initialization error on Linux
// hosts without cgroup pressure files; see the package documentation.
func WriteMetrics(w io.Writer) {
	metricSet.WritePrometheus(w)
}

// vectorMetrics groups the counters a vector updates.
type vectorMetrics struct {
	updates       *metrics.Counter
	reallocations *metrics.Counter
	uploadedBytes *metrics.Counter
	errors        *metrics.Counter
}

func newVectorMetrics(set *metrics.Set, kind string) *vectorMetrics {
	if set == nil {
		set = metricSet
	}
	name := func(base string) string {
		return fmt.Sprintf(`%s{kind=%q}`, base, kind)
	}
	return &vectorMetrics{
		updates:       set.GetOrCreateCounter(name("bufvec_updates_total")),
		reallocations: set.GetOrCreateCounter(name("bufvec_reallocations_total")),
		uploadedBytes: set.GetOrCreateCounter(name("bufvec_uploaded_bytes_total")),
		errors:        set.GetOrCreateCounter(name("bufvec_update_errors_total")),
	}
}
