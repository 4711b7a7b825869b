package bufvec

import "github.com/VictoriaMetrics/metrics"

// Option configures a vector during creation.
//
// Example:
//
//	set := metrics.NewSet()
//	vertices, err := bufvec.New[Vertex](ctx, bufvec.DynamicDraw,
//	    bufvec.WithLabel("sprite-vertices"),
//	    bufvec.WithMetrics(set),
//	)
type Option func(*options)

// options holds optional configuration for vector creation.
type options struct {
	label   string
	metrics *metrics.Set
}

// defaultOptions returns the default vector options.
func defaultOptions(kind string) options {
	return options{
		label:   "bufvec-" + kind,
		metrics: nil, // Package metric set
	}
}

// WithLabel sets the debug label passed to every buffer allocation the vector
// makes. The label also appears in log records.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}

// WithMetrics registers the vector's counters in set instead of the package
// set exposed by WriteMetrics. Counters are shared by all vectors of the same
// kind in a set.
func WithMetrics(set *metrics.Set) Option {
	return func(o *options) {
		o.metrics = set
	}
}
