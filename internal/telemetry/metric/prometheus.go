package metric

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/common/expfmt"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// Namespace prefixes every metric name.
const Namespace = "tsmap"

// Registry holds the bucket map metrics.
type Registry struct {
	registry *prometheus.Registry

	OpsTotal   *prometheus.CounterVec
	OpDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with operation metrics.
// withRuntime adds the Go runtime collector.
func NewRegistry(withRuntime bool) *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		OpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "ops_total",
			Help:      "Map operations by kind and result.",
		}, []string{"op", "result"}),
		OpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "op_duration_seconds",
			Help:      "Map operation latency including lock wait.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}, []string{"op"}),
	}

	r.registry.MustRegister(r.OpsTotal, r.OpDuration)
	if withRuntime {
		r.registry.MustRegister(collectors.NewGoCollector())
	}
	return r
}

// ObserveOp implements bucketmap.Observer.
func (r *Registry) ObserveOp(op bucketmap.Op, hit bool, elapsed time.Duration) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.OpsTotal.WithLabelValues(string(op), result).Inc()
	r.OpDuration.WithLabelValues(string(op)).Observe(elapsed.Seconds())
}

// Watch registers a collector sampling m under the given map label.
func (r *Registry) Watch(name string, m MapSource) error {
	if err := r.registry.Register(NewCollector(name, m)); err != nil {
		return fmt.Errorf("register map collector %q: %w", name, err)
	}
	return nil
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteText gathers every metric and writes it in the text exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
