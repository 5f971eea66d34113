package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MapSource is the read-only view of a map sampled by Collector.
type MapSource interface {
	Len() int
	Capacity() int
	LoadFactor() float64
	LongestChain() int
}

// Collector samples a map's size and shape at gather time.
type Collector struct {
	src MapSource

	entries      *prometheus.Desc
	capacity     *prometheus.Desc
	loadFactor   *prometheus.Desc
	longestChain *prometheus.Desc
}

// NewCollector creates a collector for src labelled map=name.
func NewCollector(name string, src MapSource) *Collector {
	labels := prometheus.Labels{"map": name}
	return &Collector{
		src: src,
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "entries"),
			"Live entries in the map.", nil, labels),
		capacity: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "buckets"),
			"Fixed bucket count.", nil, labels),
		loadFactor: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "load_factor"),
			"Entries divided by buckets.", nil, labels),
		longestChain: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "", "longest_chain"),
			"Length of the longest bucket chain.", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.entries
	ch <- c.capacity
	ch <- c.loadFactor
	ch <- c.longestChain
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.src.Len()))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(c.src.Capacity()))
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, c.src.LoadFactor())
	ch <- prometheus.MustNewConstMetric(c.longestChain, prometheus.GaugeValue, float64(c.src.LongestChain()))
}
