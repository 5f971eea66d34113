// Package metric provides Prometheus metrics for bucket maps.
//
//   - prometheus.go: registry with per-operation counters and latency
//     histograms; it implements bucketmap.Observer
//   - collector.go: a prometheus.Collector that samples size, capacity,
//     load factor and longest chain of a map at gather time
//
// Metrics are gathered in-process and written in the text exposition
// format; nothing is served over the network.
package metric
