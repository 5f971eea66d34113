// Package main provides the entry point for tsmap-bench.
//
// tsmap-bench drives a fixed-capacity concurrent int map with parallel
// workers, checks every result against per-worker shadow maps and reports
// throughput, chain statistics and a content fingerprint.
//
// Usage:
//
//	tsmap-bench run [threads] [capacity] [flags]
//	tsmap-bench run 8 64 --lock-mode global --seed 7 -o json
//	tsmap-bench demo [capacity]
//	tsmap-bench config show --config bench.yaml
//	tsmap-bench version
package main
