// Package output renders tsmap-bench results.
//
//   - formatter.go: Formatter interface and factory
//   - text.go: human-readable summary lines
//   - table.go: aligned columns via text/tabwriter
//   - json.go, yaml.go: machine-readable encodings
//   - progress.go: progress bar for long runs
//
// Text and table rendering know the bench result types (run reports, demo
// steps, bucket snapshots and chain stats). JSON and YAML encode any value
// through its struct tags.
package output
