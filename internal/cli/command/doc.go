// Package command defines the tsmap-bench command line using urfave/cli/v2.
//
//   - root.go: App, global flags and logger setup
//   - config.go: configuration loading and the config subcommand
//   - run.go: concurrent workload against a fresh map
//   - demo.go: fixed single-threaded call sequence
//   - version.go: build information
//
// Every command loads defaults, then the YAML file named by --config, then
// TSMAP_* environment variables, then command-line flags.
package command
