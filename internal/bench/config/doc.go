// Package config defines the tsmap-bench configuration structure.
//
//   - spec.go: koanf-tagged sections
//   - default.go: defaults applied before any source is read
//   - verify.go: validation after loading
package config
