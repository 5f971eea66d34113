// Package tests holds cross-package tests that drive the bucket map through
// the bench workload with metrics attached.
package tests
