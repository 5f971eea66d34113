// Package buildinfo provides build information for tsmap binaries.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/tsmap-go/internal/infra/buildinfo.Version=v0.3.0"
//
// GoVersion falls back to the toolchain recorded in the binary.
package buildinfo
