package benchmark

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// ThreadCounts defines the worker counts for benchmarking.
var ThreadCounts = []int{1, 4, 16}

// LoadFactors defines target entries per bucket.
var LoadFactors = []int{1, 4, 16}

// LockModes lists both locking strategies.
var LockModes = []bucketmap.LockMode{bucketmap.LockPerBucket, bucketmap.LockGlobal}

func newMap(b *testing.B, capacity int, mode bucketmap.LockMode) *bucketmap.Map {
	b.Helper()
	m, err := bucketmap.New(capacity, bucketmap.WithLockMode(mode))
	if err != nil {
		b.Fatalf("bucketmap.New failed: %v", err)
	}
	return m
}

// prefill inserts keys 0..n-1.
func prefill(m *bucketmap.Map, n int) {
	for i := 0; i < n; i++ {
		m.Put(i, i)
	}
}

// reportMemory reports heap usage after a GC.
func reportMemory(b *testing.B, prefix string) {
	var ms runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&ms)
	b.ReportMetric(float64(ms.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(ms.NumGC), prefix+"_GC")
}

// runWithModes runs benchFn once per lock mode.
func runWithModes(b *testing.B, benchFn func(b *testing.B, mode bucketmap.LockMode)) {
	for _, mode := range LockModes {
		b.Run(mode.String(), func(b *testing.B) {
			benchFn(b, mode)
		})
	}
}

func threadsName(n int) string {
	return fmt.Sprintf("threads_%d", n)
}
