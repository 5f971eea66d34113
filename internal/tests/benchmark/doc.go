// Package benchmark provides performance benchmarks for the bucket map.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Compare locking modes only:
//
//	go test -bench='/global|/bucket' -benchmem -count=5 ./internal/tests/benchmark/... | tee bench.txt
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
