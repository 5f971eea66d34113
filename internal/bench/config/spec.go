package config

// BenchConfig is the root configuration for tsmap-bench.
type BenchConfig struct {
	Map      MapSection      `koanf:"map" json:"map" yaml:"map"`
	Workload WorkloadSection `koanf:"workload" json:"workload" yaml:"workload"`
	Log      LogSection      `koanf:"log" json:"log" yaml:"log"`
	Output   OutputSection   `koanf:"output" json:"output" yaml:"output"`
}

// MapSection configures the map under test.
type MapSection struct {
	// Capacity is the fixed bucket count. Must be positive.
	Capacity int `koanf:"capacity" json:"capacity" yaml:"capacity"`
	// LockMode is "bucket" (one lock per bucket) or "global".
	LockMode string `koanf:"lock_mode" json:"lock_mode" yaml:"lock_mode"`
}

// WorkloadSection configures the concurrent workers.
type WorkloadSection struct {
	// Threads is the number of worker goroutines. Must be positive.
	Threads int `koanf:"threads" json:"threads" yaml:"threads"`

	// OpsPerWorker is the number of operations each worker issues.
	OpsPerWorker int `koanf:"ops_per_worker" json:"ops_per_worker" yaml:"ops_per_worker"`

	// KeySpace is the number of distinct keys owned by each worker.
	// Worker w owns [w*KeySpace, (w+1)*KeySpace).
	KeySpace int `koanf:"key_space" json:"key_space" yaml:"key_space"`

	// Mix weights the operation kinds.
	Mix MixConfig `koanf:"mix" json:"mix" yaml:"mix"`

	// Seed makes runs reproducible. 0 picks a time-based seed.
	Seed uint64 `koanf:"seed" json:"seed" yaml:"seed"`

	// Rate caps operations per second per worker. 0 means unlimited.
	Rate float64 `koanf:"rate" json:"rate" yaml:"rate"`

	// NegativeKeys mirrors every worker's key range below zero.
	NegativeKeys bool `koanf:"negative_keys" json:"negative_keys" yaml:"negative_keys"`
}

// MixConfig holds relative operation weights.
type MixConfig struct {
	Get    int `koanf:"get" json:"get" yaml:"get"`
	Put    int `koanf:"put" json:"put" yaml:"put"`
	Delete int `koanf:"delete" json:"delete" yaml:"delete"`
}

// Total returns the sum of all weights.
func (m MixConfig) Total() int {
	return m.Get + m.Put + m.Delete
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}

// OutputSection configures the final report.
type OutputSection struct {
	// Format is text, table, json or yaml.
	Format string `koanf:"format" json:"format" yaml:"format"`
	// Dump prints every bucket chain after the run.
	Dump bool `koanf:"dump" json:"dump" yaml:"dump"`
	// Metrics prints gathered Prometheus metrics after the run.
	Metrics bool `koanf:"metrics" json:"metrics" yaml:"metrics"`
}
