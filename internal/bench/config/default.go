package config

// Default configuration values.
const (
	DefaultCapacity = 64
	DefaultLockMode = "bucket"

	DefaultThreads      = 4
	DefaultOpsPerWorker = 10000
	DefaultKeySpace     = 256

	DefaultMixGet    = 50
	DefaultMixPut    = 30
	DefaultMixDelete = 20

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultOutputFormat = "text"
)

// Default returns the default bench configuration.
func Default() *BenchConfig {
	return &BenchConfig{
		Map: MapSection{
			Capacity: DefaultCapacity,
			LockMode: DefaultLockMode,
		},
		Workload: WorkloadSection{
			Threads:      DefaultThreads,
			OpsPerWorker: DefaultOpsPerWorker,
			KeySpace:     DefaultKeySpace,
			Mix: MixConfig{
				Get:    DefaultMixGet,
				Put:    DefaultMixPut,
				Delete: DefaultMixDelete,
			},
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output: OutputSection{
			Format: DefaultOutputFormat,
		},
	}
}
