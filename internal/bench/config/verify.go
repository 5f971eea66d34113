package config

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

var (
	outputFormats = []string{"text", "table", "json", "yaml"}
	logFormats    = []string{"text", "console", "json"}
)

// Verify validates the configuration.
func Verify(cfg *BenchConfig) error {
	if err := verifyMap(&cfg.Map); err != nil {
		return err
	}
	if err := verifyWorkload(&cfg.Workload); err != nil {
		return err
	}
	if !slices.Contains(logFormats, cfg.Log.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", logFormats, cfg.Log.Format)
	}
	if !slices.Contains(outputFormats, cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", outputFormats, cfg.Output.Format)
	}
	return nil
}

func verifyMap(cfg *MapSection) error {
	if cfg.Capacity <= 0 {
		return fmt.Errorf("map.capacity must be greater than 0, got %d", cfg.Capacity)
	}
	if _, err := bucketmap.ParseLockMode(cfg.LockMode); err != nil {
		return fmt.Errorf("map.lock_mode: %w", err)
	}
	return nil
}

func verifyWorkload(cfg *WorkloadSection) error {
	if cfg.Threads <= 0 {
		return fmt.Errorf("workload.threads must be greater than 0, got %d", cfg.Threads)
	}
	if cfg.OpsPerWorker < 0 {
		return errors.New("workload.ops_per_worker must not be negative")
	}
	if cfg.KeySpace <= 0 {
		return errors.New("workload.key_space must be greater than 0")
	}
	// Worker key ranges must not overflow int.
	if cfg.KeySpace > math.MaxInt/(cfg.Threads+1) {
		return errors.New("workload.threads * workload.key_space overflows int")
	}
	if cfg.Mix.Get < 0 || cfg.Mix.Put < 0 || cfg.Mix.Delete < 0 {
		return errors.New("workload.mix weights must not be negative")
	}
	if cfg.Mix.Total() == 0 {
		return errors.New("workload.mix must have at least one positive weight")
	}
	if cfg.Rate < 0 {
		return errors.New("workload.rate must not be negative")
	}
	return nil
}
