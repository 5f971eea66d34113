// Package confloader loads layered configuration with koanf.
//
// Sources, lowest to highest priority:
//
//  1. Defaults already present in the target struct
//  2. YAML configuration file
//  3. Environment variables (TSMAP_ prefix, "__" separates sections)
//  4. Overrides, usually command-line flags
//
// Example: TSMAP_WORKLOAD__OPS_PER_WORKER=500 sets workload.ops_per_worker.
package confloader
