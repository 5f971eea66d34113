package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tsmap-go/internal/bench/workload"
	"github.com/yndnr/tsmap-go/internal/cli/output"
	"github.com/yndnr/tsmap-go/internal/infra/shutdown"
	"github.com/yndnr/tsmap-go/internal/telemetry/metric"
	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

const shutdownTimeout = 5 * time.Second

// RunCommand returns the run command.
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run concurrent workers against a fresh map and verify it",
		ArgsUsage: "[threads] [capacity]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "ops", Usage: "Operations per worker"},
			&cli.IntFlag{Name: "key-space", Usage: "Distinct keys owned by each worker"},
			&cli.StringFlag{Name: "lock-mode", Usage: "Locking: bucket or global"},
			&cli.Uint64Flag{Name: "seed", Usage: "Random seed (0 = time based)"},
			&cli.Float64Flag{Name: "rate", Usage: "Operations per second per worker (0 = unlimited)"},
			&cli.BoolFlag{Name: "negative-keys", Usage: "Use negative keys for half of each key range"},
			&cli.IntFlag{Name: "mix-get", Usage: "Relative weight of get"},
			&cli.IntFlag{Name: "mix-put", Usage: "Relative weight of put"},
			&cli.IntFlag{Name: "mix-delete", Usage: "Relative weight of delete"},
			&cli.BoolFlag{Name: "dump", Usage: "Print every bucket chain after the run"},
			&cli.BoolFlag{Name: "metrics", Usage: "Print Prometheus metrics after the run"},
			&cli.BoolFlag{Name: "progress", Usage: "Draw a progress bar on stderr"},
		},
		Action: runAction,
	}
}

// runOverrides maps positional arguments and set flags to config keys.
func runOverrides(c *cli.Context) (map[string]any, error) {
	overrides := make(map[string]any)

	for i, key := range []string{"workload.threads", "map.capacity"} {
		arg := c.Args().Get(i)
		if arg == "" {
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", key, arg)
		}
		overrides[key] = n
	}

	for flag, key := range map[string]string{
		"ops":        "workload.ops_per_worker",
		"key-space":  "workload.key_space",
		"mix-get":    "workload.mix.get",
		"mix-put":    "workload.mix.put",
		"mix-delete": "workload.mix.delete",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.Int(flag)
		}
	}
	if c.IsSet("lock-mode") {
		overrides["map.lock_mode"] = c.String("lock-mode")
	}
	if c.IsSet("seed") {
		overrides["workload.seed"] = c.Uint64("seed")
	}
	if c.IsSet("rate") {
		overrides["workload.rate"] = c.Float64("rate")
	}
	for flag, key := range map[string]string{
		"negative-keys": "workload.negative_keys",
		"dump":          "output.dump",
		"metrics":       "output.metrics",
	} {
		if c.IsSet(flag) {
			overrides[key] = c.Bool(flag)
		}
	}

	return overrides, nil
}

// runResult is the single document emitted by json and yaml output.
type runResult struct {
	Report  *workload.Report           `json:"report" yaml:"report"`
	Buckets []bucketmap.BucketSnapshot `json:"buckets,omitempty" yaml:"buckets,omitempty"`
}

func runAction(c *cli.Context) error {
	overrides, err := runOverrides(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c, overrides)
	if err != nil {
		return err
	}
	f, format, err := formatter(cfg)
	if err != nil {
		return err
	}

	log, err := newLogger(c, cfg.Log)
	if err != nil {
		return err
	}

	mode, err := bucketmap.ParseLockMode(cfg.Map.LockMode)
	if err != nil {
		return err
	}
	opts := []bucketmap.Option{bucketmap.WithLockMode(mode)}

	var registry *metric.Registry
	if cfg.Output.Metrics {
		registry = metric.NewRegistry(false)
		opts = append(opts, bucketmap.WithObserver(registry))
	}

	m, err := bucketmap.New(cfg.Map.Capacity, opts...)
	if err != nil {
		return err
	}
	if registry != nil {
		if err := registry.Watch("bench", m); err != nil {
			return err
		}
	}

	handler := shutdown.NewHandler(shutdownTimeout)
	handler.OnShutdown(func(context.Context) error {
		log.Warn("interrupted, stopping workers")
		return nil
	})
	ctx, stop := handler.Watch(commandContext(c, log))
	defer stop()

	var runOpts []workload.RunOption
	var bar *output.ProgressBar
	if c.Bool("progress") {
		total := int64(cfg.Workload.Threads) * int64(cfg.Workload.OpsPerWorker)
		bar = output.NewProgressBar(errWriter(c), "run", total)
		runOpts = append(runOpts, workload.WithProgress(bar))
	}

	report, runErr := workload.Run(ctx, m, cfg.Workload, runOpts...)
	if bar != nil {
		bar.Finish()
	}
	if report == nil {
		return runErr
	}

	w := c.App.Writer
	if structured(format) {
		result := runResult{Report: report}
		if cfg.Output.Dump {
			result.Buckets = m.Dump()
		}
		if err := f.Format(w, result); err != nil {
			return err
		}
	} else {
		if err := f.Format(w, report); err != nil {
			return err
		}
		if cfg.Output.Dump {
			fmt.Fprintln(w)
			if err := f.Format(w, m.Dump()); err != nil {
				return err
			}
		}
	}

	if registry != nil {
		// Keep stdout parseable for json and yaml.
		mw := w
		if structured(format) {
			mw = errWriter(c)
		} else {
			fmt.Fprintln(w)
		}
		if err := registry.WriteText(mw); err != nil {
			return err
		}
	}

	return runErr
}
