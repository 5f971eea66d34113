package command

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/tsmap-go/internal/bench/workload"
	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// DemoCommand returns the demo command.
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:      "demo",
		Usage:     "Run a fixed put/get/delete sequence and print the map",
		ArgsUsage: "[capacity]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "lock-mode", Usage: "Locking: bucket or global"},
		},
		Action: demoAction,
	}
}

type demoResult struct {
	Steps   []workload.Step            `json:"steps" yaml:"steps"`
	Buckets []bucketmap.BucketSnapshot `json:"buckets" yaml:"buckets"`
}

func demoAction(c *cli.Context) error {
	overrides := map[string]any{"map.capacity": 4}
	if arg := c.Args().First(); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("capacity: %q is not an integer", arg)
		}
		overrides["map.capacity"] = n
	}
	if c.IsSet("lock-mode") {
		overrides["map.lock_mode"] = c.String("lock-mode")
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
	m, err := bucketmap.New(cfg.Map.Capacity, bucketmap.WithLockMode(mode))
	if err != nil {
		return err
	}

	steps := workload.Demo(m)
	log.Debug("demo finished", "capacity", m.Capacity(), "size", m.Len())

	w := c.App.Writer
	if structured(format) {
		return f.Format(w, demoResult{Steps: steps, Buckets: m.Dump()})
	}
	if err := f.Format(w, steps); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return f.Format(w, m.Dump())
}
