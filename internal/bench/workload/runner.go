package workload

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/yndnr/tsmap-go/internal/bench/config"
	"github.com/yndnr/tsmap-go/internal/telemetry/logger"
	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// Report summarises one workload run.
type Report struct {
	RunID        string        `json:"run_id" yaml:"run_id"`
	Seed         uint64        `json:"seed" yaml:"seed"`
	Threads      int           `json:"threads" yaml:"threads"`
	Capacity     int           `json:"capacity" yaml:"capacity"`
	LockMode     string        `json:"lock_mode" yaml:"lock_mode"`
	Ops          Counts        `json:"ops" yaml:"ops"`
	Live         int           `json:"live" yaml:"live"`
	Size         int           `json:"size" yaml:"size"`
	LoadFactor   float64       `json:"load_factor" yaml:"load_factor"`
	LongestChain int           `json:"longest_chain" yaml:"longest_chain"`
	Elapsed      time.Duration `json:"elapsed_ns" yaml:"elapsed"`
	OpsPerSec    float64       `json:"ops_per_sec" yaml:"ops_per_sec"`
	Fingerprint  string        `json:"fingerprint" yaml:"fingerprint"`
	Verified     bool          `json:"verified" yaml:"verified"`
	Interrupted  bool          `json:"interrupted" yaml:"interrupted"`
}

// Progress receives batched counts of completed operations from workers.
// Implementations must be safe for concurrent use.
type Progress interface {
	Increment(n int64)
}

// RunOption configures Run.
type RunOption func(*runOptions)

type runOptions struct {
	progress Progress
}

// WithProgress reports completed operations to p while the run is going.
func WithProgress(p Progress) RunOption {
	return func(o *runOptions) {
		o.progress = p
	}
}

// NewRunID returns a ULID identifying a run.
func NewRunID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Run executes the workload against m, which must be empty.
//
// Cancelling ctx stops workers at their next operation. The map is still
// verified afterwards and the report is marked Interrupted.
func Run(ctx context.Context, m *bucketmap.Map, cfg config.WorkloadSection, opts ...RunOption) (*Report, error) {
	if m.Len() != 0 {
		return nil, ErrMapNotEmpty
	}

	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	runID := logger.RunIDFromContext(ctx)
	if runID == "" {
		runID = NewRunID()
		ctx = logger.WithRunID(ctx, runID)
	}
	log := logger.L(ctx)

	workers := make([]*worker, cfg.Threads)
	for i := range workers {
		workers[i] = newWorker(i, m, &cfg, seed, o.progress)
	}

	log.Info("workload starting",
		"threads", cfg.Threads,
		"capacity", m.Capacity(),
		"lock_mode", m.LockMode().String(),
		"ops_per_worker", cfg.OpsPerWorker,
		"seed", seed)

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range workers {
		g.Go(func() error {
			return w.run(gctx)
		})
	}
	err := g.Wait()
	elapsed := time.Since(start)

	interrupted := false
	if err != nil {
		if ctx.Err() == nil || !errors.Is(err, ctx.Err()) {
			return nil, fmt.Errorf("workload: %w", err)
		}
		interrupted = true
		log.Warn("workload interrupted", "error", err)
	}

	report := &Report{
		RunID:       runID,
		Seed:        seed,
		Threads:     cfg.Threads,
		Capacity:    m.Capacity(),
		LockMode:    m.LockMode().String(),
		Elapsed:     elapsed,
		Interrupted: interrupted,
	}
	for _, w := range workers {
		report.Ops.add(w.counts)
		report.Live += len(w.shadow)
	}
	if elapsed > 0 {
		report.OpsPerSec = float64(report.Ops.Total()) / elapsed.Seconds()
	}

	if err := verify(m, workers, report); err != nil {
		return report, err
	}

	log.Info("workload finished",
		"ops", report.Ops.Total(),
		"live", report.Live,
		"load_factor", report.LoadFactor,
		"longest_chain", report.LongestChain,
		"elapsed", elapsed)
	return report, nil
}

// verify runs single-threaded after every worker has returned.
func verify(m *bucketmap.Map, workers []*worker, report *Report) error {
	snap := m.Dump()

	report.Size = m.Len()
	report.LoadFactor = m.LoadFactor()
	report.LongestChain = m.LongestChain()
	report.Fingerprint = FormatFingerprint(Fingerprint(snap))

	if report.Size != report.Live {
		return &SizeMismatchError{Size: report.Size, Live: report.Live}
	}

	reachable := 0
	for _, b := range snap {
		reachable += len(b.Chain)
	}
	if reachable != report.Size {
		return &SizeMismatchError{Size: reachable, Live: report.Live}
	}

	for _, w := range workers {
		for key, want := range w.shadow {
			got, ok := m.Get(key)
			if !ok || got != want {
				return &DivergenceError{
					Worker: w.id, Operation: -1, Op: bucketmap.OpGet,
					Key: key, Got: got, GotOK: ok, Want: want, WantOK: true,
				}
			}
		}
	}

	report.Verified = true
	return nil
}
