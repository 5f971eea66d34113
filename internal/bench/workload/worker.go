package workload

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/time/rate"

	"github.com/yndnr/tsmap-go/internal/bench/config"
	"github.com/yndnr/tsmap-go/internal/telemetry/logger"
	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// ctxCheckEvery is how many operations an unpaced worker runs between
// context checks.
const ctxCheckEvery = 256

// progressEvery is how many operations a worker batches per progress update.
const progressEvery = 256

// Counts tallies issued operations and how many found their key.
type Counts struct {
	Gets       int `json:"gets" yaml:"gets"`
	GetHits    int `json:"get_hits" yaml:"get_hits"`
	Puts       int `json:"puts" yaml:"puts"`
	PutUpdates int `json:"put_updates" yaml:"put_updates"`
	Deletes    int `json:"deletes" yaml:"deletes"`
	DeleteHits int `json:"delete_hits" yaml:"delete_hits"`
}

// Total returns the number of operations issued.
func (c Counts) Total() int {
	return c.Gets + c.Puts + c.Deletes
}

func (c *Counts) add(o Counts) {
	c.Gets += o.Gets
	c.GetHits += o.GetHits
	c.Puts += o.Puts
	c.PutUpdates += o.PutUpdates
	c.Deletes += o.Deletes
	c.DeleteHits += o.DeleteHits
}

type worker struct {
	id       int
	m        *bucketmap.Map
	rng      *rand.Rand
	limiter  *rate.Limiter
	ops      int
	keySpace int
	negative bool
	mix      config.MixConfig
	progress Progress

	shadow map[int]int
	counts Counts
}

func newWorker(id int, m *bucketmap.Map, cfg *config.WorkloadSection, seed uint64, progress Progress) *worker {
	w := &worker{
		id:       id,
		m:        m,
		rng:      rand.New(rand.NewPCG(seed, uint64(id))),
		ops:      cfg.OpsPerWorker,
		keySpace: cfg.KeySpace,
		negative: cfg.NegativeKeys,
		mix:      cfg.Mix,
		progress: progress,
		shadow:   make(map[int]int),
	}
	if cfg.Rate > 0 {
		burst := max(1, int(cfg.Rate))
		w.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	return w
}

// key maps slot j of the worker's range to a map key. With negative keys
// enabled, odd slots are mirrored below zero.
func (w *worker) key(j int) int {
	k := w.id*w.keySpace + j
	if w.negative && j%2 == 1 {
		return -k - 1
	}
	return k
}

func (w *worker) run(ctx context.Context) error {
	log := logger.L(logger.WithWorker(ctx, w.id))
	log.Debug("worker started", "ops", w.ops, "first_key", w.key(0))

	total := w.mix.Total()
	for i := 0; i < w.ops; i++ {
		if w.limiter != nil {
			if err := w.limiter.Wait(ctx); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				return fmt.Errorf("worker %d: rate limiter: %w", w.id, err)
			}
		} else if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		key := w.key(w.rng.IntN(w.keySpace))
		pick := w.rng.IntN(total)

		var err error
		switch {
		case pick < w.mix.Get:
			err = w.get(i, key)
		case pick < w.mix.Get+w.mix.Put:
			err = w.put(i, key, w.rng.Int())
		default:
			err = w.delete(i, key)
		}
		if err != nil {
			log.Error("shadow check failed", "error", err)
			return err
		}
		if w.progress != nil && (i+1)%progressEvery == 0 {
			w.progress.Increment(progressEvery)
		}
	}
	if rest := w.ops % progressEvery; w.progress != nil && rest > 0 {
		w.progress.Increment(int64(rest))
	}

	log.Debug("worker finished", "live", len(w.shadow), "ops", w.counts.Total())
	return nil
}

func (w *worker) get(i, key int) error {
	w.counts.Gets++
	got, ok := w.m.Get(key)
	want, wantOK := w.shadow[key]
	if ok != wantOK || got != want {
		return w.diverged(i, bucketmap.OpGet, key, got, ok, want, wantOK)
	}
	if ok {
		w.counts.GetHits++
	}
	return nil
}

func (w *worker) put(i, key, value int) error {
	w.counts.Puts++
	old, replaced := w.m.Put(key, value)
	want, wantOK := w.shadow[key]
	if replaced != wantOK || old != want {
		return w.diverged(i, bucketmap.OpPut, key, old, replaced, want, wantOK)
	}
	if replaced {
		w.counts.PutUpdates++
	}
	w.shadow[key] = value
	return nil
}

func (w *worker) delete(i, key int) error {
	w.counts.Deletes++
	old, ok := w.m.Delete(key)
	want, wantOK := w.shadow[key]
	if ok != wantOK || old != want {
		return w.diverged(i, bucketmap.OpDelete, key, old, ok, want, wantOK)
	}
	if ok {
		w.counts.DeleteHits++
	}
	delete(w.shadow, key)
	return nil
}

func (w *worker) diverged(i int, op bucketmap.Op, key, got int, gotOK bool, want int, wantOK bool) error {
	return &DivergenceError{
		Worker:    w.id,
		Operation: i,
		Op:        op,
		Key:       key,
		Got:       got,
		GotOK:     gotOK,
		Want:      want,
		WantOK:    wantOK,
	}
}
