package bucketmap

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"
)

func mustNew(t *testing.T, capacity int, opts ...Option) *Map {
	t.Helper()
	m, err := New(capacity, opts...)
	if err != nil {
		t.Fatalf("New(%d) error = %v", capacity, err)
	}
	return m
}

func TestNew(t *testing.T) {
	m := mustNew(t, 8)
	if m.Capacity() != 8 {
		t.Errorf("Capacity() = %d, want 8", m.Capacity())
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if m.LockMode() != LockPerBucket {
		t.Errorf("LockMode() = %v, want %v", m.LockMode(), LockPerBucket)
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, math.MinInt} {
		t.Run(fmt.Sprintf("capacity=%d", capacity), func(t *testing.T) {
			m, err := New(capacity)
			if m != nil {
				t.Error("New() returned a map for invalid capacity")
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("New() error = %v, want ErrInvalidArgument", err)
			}
			if ErrorCode(err) != "TSM-ARG-4000" {
				t.Errorf("ErrorCode() = %q, want TSM-ARG-4000", ErrorCode(err))
			}
		})
	}
}

func TestNew_InvalidLockMode(t *testing.T) {
	_, err := New(4, WithLockMode(LockMode(42)))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("New() error = %v, want ErrInvalidArgument", err)
	}
}

func TestBucketIndex(t *testing.T) {
	tests := []struct {
		key      int
		capacity int
		want     int
	}{
		{0, 4, 0},
		{5, 4, 1},
		{7, 4, 3},
		{-1, 4, 3},
		{-4, 4, 0},
		{-5, 4, 3},
		{math.MinInt, 7, 6},
		{math.MaxInt, 1, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("key=%d,cap=%d", tt.key, tt.capacity), func(t *testing.T) {
			if got := BucketIndex(tt.key, tt.capacity); got != tt.want {
				t.Errorf("BucketIndex(%d, %d) = %d, want %d", tt.key, tt.capacity, got, tt.want)
			}
		})
	}
}

func TestBucketIndex_AlwaysInRange(t *testing.T) {
	keys := []int{math.MinInt, math.MinInt + 1, -1000003, -17, -1, 0, 1, 17, 1000003, math.MaxInt}
	for capacity := 1; capacity <= 64; capacity++ {
		for _, key := range keys {
			idx := BucketIndex(key, capacity)
			if idx < 0 || idx >= capacity {
				t.Fatalf("BucketIndex(%d, %d) = %d, out of range", key, capacity, idx)
			}
		}
	}
}

func TestBucketIndex_LargeCapacity(t *testing.T) {
	capacities := []int{math.MaxInt / 2, math.MaxInt/2 + 10, math.MaxInt - 1, math.MaxInt}
	keys := []int{math.MinInt, math.MinInt + 1, -1, 0, 1, math.MaxInt/2 + 5, math.MaxInt - 1, math.MaxInt}
	for _, capacity := range capacities {
		for _, key := range keys {
			idx := BucketIndex(key, capacity)
			if idx < 0 || idx >= capacity {
				t.Errorf("BucketIndex(%d, %d) = %d, out of range", key, capacity, idx)
			}
		}
	}

	if got := BucketIndex(math.MaxInt-1, math.MaxInt); got != math.MaxInt-1 {
		t.Errorf("BucketIndex(MaxInt-1, MaxInt) = %d, want %d", got, math.MaxInt-1)
	}
	if got := BucketIndex(-1, math.MaxInt); got != math.MaxInt-1 {
		t.Errorf("BucketIndex(-1, MaxInt) = %d, want %d", got, math.MaxInt-1)
	}
}

func TestScenario(t *testing.T) {
	m := mustNew(t, 4)

	steps := []struct {
		name    string
		do      func() (int, bool)
		wantVal int
		wantOK  bool
	}{
		{"put(5,2)", func() (int, bool) { return m.Put(5, 2) }, 0, false},
		{"put(6,10)", func() (int, bool) { return m.Put(6, 10) }, 0, false},
		{"put(3,7)", func() (int, bool) { return m.Put(3, 7) }, 0, false},
		{"del(5)", func() (int, bool) { return m.Delete(5) }, 2, true},
		{"put(5,4)", func() (int, bool) { return m.Put(5, 4) }, 0, false},
		{"get(5)", func() (int, bool) { return m.Get(5) }, 4, true},
		{"get(6)", func() (int, bool) { return m.Get(6) }, 10, true},
		{"get(3)", func() (int, bool) { return m.Get(3) }, 7, true},
		{"get(99)", func() (int, bool) { return m.Get(99) }, 0, false},
	}

	for _, s := range steps {
		val, ok := s.do()
		if val != s.wantVal || ok != s.wantOK {
			t.Errorf("%s = (%d, %v), want (%d, %v)", s.name, val, ok, s.wantVal, s.wantOK)
		}
	}

	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestPut_ReplaceReturnsOldValue(t *testing.T) {
	m := mustNew(t, 4)

	m.Put(1, 100)
	old, replaced := m.Put(1, 200)
	if !replaced || old != 100 {
		t.Errorf("Put(existing) = (%d, %v), want (100, true)", old, replaced)
	}

	val, ok := m.Get(1)
	if !ok || val != 200 {
		t.Errorf("Get(1) = (%d, %v), want (200, true)", val, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestPut_ExtremeValues(t *testing.T) {
	m := mustNew(t, 3)

	for _, v := range []int{math.MaxInt, math.MinInt, 0, -1} {
		m.Put(v, v)
		got, ok := m.Get(v)
		if !ok || got != v {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", v, got, ok, v)
		}
	}
}

func TestDelete_Idempotent(t *testing.T) {
	m := mustNew(t, 4)
	m.Put(9, 1)

	if val, ok := m.Delete(9); !ok || val != 1 {
		t.Errorf("Delete(9) = (%d, %v), want (1, true)", val, ok)
	}
	for i := 0; i < 2; i++ {
		if val, ok := m.Delete(9); ok {
			t.Errorf("Delete(9) again = (%d, %v), want (0, false)", val, ok)
		}
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestCollidingKeys(t *testing.T) {
	m := mustNew(t, 4)

	m.Put(3, 30)
	m.Put(7, 70)

	if BucketIndex(3, 4) != BucketIndex(7, 4) {
		t.Fatal("keys 3 and 7 should share a bucket with capacity 4")
	}

	for key, want := range map[int]int{3: 30, 7: 70} {
		if val, ok := m.Get(key); !ok || val != want {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", key, val, ok, want)
		}
	}

	if _, ok := m.Delete(3); !ok {
		t.Fatal("Delete(3) should find the key")
	}
	if val, ok := m.Get(7); !ok || val != 70 {
		t.Errorf("Get(7) after Delete(3) = (%d, %v), want (70, true)", val, ok)
	}
	if _, ok := m.Get(3); ok {
		t.Error("Get(3) should be absent after Delete(3)")
	}
}

func TestChainIntegrity(t *testing.T) {
	// Every key maps to bucket 0.
	m := mustNew(t, 1)
	for k := 0; k < 10; k++ {
		m.Put(k, k*10)
	}

	// Remove head, middle and tail of the chain.
	for _, k := range []int{9, 5, 0} {
		if val, ok := m.Delete(k); !ok || val != k*10 {
			t.Errorf("Delete(%d) = (%d, %v), want (%d, true)", k, val, ok, k*10)
		}
	}

	for k := 0; k < 10; k++ {
		val, ok := m.Get(k)
		deleted := k == 9 || k == 5 || k == 0
		if deleted && ok {
			t.Errorf("Get(%d) should be absent", k)
		}
		if !deleted && (!ok || val != k*10) {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", k, val, ok, k*10)
		}
	}
	if m.Len() != 7 {
		t.Errorf("Len() = %d, want 7", m.Len())
	}
}

func TestNegativeKeys(t *testing.T) {
	m := mustNew(t, 5)

	for k := -20; k < 0; k++ {
		m.Put(k, -k)
	}
	for k := -20; k < 0; k++ {
		if val, ok := m.Get(k); !ok || val != -k {
			t.Errorf("Get(%d) = (%d, %v), want (%d, true)", k, val, ok, -k)
		}
	}
	if m.Len() != 20 {
		t.Errorf("Len() = %d, want 20", m.Len())
	}
}

func TestLoadFactor(t *testing.T) {
	m := mustNew(t, 4)
	if lf := m.LoadFactor(); lf != 0 {
		t.Errorf("LoadFactor() = %v, want 0", lf)
	}

	for k := 0; k < 6; k++ {
		m.Put(k, k)
	}
	if lf := m.LoadFactor(); lf != 1.5 {
		t.Errorf("LoadFactor() = %v, want 1.5", lf)
	}
}

func TestDictionarySemantics(t *testing.T) {
	for _, mode := range []LockMode{LockPerBucket, LockGlobal} {
		t.Run(mode.String(), func(t *testing.T) {
			m := mustNew(t, 7, WithLockMode(mode))
			ref := make(map[int]int)

			// Deterministic op sequence over a small key range to force collisions.
			for i := 0; i < 2000; i++ {
				key := (i*7919)%41 - 20
				switch i % 3 {
				case 0:
					old, replaced := m.Put(key, i)
					refOld, refOK := ref[key]
					if replaced != refOK || (refOK && old != refOld) {
						t.Fatalf("step %d: Put(%d) = (%d, %v), want (%d, %v)", i, key, old, replaced, refOld, refOK)
					}
					ref[key] = i
				case 1:
					val, ok := m.Get(key)
					refVal, refOK := ref[key]
					if ok != refOK || (refOK && val != refVal) {
						t.Fatalf("step %d: Get(%d) = (%d, %v), want (%d, %v)", i, key, val, ok, refVal, refOK)
					}
				case 2:
					val, ok := m.Delete(key)
					refVal, refOK := ref[key]
					if ok != refOK || (refOK && val != refVal) {
						t.Fatalf("step %d: Delete(%d) = (%d, %v), want (%d, %v)", i, key, val, ok, refVal, refOK)
					}
					delete(ref, key)
				}
			}

			if m.Len() != len(ref) {
				t.Errorf("Len() = %d, want %d", m.Len(), len(ref))
			}
		})
	}
}

func TestConcurrentDisjointWorkers(t *testing.T) {
	for _, mode := range []LockMode{LockPerBucket, LockGlobal} {
		t.Run(mode.String(), func(t *testing.T) {
			m := mustNew(t, 16, WithLockMode(mode))

			const (
				numWorkers = 32
				numKeys    = 200
			)

			var wg sync.WaitGroup
			for w := 0; w < numWorkers; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					base := w * numKeys
					if w%2 == 1 {
						base = -base - numKeys
					}
					for j := 0; j < numKeys; j++ {
						key := base + j
						if _, replaced := m.Put(key, j); replaced {
							t.Errorf("Put(%d) replaced a key owned by another worker", key)
						}
						if val, ok := m.Get(key); !ok || val != j {
							t.Errorf("Get(%d) = (%d, %v), want (%d, true)", key, val, ok, j)
						}
						m.Put(key, j+1)
					}
					// Delete every even key.
					for j := 0; j < numKeys; j += 2 {
						if val, ok := m.Delete(base + j); !ok || val != j+1 {
							t.Errorf("Delete(%d) = (%d, %v), want (%d, true)", base+j, val, ok, j+1)
						}
					}
				}(w)
			}
			wg.Wait()

			want := numWorkers * numKeys / 2
			if m.Len() != want {
				t.Errorf("Len() = %d, want %d", m.Len(), want)
			}

			scanned := 0
			m.Range(func(_, _ int) bool {
				scanned++
				return true
			})
			if scanned != want {
				t.Errorf("Range visited %d entries, want %d", scanned, want)
			}
		})
	}
}

func TestConcurrentSameKey(t *testing.T) {
	m := mustNew(t, 4)

	const numGoroutines = 64
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		inserted int
	)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if _, replaced := m.Put(42, v); !replaced {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	// Exactly one Put may observe the key as new.
	if inserted != 1 {
		t.Errorf("%d Puts inserted key 42, want 1", inserted)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

type recordingObserver struct {
	mu   sync.Mutex
	ops  []Op
	hits []bool
}

func (r *recordingObserver) ObserveOp(op Op, hit bool, elapsed time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, op)
	r.hits = append(r.hits, hit)
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	m := mustNew(t, 4, WithObserver(obs))

	m.Put(1, 1)
	m.Put(1, 2)
	m.Get(1)
	m.Get(2)
	m.Delete(1)
	m.Delete(1)

	wantOps := []Op{OpPut, OpPut, OpGet, OpGet, OpDelete, OpDelete}
	wantHits := []bool{false, true, true, false, true, false}

	if len(obs.ops) != len(wantOps) {
		t.Fatalf("observed %d ops, want %d", len(obs.ops), len(wantOps))
	}
	for i := range wantOps {
		if obs.ops[i] != wantOps[i] || obs.hits[i] != wantHits[i] {
			t.Errorf("op[%d] = (%s, %v), want (%s, %v)", i, obs.ops[i], obs.hits[i], wantOps[i], wantHits[i])
		}
	}
}

func TestParseLockMode(t *testing.T) {
	tests := []struct {
		input   string
		want    LockMode
		wantErr bool
	}{
		{"", LockPerBucket, false},
		{"bucket", LockPerBucket, false},
		{"GLOBAL", LockGlobal, false},
		{"striped", LockPerBucket, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLockMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLockMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLockMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
