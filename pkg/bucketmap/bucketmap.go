package bucketmap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Map is a fixed-capacity concurrent map with chained buckets.
type Map struct {
	buckets  []bucket
	size     atomic.Int64
	mode     LockMode
	global   sync.RWMutex
	observer Observer
}

// bucket owns the head of its chain. mu points at the bucket's own lock in
// LockPerBucket mode and at Map.global in LockGlobal mode.
type bucket struct {
	mu   *sync.RWMutex
	head *entry
}

// entry owns its successor.
type entry struct {
	key   int
	value int
	next  *entry
}

// New creates a map with capacity buckets.
// A non-positive capacity returns ErrInvalidArgument and a nil map.
func New(capacity int, opts ...Option) (*Map, error) {
	if capacity <= 0 {
		return nil, ErrInvalidArgument.WithDetails(fmt.Sprintf("capacity must be positive, got %d", capacity))
	}

	m := &Map{
		buckets: make([]bucket, capacity),
	}
	for _, opt := range opts {
		opt(m)
	}

	switch m.mode {
	case LockPerBucket:
		locks := make([]sync.RWMutex, capacity)
		for i := range m.buckets {
			m.buckets[i].mu = &locks[i]
		}
	case LockGlobal:
		for i := range m.buckets {
			m.buckets[i].mu = &m.global
		}
	default:
		return nil, ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown lock mode %d", int(m.mode)))
	}

	return m, nil
}

// BucketIndex returns the bucket of key in a table of capacity buckets.
// The result is always in [0, capacity) for capacity > 0.
func BucketIndex(key, capacity int) int {
	r := key % capacity
	if r < 0 {
		r += capacity
	}
	return r
}

func (m *Map) bucketFor(key int) *bucket {
	return &m.buckets[BucketIndex(key, len(m.buckets))]
}

// Get returns the value stored under key.
// ok is false when the key is absent.
func (m *Map) Get(key int) (value int, ok bool) {
	defer m.observe(OpGet, m.start(), &ok)

	b := m.bucketFor(key)
	b.mu.RLock()
	defer b.mu.RUnlock()

	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			return e.value, true
		}
	}
	return 0, false
}

// Put associates value with key.
// If the key existed, its entry is updated in place and the previous value is
// returned with replaced set to true. Otherwise a new entry becomes the chain
// head and replaced is false.
func (m *Map) Put(key, value int) (old int, replaced bool) {
	defer m.observe(OpPut, m.start(), &replaced)

	b := m.bucketFor(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	for e := b.head; e != nil; e = e.next {
		if e.key == key {
			old = e.value
			e.value = value
			return old, true
		}
	}

	b.head = &entry{key: key, value: value, next: b.head}
	m.size.Add(1)
	return 0, false
}

// Delete removes key and returns the value it held.
// Sibling entries in the same chain are left intact.
func (m *Map) Delete(key int) (old int, ok bool) {
	defer m.observe(OpDelete, m.start(), &ok)

	b := m.bucketFor(key)
	b.mu.Lock()
	defer b.mu.Unlock()

	for link := &b.head; *link != nil; link = &(*link).next {
		e := *link
		if e.key != key {
			continue
		}
		*link = e.next
		e.next = nil
		m.size.Add(-1)
		return e.value, true
	}
	return 0, false
}

// Len returns the number of live entries.
func (m *Map) Len() int {
	return int(m.size.Load())
}

// Capacity returns the fixed bucket count.
func (m *Map) Capacity() int {
	return len(m.buckets)
}

// LoadFactor returns Len()/Capacity() at the time of the call.
func (m *Map) LoadFactor() float64 {
	return float64(m.size.Load()) / float64(len(m.buckets))
}

// LockMode returns the locking strategy the map was built with.
func (m *Map) LockMode() LockMode {
	return m.mode
}

func (m *Map) start() time.Time {
	if m.observer == nil {
		return time.Time{}
	}
	return time.Now()
}

func (m *Map) observe(op Op, start time.Time, hit *bool) {
	if m.observer == nil {
		return
	}
	m.observer.ObserveOp(op, *hit, time.Since(start))
}
