package bucketmap

import (
	"bufio"
	"fmt"
	"io"
)

// Pair is one key/value entry of a snapshot.
type Pair struct {
	Key   int `json:"key" yaml:"key"`
	Value int `json:"value" yaml:"value"`
}

// BucketSnapshot is the chain of one bucket in traversal order.
type BucketSnapshot struct {
	Index int    `json:"index" yaml:"index"`
	Chain []Pair `json:"chain" yaml:"chain"`
}

// BucketStats describes the chain length of one bucket.
type BucketStats struct {
	Index  int `json:"index" yaml:"index"`
	Length int `json:"length" yaml:"length"`
}

// rlockAll takes every bucket read lock in ascending index order.
func (m *Map) rlockAll() func() {
	if m.mode == LockGlobal {
		m.global.RLock()
		return m.global.RUnlock
	}
	for i := range m.buckets {
		m.buckets[i].mu.RLock()
	}
	return func() {
		for i := len(m.buckets) - 1; i >= 0; i-- {
			m.buckets[i].mu.RUnlock()
		}
	}
}

// lockAll takes every bucket write lock in ascending index order.
func (m *Map) lockAll() func() {
	if m.mode == LockGlobal {
		m.global.Lock()
		return m.global.Unlock
	}
	for i := range m.buckets {
		m.buckets[i].mu.Lock()
	}
	return func() {
		for i := len(m.buckets) - 1; i >= 0; i-- {
			m.buckets[i].mu.Unlock()
		}
	}
}

// Dump returns every bucket in index order with its chain in traversal order.
// All bucket read locks are held while copying, so the result is a consistent
// point-in-time view of the whole map.
func (m *Map) Dump() []BucketSnapshot {
	unlock := m.rlockAll()
	defer unlock()

	snap := make([]BucketSnapshot, len(m.buckets))
	for i := range m.buckets {
		var chain []Pair
		for e := m.buckets[i].head; e != nil; e = e.next {
			chain = append(chain, Pair{Key: e.key, Value: e.value})
		}
		snap[i] = BucketSnapshot{Index: i, Chain: chain}
	}
	return snap
}

// Print writes the map one bucket per line:
//
//	[0] -> (4,1) -> (8,2)
//	[1] ->
func (m *Map) Print(w io.Writer) error {
	return WriteSnapshot(w, m.Dump())
}

// WriteSnapshot renders snap in the layout used by Print.
func WriteSnapshot(w io.Writer, snap []BucketSnapshot) error {
	bw := bufio.NewWriter(w)
	for _, b := range snap {
		fmt.Fprintf(bw, "[%d] -> ", b.Index)
		for i, p := range b.Chain {
			if i > 0 {
				bw.WriteString(" -> ")
			}
			fmt.Fprintf(bw, "(%d,%d)", p.Key, p.Value)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// Range calls fn for every entry, bucket by bucket.
//
// The callback returns false to stop iteration.
// Note: each bucket is read-locked only while it is visited, so the view may
// not be consistent across buckets. fn runs under that read lock and must not
// call any method of the map, Get included.
func (m *Map) Range(fn func(key, value int) bool) {
	for i := range m.buckets {
		b := &m.buckets[i]
		b.mu.RLock()
		for e := b.head; e != nil; e = e.next {
			if !fn(e.key, e.value) {
				b.mu.RUnlock()
				return
			}
		}
		b.mu.RUnlock()
	}
}

// Stats returns the chain length of every bucket.
func (m *Map) Stats() []BucketStats {
	stats := make([]BucketStats, len(m.buckets))
	for i := range m.buckets {
		b := &m.buckets[i]
		b.mu.RLock()
		n := 0
		for e := b.head; e != nil; e = e.next {
			n++
		}
		b.mu.RUnlock()
		stats[i] = BucketStats{Index: i, Length: n}
	}
	return stats
}

// LongestChain returns the length of the longest bucket chain.
func (m *Map) LongestChain() int {
	longest := 0
	for _, s := range m.Stats() {
		if s.Length > longest {
			longest = s.Length
		}
	}
	return longest
}

// Clear releases every chain and resets the size to zero.
// The map stays usable afterwards.
func (m *Map) Clear() {
	unlock := m.lockAll()
	defer unlock()

	for i := range m.buckets {
		m.buckets[i].head = nil
	}
	m.size.Store(0)
}
