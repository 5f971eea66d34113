// Package bucketmap provides a fixed-capacity concurrent map keyed by int.
//
// The map owns a fixed slice of buckets. Each bucket holds a singly linked
// chain of entries (separate chaining) and, by default, its own RWMutex:
//
//   - Fixed capacity: the bucket count is set once by New and never changes
//   - Per-bucket locking: operations on different buckets run in parallel
//   - Global locking: optional single RWMutex, useful as a baseline
//   - Explicit absence: lookups return (value, ok), never a sentinel
//
// Keys are placed with a true modulo, so negative keys land in [0, capacity)
// just like non-negative ones, for any positive capacity:
//
//	index = key % capacity, plus capacity when negative
//
// Usage:
//
//	m, err := bucketmap.New(64)
//	if err != nil {
//		return err
//	}
//	m.Put(5, 2)
//	v, ok := m.Get(5)
//	old, ok := m.Delete(5)
//
// Thread Safety:
//
// Get takes the bucket read lock; Put and Delete take the bucket write lock.
// Dump and Clear take every bucket lock in ascending index order, so their
// view is consistent across buckets. Range and Stats lock one bucket at a time
// and may observe interleaved writes. The Range callback runs under a bucket
// read lock and must not call back into the map.
package bucketmap
