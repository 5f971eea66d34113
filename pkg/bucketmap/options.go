package bucketmap

import (
	"fmt"
	"strings"
	"time"
)

// LockMode selects how the map synchronises access to its buckets.
type LockMode int

const (
	// LockPerBucket gives every bucket its own RWMutex.
	LockPerBucket LockMode = iota
	// LockGlobal shares one RWMutex across all buckets.
	LockGlobal
)

// String returns the config name of the mode.
func (m LockMode) String() string {
	switch m {
	case LockPerBucket:
		return "bucket"
	case LockGlobal:
		return "global"
	default:
		return fmt.Sprintf("LockMode(%d)", int(m))
	}
}

// ParseLockMode converts "bucket" or "global" to a LockMode.
func ParseLockMode(s string) (LockMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bucket", "per-bucket":
		return LockPerBucket, nil
	case "global":
		return LockGlobal, nil
	default:
		return LockPerBucket, ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown lock mode %q", s))
	}
}

// Op identifies a map operation reported to an Observer.
type Op string

const (
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpDelete Op = "delete"
)

// Observer receives one callback per Get, Put and Delete after the bucket
// lock has been released. hit is true when the key was present.
// Implementations must be safe for concurrent use.
type Observer interface {
	ObserveOp(op Op, hit bool, elapsed time.Duration)
}

// Option configures a Map.
type Option func(*Map)

// WithLockMode sets the locking strategy. The default is LockPerBucket.
func WithLockMode(mode LockMode) Option {
	return func(m *Map) {
		m.mode = mode
	}
}

// WithObserver registers an operation observer.
func WithObserver(o Observer) Option {
	return func(m *Map) {
		m.observer = o
	}
}
