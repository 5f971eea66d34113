package workload

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/spaolacci/murmur3"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// Fingerprint hashes the contents of a snapshot with murmur3.
// Entries are hashed in key order within each bucket, so the result does
// not depend on chain order. Two maps with the same capacity and the same
// key/value pairs have the same fingerprint.
func Fingerprint(snap []bucketmap.BucketSnapshot) uint64 {
	h := murmur3.New64()
	var buf [8]byte

	write := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}

	for _, b := range snap {
		if len(b.Chain) == 0 {
			continue
		}
		chain := slices.Clone(b.Chain)
		slices.SortFunc(chain, func(a, b bucketmap.Pair) int {
			switch {
			case a.Key < b.Key:
				return -1
			case a.Key > b.Key:
				return 1
			default:
				return 0
			}
		})

		write(b.Index)
		for _, p := range chain {
			write(p.Key)
			write(p.Value)
		}
	}
	return h.Sum64()
}

// FormatFingerprint renders a fingerprint as 16 hex digits.
func FormatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}
