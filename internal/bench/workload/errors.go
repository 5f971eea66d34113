package workload

import (
	"errors"
	"fmt"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// ErrMapNotEmpty is returned when Run is handed a map that already holds entries.
var ErrMapNotEmpty = errors.New("workload: map must be empty before a run")

// DivergenceError reports a map result that disagrees with the shadow copy.
type DivergenceError struct {
	Worker    int
	Op        bucketmap.Op
	Key       int
	Got       int
	GotOK     bool
	Want      int
	WantOK    bool
	Operation int
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("worker %d op #%d %s(%d) = (%d, %v), want (%d, %v)",
		e.Worker, e.Operation, e.Op, e.Key, e.Got, e.GotOK, e.Want, e.WantOK)
}

// SizeMismatchError reports a final size that differs from the live key count.
type SizeMismatchError struct {
	Size int
	Live int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("map size %d does not match %d live keys", e.Size, e.Live)
}
