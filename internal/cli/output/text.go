package output

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/yndnr/tsmap-go/internal/bench/workload"
	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// TextFormatter writes results as plain lines for a terminal.
type TextFormatter struct{}

// Format writes data as text. Unknown types are printed with %v.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case *workload.Report:
		return writeReport(w, v)
	case workload.Report:
		return writeReport(w, &v)
	case []workload.Step:
		return writeSteps(w, v)
	case []bucketmap.BucketSnapshot:
		return bucketmap.WriteSnapshot(w, v)
	case []bucketmap.BucketStats:
		return writeStats(w, v)
	default:
		_, err := fmt.Fprintf(w, "%v\n", v)
		return err
	}
}

func writeReport(w io.Writer, r *workload.Report) error {
	bw := bufio.NewWriter(w)

	status := "ok"
	switch {
	case r.Interrupted:
		status = "interrupted"
	case !r.Verified:
		status = "FAILED"
	}

	fmt.Fprintf(bw, "run %s: %s\n", r.RunID, status)
	fmt.Fprintf(bw, "  threads=%d capacity=%d lock=%s seed=%d\n",
		r.Threads, r.Capacity, r.LockMode, r.Seed)
	fmt.Fprintf(bw, "  ops=%d get=%d (hit %d) put=%d (update %d) delete=%d (hit %d)\n",
		r.Ops.Total(), r.Ops.Gets, r.Ops.GetHits, r.Ops.Puts, r.Ops.PutUpdates,
		r.Ops.Deletes, r.Ops.DeleteHits)
	fmt.Fprintf(bw, "  size=%d live=%d load_factor=%.3f longest_chain=%d\n",
		r.Size, r.Live, r.LoadFactor, r.LongestChain)
	fmt.Fprintf(bw, "  elapsed=%s ops/s=%.0f fingerprint=%s\n",
		r.Elapsed.Round(time.Microsecond), r.OpsPerSec, r.Fingerprint)

	return bw.Flush()
}

func writeSteps(w io.Writer, steps []workload.Step) error {
	bw := bufio.NewWriter(w)
	for _, s := range steps {
		bw.WriteString(s.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func writeStats(w io.Writer, stats []bucketmap.BucketStats) error {
	bw := bufio.NewWriter(w)
	for _, s := range stats {
		fmt.Fprintf(bw, "[%d] %d\n", s.Index, s.Length)
	}
	return bw.Flush()
}
