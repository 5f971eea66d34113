package metric

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry(false)
	if r.registry == nil {
		t.Fatal("registry field is nil")
	}
	if r.OpsTotal == nil || r.OpDuration == nil {
		t.Fatal("operation metrics are nil")
	}
}

func TestObserveOp_ThroughMap(t *testing.T) {
	r := NewRegistry(false)
	m, err := bucketmap.New(4, bucketmap.WithObserver(r))
	if err != nil {
		t.Fatalf("bucketmap.New() error = %v", err)
	}

	m.Put(1, 10)
	m.Put(1, 11)
	m.Get(1)
	m.Get(2)
	m.Get(3)
	m.Delete(1)

	tests := []struct {
		op, result string
		want       float64
	}{
		{"put", "miss", 1},
		{"put", "hit", 1},
		{"get", "hit", 1},
		{"get", "miss", 2},
		{"delete", "hit", 1},
		{"delete", "miss", 0},
	}
	for _, tt := range tests {
		got := testutil.ToFloat64(r.OpsTotal.WithLabelValues(tt.op, tt.result))
		if got != tt.want {
			t.Errorf("ops_total{op=%q,result=%q} = %v, want %v", tt.op, tt.result, got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(r.OpDuration); n != 3 {
		t.Errorf("op_duration_seconds series = %d, want 3", n)
	}
}

func TestWatch(t *testing.T) {
	r := NewRegistry(false)
	m, err := bucketmap.New(4)
	if err != nil {
		t.Fatalf("bucketmap.New() error = %v", err)
	}
	m.Put(3, 1)
	m.Put(7, 1)

	if err := r.Watch("main", m); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	expected := `
# HELP tsmap_entries Live entries in the map.
# TYPE tsmap_entries gauge
tsmap_entries{map="main"} 2
# HELP tsmap_load_factor Entries divided by buckets.
# TYPE tsmap_load_factor gauge
tsmap_load_factor{map="main"} 0.5
# HELP tsmap_longest_chain Length of the longest bucket chain.
# TYPE tsmap_longest_chain gauge
tsmap_longest_chain{map="main"} 2
`
	err = testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected),
		"tsmap_entries", "tsmap_load_factor", "tsmap_longest_chain")
	if err != nil {
		t.Errorf("GatherAndCompare() error = %v", err)
	}

	// Same label twice is a duplicate registration.
	err = r.Watch("main", m)
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		t.Errorf("second Watch() error = %v, want AlreadyRegisteredError", err)
	}
}

func TestWriteText(t *testing.T) {
	r := NewRegistry(true)
	r.ObserveOp(bucketmap.OpGet, true, 0)

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `tsmap_ops_total{op="get",result="hit"} 1`) {
		t.Errorf("missing ops counter in:\n%s", out)
	}
	if !strings.Contains(out, "tsmap_op_duration_seconds_bucket") {
		t.Error("missing latency histogram")
	}
	if !strings.Contains(out, "go_goroutines") {
		t.Error("missing go runtime metrics")
	}
}
