package output

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yndnr/tsmap-go/internal/bench/workload"
	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// TableFormatter formats data as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats data as a table.
// Supports: Table, run reports, demo steps, snapshots, chain stats and
// single structs.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	table, err := toTable(data)
	if err != nil {
		// Fallback to JSON for anything without a tabular shape
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	}
	return table.RenderWithOptions(w, f.NoHeaders)
}

func toTable(data any) (*Table, error) {
	switch v := data.(type) {
	case *Table:
		return v, nil
	case Table:
		return &v, nil
	case *workload.Report:
		return reportTable(v), nil
	case workload.Report:
		return reportTable(&v), nil
	case []workload.Step:
		t := &Table{Headers: []string{"CALL", "RESULT"}}
		for _, s := range v {
			result := "absent"
			if s.Present {
				result = strconv.Itoa(s.Value)
			}
			t.AddRow(s.Call, result)
		}
		return t, nil
	case []bucketmap.BucketSnapshot:
		t := &Table{Headers: []string{"BUCKET", "LENGTH", "CHAIN"}}
		for _, b := range v {
			pairs := make([]string, len(b.Chain))
			for i, p := range b.Chain {
				pairs[i] = fmt.Sprintf("(%d,%d)", p.Key, p.Value)
			}
			chain := strings.Join(pairs, " -> ")
			if chain == "" {
				chain = "-"
			}
			t.AddRow(strconv.Itoa(b.Index), strconv.Itoa(len(b.Chain)), chain)
		}
		return t, nil
	case []bucketmap.BucketStats:
		t := &Table{Headers: []string{"BUCKET", "LENGTH"}}
		for _, s := range v {
			t.AddRow(strconv.Itoa(s.Index), strconv.Itoa(s.Length))
		}
		return t, nil
	}

	rv := reflect.ValueOf(data)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("unsupported type: %s", rv.Kind())
	}
	return structToTable(rv), nil
}

func reportTable(r *workload.Report) *Table {
	t := &Table{Headers: []string{"FIELD", "VALUE"}}
	t.AddRow("run_id", r.RunID)
	t.AddRow("seed", strconv.FormatUint(r.Seed, 10))
	t.AddRow("threads", strconv.Itoa(r.Threads))
	t.AddRow("capacity", strconv.Itoa(r.Capacity))
	t.AddRow("lock_mode", r.LockMode)
	t.AddRow("ops", strconv.Itoa(r.Ops.Total()))
	t.AddRow("gets", fmt.Sprintf("%d (hit %d)", r.Ops.Gets, r.Ops.GetHits))
	t.AddRow("puts", fmt.Sprintf("%d (update %d)", r.Ops.Puts, r.Ops.PutUpdates))
	t.AddRow("deletes", fmt.Sprintf("%d (hit %d)", r.Ops.Deletes, r.Ops.DeleteHits))
	t.AddRow("size", strconv.Itoa(r.Size))
	t.AddRow("live", strconv.Itoa(r.Live))
	t.AddRow("load_factor", fmt.Sprintf("%.3f", r.LoadFactor))
	t.AddRow("longest_chain", strconv.Itoa(r.LongestChain))
	t.AddRow("elapsed", r.Elapsed.Round(time.Microsecond).String())
	t.AddRow("ops_per_sec", fmt.Sprintf("%.0f", r.OpsPerSec))
	t.AddRow("fingerprint", r.Fingerprint)
	t.AddRow("verified", strconv.FormatBool(r.Verified))
	t.AddRow("interrupted", strconv.FormatBool(r.Interrupted))
	return t
}

// structToTable converts a single struct to a field/value table.
func structToTable(v reflect.Value) *Table {
	table := &Table{Headers: []string{"FIELD", "VALUE"}}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag := field.Tag.Get("json"); tag != "" {
			if n, _, _ := strings.Cut(tag, ","); n != "" && n != "-" {
				name = n
			}
		}
		table.AddRow(name, formatValue(v.Field(i)))
	}
	return table
}

// formatValue formats a reflect.Value for display.
func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Interface || v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}

	switch v.Kind() {
	case reflect.String:
		if v.String() == "" {
			return "-"
		}
		return v.String()
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.2f", v.Float())
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "-"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table, optionally without the header row.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if !noHeaders && len(t.Headers) > 0 {
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
	}
	for _, row := range t.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
