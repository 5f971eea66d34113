package workload

import (
	"fmt"

	"github.com/yndnr/tsmap-go/pkg/bucketmap"
)

// Step is one call of the demo sequence and its result.
type Step struct {
	Call    string `json:"call" yaml:"call"`
	Value   int    `json:"value" yaml:"value"`
	Present bool   `json:"present" yaml:"present"`
}

// String renders the step as "put(5,2) -> absent" or "get(5) -> 4".
func (s Step) String() string {
	if !s.Present {
		return s.Call + " -> absent"
	}
	return fmt.Sprintf("%s -> %d", s.Call, s.Value)
}

// Demo runs the fixed single-threaded call sequence
//
//	put(5,2) put(6,10) put(3,7) del(5) put(5,4) get(5) get(6) get(3) get(99)
//
// and returns each result.
func Demo(m *bucketmap.Map) []Step {
	var steps []Step

	put := func(k, v int) {
		old, ok := m.Put(k, v)
		steps = append(steps, Step{Call: fmt.Sprintf("put(%d,%d)", k, v), Value: old, Present: ok})
	}
	get := func(k int) {
		v, ok := m.Get(k)
		steps = append(steps, Step{Call: fmt.Sprintf("get(%d)", k), Value: v, Present: ok})
	}
	del := func(k int) {
		v, ok := m.Delete(k)
		steps = append(steps, Step{Call: fmt.Sprintf("del(%d)", k), Value: v, Present: ok})
	}

	put(5, 2)
	put(6, 10)
	put(3, 7)
	del(5)
	put(5, 4)
	get(5)
	get(6)
	get(3)
	get(99)

	return steps
}
