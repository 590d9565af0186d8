package dice

import "sync"

// Table memoizes Enumerate. It is safe for concurrent use. The zero value is
// ready to use.
//
// Returned slices are shared between callers and must not be modified.
type Table struct {
	mu       sync.Mutex
	outcomes map[int][]Outcome
}

// NewTable returns a table with the outcomes for 0..n dice already built.
func NewTable(n int) *Table {
	t := &Table{}
	for i := 0; i <= n; i++ {
		t.Outcomes(i)
	}
	return t
}

func (t *Table) Outcomes(n int) []Outcome {
	if n < 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.outcomes == nil {
		t.outcomes = make(map[int][]Outcome)
	}
	if o, ok := t.outcomes[n]; ok {
		return o
	}
	o := Enumerate(n)
	t.outcomes[n] = o
	return o
}
