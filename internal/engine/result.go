package engine

import (
	"fmt"

	"github.com/AustinJGreen/bangdice/internal/dice"
)

// Result aggregates the end of every path below some roll state.
//
// Expectation is the expected final count per face (indexed by dice.Face),
// weighted by path probability. GattlingWin and DynamiteWin are the chances
// of the turn ending on a trio of that face.
type Result struct {
	Expectation [dice.NumFaces]float64 `json:"expectation" yaml:"expectation"`
	GattlingWin float64                `json:"gattling_win" yaml:"gattling_win"`
	DynamiteWin float64                `json:"dynamite_win" yaml:"dynamite_win"`
}

// Terminal is the result of a turn that stops at s for reason t.
func Terminal(s dice.State, t Termination) Result {
	r := Result{Expectation: s.Vector()}
	switch t {
	case GattlingTrio:
		r.GattlingWin = 1
	case DynamiteTrio:
		r.DynamiteWin = 1
	}
	return r
}

// Scale weights every component of r by p.
func (r Result) Scale(p float64) Result {
	for i := range r.Expectation {
		r.Expectation[i] *= p
	}
	r.GattlingWin *= p
	r.DynamiteWin *= p
	return r
}

// Combine adds o to r component-wise.
func (r Result) Combine(o Result) Result {
	for i := range r.Expectation {
		r.Expectation[i] += o.Expectation[i]
	}
	r.GattlingWin += o.GattlingWin
	r.DynamiteWin += o.DynamiteWin
	return r
}

// Expected returns the expected final count of dice showing f.
func (r Result) Expected(f dice.Face) float64 {
	return r.Expectation[f]
}

// ExpectationByFace keys the expectation vector by face name.
func (r Result) ExpectationByFace() map[string]float64 {
	m := make(map[string]float64, dice.NumFaces)
	for _, f := range dice.Faces() {
		m[f.String()] = r.Expectation[f]
	}
	return m
}

func (r Result) String() string {
	return fmt.Sprintf("expectation=%v gattling=%g dynamite=%g", r.Expectation, r.GattlingWin, r.DynamiteWin)
}
