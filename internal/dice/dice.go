// Package dice enumerates the outcomes of rolling Bang! dice.
//
// A Bang! die is a d6 whose faces fall into three buckets: gattling (one
// face), dynamite (one face) and everything else (four faces). Only the
// bucket counts matter, so a roll of n dice is described by a State and
// every distinct State is weighted by its multinomial probability.
package dice

import (
	"errors"
	"fmt"
	"math"
	"math/big"
)

type Face int

const (
	Gattling Face = iota
	Dynamite
	Other
)

// NumFaces is the length of a State vector.
const NumFaces = 3

func (f Face) String() string {
	return [NumFaces]string{
		"gattling",
		"dynamite",
		"other",
	}[f]
}

// Probability is the chance a single die lands on f.
func (f Face) Probability() float64 {
	return [NumFaces]float64{
		1.0 / 6,
		1.0 / 6,
		4.0 / 6,
	}[f]
}

// Faces returns every face in vector order.
func Faces() []Face {
	return []Face{Gattling, Dynamite, Other}
}

// ErrNegativeCount indicates a State holds a negative number of dice.
var ErrNegativeCount = errors.New("dice count must be non-negative")

// State is the number of dice currently showing each face.
type State struct {
	Gattling int `json:"gattling" yaml:"gattling"`
	Dynamite int `json:"dynamite" yaml:"dynamite"`
	Other    int `json:"other" yaml:"other"`
}

func (s State) Total() int {
	return s.Gattling + s.Dynamite + s.Other
}

func (s State) Count(f Face) int {
	switch f {
	case Gattling:
		return s.Gattling
	case Dynamite:
		return s.Dynamite
	case Other:
		return s.Other
	default:
		panic(fmt.Sprintf("unknown face %d", f))
	}
}

// Vector returns the counts indexed by Face.
func (s State) Vector() [NumFaces]float64 {
	return [NumFaces]float64{
		float64(s.Gattling),
		float64(s.Dynamite),
		float64(s.Other),
	}
}

// Add returns the face-wise sum of s and o. Neither is modified.
func (s State) Add(o State) State {
	return State{
		Gattling: s.Gattling + o.Gattling,
		Dynamite: s.Dynamite + o.Dynamite,
		Other:    s.Other + o.Other,
	}
}

// Validate reports the first face with a negative count.
func (s State) Validate() error {
	for _, f := range Faces() {
		if n := s.Count(f); n < 0 {
			return fmt.Errorf("%s = %d: %w", f, n, ErrNegativeCount)
		}
	}
	return nil
}

func (s State) String() string {
	return fmt.Sprintf("gattling=%d,dynamite=%d,other=%d", s.Gattling, s.Dynamite, s.Other)
}

// Multinomial counts the orderings of a multiset with the given group sizes,
// n!/(k1!·k2!·...), where n is the sum of counts.
//
// The coefficient is built as a running product, multiplying by the next
// position and dividing by the position within the current group. Every
// intermediate value is itself a multinomial coefficient so the division is
// always exact.
func Multinomial(counts ...int) *big.Int {
	res := big.NewInt(1)
	var num, den big.Int
	i := int64(1)
	for _, k := range counts {
		if k < 0 {
			panic(fmt.Sprintf("negative group size %d", k))
		}
		for j := int64(1); j <= int64(k); j++ {
			res.Mul(res, num.SetInt64(i))
			res.Quo(res, den.SetInt64(j))
			i++
		}
	}
	return res
}

// Probability is the chance that rolling s.Total() dice lands exactly on s.
func Probability(s State) float64 {
	coeff, _ := new(big.Float).SetInt(Multinomial(s.Gattling, s.Dynamite, s.Other)).Float64()
	return coeff *
		math.Pow(Gattling.Probability(), float64(s.Gattling)) *
		math.Pow(Dynamite.Probability(), float64(s.Dynamite)) *
		math.Pow(Other.Probability(), float64(s.Other))
}

// Outcome is one way a roll can land along with how likely it is.
type Outcome struct {
	Roll        State
	Probability float64
}

func (o Outcome) String() string {
	return fmt.Sprintf("%s (p=%g)", o.Roll, o.Probability)
}

// NumOutcomes is the number of distinct outcomes when rolling n dice.
func NumOutcomes(n int) int {
	if n < 0 {
		return 0
	}
	return (n + 1) * (n + 2) / 2
}

// Enumerate lists every outcome of rolling n dice, gattling count ascending
// then dynamite count ascending. The probabilities sum to one. Rolling zero
// dice has the single outcome of no faces with probability one.
func Enumerate(n int) []Outcome {
	if n < 0 {
		return nil
	}
	outcomes := make([]Outcome, 0, NumOutcomes(n))
	for g := 0; g <= n; g++ {
		for d := 0; d <= n-g; d++ {
			roll := State{Gattling: g, Dynamite: d, Other: n - g - d}
			outcomes = append(outcomes, Outcome{
				Roll:        roll,
				Probability: Probability(roll),
			})
		}
	}
	return outcomes
}
