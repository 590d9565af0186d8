// Package engine computes the exact outcome distribution of a Bang! dice turn.
//
// A turn starts from a roll state and a budget of rerolls. Gattling and
// dynamite dice stay on the table, every other die goes back into the cup,
// and the turn ends early once three of either special face are showing.
// Evaluate walks every branch of that process and folds the branch results
// together weighted by their probability.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/AustinJGreen/bangdice/internal/dice"
)

// TrioSize is the number of matching special faces that ends a turn.
const TrioSize = 3

// MaxDice bounds the dice pool Evaluate accepts.
const MaxDice = 64

// ErrNegativeRounds indicates a negative reroll budget.
var ErrNegativeRounds = errors.New("rounds must be non-negative")

// ErrTooManyDice indicates the dice pool is larger than MaxDice.
var ErrTooManyDice = fmt.Errorf("at most %d dice can be evaluated", MaxDice)

// Termination is why a turn stops at a given state.
type Termination int

const (
	None Termination = iota
	GattlingTrio
	DynamiteTrio
	RoundsExhausted
	NothingToReroll
)

func (t Termination) String() string {
	return [...]string{
		"not terminal",
		"3 gattlings",
		"3 dynamite",
		"exhausted re-rolls",
		"no dice to re-roll",
	}[t]
}

// Terminate reports whether a turn stops at s with rounds rerolls left.
// The checks are ordered: a trio always wins over running out of rerolls.
func Terminate(s dice.State, rounds int) Termination {
	switch {
	case s.Gattling >= TrioSize:
		return GattlingTrio
	case s.Dynamite >= TrioSize:
		return DynamiteTrio
	case rounds == 0:
		return RoundsExhausted
	case s.Other == 0:
		return NothingToReroll
	default:
		return None
	}
}

// Evaluator runs the exact evaluation for a policy.
type Evaluator struct {
	policy  Policy
	workers int
	logger  *log.Logger
	table   *dice.Table
}

// NewEvaluator builds an evaluator. A nil policy means RerollAll, workers
// below 2 evaluate sequentially and a nil logger discards output.
func NewEvaluator(policy Policy, workers int, logger *log.Logger) *Evaluator {
	if policy == nil {
		policy = RerollAll{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Evaluator{
		policy:  policy,
		workers: max(workers, 1),
		logger:  logger,
		table:   new(dice.Table),
	}
}

var defaultEvaluator = NewEvaluator(RerollAll{}, 1, nil)

// Evaluate runs a sequential RerollAll evaluation.
func Evaluate(s dice.State, rounds int) (Result, error) {
	return defaultEvaluator.Evaluate(s, rounds)
}

func (e *Evaluator) Policy() Policy { return e.policy }

// Evaluate returns the aggregated result of playing out s with rounds
// rerolls available.
func (e *Evaluator) Evaluate(s dice.State, rounds int) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	if rounds < 0 {
		return Result{}, fmt.Errorf("rounds = %d: %w", rounds, ErrNegativeRounds)
	}
	if s.Total() > MaxDice {
		return Result{}, fmt.Errorf("%d dice: %w", s.Total(), ErrTooManyDice)
	}
	if e.workers > 1 {
		return e.evaluateParallel(s, rounds)
	}
	return e.evaluate(s, rounds), nil
}

// branches returns the terminal reason for s, or the dice held back and the
// outcomes of the reroll when the turn goes on.
func (e *Evaluator) branches(s dice.State, rounds int) (Termination, dice.State, []dice.Outcome) {
	if t := Terminate(s, rounds); t != None {
		e.logger.Debug("Reached terminating state", "reason", t.String(), "state", s)
		return t, s, nil
	}
	held, reroll := e.policy.Split(s)
	if reroll <= 0 {
		e.logger.Debug("Reached terminating state", "reason", NothingToReroll.String(), "state", s)
		return NothingToReroll, s, nil
	}
	outcomes := e.table.Outcomes(reroll)
	e.logger.Debug("Roll state not terminal, recursing into next re-roll", "state", s, "rounds", rounds, "outcomes", len(outcomes))
	return None, held, outcomes
}

func (e *Evaluator) evaluate(s dice.State, rounds int) Result {
	t, held, outcomes := e.branches(s, rounds)
	if t != None {
		return Terminal(s, t)
	}

	var agg Result
	for _, o := range outcomes {
		child := e.evaluate(held.Add(o.Roll), rounds-1)
		agg = agg.Combine(child.Scale(o.Probability))
	}
	e.logger.Debug("Intermediate outcome", "height", rounds, "result", agg)
	return agg
}

// evaluateParallel fans the first reroll out across workers. Branch results
// are folded in enumeration order so the sum matches evaluate exactly.
func (e *Evaluator) evaluateParallel(s dice.State, rounds int) (Result, error) {
	t, held, outcomes := e.branches(s, rounds)
	if t != None {
		return Terminal(s, t), nil
	}

	results := make([]Result, len(outcomes))
	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, o := range outcomes {
		g.Go(func() error {
			results[i] = e.evaluate(held.Add(o.Roll), rounds-1).Scale(o.Probability)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var agg Result
	for _, r := range results {
		agg = agg.Combine(r)
	}
	e.logger.Debug("Intermediate outcome", "height", rounds, "result", agg, "workers", e.workers)
	return agg, nil
}
