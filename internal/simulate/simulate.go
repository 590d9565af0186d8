// Package simulate estimates the outcome of a Bang! dice turn by playing it
// out many times. It cross-checks the exact numbers from package engine.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	bang "github.com/AustinJGreen/bangdice/internal/dice"
	"github.com/AustinJGreen/bangdice/internal/engine"
)

// ErrNoTrials indicates a simulation was asked to run fewer than one trial.
var ErrNoTrials = errors.New("at least one trial is required")

// ErrBadPip indicates a roller returned a value outside 1-6.
var ErrBadPip = errors.New("d6 roll out of range")

// Config controls a simulation run.
type Config struct {
	Trials  int
	Workers int
	// Seed seeds one RandRoller per worker. Zero rolls with DiceRoller.
	Seed   uint64
	Policy engine.Policy
	Logger *log.Logger
}

// Estimate is the averaged result of the simulated turns.
type Estimate struct {
	Trials int           `json:"trials" yaml:"trials"`
	Result engine.Result `json:"result" yaml:"result"`
}

func (c Config) roller(worker int) Roller {
	if c.Seed == 0 {
		return DiceRoller{}
	}
	return NewRandRoller(c.Seed + uint64(worker))
}

// Run plays out trials turns from s with rounds rerolls each.
func Run(ctx context.Context, s bang.State, rounds int, cfg Config) (Estimate, error) {
	if err := s.Validate(); err != nil {
		return Estimate{}, err
	}
	if rounds < 0 {
		return Estimate{}, fmt.Errorf("rounds = %d: %w", rounds, engine.ErrNegativeRounds)
	}
	if cfg.Trials < 1 {
		return Estimate{}, fmt.Errorf("trials = %d: %w", cfg.Trials, ErrNoTrials)
	}
	if cfg.Policy == nil {
		cfg.Policy = engine.RerollAll{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	workers := min(max(cfg.Workers, 1), cfg.Trials)

	start := time.Now()
	cfg.Logger.Debug("Simulating", "trials", cfg.Trials, "workers", workers, "state", s, "rounds", rounds)

	sums := make([]engine.Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		n := cfg.Trials / workers
		if w < cfg.Trials%workers {
			n++
		}
		g.Go(func() error {
			r := cfg.roller(w)
			for i := 0; i < n; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				end, t, err := play(r, cfg.Policy, s, rounds)
				if err != nil {
					return err
				}
				sums[w] = sums[w].Combine(engine.Terminal(end, t))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Estimate{}, err
	}

	var total engine.Result
	for _, sum := range sums {
		total = total.Combine(sum)
	}
	took := time.Since(start)
	cfg.Logger.Debug("Simulation finished", "took", took, "games_per_second", float64(cfg.Trials)/took.Seconds())
	return Estimate{
		Trials: cfg.Trials,
		Result: total.Scale(1 / float64(cfg.Trials)),
	}, nil
}

// play runs a single turn and returns where it stopped and why.
func play(r Roller, p engine.Policy, s bang.State, rounds int) (bang.State, engine.Termination, error) {
	for {
		if t := engine.Terminate(s, rounds); t != engine.None {
			return s, t, nil
		}
		held, n := p.Split(s)
		if n <= 0 {
			return s, engine.NothingToReroll, nil
		}
		rolled, err := roll(r, n)
		if err != nil {
			return bang.State{}, engine.None, err
		}
		s = held.Add(rolled)
		rounds--
	}
}
