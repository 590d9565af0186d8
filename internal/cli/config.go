// Package cli wires the bangdice command: configuration, logging and output.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/AustinJGreen/bangdice/internal/dice"
	"github.com/AustinJGreen/bangdice/internal/engine"
	"github.com/AustinJGreen/bangdice/internal/report"
)

const (
	defaultOther  = 5
	defaultRounds = 3
)

// Config holds the bangdice command configuration.
type Config struct {
	Initial  dice.State
	Rounds   int
	Verbose  bool
	LogLevel string
	Format   string
	Workers  int
	Trials   int
	Seed     uint64
	Timeout  time.Duration
}

type envConfig struct {
	LogLevel string        `env:"BANGDICE_LOG_LEVEL" envDefault:"info"`
	Format   string        `env:"BANGDICE_FORMAT" envDefault:"text"`
	Workers  int           `env:"BANGDICE_WORKERS" envDefault:"1"`
	Timeout  time.Duration `env:"BANGDICE_TIMEOUT" envDefault:"1m"`
}

// ParseConfig loads defaults from the environment and then parses flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		Initial:  dice.State{Other: defaultOther},
		Rounds:   defaultRounds,
		LogLevel: envCfg.LogLevel,
		Format:   envCfg.Format,
		Workers:  envCfg.Workers,
		Timeout:  envCfg.Timeout,
	}

	intFlag := func(p *int, long, short string, usage string) {
		fs.IntVar(p, long, *p, usage)
		fs.IntVar(p, short, *p, usage+" (shorthand)")
	}
	intFlag(&cfg.Initial.Gattling, "initial-gattling", "g", "number of gattling in the initial roll state")
	intFlag(&cfg.Initial.Dynamite, "initial-dynamite", "d", "number of dynamite in the initial roll state")
	intFlag(&cfg.Initial.Other, "initial-other", "o", "number of other faces in the initial roll state")
	intFlag(&cfg.Rounds, "rolls", "r", "total rolls available")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "debug logging (shorthand)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json, yaml)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines used for evaluation and simulation")
	fs.IntVar(&cfg.Trials, "simulate", 0, "also estimate the result from this many simulated turns (0 = off)")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "random seed for the simulation (0 = unseeded)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout for the simulation")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot be evaluated.
func (c Config) Validate() error {
	if err := c.Initial.Validate(); err != nil {
		return fmt.Errorf("initial roll: %w", err)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("-rolls = %d: %w", c.Rounds, engine.ErrNegativeRounds)
	}
	if c.Workers < 1 {
		return fmt.Errorf("-workers must be > 0, got %d", c.Workers)
	}
	if c.Trials < 0 {
		return fmt.Errorf("-simulate must be >= 0, got %d", c.Trials)
	}
	if c.Trials > 0 && c.Timeout <= 0 {
		return fmt.Errorf("-timeout must be > 0, got %s", c.Timeout)
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("-format: %w", err)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (log.Level, error) {
	if c.Verbose {
		return log.DebugLevel, nil
	}
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("-log-level: %w", err)
	}
	return level, nil
}

// NewLogger builds the command logger writing to w.
func (c Config) NewLogger(w io.Writer) (*log.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "bangdice",
		Level:  level,
	}), nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
