package cli

import (
	"context"
	"io"

	"github.com/AustinJGreen/bangdice/internal/engine"
	"github.com/AustinJGreen/bangdice/internal/report"
	"github.com/AustinJGreen/bangdice/internal/simulate"
)

// Run evaluates the configured roll and writes the report to out. Logs go
// to errOut.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	logger, err := cfg.NewLogger(errOut)
	if err != nil {
		return err
	}

	policy := engine.RerollAll{}
	logger.Debug("Evaluating", "initial", cfg.Initial, "rounds", cfg.Rounds, "policy", policy.Name())
	result, err := engine.NewEvaluator(policy, cfg.Workers, logger).Evaluate(cfg.Initial, cfg.Rounds)
	if err != nil {
		return err
	}

	rep := report.Report{
		Initial: cfg.Initial,
		Rounds:  cfg.Rounds,
		Policy:  policy.Name(),
		Result:  result,
	}
	if cfg.Trials > 0 {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
		est, err := simulate.Run(ctx, cfg.Initial, cfg.Rounds, simulate.Config{
			Trials:  cfg.Trials,
			Workers: cfg.Workers,
			Seed:    cfg.Seed,
			Policy:  policy,
			Logger:  logger,
		})
		if err != nil {
			return err
		}
		rep.Estimate = &est
	}
	return report.Write(out, format, rep)
}
