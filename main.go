// bangdice estimates how a turn of the Bang! dice game ends.
//
// Bang! dice show gattling and dynamite on one face each and something
// harmless on the other four. Special faces stay on the table, the rest are
// rerolled up to a fixed number of times, and three of a special face ends
// the turn. bangdice walks every possible reroll and prints the expected
// final faces along with the chance of each trio.
//
// usage:
//
//	bangdice [-g 0] [-d 0] [-o 5] [-r 3] [-v] [-format text|json|yaml] [-simulate N -seed S]
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/AustinJGreen/bangdice/internal/cli"
)

func run(ctx context.Context, args []string, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("bangdice", flag.ContinueOnError)
	fs.SetOutput(errOut)
	cfg, err := cli.ParseConfig(fs, args)
	if err != nil {
		return err
	}
	return cli.Run(ctx, cfg, out, errOut)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		cli.Exitf("Error: %v", err)
	}
}
