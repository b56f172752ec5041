package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/lazy"
	"github.com/pkg/errors"
)

// Evaluation and rendering visit every path through the chain, 2^n of them.
const maxChainDepth = 16

// ChainCommand represents a command for lowering x(n) where
// x(0) = value and x(i+1) = x(i) + x(i).
type ChainCommand struct {
	w io.Writer
}

// NewChainCommand returns a new instance of ChainCommand.
func NewChainCommand(w io.Writer) *ChainCommand {
	return &ChainCommand{w: w}
}

// Run executes the "chain" subcommand.
func (cmd *ChainCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lazy-chain", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "verbose")
	dump := fs.Bool("dump", false, "dump program structure")
	n := fs.Int("n", 8, "chain depth")
	value := fs.Float64("value", 1, "initial value")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() > 0 {
		return fmt.Errorf("too many arguments")
	} else if *n < 0 {
		return errors.Errorf("chain depth must not be negative: %d", *n)
	} else if *n > maxChainDepth {
		return errors.Errorf("chain depth too large: %d > %d", *n, maxChainDepth)
	}

	setupLogging(*verbose)

	x := lazy.NewScalar(float32(*value))
	for i := 0; i < *n; i++ {
		x = x.Add(x)
	}
	return report(ctx, cmd.w, x, *dump)
}

func (cmd *ChainCommand) usage() {
	fmt.Fprintln(os.Stderr, `
usage: lazy chain [arguments]

Builds x(n) where x(0) = value and x(i+1) = x(i) + x(i), then prints its
value and its lowered program. Each level is compiled once so the program
has n+1 instructions.

Arguments:

	-n depth
	    Number of additions. Defaults to 8, at most 16.
	-value v
	    Initial value. Defaults to 1.
	-v
	    Enable verbose logging.
	-dump
	    Dump the lowered program structure.
`[1:])
}
