package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/benbjohnson/lazy"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

// DemoCommand represents a command for evaluating and lowering the
// demonstration expression.
type DemoCommand struct {
	w io.Writer
}

// NewDemoCommand returns a new instance of DemoCommand.
func NewDemoCommand(w io.Writer) *DemoCommand {
	return &DemoCommand{w: w}
}

// Run executes the "demo" subcommand.
func (cmd *DemoCommand) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lazy-demo", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "verbose")
	dump := fs.Bool("dump", false, "dump program structure")
	fs.Usage = cmd.usage
	if err := fs.Parse(args); err != nil {
		return err
	} else if fs.NArg() > 0 {
		return fmt.Errorf("too many arguments")
	}

	setupLogging(*verbose)

	// (1 + 2) is shared by three parents.
	add := lazy.NewScalar(1).Add(lazy.NewScalar(2))
	sub := lazy.NewScalar(3).Sub(lazy.NewScalar(4))
	mul := lazy.NewScalar(5).Mul(add)
	res := add.Mul(sub).Add(add.Div(mul))

	return report(ctx, cmd.w, res, *dump)
}

func (cmd *DemoCommand) usage() {
	fmt.Fprintln(os.Stderr, `
usage: lazy demo [arguments]

Prints the expression
(((1 + 2) * (3 - 4)) + ((1 + 2) / (5 * (1 + 2)))), its value and its
lowered program.

Arguments:

	-v
	    Enable verbose logging.
	-dump
	    Dump the lowered program structure.
`[1:])
}

// setupLogging discards log output unless verbose is set.
func setupLogging(verbose bool) {
	log.SetFlags(0)
	if verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}
}

// report writes the expression, its value and its lowered program to w.
// The program is executed and must produce the evaluated value.
func report(ctx context.Context, w io.Writer, s lazy.Scalar, dump bool) error {
	log.Printf("[begin] nodes=%d", lazy.CountExprs(s.Expr()))

	value := s.Evaluate()
	fmt.Fprintln(w, s)
	fmt.Fprintf(w, "result: %s\n", lazy.FormatFloat(value))

	if err := ctx.Err(); err != nil {
		return err
	}

	prog := s.Lower()
	log.Printf("lowered: instructions=%d ret=%d", prog.Len(), prog.Result)
	fmt.Fprintln(w, prog)

	if dump {
		cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true}
		cfg.Fdump(w, prog)
	}

	got, err := lazy.Execute(prog)
	if err != nil {
		return errors.Wrap(err, "execute lowered program")
	} else if !sameValue(got, value) {
		return errors.Errorf("lowered program returned %s, expected %s", lazy.FormatFloat(got), lazy.FormatFloat(value))
	}

	log.Print("[end]")
	return nil
}

// sameValue returns true if a & b are equal or both NaN.
func sameValue(a, b float32) bool {
	return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
}
