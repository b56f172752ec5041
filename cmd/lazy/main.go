package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err == flag.ErrHelp {
		os.Exit(1)
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, w io.Writer) error {
	var cmd string
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "", "-h", "--help", "help":
		usage()
		return flag.ErrHelp
	case "demo":
		return NewDemoCommand(w).Run(ctx, args)
	case "chain":
		return NewChainCommand(w).Run(ctx, args)
	default:
		return fmt.Errorf(`lazy %s: unknown command`, cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `
Lazy builds scalar expression graphs, evaluates them and lowers them to
three-address code.

Usage:

	lazy <command> [arguments]

The commands are:

	demo        evaluate and lower the demonstration expression
	chain       lower a chain of self-referencing additions
	help        this screen
`[1:])
}
