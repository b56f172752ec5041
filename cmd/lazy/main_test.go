package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRun_Demo(t *testing.T) {
	var buf bytes.Buffer
	if err := run(context.Background(), []string{"demo"}, &buf); err != nil {
		t.Fatal(err)
	}

	exp := strings.Join([]string{
		"(((1 + 2) * (3 - 4)) + ((1 + 2) / (5 * (1 + 2))))",
		"result: -2.8",
		"%0: constant 1",
		"%1: constant 2",
		"%2: add %0 %1",
		"%3: constant 3",
		"%4: constant 4",
		"%5: sub %3 %4",
		"%6: mul %2 %5",
		"%7: constant 5",
		"%8: mul %7 %2",
		"%9: div %2 %8",
		"%10: add %6 %9",
		"ret 10",
		"",
	}, "\n")
	if diff := cmp.Diff(buf.String(), exp); diff != "" {
		t.Fatal(diff)
	}
}

func TestRun_Chain(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		var buf bytes.Buffer
		if err := run(context.Background(), []string{"chain", "-n", "2", "-value", "3"}, &buf); err != nil {
			t.Fatal(err)
		}

		exp := "((3 + 3) + (3 + 3))\nresult: 12\n%0: constant 3\n%1: add %0 %0\n%2: add %1 %1\nret 2\n"
		if diff := cmp.Diff(buf.String(), exp); diff != "" {
			t.Fatal(diff)
		}
	})

	t.Run("Zero", func(t *testing.T) {
		var buf bytes.Buffer
		if err := run(context.Background(), []string{"chain", "-n", "0", "-value", "0.5"}, &buf); err != nil {
			t.Fatal(err)
		} else if got, exp := buf.String(), "0.5\nresult: 0.5\n%0: constant 0.5\nret 0\n"; got != exp {
			t.Fatalf("unexpected output: %q", got)
		}
	})

	t.Run("Dump", func(t *testing.T) {
		var buf bytes.Buffer
		if err := run(context.Background(), []string{"chain", "-n", "1", "-dump"}, &buf); err != nil {
			t.Fatal(err)
		} else if s := buf.String(); !strings.Contains(s, "Instructions:") || !strings.Contains(s, "Result: (lazy.Slot) 1") {
			t.Fatalf("expected program dump: %s", buf.String())
		}
	})

	t.Run("ErrNegativeDepth", func(t *testing.T) {
		err := run(context.Background(), []string{"chain", "-n", "-1"}, &bytes.Buffer{})
		if err == nil || err.Error() != "chain depth must not be negative: -1" {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("ErrDepthTooLarge", func(t *testing.T) {
		if err := run(context.Background(), []string{"chain", "-n", "100"}, &bytes.Buffer{}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("ErrCanceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := run(ctx, []string{"chain"}, &bytes.Buffer{}); err != context.Canceled {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestRun_Unknown(t *testing.T) {
	if err := run(context.Background(), []string{"nope"}, &bytes.Buffer{}); err == nil || err.Error() != "lazy nope: unknown command" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_Help(t *testing.T) {
	if err := run(context.Background(), nil, &bytes.Buffer{}); err != flag.ErrHelp {
		t.Fatalf("unexpected error: %v", err)
	}
}
