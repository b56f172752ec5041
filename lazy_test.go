package lazy_test

import (
	"math"
	"testing"

	"github.com/benbjohnson/lazy"
	"github.com/davecgh/go-spew/spew"
)

// NewDemoScalar returns the demonstration graph in which (1 + 2) is
// referenced by three parents:
//
//	(((1 + 2) * (3 - 4)) + ((1 + 2) / (5 * (1 + 2))))
func NewDemoScalar() lazy.Scalar {
	add := lazy.NewScalar(1).Add(lazy.NewScalar(2))
	sub := lazy.NewScalar(3).Sub(lazy.NewScalar(4))
	mul := lazy.NewScalar(5).Mul(add)
	return add.Mul(sub).Add(add.Div(mul))
}

// NewChainScalar returns x(n) where x(0) = value and x(i+1) = x(i) + x(i).
func NewChainScalar(value float32, n int) lazy.Scalar {
	x := lazy.NewScalar(value)
	for i := 0; i < n; i++ {
		x = x.Add(x)
	}
	return x
}

// MustExecute runs a program on a new machine. Fatal on error.
func MustExecute(tb testing.TB, p *lazy.Program) float32 {
	tb.Helper()
	v, err := lazy.Execute(p)
	if err != nil {
		tb.Fatalf("execute: %s\n%s", err, Dump(p))
	}
	return v
}

// Dump returns the structure of v. Stringers are ignored so programs are
// shown field by field rather than as a listing.
func Dump(v interface{}) string {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true, DisablePointerAddresses: true}
	return cfg.Sdump(v)
}

// ApproxEqual returns true if a & b are within a relative tolerance.
// Two NaNs are considered equal.
func ApproxEqual(a, b float32) bool {
	x, y := float64(a), float64(b)
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return math.IsNaN(x) && math.IsNaN(y)
	case math.IsInf(x, 0) || math.IsInf(y, 0):
		return x == y
	}
	return math.Abs(x-y) <= 1e-5*math.Max(1, math.Max(math.Abs(x), math.Abs(y)))
}

// MustPanic calls fn and fails if it does not panic.
func MustPanic(tb testing.TB, fn func()) {
	tb.Helper()
	defer func() {
		if recover() == nil {
			tb.Fatal("expected panic")
		}
	}()
	fn()
}
