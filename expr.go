package lazy

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
)

// Expr represents a node in an expression graph.
//
// Operands of a node are fixed when it is created and always refer to
// expressions created before it, so every graph is acyclic. A node may be
// referenced by any number of parents.
type Expr interface {
	// ID returns the identity assigned to the node at construction.
	ID() uint64
	String() string
	expr()
}

func (*BinaryExpr) expr()   {}
func (*ConstantExpr) expr() {}

// exprIDSeq holds the last identity assigned to an expression.
var exprIDSeq uint64

// nextExprID returns a new process-unique expression identity.
func nextExprID() uint64 {
	return atomic.AddUint64(&exprIDSeq, 1)
}

// BinaryOp represents a binary expression operation.
type BinaryOp int

// BinaryExpr operations.
const (
	binary_op_begin = BinaryOp(iota)
	ADD
	SUB
	MUL
	DIV
	binary_op_end
)

var binaryOps = [...]string{
	ADD: "add",
	SUB: "sub",
	MUL: "mul",
	DIV: "div",
}

var binarySymbols = [...]string{
	ADD: "+",
	SUB: "-",
	MUL: "*",
	DIV: "/",
}

// String returns the instruction name of the operation.
func (op BinaryOp) String() string {
	if op.IsValid() {
		return binaryOps[op]
	}
	return fmt.Sprintf("BinaryOp<%d>", op)
}

// Symbol returns the infix operator for op.
func (op BinaryOp) Symbol() string {
	if op.IsValid() {
		return binarySymbols[op]
	}
	return "?"
}

// IsValid returns true if op is a known operation.
func (op BinaryOp) IsValid() bool {
	return op > binary_op_begin && op < binary_op_end
}

// Apply returns the result of applying op to lhs & rhs using float32
// arithmetic. Division by zero follows IEEE-754 and yields an infinity or NaN.
func (op BinaryOp) Apply(lhs, rhs float32) float32 {
	switch op {
	case ADD:
		return lhs + rhs
	case SUB:
		return lhs - rhs
	case MUL:
		return lhs * rhs
	case DIV:
		return lhs / rhs
	default:
		panic(fmt.Sprintf("lazy: invalid binary op: %d", op))
	}
}

// ConstantExpr represents a 32-bit floating-point literal.
type ConstantExpr struct {
	id    uint64
	Value float32
}

// NewConstantExpr returns a new instance of ConstantExpr.
func NewConstantExpr(value float32) *ConstantExpr {
	return &ConstantExpr{id: nextExprID(), Value: value}
}

// ID returns the identity of the expression.
func (e *ConstantExpr) ID() uint64 { return e.id }

// String returns the string representation of the expression.
func (e *ConstantExpr) String() string {
	return FormatFloat(e.Value)
}

// BinaryExpr represents an operation on two expressions.
type BinaryExpr struct {
	id  uint64
	Op  BinaryOp
	LHS Expr
	RHS Expr
}

// NewBinaryExpr returns a new instance of BinaryExpr. The operands are shared,
// not copied, and are never modified.
func NewBinaryExpr(op BinaryOp, lhs, rhs Expr) *BinaryExpr {
	assert(op.IsValid(), "invalid binary op: %d", op)
	assert(lhs != nil && rhs != nil, "binary expr operand required: op=%s", op)
	return &BinaryExpr{id: nextExprID(), Op: op, LHS: lhs, RHS: rhs}
}

// ID returns the identity of the expression.
func (e *BinaryExpr) ID() uint64 { return e.id }

// String returns the fully parenthesized infix representation of the expression.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.LHS, e.Op.Symbol(), e.RHS)
}

// Evaluate computes the value of expr. Shared operands are evaluated once per
// reference; no results are cached.
//
// Recursion depth equals the depth of the graph. Callers building very deep
// graphs are responsible for bounding it.
func Evaluate(expr Expr) float32 {
	switch expr := expr.(type) {
	case *ConstantExpr:
		return expr.Value
	case *BinaryExpr:
		lhs := Evaluate(expr.LHS)
		rhs := Evaluate(expr.RHS)
		return expr.Op.Apply(lhs, rhs)
	default:
		panic("unreachable")
	}
}

// CompareExpr returns an integer comparing two expressions by structure.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b. Identities are
// ignored so two separately built copies of a graph compare equal.
func CompareExpr(a, b Expr) int {
	if a == nil && b != nil {
		return -1
	} else if a != nil && b == nil {
		return 1
	} else if a == b {
		return 0
	}

	if ak, bk := exprKind(a), exprKind(b); ak < bk {
		return -1
	} else if ak > bk {
		return 1
	}

	switch a := a.(type) {
	case *ConstantExpr:
		return compareConstantExpr(a, b.(*ConstantExpr))
	case *BinaryExpr:
		return compareBinaryExpr(a, b.(*BinaryExpr))
	default:
		panic("unreachable")
	}
}

func compareConstantExpr(a, b *ConstantExpr) int {
	if a.Value < b.Value {
		return -1
	} else if a.Value > b.Value {
		return 1
	}

	// Order by bit pattern so NaNs and signed zeros have a stable position.
	if x, y := math.Float32bits(a.Value), math.Float32bits(b.Value); x < y {
		return -1
	} else if x > y {
		return 1
	}
	return 0
}

func compareBinaryExpr(a, b *BinaryExpr) int {
	if a.Op < b.Op {
		return -1
	} else if a.Op > b.Op {
		return 1
	}
	if cmp := CompareExpr(a.LHS, b.LHS); cmp != 0 {
		return cmp
	}
	return CompareExpr(a.RHS, b.RHS)
}

// exprKind returns a numeric value for the type of expression.
// Only used internally for equality checks and sorting.
func exprKind(expr Expr) int {
	switch expr.(type) {
	case *ConstantExpr:
		return 1
	case *BinaryExpr:
		return 2
	default:
		panic("unreachable")
	}
}

// ExprVisitor represents a visitor that can be passed to WalkExpr().
type ExprVisitor interface {
	// Executed for every visited node. Return nil to skip the node's operands.
	Visit(expr Expr) ExprVisitor
}

// WalkExpr traverses expr in depth-first order, left operand first. A node
// reachable along several paths is visited once per path unless the visitor
// prunes it.
func WalkExpr(v ExprVisitor, expr Expr) {
	if v = v.Visit(expr); v == nil {
		return
	}

	switch expr := expr.(type) {
	case *BinaryExpr:
		WalkExpr(v, expr.LHS)
		WalkExpr(v, expr.RHS)
	case *ConstantExpr:
		// nop
	default:
		panic("unreachable")
	}
}

// CountExprs returns the number of distinct nodes reachable from exprs.
func CountExprs(exprs ...Expr) int {
	v := newDistinctExprVisitor()
	for _, expr := range exprs {
		WalkExpr(v, expr)
	}
	return len(v.m)
}

type distinctExprVisitor struct {
	m map[uint64]struct{}
}

func newDistinctExprVisitor() *distinctExprVisitor {
	return &distinctExprVisitor{m: make(map[uint64]struct{})}
}

func (v *distinctExprVisitor) Visit(expr Expr) ExprVisitor {
	if _, ok := v.m[expr.ID()]; ok {
		return nil // already counted, along with its operands
	}
	v.m[expr.ID()] = struct{}{}
	return v
}

// FormatFloat returns the shortest decimal form of v without an exponent.
// Infinities are written as "inf" and "-inf", and NaN as "NaN".
func FormatFloat(v float32) string {
	switch f := float64(v); {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 32)
}
