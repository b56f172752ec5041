package lazy

import (
	"math"

	"github.com/benbjohnson/immutable"
)

// SlotAllocator hands out slots in increasing order starting from zero.
// A slot is never handed out twice.
type SlotAllocator struct {
	next uint64
}

// Next returns a fresh slot. Panics if the slot space is exhausted.
func (a *SlotAllocator) Next() Slot {
	assert(a.next <= math.MaxUint32, "slot space exhausted: %d", a.next)
	slot := Slot(a.next)
	a.next++
	return slot
}

// Len returns the number of slots allocated so far.
func (a *SlotAllocator) Len() int {
	return int(a.next)
}

// LowerResult is the outcome of lowering one expression within a scope.
type LowerResult struct {
	// Slot holding the value of the expression.
	Slot Slot

	// Instructions emitted by this call, in execution order.
	// Empty if the expression was already compiled.
	Instructions []Instruction

	// True if the expression was compiled by an earlier call in the same
	// scope. Its instructions were returned by that call.
	AlreadyCompiled bool
}

// Program returns the emitted instructions as a program. Panics if the
// expression was already compiled since the result then has no instructions
// of its own.
func (r LowerResult) Program() *Program {
	assert(!r.AlreadyCompiled, "program requested for already compiled expression: slot=%d", r.Slot)
	return &Program{Instructions: r.Instructions, Result: r.Slot}
}

// String returns the program listing, or "Compiled Already".
func (r LowerResult) String() string {
	if r.AlreadyCompiled {
		return "Compiled Already"
	}
	return r.Program().String()
}

// Lowerer compiles expressions into instructions. It is a single lowering
// scope: every node is compiled at most once per Lowerer, no matter how many
// parents reference it or how many times Lower is called, and all slots come
// from one allocator so they stay valid across calls.
//
// A Lowerer is not safe for concurrent use.
type Lowerer struct {
	slots SlotAllocator

	// Slots of compiled nodes, keyed by expression identity.
	memo *immutable.SortedMap
}

// NewLowerer returns a new instance of Lowerer with an empty scope.
func NewLowerer() *Lowerer {
	return &Lowerer{
		memo: immutable.NewSortedMap(&uint64Comparer{}),
	}
}

// Clone returns a copy of the lowerer. The copy starts with the same compiled
// nodes and slot counter; lowering with either one does not affect the other.
func (l *Lowerer) Clone() *Lowerer {
	return &Lowerer{
		slots: l.slots,
		memo:  l.memo,
	}
}

// Len returns the number of nodes compiled in this scope.
func (l *Lowerer) Len() int {
	return l.memo.Len()
}

// Slot returns the slot assigned to expr, if it has been compiled.
func (l *Lowerer) Slot(expr Expr) (Slot, bool) {
	v, ok := l.memo.Get(expr.ID())
	if !ok {
		return 0, false
	}
	return v.(Slot), true
}

// Lower compiles expr. If expr was compiled earlier in this scope then no
// instructions are emitted and its operands are not revisited.
//
// Otherwise operands are compiled depth-first, left before right, and each
// node's slot is allocated after its operands' slots. Instructions of
// operands that were already compiled are not repeated.
func (l *Lowerer) Lower(expr Expr) LowerResult {
	assert(expr != nil, "lower: nil expression")

	var instrs []Instruction
	slot, ok := l.lower(expr, &instrs)
	if !ok {
		return LowerResult{Slot: slot, AlreadyCompiled: true}
	}
	return LowerResult{Slot: slot, Instructions: instrs}
}

// lower appends the instructions for expr to instrs and returns the slot
// holding its value. Returns false if expr was already compiled.
func (l *Lowerer) lower(expr Expr, instrs *[]Instruction) (Slot, bool) {
	assert(expr.ID() != 0, "lower: expression not created by a constructor: %s", expr)

	if slot, ok := l.Slot(expr); ok {
		return slot, false
	}

	switch expr := expr.(type) {
	case *ConstantExpr:
		slot := l.assign(expr)
		*instrs = append(*instrs, NewConstantInstruction(expr.Value, slot))
		return slot, true

	case *BinaryExpr:
		lhs, _ := l.lower(expr.LHS, instrs)
		rhs, _ := l.lower(expr.RHS, instrs)
		slot := l.assign(expr)
		*instrs = append(*instrs, NewBinaryInstruction(expr.Op, lhs, rhs, slot))
		return slot, true

	default:
		panic("unreachable")
	}
}

// assign allocates a slot for expr and records it as compiled.
func (l *Lowerer) assign(expr Expr) Slot {
	slot := l.slots.Next()
	l.memo = l.memo.Set(expr.ID(), slot)
	return slot
}

// Lower compiles expr into a self-contained program using a fresh scope.
// Slots in the program are numbered densely from zero.
func Lower(expr Expr) *Program {
	result := NewLowerer().Lower(expr)
	if result.AlreadyCompiled {
		panic("unreachable: root already compiled in a fresh scope")
	}
	return result.Program()
}

// uint64Comparer compares two 64-bit unsigned integers. Implements immutable.Comparer.
type uint64Comparer struct{}

// Compare returns -1 if a is less than b, returns 1 if a is greater than b, and
// returns 0 if a is equal to b. Panic if a or b is not an uint64.
func (c *uint64Comparer) Compare(a, b interface{}) int {
	if i, j := a.(uint64), b.(uint64); i < j {
		return -1
	} else if i > j {
		return 1
	}
	return 0
}
