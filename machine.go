package lazy

import (
	"fmt"
)

// Machine executes programs against a slot-indexed store of values.
//
// A machine keeps its store between runs so that programs produced by the
// same Lowerer may refer to slots written by earlier programs.
type Machine struct {
	values  []float32
	defined []bool
}

// NewMachine returns a new instance of Machine with an empty store.
func NewMachine() *Machine {
	return &Machine{}
}

// Reset clears all slots.
func (m *Machine) Reset() {
	m.values, m.defined = m.values[:0], m.defined[:0]
}

// Value returns the value stored in slot, if it has been written.
func (m *Machine) Value(slot Slot) (float32, bool) {
	if int(slot) >= len(m.defined) || !m.defined[slot] {
		return 0, false
	}
	return m.values[slot], true
}

// Run clears the store, executes p in order and returns the value of its
// result slot.
func (m *Machine) Run(p *Program) (float32, error) {
	m.Reset()
	return m.RunContinue(p)
}

// RunContinue executes p in order without clearing slots written by earlier
// runs and returns the value of its result slot.
//
// Returns an error if an instruction reads a slot that has not been written,
// writes a slot twice, or has an unknown opcode. Destinations may not lie
// more than len(p.Instructions) slots past the current store.
func (m *Machine) RunContinue(p *Program) (float32, error) {
	limit := len(m.values) + len(p.Instructions)
	for i, ins := range p.Instructions {
		if err := m.exec(ins, limit); err != nil {
			return 0, fmt.Errorf("instruction %d (%s): %w", i, ins, err)
		}
	}

	v, ok := m.Value(p.Result)
	if !ok {
		if len(p.Instructions) == 0 {
			return 0, ErrEmptyProgram
		}
		return 0, fmt.Errorf("ret %d: %w", p.Result, ErrUndefinedSlot)
	}
	return v, nil
}

// exec executes a single instruction. Destinations at or beyond limit are
// rejected before the store grows.
func (m *Machine) exec(ins Instruction, limit int) error {
	if _, ok := m.Value(ins.Dst); ok {
		return fmt.Errorf("%%%d: %w", ins.Dst, ErrSlotRedefined)
	}

	var v float32
	switch {
	case ins.Op == OpConstant:
		v = ins.Value
	case ins.Op.IsBinary():
		a, ok := m.Value(ins.A)
		if !ok {
			return fmt.Errorf("%%%d: %w", ins.A, ErrUndefinedSlot)
		}
		b, ok := m.Value(ins.B)
		if !ok {
			return fmt.Errorf("%%%d: %w", ins.B, ErrUndefinedSlot)
		}
		v = ins.Op.BinaryOp().Apply(a, b)
	default:
		return ErrInvalidOpcode
	}

	if int(ins.Dst) >= limit {
		return fmt.Errorf("%%%d: %w", ins.Dst, ErrSlotRange)
	}
	m.store(ins.Dst, v)
	return nil
}

// store writes v to slot, growing the store as needed.
func (m *Machine) store(slot Slot, v float32) {
	if n := int(slot) + 1; n > len(m.values) {
		if n <= cap(m.values) && n <= cap(m.defined) {
			old := len(m.defined)
			m.values, m.defined = m.values[:n], m.defined[:n]
			for i := old; i < n; i++ {
				m.defined[i] = false // stale from before Reset
			}
		} else {
			values := make([]float32, n, 2*n)
			copy(values, m.values)
			defined := make([]bool, n, 2*n)
			copy(defined, m.defined)
			m.values, m.defined = values, defined
		}
	}
	m.values[slot], m.defined[slot] = v, true
}

// Execute runs p on a new machine and returns the value of its result slot.
func Execute(p *Program) (float32, error) {
	return NewMachine().Run(p)
}
