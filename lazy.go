// Package lazy builds scalar arithmetic expressions as a graph of shared
// operation nodes. An expression can be evaluated directly or lowered to a
// flat list of three-address instructions in which every distinct node is
// compiled exactly once.
package lazy

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyProgram  = errors.New("lazy: empty program")
	ErrUndefinedSlot = errors.New("lazy: undefined slot")
	ErrSlotRedefined = errors.New("lazy: slot redefined")
	ErrInvalidOpcode = errors.New("lazy: invalid opcode")
	ErrSlotRange     = errors.New("lazy: slot out of range")
)

// assert panics if condition is false.
func assert(condition bool, format string, args ...interface{}) {
	if !condition {
		panic(fmt.Sprintf("assert: "+format, args...))
	}
}
