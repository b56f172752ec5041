package lazy

// Scalar is a handle to a node in an expression graph. Copying a Scalar
// copies the reference, not the node, so combining the same Scalar into
// several expressions shares the underlying node between them.
//
// The zero value is not a valid Scalar.
type Scalar struct {
	expr Expr
}

// NewScalar returns a handle to a new constant node.
func NewScalar(value float32) Scalar {
	return Scalar{expr: NewConstantExpr(value)}
}

// ScalarOf returns a handle to an existing expression.
func ScalarOf(expr Expr) Scalar {
	assert(expr != nil, "lazy.ScalarOf: nil expression")
	return Scalar{expr: expr}
}

// Expr returns the node referenced by s.
func (s Scalar) Expr() Expr { return s.expr }

// Add returns a handle to the sum of s and other.
func (s Scalar) Add(other Scalar) Scalar { return s.binary(ADD, other) }

// Sub returns a handle to the difference of s and other.
func (s Scalar) Sub(other Scalar) Scalar { return s.binary(SUB, other) }

// Mul returns a handle to the product of s and other.
func (s Scalar) Mul(other Scalar) Scalar { return s.binary(MUL, other) }

// Div returns a handle to the quotient of s and other.
func (s Scalar) Div(other Scalar) Scalar { return s.binary(DIV, other) }

func (s Scalar) binary(op BinaryOp, other Scalar) Scalar {
	assert(s.expr != nil && other.expr != nil, "lazy.Scalar: %s on uninitialized scalar", op)
	return Scalar{expr: NewBinaryExpr(op, s.expr, other.expr)}
}

// Evaluate computes the value of the expression.
func (s Scalar) Evaluate() float32 {
	return Evaluate(s.expr)
}

// Lower compiles the expression into a program using a fresh lowering scope.
func (s Scalar) Lower() *Program {
	return Lower(s.expr)
}

// String returns the fully parenthesized infix representation.
func (s Scalar) String() string {
	if s.expr == nil {
		return "<nil>"
	}
	return s.expr.String()
}
