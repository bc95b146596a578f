package csg

import (
	"math"

	"github.com/voltrace/voltrace/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// BoolOp enumerates the supported boolean combinations.
type BoolOp int

const (
	OpUnion BoolOp = iota
	OpIntersection
	OpSubtraction
)

func (op BoolOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpIntersection:
		return "intersection"
	case OpSubtraction:
		return "subtraction"
	}
	return "unknown"
}

// Boolean combines two solids. The right operand is positioned by
// RightTransform relative to the left operand's frame.
type Boolean struct {
	Op             BoolOp
	Left, Right    Solid
	RightTransform Transform

	right Solid // right operand with transform applied
	bb    r3.Box
}

// NewUnion returns the union of left and right, with right placed by t.
func NewUnion(left, right Solid, t Transform) *Boolean {
	return newBoolean(OpUnion, left, right, t)
}

// NewIntersection returns the intersection of left and right, with
// right placed by t.
func NewIntersection(left, right Solid, t Transform) *Boolean {
	return newBoolean(OpIntersection, left, right, t)
}

// NewSubtraction returns left minus right, with right placed by t.
func NewSubtraction(left, right Solid, t Transform) *Boolean {
	return newBoolean(OpSubtraction, left, right, t)
}

func newBoolean(op BoolOp, left, right Solid, t Transform) *Boolean {
	if left == nil || right == nil {
		panic(errMsg("nil solid argument to boolean"))
	}
	s := Boolean{
		Op:             op,
		Left:           left,
		Right:          right,
		RightTransform: t,
		right:          NewTransformed(right, t),
	}
	lb := d3.Box(left.Bounds())
	switch op {
	case OpUnion:
		s.bb = r3.Box(lb.Extend(d3.Box(s.right.Bounds())))
	case OpIntersection:
		// intersection is contained in both; keep the smaller box
		rb := s.right.Bounds()
		s.bb = r3.Box{
			Min: d3.MaxElem(lb.Min, rb.Min),
			Max: d3.MinElem(lb.Max, rb.Max),
		}
	case OpSubtraction:
		// subtraction cannot grow the left operand
		s.bb = r3.Box(lb)
	}
	return &s
}

// Evaluate returns the minimum distance to the boolean solid.
func (s *Boolean) Evaluate(p r3.Vec) float64 {
	a := s.Left.Evaluate(p)
	b := s.right.Evaluate(p)
	switch s.Op {
	case OpUnion:
		return math.Min(a, b)
	case OpIntersection:
		return math.Max(a, b)
	default:
		return math.Max(a, -b)
	}
}

// Bounds returns the bounding box of the boolean solid.
func (s *Boolean) Bounds() r3.Box { return s.bb }
