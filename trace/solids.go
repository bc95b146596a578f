package trace

import (
	"math"
	"math/rand"

	"github.com/voltrace/voltrace/internal/d3"
	"github.com/voltrace/voltrace/internal/num"
	"gonum.org/v1/gonum/spatial/r3"
)

const pi = math.Pi

// BoxSolid is an axis-aligned box centered on the origin.
type BoxSolid struct {
	Half r3.Vec // half side lengths
}

// Contains reports whether p lies inside the box.
func (s BoxSolid) Contains(p r3.Vec) bool {
	p = d3.AbsElem(p)
	return p.X <= s.Half.X && p.Y <= s.Half.Y && p.Z <= s.Half.Z
}

// Bounds returns the box extents.
func (s BoxSolid) Bounds() r3.Box {
	return r3.Box{Min: r3.Scale(-1, s.Half), Max: s.Half}
}

// Capacity returns the box volume.
func (s BoxSolid) Capacity() float64 {
	return 8 * s.Half.X * s.Half.Y * s.Half.Z
}

// SphereSolid is a sphere, optionally with a concentric cavity.
type SphereSolid struct {
	Radius      float64
	InnerRadius float64
}

// Contains reports whether p lies inside the spherical shell.
func (s SphereSolid) Contains(p r3.Vec) bool {
	d2 := r3.Norm2(p)
	return d2 <= s.Radius*s.Radius && d2 >= s.InnerRadius*s.InnerRadius
}

// Bounds returns the sphere extents.
func (s SphereSolid) Bounds() r3.Box {
	d := d3.Elem(s.Radius)
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}

// Capacity returns the shell volume.
func (s SphereSolid) Capacity() float64 {
	return 4.0 / 3.0 * pi * (num.Ipow(s.Radius, 3) - num.Ipow(s.InnerRadius, 3))
}

// TubeSolid is a z-aligned cylindrical shell segment.
type TubeSolid struct {
	OuterRadius float64
	InnerRadius float64
	HalfZ       float64
}

// Contains reports whether p lies inside the tube.
func (s TubeSolid) Contains(p r3.Vec) bool {
	if math.Abs(p.Z) > s.HalfZ {
		return false
	}
	r2 := p.X*p.X + p.Y*p.Y
	return r2 <= s.OuterRadius*s.OuterRadius && r2 >= s.InnerRadius*s.InnerRadius
}

// Bounds returns the tube extents.
func (s TubeSolid) Bounds() r3.Box {
	d := r3.Vec{X: s.OuterRadius, Y: s.OuterRadius, Z: s.HalfZ}
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}

// Capacity returns the shell volume.
func (s TubeSolid) Capacity() float64 {
	return pi * (num.Ipow(s.OuterRadius, 2) - num.Ipow(s.InnerRadius, 2)) * 2 * s.HalfZ
}

// ConeSolid is a z-aligned truncated cone.
type ConeSolid struct {
	BottomRadius float64 // radius at -HalfZ
	TopRadius    float64 // radius at +HalfZ
	HalfZ        float64
}

// Contains reports whether p lies inside the cone.
func (s ConeSolid) Contains(p r3.Vec) bool {
	if math.Abs(p.Z) > s.HalfZ {
		return false
	}
	// interpolated radius at p.Z
	t := (p.Z + s.HalfZ) / (2 * s.HalfZ)
	r := s.BottomRadius + t*(s.TopRadius-s.BottomRadius)
	return p.X*p.X+p.Y*p.Y <= r*r
}

// Bounds returns the cone extents.
func (s ConeSolid) Bounds() r3.Box {
	r := math.Max(s.BottomRadius, s.TopRadius)
	d := r3.Vec{X: r, Y: r, Z: s.HalfZ}
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}

// Capacity returns the frustum volume.
func (s ConeSolid) Capacity() float64 {
	rb, rt := s.BottomRadius, s.TopRadius
	return pi * 2 * s.HalfZ / 3 * (rb*rb + rb*rt + rt*rt)
}

// TrdSolid is a z-aligned trapezoid with linearly varying rectangular
// cross section.
type TrdSolid struct {
	BottomHalfX, BottomHalfY float64
	TopHalfX, TopHalfY       float64
	HalfZ                    float64
}

// Contains reports whether p lies inside the trapezoid.
func (s TrdSolid) Contains(p r3.Vec) bool {
	if math.Abs(p.Z) > s.HalfZ {
		return false
	}
	t := (p.Z + s.HalfZ) / (2 * s.HalfZ)
	hx := s.BottomHalfX + t*(s.TopHalfX-s.BottomHalfX)
	hy := s.BottomHalfY + t*(s.TopHalfY-s.BottomHalfY)
	return math.Abs(p.X) <= hx && math.Abs(p.Y) <= hy
}

// Bounds returns the trapezoid extents.
func (s TrdSolid) Bounds() r3.Box {
	d := r3.Vec{
		X: math.Max(s.BottomHalfX, s.TopHalfX),
		Y: math.Max(s.BottomHalfY, s.TopHalfY),
		Z: s.HalfZ,
	}
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}

// Capacity returns the exact trapezoid volume.
func (s TrdSolid) Capacity() float64 {
	dx := s.TopHalfX - s.BottomHalfX
	dy := s.TopHalfY - s.BottomHalfY
	return 2 * s.HalfZ * ((s.BottomHalfX+s.TopHalfX)*(s.BottomHalfY+s.TopHalfY) + dx*dy/3)
}

// BoolOp enumerates boolean combination modes.
type BoolOp int

const (
	OpUnion BoolOp = iota
	OpIntersection
	OpSubtraction
)

// capacitySamples controls the Monte Carlo capacity estimate of
// composite solids. At this count the relative error for shapes filling
// a reasonable fraction of their bounds stays under a percent.
const capacitySamples = 1 << 17

// capacitySeed fixes the sample sequence so capacity estimates are
// reproducible run to run.
const capacitySeed = 0x76747261

// BooleanSolid combines two solids. The right operand lives in a frame
// positioned by RightTransform.
type BooleanSolid struct {
	Op             BoolOp
	Left, Right    Solid
	RightTransform Affine

	bb       r3.Box
	capacity float64
	capOnce  bool
}

// NewBooleanSolid builds a boolean combination and precomputes bounds.
func NewBooleanSolid(op BoolOp, left, right Solid, rt Affine) *BooleanSolid {
	s := &BooleanSolid{Op: op, Left: left, Right: right, RightTransform: rt}
	lb := d3.Box(left.Bounds())
	switch op {
	case OpUnion:
		s.bb = r3.Box(lb.Extend(d3.Box(rt.ApplyBox(right.Bounds()))))
	case OpIntersection:
		rb := rt.ApplyBox(right.Bounds())
		s.bb = r3.Box{
			Min: d3.MaxElem(lb.Min, rb.Min),
			Max: d3.MinElem(lb.Max, rb.Max),
		}
	default:
		s.bb = r3.Box(lb)
	}
	return s
}

// Contains reports whether p lies inside the combination.
func (s *BooleanSolid) Contains(p r3.Vec) bool {
	a := s.Left.Contains(p)
	b := s.Right.Contains(s.RightTransform.ApplyInverse(p))
	switch s.Op {
	case OpUnion:
		return a || b
	case OpIntersection:
		return a && b
	default:
		return a && !b
	}
}

// Bounds returns the combination extents.
func (s *BooleanSolid) Bounds() r3.Box { return s.bb }

// Capacity estimates the combination volume by sampling the bounding
// box with a fixed-seed generator. The estimate is computed once and
// cached.
func (s *BooleanSolid) Capacity() float64 {
	if !s.capOnce {
		bb := d3.Box(s.bb)
		rnd := rand.New(rand.NewSource(capacitySeed))
		hit := 0
		for i := 0; i < capacitySamples; i++ {
			if s.Contains(bb.RandomPoint(rnd)) {
				hit++
			}
		}
		s.capacity = bb.Volume() * float64(hit) / capacitySamples
		s.capOnce = true
	}
	return s.capacity
}

// ScaledSolid wraps a solid with per-axis scale factors. Negative
// factors express reflections; this is how the converter keeps
// placement transforms orthonormal.
type ScaledSolid struct {
	Solid Solid
	Scale r3.Vec
}

// NewScaledSolid wraps solid with the given per-axis scale. It panics
// if any factor is zero.
func NewScaledSolid(solid Solid, scale r3.Vec) *ScaledSolid {
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		panic("trace: zero scale factor")
	}
	return &ScaledSolid{Solid: solid, Scale: scale}
}

// Contains reports whether p lies inside the scaled solid.
func (s *ScaledSolid) Contains(p r3.Vec) bool {
	return s.Solid.Contains(r3.Vec{
		X: p.X / s.Scale.X,
		Y: p.Y / s.Scale.Y,
		Z: p.Z / s.Scale.Z,
	})
}

// Bounds returns the scaled extents.
func (s *ScaledSolid) Bounds() r3.Box {
	bb := s.Solid.Bounds()
	a := d3.MulElem(bb.Min, s.Scale)
	b := d3.MulElem(bb.Max, s.Scale)
	return r3.Box{Min: d3.MinElem(a, b), Max: d3.MaxElem(a, b)}
}

// Capacity scales the wrapped capacity by the volume factor.
func (s *ScaledSolid) Capacity() float64 {
	return s.Solid.Capacity() * math.Abs(s.Scale.X*s.Scale.Y*s.Scale.Z)
}
