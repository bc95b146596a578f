package csg

import (
	"math"

	"github.com/voltrace/voltrace/internal/d3"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Parameterized solid primitives. Unlike a plain distance-field kit the
// parameters stay exported so a downstream converter can translate each
// primitive into another engine's native shape.

// Box is a 3d box centered on the origin.
type Box struct {
	// Size holds the full side lengths.
	Size r3.Vec

	bb r3.Box
}

// NewBox returns a box solid with the given full side lengths.
func NewBox(size r3.Vec) *Box {
	if d3.LTEZero(size) {
		panic(errMsg("box size <= 0"))
	}
	half := r3.Scale(0.5, size)
	return &Box{
		Size: size,
		bb:   r3.Box{Min: r3.Scale(-1, half), Max: half},
	}
}

// Evaluate returns the minimum distance to the box.
func (s *Box) Evaluate(p r3.Vec) float64 {
	return sdfBox3d(p, r3.Scale(0.5, s.Size))
}

// Bounds returns the bounding box of the box.
func (s *Box) Bounds() r3.Box { return s.bb }

// Sphere is a solid sphere, optionally hollow, centered on the origin.
type Sphere struct {
	// Radius is the outer radius.
	Radius float64
	// InnerRadius leaves a concentric cavity when positive.
	InnerRadius float64

	bb r3.Box
}

// NewSphere returns a solid sphere of the given radius.
func NewSphere(radius float64) *Sphere {
	return NewSphereShell(radius, 0)
}

// NewSphereShell returns a hollow sphere with inner radius inner.
func NewSphereShell(radius, inner float64) *Sphere {
	if radius <= 0 {
		panic(errMsg("sphere radius <= 0"))
	}
	if inner < 0 || inner >= radius {
		panic(errMsg("sphere inner radius out of range"))
	}
	d := d3.Elem(radius)
	return &Sphere{
		Radius:      radius,
		InnerRadius: inner,
		bb:          r3.Box{Min: r3.Scale(-1, d), Max: d},
	}
}

// Evaluate returns the minimum distance to the sphere.
func (s *Sphere) Evaluate(p r3.Vec) float64 {
	d := r3.Norm(p) - s.Radius
	if s.InnerRadius > 0 {
		d = math.Max(d, s.InnerRadius-r3.Norm(p))
	}
	return d
}

// Bounds returns the bounding box of the sphere.
func (s *Sphere) Bounds() r3.Box { return s.bb }

// Tube is a z-aligned cylindrical shell segment centered on the origin.
type Tube struct {
	// OuterRadius and InnerRadius bound the shell; InnerRadius may be 0
	// for a full cylinder.
	OuterRadius float64
	InnerRadius float64
	// Height is the full extent along z.
	Height float64

	bb r3.Box
}

// NewTube returns a cylindrical shell solid.
func NewTube(outer, inner, height float64) *Tube {
	if outer <= 0 {
		panic(errMsg("tube outer radius <= 0"))
	}
	if inner < 0 || inner >= outer {
		panic(errMsg("tube inner radius out of range"))
	}
	if height <= 0 {
		panic(errMsg("tube height <= 0"))
	}
	d := r3.Vec{X: outer, Y: outer, Z: height / 2}
	return &Tube{
		OuterRadius: outer,
		InnerRadius: inner,
		Height:      height,
		bb:          r3.Box{Min: r3.Scale(-1, d), Max: d},
	}
}

// Evaluate returns the minimum distance to the tube. The distance is
// exact for full cylinders and sign-correct for shells.
func (s *Tube) Evaluate(p r3.Vec) float64 {
	r := math.Hypot(p.X, p.Y)
	d := sdfBox2d(r2.Vec{X: r, Y: p.Z}, r2.Vec{X: s.OuterRadius, Y: s.Height / 2})
	if s.InnerRadius > 0 {
		d = math.Max(d, s.InnerRadius-r)
	}
	return d
}

// Bounds returns the bounding box of the tube.
func (s *Tube) Bounds() r3.Box { return s.bb }

// Cone is a z-aligned truncated cone centered on the origin.
type Cone struct {
	// BottomRadius is the radius at -Height/2, TopRadius at +Height/2.
	BottomRadius float64
	TopRadius    float64
	Height       float64

	u  r2.Vec // normalized slope vector
	n  r2.Vec // outward normal to the slope
	l  float64
	bb r3.Box
}

// NewCone returns a truncated cone solid. A full cone has TopRadius 0.
func NewCone(bottom, top, height float64) *Cone {
	if height <= 0 {
		panic(errMsg("cone height <= 0"))
	}
	if bottom < 0 || top < 0 || bottom+top == 0 {
		panic(errMsg("cone radii out of range"))
	}
	s := Cone{BottomRadius: bottom, TopRadius: top, Height: height}
	s.u = r2.Unit(r2.Sub(r2.Vec{X: top, Y: height / 2}, r2.Vec{X: bottom, Y: -height / 2}))
	s.n = r2.Vec{X: s.u.Y, Y: -s.u.X}
	s.l = r2.Norm(r2.Sub(r2.Vec{X: top, Y: height / 2}, r2.Vec{X: bottom, Y: -height / 2}))
	r := math.Max(bottom, top)
	s.bb = r3.Box{Min: r3.Vec{X: -r, Y: -r, Z: -height / 2}, Max: r3.Vec{X: r, Y: r, Z: height / 2}}
	return &s
}

// Evaluate returns the minimum distance to the truncated cone.
func (s *Cone) Evaluate(p r3.Vec) float64 {
	h := s.Height / 2
	p2 := r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z}
	// above the top face
	if p2.Y >= h && p2.X <= s.TopRadius {
		return p2.Y - h
	}
	// below the bottom face
	if p2.Y <= -h && p2.X <= s.BottomRadius {
		return -p2.Y - h
	}
	v := r2.Sub(p2, r2.Vec{X: s.BottomRadius, Y: -h})
	dSlope := r2.Dot(v, s.n)
	// inside
	if dSlope < 0 && math.Abs(p2.Y) < h {
		return -math.Min(-dSlope, h-math.Abs(p2.Y))
	}
	// nearest the slope line
	t := r2.Dot(v, s.u)
	if t >= 0 && t <= s.l {
		return dSlope
	}
	// nearest the bottom edge vertex
	if t < 0 {
		return r2.Norm(v)
	}
	// nearest the top edge vertex
	return r2.Norm(r2.Sub(p2, r2.Vec{X: s.TopRadius, Y: h}))
}

// Bounds returns the bounding box of the cone.
func (s *Cone) Bounds() r3.Box { return s.bb }

// Trd is a z-aligned trapezoid with rectangular cross sections whose x
// and y half-lengths vary linearly from the bottom face to the top face.
type Trd struct {
	// Half-lengths at z = -HalfZ.
	BottomHalfX, BottomHalfY float64
	// Half-lengths at z = +HalfZ.
	TopHalfX, TopHalfY float64
	HalfZ              float64

	bb r3.Box
}

// NewTrd returns a trapezoid solid from half-lengths.
func NewTrd(bx, by, tx, ty, hz float64) *Trd {
	if hz <= 0 {
		panic(errMsg("trd half height <= 0"))
	}
	if bx < 0 || by < 0 || tx < 0 || ty < 0 {
		panic(errMsg("trd half length < 0"))
	}
	if bx+tx == 0 || by+ty == 0 {
		panic(errMsg("trd degenerate cross section"))
	}
	mx := math.Max(bx, tx)
	my := math.Max(by, ty)
	return &Trd{
		BottomHalfX: bx, BottomHalfY: by,
		TopHalfX: tx, TopHalfY: ty,
		HalfZ: hz,
		bb: r3.Box{
			Min: r3.Vec{X: -mx, Y: -my, Z: -hz},
			Max: r3.Vec{X: mx, Y: my, Z: hz},
		},
	}
}

// Evaluate returns a sign-correct distance to the trapezoid built from
// its six bounding planes.
func (s *Trd) Evaluate(p r3.Vec) float64 {
	// z slab
	d := math.Abs(p.Z) - s.HalfZ
	// slanted x planes: |x| <= cx + mx*z
	mx := (s.TopHalfX - s.BottomHalfX) / (2 * s.HalfZ)
	cx := (s.TopHalfX + s.BottomHalfX) / 2
	dx := (math.Abs(p.X) - (cx + mx*p.Z)) / math.Hypot(1, mx)
	d = math.Max(d, dx)
	// slanted y planes
	my := (s.TopHalfY - s.BottomHalfY) / (2 * s.HalfZ)
	cy := (s.TopHalfY + s.BottomHalfY) / 2
	dy := (math.Abs(p.Y) - (cy + my*p.Z)) / math.Hypot(1, my)
	return math.Max(d, dy)
}

// Bounds returns the bounding box of the trapezoid.
func (s *Trd) Bounds() r3.Box { return s.bb }

// sdfBox3d is the exact distance to a box with half sides s.
func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	if d.X > 0 && d.Y > 0 && d.Z > 0 {
		return r3.Norm(d)
	}
	if d.X > 0 && d.Y > 0 {
		return math.Hypot(d.X, d.Y)
	}
	if d.X > 0 && d.Z > 0 {
		return math.Hypot(d.X, d.Z)
	}
	if d.Y > 0 && d.Z > 0 {
		return math.Hypot(d.Y, d.Z)
	}
	if d.X > 0 {
		return d.X
	}
	if d.Y > 0 {
		return d.Y
	}
	if d.Z > 0 {
		return d.Z
	}
	return d3.Max(d)
}

// sdfBox2d is the exact distance to a 2d box with half sides s.
func sdfBox2d(p, s r2.Vec) float64 {
	p = r2.Vec{X: math.Abs(p.X), Y: math.Abs(p.Y)}
	d := r2.Sub(p, s)
	if d.X > 0 && d.Y > 0 {
		return r2.Norm(d)
	}
	if d.X > 0 {
		return d.X
	}
	if d.Y > 0 {
		return d.Y
	}
	return math.Max(d.X, d.Y)
}
