package csg

import (
	"math"

	"github.com/voltrace/voltrace/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a 3d affine transformation stored as the upper 3x4 rows
// of a 4x4 matrix; the implied last row is [0 0 0 1]. The zero value is
// not the identity: use Identity, or compose with the constructors.
type Transform struct {
	x00, x01, x02, x03 float64
	x10, x11, x12, x13 float64
	x20, x21, x22, x23 float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
}

// Translate3D returns a transform offsetting points by v.
func Translate3D(v r3.Vec) Transform {
	return Transform{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
	}
}

// Scale3D returns a transform scaling each axis independently.
// Negative factors produce reflections.
func Scale3D(v r3.Vec) Transform {
	return Transform{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
	}
}

// MirrorZ returns the reflection through the XY plane.
func MirrorZ() Transform {
	return Scale3D(r3.Vec{X: 1, Y: 1, Z: -1})
}

// RotateX returns an X axis rotation by a radians.
func RotateX(a float64) Transform {
	c, s := math.Cos(a), math.Sin(a)
	return Transform{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
	}
}

// RotateY returns a Y axis rotation by a radians.
func RotateY(a float64) Transform {
	c, s := math.Cos(a), math.Sin(a)
	return Transform{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
	}
}

// RotateZ returns a Z axis rotation by a radians.
func RotateZ(a float64) Transform {
	c, s := math.Cos(a), math.Sin(a)
	return Transform{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
	}
}

// Mul returns the composition a*b: b applied first, then a.
func (a Transform) Mul(b Transform) Transform {
	return Transform{
		a.x00*b.x00 + a.x01*b.x10 + a.x02*b.x20,
		a.x00*b.x01 + a.x01*b.x11 + a.x02*b.x21,
		a.x00*b.x02 + a.x01*b.x12 + a.x02*b.x22,
		a.x00*b.x03 + a.x01*b.x13 + a.x02*b.x23 + a.x03,

		a.x10*b.x00 + a.x11*b.x10 + a.x12*b.x20,
		a.x10*b.x01 + a.x11*b.x11 + a.x12*b.x21,
		a.x10*b.x02 + a.x11*b.x12 + a.x12*b.x22,
		a.x10*b.x03 + a.x11*b.x13 + a.x12*b.x23 + a.x13,

		a.x20*b.x00 + a.x21*b.x10 + a.x22*b.x20,
		a.x20*b.x01 + a.x21*b.x11 + a.x22*b.x21,
		a.x20*b.x02 + a.x21*b.x12 + a.x22*b.x22,
		a.x20*b.x03 + a.x21*b.x13 + a.x22*b.x23 + a.x23,
	}
}

// MulPosition applies the transform to a point.
func (a Transform) MulPosition(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.x00*p.X + a.x01*p.Y + a.x02*p.Z + a.x03,
		Y: a.x10*p.X + a.x11*p.Y + a.x12*p.Z + a.x13,
		Z: a.x20*p.X + a.x21*p.Y + a.x22*p.Z + a.x23,
	}
}

// MulBox returns an axis-aligned box containing the transformed box.
func (a Transform) MulBox(b r3.Box) r3.Box {
	verts := d3.Box(b).Vertices()
	out := d3.Box{Min: a.MulPosition(verts[0]), Max: a.MulPosition(verts[0])}
	for _, v := range verts[1:] {
		out = out.Include(a.MulPosition(v))
	}
	return r3.Box(out)
}

// Determinant returns the determinant of the linear (rotation/scale)
// part of the transform. Negative determinants indicate a reflection.
func (a Transform) Determinant() float64 {
	return a.x00*(a.x11*a.x22-a.x12*a.x21) -
		a.x01*(a.x10*a.x22-a.x12*a.x20) +
		a.x02*(a.x10*a.x21-a.x11*a.x20)
}

// Inverse returns the inverse transform. It panics if the transform is
// singular.
func (a Transform) Inverse() Transform {
	det := a.Determinant()
	if math.Abs(det) < epsilon {
		panic(errMsg("singular transform"))
	}
	inv := 1 / det
	// inverse of the 3x3 linear part by adjugate
	r00 := (a.x11*a.x22 - a.x12*a.x21) * inv
	r01 := (a.x02*a.x21 - a.x01*a.x22) * inv
	r02 := (a.x01*a.x12 - a.x02*a.x11) * inv
	r10 := (a.x12*a.x20 - a.x10*a.x22) * inv
	r11 := (a.x00*a.x22 - a.x02*a.x20) * inv
	r12 := (a.x02*a.x10 - a.x00*a.x12) * inv
	r20 := (a.x10*a.x21 - a.x11*a.x20) * inv
	r21 := (a.x01*a.x20 - a.x00*a.x21) * inv
	r22 := (a.x00*a.x11 - a.x01*a.x10) * inv
	// translation: -R^-1 * t
	return Transform{
		r00, r01, r02, -(r00*a.x03 + r01*a.x13 + r02*a.x23),
		r10, r11, r12, -(r10*a.x03 + r11*a.x13 + r12*a.x23),
		r20, r21, r22, -(r20*a.x03 + r21*a.x13 + r22*a.x23),
	}
}

// Translation returns the translation column of the transform.
func (a Transform) Translation() r3.Vec {
	return r3.Vec{X: a.x03, Y: a.x13, Z: a.x23}
}

// Linear returns the 3x3 linear part in row-major order.
func (a Transform) Linear() [9]float64 {
	return [9]float64{
		a.x00, a.x01, a.x02,
		a.x10, a.x11, a.x12,
		a.x20, a.x21, a.x22,
	}
}

// transformed wraps a solid with a transform for boolean right operands.
type transformed struct {
	solid   Solid
	inverse Transform
	bb      r3.Box
}

// NewTransformed returns s positioned by t.
func NewTransformed(s Solid, t Transform) Solid {
	if s == nil {
		panic(errMsg("nil solid argument"))
	}
	return &transformed{
		solid:   s,
		inverse: t.Inverse(),
		bb:      t.MulBox(s.Bounds()),
	}
}

// Evaluate returns the minimum distance to the transformed solid.
// Distance is not preserved under anisotropic scaling.
func (s *transformed) Evaluate(p r3.Vec) float64 {
	return s.solid.Evaluate(s.inverse.MulPosition(p))
}

// Bounds returns the bounding box of the transformed solid.
func (s *transformed) Bounds() r3.Box {
	return s.bb
}
