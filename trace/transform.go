package trace

import (
	"github.com/voltrace/voltrace/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Affine positions a placement inside its mother volume: an orthonormal
// rotation followed by a translation. Scale and reflection never appear
// here; they are folded into ScaledSolid by the converter.
type Affine struct {
	// rotation, row major
	r [9]float64
	t r3.Vec
}

// IdentityAffine returns the identity placement transform.
func IdentityAffine() Affine {
	return Affine{r: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}}
}

// NewAffine builds a transform from a row-major rotation matrix and a
// translation. The rotation is trusted to be orthonormal; the converter
// validates before handing transforms to the engine.
func NewAffine(rot [9]float64, trans r3.Vec) Affine {
	return Affine{r: rot, t: trans}
}

// Rotation returns the row-major rotation matrix.
func (a Affine) Rotation() [9]float64 { return a.r }

// Translation returns the translation vector.
func (a Affine) Translation() r3.Vec { return a.t }

// Apply maps a point from the placement's local frame to the mother
// frame.
func (a Affine) Apply(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: a.r[0]*p.X + a.r[1]*p.Y + a.r[2]*p.Z + a.t.X,
		Y: a.r[3]*p.X + a.r[4]*p.Y + a.r[5]*p.Z + a.t.Y,
		Z: a.r[6]*p.X + a.r[7]*p.Y + a.r[8]*p.Z + a.t.Z,
	}
}

// ApplyInverse maps a point from the mother frame into the placement's
// local frame. Orthonormality makes the inverse a transpose.
func (a Affine) ApplyInverse(p r3.Vec) r3.Vec {
	q := r3.Sub(p, a.t)
	return r3.Vec{
		X: a.r[0]*q.X + a.r[3]*q.Y + a.r[6]*q.Z,
		Y: a.r[1]*q.X + a.r[4]*q.Y + a.r[7]*q.Z,
		Z: a.r[2]*q.X + a.r[5]*q.Y + a.r[8]*q.Z,
	}
}

// ApplyBox returns an axis-aligned box in the mother frame containing
// the transformed box.
func (a Affine) ApplyBox(b r3.Box) r3.Box {
	verts := d3.Box(b).Vertices()
	out := d3.Box{Min: a.Apply(verts[0]), Max: a.Apply(verts[0])}
	for _, v := range verts[1:] {
		out = out.Include(a.Apply(v))
	}
	return r3.Box(out)
}
