package converter

import (
	"math/rand"

	"github.com/voltrace/voltrace/csg"
	"github.com/voltrace/voltrace/internal/d3"
	"github.com/voltrace/voltrace/internal/demangle"
	"github.com/voltrace/voltrace/internal/num"
	"github.com/voltrace/voltrace/trace"
	"gonum.org/v1/gonum/spatial/r3"
)

// convertSolid translates one csg solid into the engine's native shape,
// applying the unit scale.
func (c *Converter) convertSolid(s csg.Solid) (trace.Solid, error) {
	k := c.opts.Scale
	switch t := s.(type) {
	case *csg.Box:
		return trace.BoxSolid{Half: r3.Scale(k/2, t.Size)}, nil
	case *csg.Sphere:
		return trace.SphereSolid{
			Radius:      k * t.Radius,
			InnerRadius: k * t.InnerRadius,
		}, nil
	case *csg.Tube:
		return trace.TubeSolid{
			OuterRadius: k * t.OuterRadius,
			InnerRadius: k * t.InnerRadius,
			HalfZ:       k * t.Height / 2,
		}, nil
	case *csg.Cone:
		return trace.ConeSolid{
			BottomRadius: k * t.BottomRadius,
			TopRadius:    k * t.TopRadius,
			HalfZ:        k * t.Height / 2,
		}, nil
	case *csg.Trd:
		return trace.TrdSolid{
			BottomHalfX: k * t.BottomHalfX,
			BottomHalfY: k * t.BottomHalfY,
			TopHalfX:    k * t.TopHalfX,
			TopHalfY:    k * t.TopHalfY,
			HalfZ:       k * t.HalfZ,
		}, nil
	case *csg.Boolean:
		return c.convertBoolean(t)
	}
	return nil, newError("implementation",
		"unsupported solid type: "+demangle.TypeName(s), "")
}

func (c *Converter) convertBoolean(b *csg.Boolean) (trace.Solid, error) {
	left, err := c.convertSolid(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.convertSolid(b.Right)
	if err != nil {
		return nil, err
	}
	rt, reflected, err := c.convertTransform(b.RightTransform)
	if err != nil {
		return nil, err
	}
	if reflected {
		return nil, newError("implementation",
			"reflected right operand in boolean solid", "det(R) > 0")
	}
	var op trace.BoolOp
	switch b.Op {
	case csg.OpUnion:
		op = trace.OpUnion
	case csg.OpIntersection:
		op = trace.OpIntersection
	case csg.OpSubtraction:
		op = trace.OpSubtraction
	default:
		return nil, newError("implementation",
			"unsupported boolean operation "+b.Op.String(), "")
	}
	return trace.NewBooleanSolid(op, left, right, rt), nil
}

// orthoTol bounds the drift tolerated in rotation matrices after
// composing transforms.
var orthoTol = num.NewSoftEqualRel(1e-9)

// convertTransform decomposes a csg transform into the engine's
// orthonormal affine. Improper rotations report reflected=true and
// return the proper rotation obtained by unfolding a Z mirror; scaling
// transforms are rejected since the engine keeps scale inside solids.
func (c *Converter) convertTransform(t csg.Transform) (trace.Affine, bool, error) {
	lin := t.Linear()
	reflected := t.Determinant() < 0
	if reflected {
		// unfold R = R' * mirrorZ: flip the third column
		lin[2] = -lin[2]
		lin[5] = -lin[5]
		lin[8] = -lin[8]
	}
	if !orthonormal(lin) {
		return trace.Affine{}, false, newError("runtime",
			"placement transform is not orthonormal; scaling must be expressed in solids",
			"R * R^T == I")
	}
	tr := r3.Scale(c.opts.Scale, t.Translation())
	return trace.NewAffine(lin, tr), reflected, nil
}

// orthonormal checks R * R^T == I row by row.
func orthonormal(r [9]float64) bool {
	rows := [3][3]float64{
		{r[0], r[1], r[2]},
		{r[3], r[4], r[5]},
		{r[6], r[7], r[8]},
	}
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			dot := rows[i][0]*rows[j][0] + rows[i][1]*rows[j][1] + rows[i][2]*rows[j][2]
			want := 0.0
			if i == j {
				want = 1
			}
			if !orthoTol.Compare(dot, want) {
				return false
			}
		}
	}
	return true
}

// compareSamples is the number of points drawn per solid when
// CompareVolumes is set.
const compareSamples = 512

// compareSolids cross-checks a converted solid against its source by
// sampling the source bounds and comparing containment. Points within
// floating noise of the surface are skipped.
func (c *Converter) compareSolids(v *csg.Volume, ts trace.Solid) error {
	src := v.Solid
	bb := d3.Box(src.Bounds())
	diag := r3.Norm(bb.Size())
	band := 1e-9 * (1 + diag)
	rnd := rand.New(rand.NewSource(int64(len(v.Name)) + 7919))
	k := c.opts.Scale
	for i := 0; i < compareSamples; i++ {
		p := bb.RandomPoint(rnd)
		d := src.Evaluate(p)
		if d > -band && d < band {
			continue // too close to the surface to trust the sign
		}
		inside := d < 0
		if got := ts.Contains(r3.Scale(k, p)); got != inside {
			return newError("runtime",
				"converted solid disagrees with source for "+v.String()+
					" at sampled point", "contains(converted) == contains(source)")
		}
	}
	return nil
}
