// Package sdfexport bridges converted geometry to the sdfx toolchain
// so its meshers and file writers can consume conversion output.
package sdfexport

import (
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	"github.com/voltrace/voltrace/csg"
	"github.com/voltrace/voltrace/trace"
	"gonum.org/v1/gonum/spatial/r3"
)

// NewSDF3 exposes a distance-field solid as an sdfx SDF3.
func NewSDF3(s csg.Solid) sdf.SDF3 {
	return sdfAdapter{s}
}

type sdfAdapter struct {
	s csg.Solid
}

func (a sdfAdapter) Evaluate(p sdf.V3) float64 {
	return a.s.Evaluate(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
}

func (a sdfAdapter) BoundingBox() sdf.Box3 {
	return toBox3(a.s.Bounds())
}

// NewOccupancySDF3 exposes a containment solid as an sdfx SDF3. The
// engine keeps no distances, so the field is a step function: -h/2
// inside, +h/2 outside. Meshing it resolves the surface to within h,
// so pick h around the mesh cell size.
func NewOccupancySDF3(s trace.Solid, h float64) sdf.SDF3 {
	return occupancy{s: s, h: h}
}

type occupancy struct {
	s trace.Solid
	h float64
}

func (o occupancy) Evaluate(p sdf.V3) float64 {
	if o.s.Contains(r3.Vec{X: p.X, Y: p.Y, Z: p.Z}) {
		return -o.h / 2
	}
	return o.h / 2
}

func (o occupancy) BoundingBox() sdf.Box3 {
	return toBox3(o.s.Bounds())
}

// NewWorldSDF3 exposes a placement world as an sdfx SDF3 in the world
// frame, resolving the surface to within h.
func NewWorldSDF3(world *trace.Placement, h float64) sdf.SDF3 {
	return worldField{w: world, h: h}
}

type worldField struct {
	w *trace.Placement
	h float64
}

func (f worldField) Evaluate(p sdf.V3) float64 {
	local := f.w.Transform().ApplyInverse(r3.Vec{X: p.X, Y: p.Y, Z: p.Z})
	if f.w.Volume().Solid().Contains(local) {
		return -f.h / 2
	}
	return f.h / 2
}

func (f worldField) BoundingBox() sdf.Box3 {
	return toBox3(f.w.Bounds())
}

// ToSTL meshes s with marching cubes over an octree and writes the
// triangles to path.
func ToSTL(s sdf.SDF3, meshCells int, path string) {
	render.ToSTL(s, meshCells, path, &render.MarchingCubesOctree{})
}

func toBox3(b r3.Box) sdf.Box3 {
	return sdf.Box3{
		Min: sdf.V3{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		Max: sdf.V3{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}
}
