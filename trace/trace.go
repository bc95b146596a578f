// Package trace is a small ray-trace oriented geometry engine: volumes
// identified by integer handles, placements positioned by orthonormal
// affine transforms, and a bounding-volume navigator for point
// location. It is the destination side of the voltrace conversion.
//
// The engine works on containment predicates rather than signed
// distance: shapes answer Contains, report bounds and estimate their
// volumetric capacity. Reflections and scaling are expressed by
// wrapping shapes in ScaledSolid so placement transforms stay
// orthonormal.
package trace

import "gonum.org/v1/gonum/spatial/r3"

// Solid is a shape in the engine's native representation.
type Solid interface {
	// Contains reports whether p lies inside the solid (surface
	// points count as inside).
	Contains(p r3.Vec) bool
	// Bounds returns an axis-aligned box containing the solid.
	Bounds() r3.Box
	// Capacity returns the volumetric capacity. Primitive shapes are
	// analytic; composite shapes may estimate.
	Capacity() float64
}
