// Package csg models a hierarchical constructive-solid-geometry volume
// graph: parameterized solids, boolean combinations, affine placements
// and reflected-volume duplication. It is the source side of the
// voltrace conversion; package trace is the destination engine.
package csg

import (
	"fmt"
	"runtime"

	"gonum.org/v1/gonum/spatial/r3"
)

// epsilon guards near-singular transform inversion.
const epsilon = 1e-12

// Solid is the interface to a 3d solid body described by a signed
// distance function.
type Solid interface {
	// Evaluate takes a point in 3D space as input and returns the
	// minimum distance of the solid surface to the point. The distance
	// is negative if the point is contained within the solid.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the solid.
	Bounds() r3.Box
}

// errMsg returns an error with a message, function name and line number.
func errMsg(msg string) error {
	pc, _, line, ok := runtime.Caller(1)
	if !ok {
		return fmt.Errorf("?: %s", msg)
	}
	fn := runtime.FuncForPC(pc)
	return fmt.Errorf("%s line %d: %s", fn.Name(), line, msg)
}
