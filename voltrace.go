// Package voltrace converts a csg solid-modeling volume graph into a
// trace ray-tracing placement world. The heavy lifting lives in the
// converter package; this package is the stable entry point that
// translates options, runs the conversion, and remaps the result into
// a name to volume identifier table.
package voltrace

import (
	"github.com/voltrace/voltrace/converter"
	"github.com/voltrace/voltrace/csg"
	"github.com/voltrace/voltrace/trace"
)

// Options control a conversion. The zero value converts quietly at
// unit scale.
type Options struct {
	// Verbose enables conversion progress logging.
	Verbose bool
	// CompareVolumes cross-checks every converted solid against its
	// source by point sampling.
	CompareVolumes bool
	// Scale multiplies all lengths; zero means 1.
	Scale float64
}

// Converted is the outcome of a conversion.
type Converted struct {
	// World is the converted top placement.
	World *trace.Placement
	// Volumes maps source volume names to engine volume indices.
	// Volumes sharing a name keep the last converted entry (the
	// highest index); reflected duplicates appear under the name with
	// the "_refl" extension.
	Volumes map[string]uint
}

// RuntimeError is the error type reported for conversion failures.
type RuntimeError = converter.RuntimeError

// Convert translates the world placement with default options.
func Convert(world *csg.Placement) (Converted, error) {
	return ConvertWithOptions(world, Options{})
}

// ConvertWithOptions translates the world placement. The converted
// volumes are registered with the global trace.GeoManager, which holds
// one closed world at a time: converting again without clearing the
// manager first (trace.ResetGlobal, or Clear on the manager) returns a
// RuntimeError.
func ConvertWithOptions(world *csg.Placement, opts Options) (Converted, error) {
	c := converter.New(converter.Options{
		Verbose:        opts.Verbose,
		CompareVolumes: opts.CompareVolumes,
		Scale:          opts.Scale,
	})
	res, err := c.Convert(world)
	if err != nil {
		return Converted{}, err
	}
	vols := make(map[string]uint, len(res.Volumes))
	for v, id := range res.Volumes {
		idx := id.UncheckedIndex()
		if cur, ok := vols[v.Name]; !ok || idx > cur {
			vols[v.Name] = idx
		}
	}
	return Converted{World: res.World, Volumes: vols}, nil
}
