// Package converter translates a csg volume graph into a trace
// placement world: it walks the tree depth first, converts each solid
// and transform, deduplicates shared logical volumes, duplicates
// reflected ones, and registers everything with a trace.GeoManager.
package converter

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/voltrace/voltrace/csg"
	"github.com/voltrace/voltrace/trace"
	"gonum.org/v1/gonum/spatial/r3"
)

// Options configure a Converter. The zero value converts quietly at
// unit scale into the global manager.
type Options struct {
	// Verbose enables per-volume conversion logging.
	Verbose bool
	// CompareVolumes samples every converted solid against its source
	// and fails the conversion on disagreement.
	CompareVolumes bool
	// Scale multiplies all lengths; zero means 1 (source units are
	// kept as-is, conventionally millimeters).
	Scale float64
	// Logger receives conversion logs. Nil discards them.
	Logger logrus.FieldLogger
	// Manager is the destination registry. Nil uses trace.Global().
	Manager *trace.GeoManager
}

// Result is the outcome of a conversion.
type Result struct {
	// World is the converted top placement.
	World *trace.Placement
	// Volumes maps each source logical volume to its engine ID.
	Volumes map[*csg.Volume]trace.VolumeID
	// Manager is the registry holding the converted volumes.
	Manager *trace.GeoManager
}

// Converter performs csg to trace conversion. A Converter is single
// use: construct, call Convert once, read the result.
type Converter struct {
	opts Options
	log  logrus.FieldLogger
	mgr  *trace.GeoManager

	// memoized logical volume conversions so shared volumes convert
	// exactly once no matter how many placements reference them
	volumes map[*csg.Volume]*trace.Volume
	ids     map[*csg.Volume]trace.VolumeID
}

// New returns a Converter with the given options.
func New(opts Options) *Converter {
	if opts.Scale == 0 {
		opts.Scale = 1
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	mgr := opts.Manager
	if mgr == nil {
		mgr = trace.Global()
	}
	return &Converter{
		opts:    opts,
		log:     log,
		mgr:     mgr,
		volumes: make(map[*csg.Volume]*trace.Volume),
		ids:     make(map[*csg.Volume]trace.VolumeID),
	}
}

// Convert translates the world placement and closes the destination
// manager around the converted world.
func (c *Converter) Convert(world *csg.Placement) (Result, error) {
	if world == nil || world.Volume == nil {
		return Result{}, newError("runtime", "null world placement", "world != nil")
	}
	if c.mgr.Closed() {
		return Result{}, newError("runtime",
			"geometry manager already holds a closed world; clear it before converting",
			"!manager.Closed()")
	}
	if c.opts.Verbose {
		c.log.Infof("converting world %q", world.Name)
	}

	wv, err := c.convertVolume(world.Volume)
	if err != nil {
		return Result{}, err
	}
	aff, reflected, err := c.convertTransform(world.Transform)
	if err != nil {
		return Result{}, fmt.Errorf("world placement %q: %w", world.Name, err)
	}
	if reflected {
		return Result{}, newError("runtime",
			"world placement carries a reflection", "det(world rotation) > 0")
	}

	res := Result{
		World:   trace.NewPlacement(world.Name, wv, aff),
		Volumes: c.ids,
		Manager: c.mgr,
	}
	c.mgr.SetWorldAndClose(res.World)
	if c.opts.Verbose {
		c.log.Infof("converted %d volumes", c.mgr.NumVolumes())
	}
	return res, nil
}

// convertVolume translates a logical volume, memoized.
func (c *Converter) convertVolume(v *csg.Volume) (*trace.Volume, error) {
	if tv, ok := c.volumes[v]; ok {
		return tv, nil
	}

	var solid trace.Solid
	var err error
	if con := v.Constituent; con != nil {
		// reflected copy: convert the constituent's solid and mirror it
		solid, err = c.convertSolid(con.Solid)
		if err == nil {
			solid = trace.NewScaledSolid(solid, mirrorScale)
		}
	} else {
		solid, err = c.convertSolid(v.Solid)
	}
	if err != nil {
		return nil, fmt.Errorf("volume %s: %w", v, err)
	}
	if c.opts.CompareVolumes {
		if err := c.compareSolids(v, solid); err != nil {
			return nil, err
		}
	}

	tv := trace.NewVolume(c.uniqueName(v), solid)
	id := c.mgr.RegisterVolume(tv)
	c.volumes[v] = tv
	c.ids[v] = id
	if c.opts.Verbose {
		c.log.WithField("id", id).Infof("converted volume %s", v)
	}

	for _, d := range v.Daughters {
		if err := c.convertDaughter(tv, d); err != nil {
			return nil, err
		}
	}
	return tv, nil
}

// convertDaughter translates one daughter placement into mother.
func (c *Converter) convertDaughter(mother *trace.Volume, d *csg.Placement) error {
	aff, reflected, err := c.convertTransform(d.Transform)
	if err != nil {
		return fmt.Errorf("placement %q in %q: %w", d.Name, mother.Label(), err)
	}
	vol := d.Volume
	if reflected {
		// an improper rotation is replaced by a proper one placing the
		// volume's reflected duplicate
		vol = csg.Reflect(vol)
	}
	tv, err := c.convertVolume(vol)
	if err != nil {
		return err
	}
	mother.PlaceDaughter(d.Name, tv, aff)
	return nil
}

// uniqueName generates the engine name for a volume: the source name
// plus the volume address, so identically named volumes stay
// distinguishable. Reflected copies reuse the constituent's generated
// name plus the reflection extension.
func (c *Converter) uniqueName(v *csg.Volume) string {
	if con := v.Constituent; con != nil {
		return c.uniqueName(con) + csg.ReflExt
	}
	return fmt.Sprintf("%s%p", v.Name, v)
}

// mirrorScale expresses a Z reflection as solid scale factors.
var mirrorScale = r3.Vec{X: 1, Y: 1, Z: -1}
