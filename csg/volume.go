package csg

import (
	"fmt"
	"sync"
	"sync/atomic"

	"gonum.org/v1/gonum/spatial/r3"
)

// ReflExt is the name extension given to reflected volume copies.
const ReflExt = "_refl"

var instanceCounter atomic.Int64

// Volume is a logical volume: a named solid holding zero or more
// daughter placements. The same Volume may be placed many times.
type Volume struct {
	Name      string
	Solid     Solid
	Daughters []*Placement

	// Constituent points at the original volume when this volume is a
	// reflected copy, and is nil otherwise.
	Constituent *Volume

	id int64
}

// NewVolume returns a logical volume wrapping solid.
func NewVolume(name string, solid Solid) *Volume {
	if solid == nil {
		panic(errMsg("nil solid for volume " + name))
	}
	return &Volume{Name: name, Solid: solid, id: instanceCounter.Add(1)}
}

// InstanceID returns the creation-ordered unique instance identifier.
func (v *Volume) InstanceID() int64 { return v.id }

// String prints the volume name, address and instance ID.
func (v *Volume) String() string {
	if v == nil {
		return "{null volume}"
	}
	return fmt.Sprintf("%q@%p (ID=%d)", v.Name, v, v.id)
}

// PlaceDaughter adds a daughter placement positioned by t and returns it.
func (v *Volume) PlaceDaughter(name string, daughter *Volume, t Transform) *Placement {
	if daughter == nil {
		panic(errMsg("nil daughter volume"))
	}
	p := &Placement{
		Name:      name,
		Volume:    daughter,
		Transform: t,
		CopyNo:    len(v.Daughters),
	}
	v.Daughters = append(v.Daughters, p)
	return p
}

// Placement is a positioned instance of a volume inside its mother's
// coordinate frame. A world placement has the identity transform.
type Placement struct {
	Name      string
	Volume    *Volume
	Transform Transform
	CopyNo    int
}

// NewWorld returns a top-level placement of v with identity transform.
func NewWorld(name string, v *Volume) *Placement {
	if v == nil {
		panic(errMsg("nil world volume"))
	}
	return &Placement{Name: name, Volume: v, Transform: Identity()}
}

// reflection factory state: reflected copies are memoized so a volume
// reflected twice resolves to the same copy.
var (
	reflMu  sync.Mutex
	reflMap = make(map[*Volume]*Volume)
)

// Reflect returns the Z-mirrored copy of v, creating it on first use.
// The copy's name carries the ReflExt extension, its Constituent points
// back at v, and daughter placements are reflected recursively.
func Reflect(v *Volume) *Volume {
	reflMu.Lock()
	defer reflMu.Unlock()
	return reflect(v)
}

func reflect(v *Volume) *Volume {
	if r, ok := reflMap[v]; ok {
		return r
	}
	r := NewVolume(v.Name+ReflExt, &reflected{solid: v.Solid})
	r.Constituent = v
	reflMap[v] = r
	m := MirrorZ()
	for _, d := range v.Daughters {
		r.PlaceDaughter(d.Name, reflect(d.Volume), m.Mul(d.Transform).Mul(m))
	}
	return r
}

// reflected mirrors a solid through the XY plane.
type reflected struct {
	solid Solid
}

// Evaluate returns the minimum distance to the mirrored solid.
func (s *reflected) Evaluate(p r3.Vec) float64 {
	p.Z = -p.Z
	return s.solid.Evaluate(p)
}

// Bounds returns the bounding box of the mirrored solid.
func (s *reflected) Bounds() r3.Box {
	bb := s.solid.Bounds()
	return r3.Box{
		Min: r3.Vec{X: bb.Min.X, Y: bb.Min.Y, Z: -bb.Max.Z},
		Max: r3.Vec{X: bb.Max.X, Y: bb.Max.Y, Z: -bb.Min.Z},
	}
}
