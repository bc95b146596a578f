package trace

import "gonum.org/v1/gonum/spatial/r3"

// Volume is a registered logical volume: a solid plus the placements of
// its daughters, identified by a VolumeID once registered.
type Volume struct {
	id        VolumeID
	label     string
	solid     Solid
	daughters []*Placement

	nav *navigator // built when the manager closes
}

// NewVolume returns an unregistered volume. Register it with a
// GeoManager to obtain its VolumeID.
func NewVolume(label string, solid Solid) *Volume {
	return &Volume{id: NilVolumeID, label: label, solid: solid}
}

// ID returns the volume's handle, or NilVolumeID before registration.
func (v *Volume) ID() VolumeID { return v.id }

// Label returns the volume's name.
func (v *Volume) Label() string { return v.label }

// Solid returns the volume's shape.
func (v *Volume) Solid() Solid { return v.solid }

// Daughters returns the daughter placements.
func (v *Volume) Daughters() []*Placement { return v.daughters }

// Capacity returns the volumetric capacity of the volume's solid.
func (v *Volume) Capacity() float64 { return v.solid.Capacity() }

// PlaceDaughter positions daughter inside v and returns the placement.
func (v *Volume) PlaceDaughter(label string, daughter *Volume, t Affine) *Placement {
	p := &Placement{
		label:     label,
		volume:    daughter,
		transform: t,
		copyNo:    len(v.daughters),
	}
	v.daughters = append(v.daughters, p)
	return p
}

// Placement is a positioned instance of a volume.
type Placement struct {
	label     string
	volume    *Volume
	transform Affine
	copyNo    int
}

// NewPlacement returns a free-standing placement, typically the world.
func NewPlacement(label string, v *Volume, t Affine) *Placement {
	return &Placement{label: label, volume: v, transform: t}
}

// Label returns the placement's name.
func (p *Placement) Label() string { return p.label }

// Volume returns the placed volume.
func (p *Placement) Volume() *Volume { return p.volume }

// Transform returns the placement transform relative to the mother.
func (p *Placement) Transform() Affine { return p.transform }

// CopyNo returns the placement's copy number within its mother.
func (p *Placement) CopyNo() int { return p.copyNo }

// Bounds returns the placement's bounding box in the mother frame.
func (p *Placement) Bounds() r3.Box {
	return p.transform.ApplyBox(p.volume.solid.Bounds())
}
