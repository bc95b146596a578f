package trace

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r3"
)

// GeoManager owns the volume registry and the closed world. Volume IDs
// are assigned sequentially at registration.
type GeoManager struct {
	mu      sync.Mutex
	volumes []*Volume
	world   *Placement
	closed  bool
}

// NewGeoManager returns an empty registry.
func NewGeoManager() *GeoManager {
	return &GeoManager{}
}

var (
	globalMu  sync.Mutex
	globalMgr = NewGeoManager()
)

// Global returns the process-wide manager used when no explicit manager
// is configured.
func Global() *GeoManager {
	globalMu.Lock()
	defer globalMu.Unlock()
	return globalMgr
}

// ResetGlobal replaces the process-wide manager, primarily for tests.
func ResetGlobal() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalMgr = NewGeoManager()
}

// RegisterVolume assigns the next VolumeID to v. Registering the same
// volume twice returns the existing ID.
func (m *GeoManager) RegisterVolume(v *Volume) VolumeID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		panic("trace: registering volume into closed manager")
	}
	if v.id.Valid() {
		return v.id
	}
	v.id = VolumeID(len(m.volumes))
	m.volumes = append(m.volumes, v)
	return v.id
}

// NumVolumes returns the number of registered volumes.
func (m *GeoManager) NumVolumes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.volumes)
}

// FindVolume returns the volume registered under id, or nil.
func (m *GeoManager) FindVolume(id VolumeID) *Volume {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !id.Valid() || int(id) >= len(m.volumes) {
		return nil
	}
	return m.volumes[id]
}

// FindVolumeByLabel returns the first registered volume with the given
// label, or nil.
func (m *GeoManager) FindVolumeByLabel(label string) *Volume {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.volumes {
		if v.label == label {
			return v
		}
	}
	return nil
}

// World returns the closed world placement, or nil before closing.
func (m *GeoManager) World() *Placement {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.world
}

// Closed reports whether the geometry has been closed.
func (m *GeoManager) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// SetWorldAndClose installs the world placement and builds the
// navigation acceleration structures for every registered volume.
func (m *GeoManager) SetWorldAndClose(world *Placement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if world == nil {
		panic("trace: nil world placement")
	}
	m.world = world
	for _, v := range m.volumes {
		v.nav = newNavigator(v.daughters)
	}
	if w := world.Volume(); w != nil && !w.id.Valid() {
		// world registered late; give it navigation too
		w.nav = newNavigator(w.daughters)
	}
	m.closed = true
}

// Clear drops all registered state so tests can rebuild geometry.
func (m *GeoManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.volumes {
		v.id = NilVolumeID
		v.nav = nil
	}
	m.volumes = nil
	m.world = nil
	m.closed = false
}

// Locate returns the deepest placement containing the world-frame point
// p, or nil when p is outside the world volume. The manager must be
// closed first.
func (m *GeoManager) Locate(p r3.Vec) *Placement {
	world := m.World()
	if world == nil {
		return nil
	}
	local := world.Transform().ApplyInverse(p)
	if !world.Volume().Solid().Contains(local) {
		return nil
	}
	return locate(world, local)
}

func locate(pl *Placement, local r3.Vec) *Placement {
	v := pl.Volume()
	if v.nav == nil {
		// manager not closed; fall back to a linear scan
		for _, d := range v.daughters {
			q := d.Transform().ApplyInverse(local)
			if d.Volume().Solid().Contains(q) {
				return locate(d, q)
			}
		}
		return pl
	}
	if d, q := v.nav.findDaughter(local); d != nil {
		return locate(d, q)
	}
	return pl
}
