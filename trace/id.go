package trace

import "strconv"

// VolumeID is an opaque integer handle to a registered volume.
type VolumeID uint32

// NilVolumeID is the unassigned handle value.
const NilVolumeID = ^VolumeID(0)

// Valid reports whether the handle is assigned.
func (id VolumeID) Valid() bool { return id != NilVolumeID }

// Index returns the handle's value for indexing. It panics on the nil
// handle.
func (id VolumeID) Index() uint {
	if !id.Valid() {
		panic("trace: indexing nil VolumeID")
	}
	return uint(id)
}

// UncheckedIndex returns the raw value without validity checking.
func (id VolumeID) UncheckedIndex() uint { return uint(id) }

func (id VolumeID) String() string {
	if !id.Valid() {
		return "volume<nil>"
	}
	return "volume<" + strconv.FormatUint(uint64(id), 10) + ">"
}
