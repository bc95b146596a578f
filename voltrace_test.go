package voltrace_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/voltrace/voltrace"
	"github.com/voltrace/voltrace/csg"
	"github.com/voltrace/voltrace/trace"
	"gonum.org/v1/gonum/spatial/r3"
)

// solidsWorld builds the sample geometry used by the regression tests:
// one volume per supported solid family, a shared volume placed twice,
// and a reflected placement.
func solidsWorld() *csg.Placement {
	world := csg.NewVolume("World", csg.NewBox(r3.Vec{X: 1000, Y: 1000, Z: 1000}))

	box500 := csg.NewVolume("box500", csg.NewBox(r3.Vec{X: 500, Y: 500, Z: 500}))
	world.PlaceDaughter("box500_PV", box500, csg.Translate3D(r3.Vec{X: -250, Y: 250}))

	cone1 := csg.NewVolume("cone1", csg.NewCone(100, 50, 100))
	world.PlaceDaughter("cone1_PV", cone1, csg.Translate3D(r3.Vec{X: 250, Y: 250}))

	sphere1 := csg.NewVolume("sphere1", csg.NewSphereShell(100, 50))
	world.PlaceDaughter("sphere1_PV", sphere1, csg.Translate3D(r3.Vec{X: -250, Y: -250}))

	tube100 := csg.NewVolume("tube100", csg.NewTube(30, 10, 100))
	world.PlaceDaughter("tube100_PV", tube100, csg.Translate3D(r3.Vec{X: 250, Y: -250}))

	trd1 := csg.NewVolume("trd1", csg.NewTrd(20, 30, 10, 15, 40))
	world.PlaceDaughter("trd1_PV", trd1, csg.Translate3D(r3.Vec{Z: 250}))

	// shared volume: two placements, one of them mirrored
	trd3 := csg.NewVolume("trd3", csg.NewTrd(20, 30, 10, 15, 40))
	world.PlaceDaughter("trd3a_PV", trd3,
		csg.Translate3D(r3.Vec{X: -150, Z: 250}))
	world.PlaceDaughter("trd3b_PV", trd3,
		csg.Translate3D(r3.Vec{X: 150, Z: 250}).Mul(csg.MirrorZ()))

	half := csg.NewBox(r3.Vec{X: 50, Y: 50, Z: 50})
	boolean1 := csg.NewVolume("boolean1",
		csg.NewUnion(half, half, csg.Translate3D(r3.Vec{X: 25})))
	world.PlaceDaughter("boolean1_PV", boolean1, csg.Translate3D(r3.Vec{Z: -250}))

	return csg.NewWorld("World_PV", world)
}

func TestConvertDefaultOptions(t *testing.T) {
	trace.ResetGlobal()
	converted, err := voltrace.Convert(solidsWorld())
	if err != nil {
		t.Fatal(err)
	}
	if converted.World == nil {
		t.Fatal("nil converted world")
	}

	// world + 7 daughters + reflected duplicate
	if got := len(converted.Volumes); got != 9 {
		t.Fatalf("converted %d volumes, want 9", got)
	}

	const sampleTol = 0.02 // boolean capacities are sampled
	expected := []struct {
		name     string
		capacity float64
		sampled  bool
		refl     bool
	}{
		{name: "World", capacity: 1e9},
		{name: "box500", capacity: 1.25e8},
		{name: "cone1", capacity: math.Pi * 100 / 3 * 17500},
		{name: "sphere1", capacity: 4 * math.Pi / 3 * 875000},
		{name: "tube100", capacity: math.Pi * 800 * 100},
		{name: "trd1", capacity: 112000},
		{name: "trd3", capacity: 112000},
		{name: "trd3" + csg.ReflExt, capacity: 112000, refl: true},
		{name: "boolean1", capacity: 187500, sampled: true},
	}

	mgr := trace.Global()
	for _, want := range expected {
		idx, ok := converted.Volumes[want.name]
		if !ok {
			t.Errorf("volume %q missing from result map", want.name)
			continue
		}
		vol := mgr.FindVolume(trace.VolumeID(idx))
		if vol == nil {
			t.Errorf("id %d for %q not registered", idx, want.name)
			continue
		}
		if want.refl {
			// reflected names carry the constituent's generated name
			// plus the extension, e.g. trd3<addr>_refl
			base := strings.TrimSuffix(want.name, csg.ReflExt)
			if !strings.HasPrefix(vol.Label(), base) || !strings.HasSuffix(vol.Label(), csg.ReflExt) {
				t.Errorf("reflected engine name %q does not match %s*%s", vol.Label(), base, csg.ReflExt)
			}
		} else if !strings.HasPrefix(vol.Label(), want.name) {
			t.Errorf("engine name %q does not start with %q", vol.Label(), want.name)
		}
		got := vol.Capacity()
		tol := 1e-6 * want.capacity
		if want.sampled {
			tol = sampleTol * want.capacity
		}
		if math.Abs(got-want.capacity) > tol {
			t.Errorf("%s capacity = %g, want %g", want.name, got, want.capacity)
		}
	}

	// the two trd3 placements share one logical volume
	trd3 := mgr.FindVolume(trace.VolumeID(converted.Volumes["trd3"]))
	shares := 0
	for _, d := range converted.World.Volume().Daughters() {
		if d.Volume() == trd3 {
			shares++
		}
	}
	if shares != 1 {
		t.Errorf("trd3 placed %d times directly; the mirrored copy should use the reflected volume", shares)
	}
}

func TestConvertWithValidation(t *testing.T) {
	trace.ResetGlobal()
	_, err := voltrace.ConvertWithOptions(solidsWorld(), voltrace.Options{
		CompareVolumes: true,
		Verbose:        true,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestConvertScale(t *testing.T) {
	trace.ResetGlobal()
	converted, err := voltrace.ConvertWithOptions(solidsWorld(), voltrace.Options{Scale: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	mgr := trace.Global()
	box := mgr.FindVolume(trace.VolumeID(converted.Volumes["box500"]))
	if got := box.Capacity(); math.Abs(got-1.25e5) > 1e-3 {
		t.Errorf("scaled box500 capacity = %g, want 1.25e5", got)
	}
}

func TestConvertTwiceReturnsError(t *testing.T) {
	trace.ResetGlobal()
	if _, err := voltrace.Convert(solidsWorld()); err != nil {
		t.Fatal(err)
	}
	// the global manager already holds a closed world; a second
	// conversion must report that, not panic
	_, err := voltrace.Convert(solidsWorld())
	if err == nil {
		t.Fatal("expected error converting into a closed manager")
	}
	var rerr *voltrace.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("error %T is not a RuntimeError", err)
	}

	// clearing the manager makes conversion possible again
	trace.ResetGlobal()
	if _, err := voltrace.Convert(solidsWorld()); err != nil {
		t.Fatal(err)
	}
}

func TestConvertSharedNameKeepsLastEntry(t *testing.T) {
	trace.ResetGlobal()
	world := csg.NewVolume("World", csg.NewBox(r3.Vec{X: 100, Y: 100, Z: 100}))
	first := csg.NewVolume("dup", csg.NewBox(r3.Vec{X: 2, Y: 2, Z: 2}))
	second := csg.NewVolume("dup", csg.NewSphere(3))
	world.PlaceDaughter("dup_a_PV", first, csg.Translate3D(r3.Vec{X: -20}))
	world.PlaceDaughter("dup_b_PV", second, csg.Translate3D(r3.Vec{X: 20}))

	converted, err := voltrace.Convert(csg.NewWorld("World_PV", world))
	if err != nil {
		t.Fatal(err)
	}
	// both distinct volumes register; the map keeps the higher index
	mgr := trace.Global()
	var want uint
	seen := 0
	for i := 0; i < mgr.NumVolumes(); i++ {
		v := mgr.FindVolume(trace.VolumeID(i))
		if strings.HasPrefix(v.Label(), "dup") {
			seen++
			if idx := v.ID().UncheckedIndex(); idx > want {
				want = idx
			}
		}
	}
	if seen != 2 {
		t.Fatalf("registered %d dup volumes, want 2", seen)
	}
	if got := converted.Volumes["dup"]; got != want {
		t.Errorf("Volumes[dup] = %d, want last converted index %d", got, want)
	}
}

func TestConvertNilWorld(t *testing.T) {
	trace.ResetGlobal()
	_, err := voltrace.Convert(nil)
	if err == nil {
		t.Fatal("expected error for nil world")
	}
	var rerr *voltrace.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("error %T is not a RuntimeError", err)
	}
	if !strings.HasPrefix(rerr.Error(), "voltrace: runtime error:") {
		t.Errorf("unexpected message: %s", rerr)
	}
}
