package trace_test

import (
	"math"
	"testing"

	"github.com/voltrace/voltrace/trace"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestVolumeID(t *testing.T) {
	if trace.NilVolumeID.Valid() {
		t.Error("nil id should not be valid")
	}
	id := trace.VolumeID(3)
	if !id.Valid() || id.Index() != 3 {
		t.Errorf("id 3: valid=%v index=%d", id.Valid(), id.Index())
	}
	if id.String() != "volume<3>" {
		t.Errorf("id string = %q", id.String())
	}
	if trace.NilVolumeID.String() != "volume<nil>" {
		t.Errorf("nil id string = %q", trace.NilVolumeID.String())
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic indexing nil id")
		}
	}()
	trace.NilVolumeID.Index()
}

func TestAnalyticCapacities(t *testing.T) {
	const tol = 1e-9
	for _, tc := range []struct {
		name string
		s    trace.Solid
		want float64
	}{
		{"box", trace.BoxSolid{Half: r3.Vec{X: 1, Y: 2, Z: 3}}, 48},
		{"sphere", trace.SphereSolid{Radius: 2}, 4.0 / 3.0 * math.Pi * 8},
		{"sphere shell", trace.SphereSolid{Radius: 2, InnerRadius: 1}, 28 * math.Pi / 3},
		{"tube", trace.TubeSolid{OuterRadius: 3, InnerRadius: 1, HalfZ: 5}, 80 * math.Pi},
		{"cone", trace.ConeSolid{BottomRadius: 2, TopRadius: 1, HalfZ: 3}, 14 * math.Pi},
		{"trd", trace.TrdSolid{
			BottomHalfX: 2, BottomHalfY: 3,
			TopHalfX: 1, TopHalfY: 1.5,
			HalfZ: 4,
		}, 112},
	} {
		if got := tc.s.Capacity(); math.Abs(got-tc.want) > tol*tc.want {
			t.Errorf("%s capacity = %g, want %g", tc.name, got, tc.want)
		}
	}
}

func TestScaledCapacityAndContains(t *testing.T) {
	s := trace.NewScaledSolid(trace.SphereSolid{Radius: 1}, r3.Vec{X: 1, Y: 1, Z: -2})
	want := 4.0 / 3.0 * math.Pi * 2
	if got := s.Capacity(); math.Abs(got-want) > 1e-9 {
		t.Errorf("scaled capacity = %g, want %g", got, want)
	}
	if !s.Contains(r3.Vec{Z: 1.9}) {
		t.Error("stretched sphere should contain z=1.9")
	}
	if s.Contains(r3.Vec{X: 1.5}) {
		t.Error("unscaled axis should not stretch")
	}
	bb := s.Bounds()
	if bb.Min.Z != -2 || bb.Max.Z != 2 {
		t.Errorf("scaled bounds z = [%g, %g], want [-2, 2]", bb.Min.Z, bb.Max.Z)
	}
}

func TestBooleanCapacityMonteCarlo(t *testing.T) {
	// two disjoint unit cubes: exact capacity 2
	u := trace.NewBooleanSolid(trace.OpUnion,
		trace.BoxSolid{Half: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		trace.BoxSolid{Half: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		trace.NewAffine([9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, r3.Vec{X: 2}),
	)
	got := u.Capacity()
	if math.Abs(got-2) > 0.04 {
		t.Errorf("union capacity estimate = %g, want 2 within 2%%", got)
	}
	if again := u.Capacity(); again != got {
		t.Error("capacity estimate should be cached")
	}

	// carving a centered half-size cube removes 1/8 of the volume
	sub := trace.NewBooleanSolid(trace.OpSubtraction,
		trace.BoxSolid{Half: r3.Vec{X: 1, Y: 1, Z: 1}},
		trace.BoxSolid{Half: r3.Vec{X: 0.5, Y: 0.5, Z: 0.5}},
		trace.IdentityAffine(),
	)
	if got := sub.Capacity(); math.Abs(got-7) > 0.14 {
		t.Errorf("subtraction capacity estimate = %g, want 7 within 2%%", got)
	}
}

func TestBooleanContains(t *testing.T) {
	i := trace.NewBooleanSolid(trace.OpIntersection,
		trace.BoxSolid{Half: r3.Vec{X: 1, Y: 1, Z: 1}},
		trace.SphereSolid{Radius: 1.2},
		trace.IdentityAffine(),
	)
	if !i.Contains(r3.Vec{}) {
		t.Error("origin should be in intersection")
	}
	if i.Contains(r3.Vec{X: 0.99, Y: 0.99}) {
		t.Error("box corner outside sphere should end outside intersection")
	}
}

func TestAffineRoundTrip(t *testing.T) {
	c, s := math.Cos(0.7), math.Sin(0.7)
	a := trace.NewAffine([9]float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}, r3.Vec{X: 1, Y: 2, Z: 3})
	p := r3.Vec{X: -0.4, Y: 0.9, Z: 2.5}
	q := a.ApplyInverse(a.Apply(p))
	if r3.Norm(r3.Sub(p, q)) > 1e-12 {
		t.Errorf("affine round trip drifted: %v -> %v", p, q)
	}
}

func TestManagerRegistryAndLocate(t *testing.T) {
	m := trace.NewGeoManager()

	worldVol := trace.NewVolume("World", trace.BoxSolid{Half: r3.Vec{X: 10, Y: 10, Z: 10}})
	ball := trace.NewVolume("ball", trace.SphereSolid{Radius: 1})
	m.RegisterVolume(ball)
	m.RegisterVolume(worldVol)
	if got := m.RegisterVolume(ball); got != ball.ID() {
		t.Error("re-registration should return existing id")
	}
	if m.NumVolumes() != 2 {
		t.Errorf("registered %d volumes, want 2", m.NumVolumes())
	}
	if m.FindVolume(ball.ID()) != ball {
		t.Error("FindVolume mismatch")
	}
	if m.FindVolumeByLabel("World") != worldVol {
		t.Error("FindVolumeByLabel mismatch")
	}
	if m.FindVolume(trace.NilVolumeID) != nil {
		t.Error("nil id should find nothing")
	}

	// place a grid of balls so the navigator builds a real tree
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			worldVol.PlaceDaughter("ball_pv", ball, trace.NewAffine(
				[9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
				r3.Vec{X: float64(3 * i), Y: float64(3 * j)},
			))
		}
	}
	world := trace.NewPlacement("world_pv", worldVol, trace.IdentityAffine())
	m.SetWorldAndClose(world)
	if !m.Closed() {
		t.Fatal("manager should be closed")
	}
	if m.World() != world {
		t.Fatal("World() should return the closed world placement")
	}

	if got := m.Locate(r3.Vec{X: 6, Y: -6, Z: 0.2}); got == nil || got.Volume() != ball {
		t.Errorf("expected to land in a ball, got %v", got)
	}
	if got := m.Locate(r3.Vec{X: 1.6, Y: 0, Z: 0}); got != world {
		t.Error("gap between balls should resolve to the world placement")
	}
	if got := m.Locate(r3.Vec{X: 50}); got != nil {
		t.Error("point outside world should locate nil")
	}
}
