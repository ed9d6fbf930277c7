package systems

import (
	"math"
	"testing"
)

func testWind(strength float32) *Wind {
	return NewWind(WindParams{
		Strength:  strength,
		Frequency: 0.5,
		TimeScale: 1.2,
		DriftX:    0.4,
		DriftZ:    0.15,
	}, 1337, 0.8)
}

func testRecord() Record {
	return Record{Index: 7, X: 3.2, Z: -1.7, Rotation: 1.1, Height: 1.2}
}

func TestDisplaceZeroAtBase(t *testing.T) {
	w := testWind(0.3)
	rec := testRecord()

	for _, tm := range []float32{0, 0.5, 10, 123.4} {
		x, y, z := w.Displace(0.03, 0, 0, rec, tm)

		// At the base the vertex is rotated and translated but never
		// displaced, for all times.
		sin := float32(math.Sin(float64(rec.Rotation)))
		cos := float32(math.Cos(float64(rec.Rotation)))
		wantX := rec.X + 0.03*cos
		wantZ := rec.Z - 0.03*sin

		if y != 0 {
			t.Fatalf("t=%v: base vertex lifted to y=%v", tm, y)
		}
		if math.Abs(float64(x-wantX)) > 1e-5 || math.Abs(float64(z-wantZ)) > 1e-5 {
			t.Fatalf("t=%v: base vertex displaced: got (%v, %v), want (%v, %v)", tm, x, z, wantX, wantZ)
		}
	}
}

func TestDisplaceZeroStrength(t *testing.T) {
	w := testWind(0)
	rec := testRecord()

	// With strength 0 every vertex converges to the upright blade.
	for _, tm := range []float32{0, 1, 77} {
		for _, ly := range []float32{0, 0.2, 0.8} {
			x, y, z := w.Displace(0, ly, 0, rec, tm)
			if math.Abs(float64(x-rec.X)) > 1e-6 || math.Abs(float64(z-rec.Z)) > 1e-6 {
				t.Fatalf("strength 0: vertex at y=%v drifted to (%v, %v)", ly, x, z)
			}
			if math.Abs(float64(y-ly*rec.Height)) > 1e-6 {
				t.Fatalf("strength 0: y=%v not scaled to %v, got %v", ly, ly*rec.Height, y)
			}
		}
	}
}

func TestSwayBounded(t *testing.T) {
	w := testWind(0.3)

	// Tip sway never exceeds strength, for any instance or time.
	records := PlaceInstances(500, testParams(20))
	for _, rec := range records {
		for _, tm := range []float32{0, 1.5, 42} {
			s := w.Sway(rec, 1, tm)
			if math.Abs(float64(s)) > 0.3 {
				t.Fatalf("record %d t=%v: sway %v exceeds strength", rec.Index, tm, s)
			}
		}
	}
}

func TestSwayContinuousInTime(t *testing.T) {
	w := testWind(0.3)
	rec := testRecord()

	// displacement(t+eps) -> displacement(t) as eps -> 0: a vanishing time
	// step must produce a vanishing change at every sampled time.
	const eps = 1e-5
	for _, tm := range []float32{0, 0.5, 3.7, 42} {
		base := w.Sway(rec, 1, tm)
		delta := math.Abs(float64(w.Sway(rec, 1, tm+eps) - base))
		if delta > 1e-3 {
			t.Errorf("t=%v: sway jumped by %v over a %v step; must be continuous in time", tm, delta, eps)
		}
	}
}

func TestSwayFalloffQuadratic(t *testing.T) {
	w := testWind(0.3)
	rec := testRecord()

	tip := w.Sway(rec, 1, 2.5)
	mid := w.Sway(rec, 0.5, 2.5)
	if math.Abs(float64(mid-tip*0.25)) > 1e-6 {
		t.Errorf("sway at h=0.5 is %v, want quadratic falloff %v", mid, tip*0.25)
	}
	if got := w.Sway(rec, 0, 2.5); got != 0 {
		t.Errorf("sway at h=0 is %v, want exactly 0", got)
	}
}

func TestSwayCorrelatedNearby(t *testing.T) {
	w := testWind(0.3)

	// Neighboring instances sample nearby noise and stay in near phase.
	a := Record{X: 5, Z: 5}
	b := Record{X: 5.05, Z: 5}
	if d := math.Abs(float64(w.Sway(a, 1, 1) - w.Sway(b, 1, 1))); d > 0.05 {
		t.Errorf("instances 0.05 apart sway %v apart, want correlated phase", d)
	}
}

func TestDisplaceDeterministic(t *testing.T) {
	a := testWind(0.3)
	b := testWind(0.3)
	rec := testRecord()

	for _, tm := range []float32{0, 1, 2.5} {
		ax, ay, az := a.Displace(0.01, 0.6, 0, rec, tm)
		bx, by, bz := b.Displace(0.01, 0.6, 0, rec, tm)
		if ax != bx || ay != by || az != bz {
			t.Fatalf("t=%v: identical winds disagree: (%v,%v,%v) vs (%v,%v,%v)", tm, ax, ay, az, bx, by, bz)
		}
	}
}

func TestProximityPush(t *testing.T) {
	tests := []struct {
		name     string
		ax, az   float32
		ix, iz   float32
		radius   float32
		strength float32
		wantZero bool
	}{
		{"inside radius", 0, 0, 0.5, 0, 1.5, 0.5, false},
		{"exactly at radius", 0, 0, 1.5, 0, 1.5, 0.5, true},
		{"beyond radius", 0, 0, 3, 0, 1.5, 0.5, true},
		{"directly underneath", 0, 0, 0, 0, 1.5, 0.5, true},
		{"zero strength", 0, 0, 0.5, 0, 1.5, 0, true},
		{"zero radius", 0, 0, 0.5, 0, 0, 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px, pz := ProximityPush(tt.ax, tt.az, tt.ix, tt.iz, tt.radius, tt.strength)
			if tt.wantZero {
				if px != 0 || pz != 0 {
					t.Errorf("push = (%v, %v), want exactly (0, 0)", px, pz)
				}
				return
			}
			if px == 0 && pz == 0 {
				t.Error("push = (0, 0), want non-zero inside the radius")
			}
		})
	}
}

func TestProximityPushDirectionAndFade(t *testing.T) {
	// Push points from the actor toward the instance and fades with distance.
	nearX, _ := ProximityPush(0, 0, 0.3, 0, 1.5, 0.5)
	farX, _ := ProximityPush(0, 0, 1.2, 0, 1.5, 0.5)

	if nearX <= 0 || farX <= 0 {
		t.Fatalf("push should point away from the actor: near=%v far=%v", nearX, farX)
	}
	if farX >= nearX {
		t.Errorf("push should fade with distance: near=%v far=%v", nearX, farX)
	}

	// Continuity at the boundary: just inside the radius the push is tiny.
	edgeX, _ := ProximityPush(0, 0, 1.4999, 0, 1.5, 0.5)
	if math.Abs(float64(edgeX)) > 1e-3 {
		t.Errorf("push %v just inside the radius, want a smooth approach to 0", edgeX)
	}
}
