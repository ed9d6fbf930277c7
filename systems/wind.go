package systems

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// WindParams configures the displacement field. Strength 0 disables wind
// exactly: every vertex stays at its upright position.
type WindParams struct {
	Strength  float32 // peak tip displacement, world units
	Frequency float32 // spatial frequency of the noise field
	TimeScale float32 // phase advance per second
	DriftX    float32 // gust drift of the noise field per second
	DriftZ    float32
}

// Wind evaluates the per-vertex displacement field. It is stateless per
// evaluation: the noise permutation table is built once at construction and
// only read afterward, so one Wind value serves any number of concurrent
// vertex evaluations with no synchronization. Elapsed time is an input,
// never stored here.
type Wind struct {
	params    WindParams
	noise     opensimplex.Noise
	maxHeight float32
}

// NewWind creates a wind field over blades of the given template height.
// The same seed always yields the same field.
func NewWind(params WindParams, seed int64, templateHeight float32) *Wind {
	return &Wind{
		params:    params,
		noise:     opensimplex.NewNormalized(seed),
		maxHeight: templateHeight,
	}
}

// Params returns the configured wind parameters.
func (w *Wind) Params() WindParams {
	return w.params
}

// Sway returns the signed displacement magnitude in [-Strength, Strength]
// for an instance at height fraction h at time t. Nearby instances sample
// nearby noise coordinates and so sway in correlated phase; the cubic-fade
// noise keeps the result continuous in both position and time.
func (w *Wind) Sway(rec Record, h, t float32) float32 {
	if w.params.Strength == 0 {
		return 0
	}
	falloff := h * h // cantilever bend: zero at the base, full at the tip
	if falloff == 0 {
		return 0
	}

	n := w.noise.Eval3(
		float64(rec.X*w.params.Frequency+t*w.params.DriftX),
		float64(rec.Z*w.params.Frequency+t*w.params.DriftZ),
		float64(t*w.params.TimeScale),
	)
	wave := float32(n)*2 - 1 // normalized noise -> [-1, 1]

	return wave * w.params.Strength * falloff
}

// Displace maps one template vertex of one instance to its world-space
// position at time t: height scale, instance rotation about the vertical
// axis, translation to the instance position, then the wind offset along
// the rotated face normal. This is the CPU reference for the vertex-stage
// implementation in the grass shader.
func (w *Wind) Displace(lx, ly, lz float32, rec Record, t float32) (x, y, z float32) {
	h := clamp01(ly / w.maxHeight)
	sway := w.Sway(rec, h, t)

	ly *= rec.Height

	sin := float32(math.Sin(float64(rec.Rotation)))
	cos := float32(math.Cos(float64(rec.Rotation)))
	wx := lx*cos + lz*sin
	wz := -lx*sin + lz*cos

	// Face normal (0,0,1) rotated into world space.
	x = rec.X + wx + sway*sin
	y = ly
	z = rec.Z + wz + sway*cos
	return x, y, z
}

// DisplaceWithPush is Displace plus the proximity push from an actor at
// field-plane position (ax, az). The push shares the height falloff, so the
// base of a blade never leaves its placement position.
func (w *Wind) DisplaceWithPush(lx, ly, lz float32, rec Record, t float32, ax, az, radius, strength float32) (x, y, z float32) {
	x, y, z = w.Displace(lx, ly, lz, rec, t)
	h := clamp01(ly / w.maxHeight)
	px, pz := ProximityPush(ax, az, rec.X, rec.Z, radius, strength)
	x += px * h * h
	z += pz * h * h
	return x, y, z
}
