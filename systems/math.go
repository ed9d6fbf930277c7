package systems

import "math"

// clamp01 clamps a float32 value to the [0, 1] range.
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// distanceSq returns the squared distance between two field-plane points.
func distanceSq(x1, z1, x2, z2 float32) float32 {
	dx := x1 - x2
	dz := z1 - z2
	return dx*dx + dz*dz
}

// Distance returns the Euclidean distance between two field-plane points.
func Distance(x1, z1, x2, z2 float32) float32 {
	return float32(math.Sqrt(float64(distanceSq(x1, z1, x2, z2))))
}
