package systems

// ProximityPush returns the field-plane push an actor at (ax, az) applies
// to an instance at (ix, iz). The push points radially away from the actor
// and its magnitude fades quadratically from strength at the actor to
// exactly zero at the interaction radius, so there is no seam at the
// boundary. Beyond the radius, and directly underneath the actor where the
// radial direction is undefined, the push is zero.
func ProximityPush(ax, az, ix, iz, radius, strength float32) (px, pz float32) {
	if radius <= 0 || strength == 0 {
		return 0, 0
	}

	dx := ix - ax
	dz := iz - az
	d := Distance(ix, iz, ax, az)
	if d >= radius || d < 1e-6 {
		return 0, 0
	}

	fade := 1 - d/radius
	mag := strength * fade * fade

	return dx / d * mag, dz / d * mag
}
