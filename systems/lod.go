package systems

// DetailLevel selects which blade mesh a tile renders with.
type DetailLevel uint8

const (
	HighDetail DetailLevel = iota
	LowDetail
)

// String returns the level name for logs and overlays.
func (d DetailLevel) String() string {
	if d == HighDetail {
		return "high"
	}
	return "low"
}

// SelectDetail applies the distance threshold with a hysteresis dead zone:
// a tile drops to low detail at threshold+hysteresis and returns to high
// detail below threshold-hysteresis, so tiles hovering near the boundary
// do not flicker between meshes. With hysteresis 0 this is a plain cutoff
// at the threshold.
func SelectDetail(current DetailLevel, dist, threshold, hysteresis float32) DetailLevel {
	switch current {
	case HighDetail:
		if dist >= threshold+hysteresis {
			return LowDetail
		}
	case LowDetail:
		if dist < threshold-hysteresis {
			return HighDetail
		}
	}
	return current
}
