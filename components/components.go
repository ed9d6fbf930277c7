// Package components defines the ECS components for the field's tile layer.
package components

import "github.com/pthm-cable/meadow/systems"

// Tile is one spatial cell of the level-of-detail grid laid over the field.
// Index addresses the per-tile instance buckets owned by the render set.
type Tile struct {
	Index            int
	CenterX, CenterZ float32
	HalfExtent       float32
}

// Detail holds a tile's current detail level. Mutated only by the LOD pass.
type Detail struct {
	Level systems.DetailLevel
}
