package systems

import (
	"fmt"
	"math"
)

// Template is the shared blade geometry in local space: a vertical strip of
// segments+1 cross-sections from base (y=0) to tip (y=Height), lying in the
// local X/Y plane and facing +Z. The v texture coordinate of every vertex
// stores its normalized height fraction, which the displacement function
// uses as the bend falloff input.
type Template struct {
	Segments int
	Width    float32
	Height   float32

	Vertices  []float32 // x, y, z triplets
	Normals   []float32 // x, y, z triplets
	Texcoords []float32 // u, v pairs; v = height fraction in [0, 1]
	Indices   []uint16  // strip-ordered triangle list, CCW
}

// tipTaper is the fraction of the base width removed at the tip. Kept just
// under 1 so the tip quad never degenerates to zero-area triangles.
const tipTaper = 0.9

// NewTemplate builds the blade geometry for the given segment count.
// segments = 1 is the minimum valid template (a single tapered quad).
// The output is a pure function of the inputs.
func NewTemplate(segments int, width, height float32) (*Template, error) {
	if segments < 1 {
		return nil, fmt.Errorf("blade template: segments must be >= 1, got %d", segments)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("blade template: dimensions must be > 0, got %gx%g", width, height)
	}

	t := &Template{
		Segments:  segments,
		Width:     width,
		Height:    height,
		Vertices:  make([]float32, 0, (segments+1)*2*3),
		Texcoords: make([]float32, 0, (segments+1)*2*2),
		Indices:   make([]uint16, 0, segments*6),
	}

	for s := 0; s <= segments; s++ {
		frac := float32(s) / float32(segments)
		halfW := width / 2 * taper(frac)
		y := frac * height

		// Left then right vertex of the cross-section.
		t.Vertices = append(t.Vertices, -halfW, y, 0, halfW, y, 0)
		t.Texcoords = append(t.Texcoords, 0, frac, 1, frac)
	}

	// Two CCW triangles per segment, viewed from +Z.
	for s := 0; s < segments; s++ {
		base := uint16(s * 2)
		t.Indices = append(t.Indices,
			base, base+1, base+2,
			base+1, base+3, base+2,
		)
	}

	t.computeNormals()
	return t, nil
}

// taper is the width multiplier at height fraction frac, monotonically
// non-increasing from 1 at the base.
func taper(frac float32) float32 {
	return 1 - tipTaper*frac
}

// MaxHeightFraction returns localY normalized to [0, 1] against the template
// height.
func (t *Template) MaxHeightFraction(localY float32) float32 {
	return clamp01(localY / t.Height)
}

// computeNormals derives per-vertex normals by accumulating the face normals
// of every incident triangle and renormalizing. For the flat template this
// yields +Z everywhere, but the derivation holds for any strip shape.
func (t *Template) computeNormals() {
	t.Normals = make([]float32, len(t.Vertices))

	for i := 0; i+2 < len(t.Indices); i += 3 {
		a, b, c := int(t.Indices[i])*3, int(t.Indices[i+1])*3, int(t.Indices[i+2])*3

		e1x := t.Vertices[b] - t.Vertices[a]
		e1y := t.Vertices[b+1] - t.Vertices[a+1]
		e1z := t.Vertices[b+2] - t.Vertices[a+2]
		e2x := t.Vertices[c] - t.Vertices[a]
		e2y := t.Vertices[c+1] - t.Vertices[a+1]
		e2z := t.Vertices[c+2] - t.Vertices[a+2]

		nx := e1y*e2z - e1z*e2y
		ny := e1z*e2x - e1x*e2z
		nz := e1x*e2y - e1y*e2x

		for _, v := range []int{a, b, c} {
			t.Normals[v] += nx
			t.Normals[v+1] += ny
			t.Normals[v+2] += nz
		}
	}

	for v := 0; v+2 < len(t.Normals); v += 3 {
		mag := float32(math.Sqrt(float64(
			t.Normals[v]*t.Normals[v] + t.Normals[v+1]*t.Normals[v+1] + t.Normals[v+2]*t.Normals[v+2])))
		if mag > 0 {
			t.Normals[v] /= mag
			t.Normals[v+1] /= mag
			t.Normals[v+2] /= mag
		}
	}
}

// VertexCount returns the number of vertices in the template.
func (t *Template) VertexCount() int {
	return len(t.Vertices) / 3
}

// TriangleCount returns the number of triangles in the template.
func (t *Template) TriangleCount() int {
	return len(t.Indices) / 3
}
