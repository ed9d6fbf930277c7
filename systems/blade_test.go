package systems

import (
	"math"
	"testing"
)

func TestNewTemplateCounts(t *testing.T) {
	tests := []struct {
		name      string
		segments  int
		wantVerts int
		wantTris  int
	}{
		{"single quad", 1, 4, 2},
		{"four segments", 4, 10, 8},
		{"tall strip", 16, 34, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl, err := NewTemplate(tt.segments, 0.06, 0.8)
			if err != nil {
				t.Fatalf("NewTemplate: %v", err)
			}
			if got := tpl.VertexCount(); got != tt.wantVerts {
				t.Errorf("VertexCount = %d, want %d", got, tt.wantVerts)
			}
			if got := tpl.TriangleCount(); got != tt.wantTris {
				t.Errorf("TriangleCount = %d, want %d", got, tt.wantTris)
			}
			if len(tpl.Normals) != len(tpl.Vertices) {
				t.Errorf("normals length %d, want %d", len(tpl.Normals), len(tpl.Vertices))
			}
		})
	}
}

func TestNewTemplateInvalid(t *testing.T) {
	if _, err := NewTemplate(0, 0.06, 0.8); err == nil {
		t.Error("segments 0 should be rejected")
	}
	if _, err := NewTemplate(4, 0, 0.8); err == nil {
		t.Error("zero width should be rejected")
	}
	if _, err := NewTemplate(4, 0.06, -1); err == nil {
		t.Error("negative height should be rejected")
	}
}

func TestTemplateHeightFractions(t *testing.T) {
	tpl, err := NewTemplate(5, 0.06, 0.8)
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}

	// v coordinate runs 0 at the base to 1 at the tip and matches the
	// vertex's y position normalized by the template height.
	for i := 0; i < tpl.VertexCount(); i++ {
		v := tpl.Texcoords[i*2+1]
		y := tpl.Vertices[i*3+1]
		if v < 0 || v > 1 {
			t.Fatalf("vertex %d has v=%v, want [0, 1]", i, v)
		}
		if math.Abs(float64(v-y/tpl.Height)) > 1e-6 {
			t.Fatalf("vertex %d: v=%v does not encode height fraction of y=%v", i, v, y)
		}
	}
	if tpl.Texcoords[1] != 0 {
		t.Error("base cross-section must have v=0")
	}
	last := len(tpl.Texcoords) - 1
	if tpl.Texcoords[last] != 1 {
		t.Error("tip cross-section must have v=1")
	}
}

func TestTemplateTaperMonotonic(t *testing.T) {
	tpl, err := NewTemplate(8, 0.1, 1)
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}

	prev := float32(math.Inf(1))
	for s := 0; s <= tpl.Segments; s++ {
		left := tpl.Vertices[s*6]
		right := tpl.Vertices[s*6+3]
		width := right - left
		if width > prev+1e-6 {
			t.Fatalf("cross-section %d width %v wider than previous %v; taper must be non-increasing", s, width, prev)
		}
		if width <= 0 {
			t.Fatalf("cross-section %d has non-positive width %v", s, width)
		}
		prev = width
	}
}

func TestTemplateNormalsFaceForward(t *testing.T) {
	tpl, err := NewTemplate(4, 0.06, 0.8)
	if err != nil {
		t.Fatalf("NewTemplate: %v", err)
	}

	// The flat template faces +Z with consistent winding.
	for i := 0; i < tpl.VertexCount(); i++ {
		nz := tpl.Normals[i*3+2]
		if math.Abs(float64(nz-1)) > 1e-5 {
			t.Fatalf("vertex %d normal z=%v, want 1", i, nz)
		}
	}
}

func TestTemplateDeterministic(t *testing.T) {
	a, _ := NewTemplate(6, 0.06, 0.8)
	b, _ := NewTemplate(6, 0.06, 0.8)
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex data differs at %d", i)
		}
	}
}
