package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Ground renders the flat plane the field sits on. The model is created on
// first Draw so raylib's OpenGL context is already active.
type Ground struct {
	size        float32
	model       rl.Model
	initialized bool
}

// NewGround creates a ground plane covering a square of the given side length.
func NewGround(size float32) *Ground {
	return &Ground{size: size}
}

// Draw renders the plane centered on the origin at y=0.
func (g *Ground) Draw() {
	if !g.initialized {
		mesh := rl.GenMeshPlane(g.size, g.size, 1, 1)
		g.model = rl.LoadModelFromMesh(mesh)
		g.initialized = true
	}
	rl.DrawModel(g.model, rl.NewVector3(0, 0, 0), 1, rl.Color{R: 30, G: 46, B: 22, A: 255})
}

// Unload releases the plane model.
func (g *Ground) Unload() {
	if g.initialized {
		rl.UnloadModel(g.model)
	}
}
