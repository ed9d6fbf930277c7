package renderer

import (
	_ "embed"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/systems"
)

//go:embed shaders/grass.vs
var grassVS string

//go:embed shaders/grass.fs
var grassFS string

// GrassMaterial wraps the instanced grass shader. Wind parameters are set
// once at construction; only the elapsed time and the actor position change
// per frame.
type GrassMaterial struct {
	shader   rl.Shader
	material rl.Material

	timeLoc  int32
	actorLoc int32
}

// NewGrassMaterial compiles the grass shader and binds the wind parameters.
// Requires an active raylib window.
func NewGrassMaterial(wind systems.WindParams) *GrassMaterial {
	shader := rl.LoadShaderFromMemory(grassVS, grassFS)

	// DrawMeshInstanced sources the per-instance model matrix from the
	// instanceTransform vertex attribute.
	shader.UpdateLocation(rl.ShaderLocMatrixMvp, rl.GetShaderLocation(shader, "mvp"))
	shader.UpdateLocation(rl.ShaderLocMatrixModel, rl.GetShaderLocationAttrib(shader, "instanceTransform"))

	m := &GrassMaterial{
		shader:   shader,
		timeLoc:  rl.GetShaderLocation(shader, "time"),
		actorLoc: rl.GetShaderLocation(shader, "actor"),
	}

	windLoc := rl.GetShaderLocation(shader, "wind")
	rl.SetShaderValue(shader, windLoc,
		[]float32{wind.Strength, wind.Frequency, wind.TimeScale, 0}, rl.ShaderUniformVec4)

	driftLoc := rl.GetShaderLocation(shader, "drift")
	rl.SetShaderValue(shader, driftLoc,
		[]float32{wind.DriftX, wind.DriftZ}, rl.ShaderUniformVec2)

	// No actor until one is reported: zero radius disables the push.
	rl.SetShaderValue(shader, m.actorLoc, []float32{0, 0, 0, 0}, rl.ShaderUniformVec4)

	m.material = rl.LoadMaterialDefault()
	m.material.Shader = shader

	return m
}

// SetTime uploads the elapsed time consumed by the wind phase.
func (m *GrassMaterial) SetTime(t float32) {
	rl.SetShaderValue(m.shader, m.timeLoc, []float32{t}, rl.ShaderUniformFloat)
}

// SetActor uploads the actor's field-plane position and push parameters.
// A radius of 0 disables the proximity push.
func (m *GrassMaterial) SetActor(x, z, radius, strength float32) {
	rl.SetShaderValue(m.shader, m.actorLoc, []float32{x, z, radius, strength}, rl.ShaderUniformVec4)
}

// Material returns the raylib material for instanced draws.
func (m *GrassMaterial) Material() rl.Material {
	return m.material
}

// Unload releases the shader.
func (m *GrassMaterial) Unload() {
	rl.UnloadShader(m.shader)
}
