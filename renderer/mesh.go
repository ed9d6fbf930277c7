// Package renderer holds the raylib-facing side of the vegetation field:
// mesh upload, the instanced grass material, and the ground plane.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/meadow/systems"
)

// BladeMesh is a blade template uploaded to the GPU. The backing slices are
// retained so the vertex data stays reachable for as long as raylib holds
// pointers into it.
type BladeMesh struct {
	raw rl.Mesh

	vertices  []float32
	normals   []float32
	texcoords []float32
	indices   []uint16
}

// UploadTemplate uploads a blade template as a static GPU mesh.
// Requires an active raylib window.
func UploadTemplate(t *systems.Template) *BladeMesh {
	m := &BladeMesh{
		vertices:  t.Vertices,
		normals:   t.Normals,
		texcoords: t.Texcoords,
		indices:   t.Indices,
	}

	mesh := rl.Mesh{
		VertexCount:   int32(t.VertexCount()),
		TriangleCount: int32(t.TriangleCount()),
	}
	mesh.Vertices = &m.vertices[0]
	mesh.Normals = &m.normals[0]
	mesh.Texcoords = &m.texcoords[0]
	mesh.Indices = &m.indices[0]

	rl.UploadMesh(&mesh, false)
	m.raw = mesh
	return m
}

// Raw returns the uploaded raylib mesh.
func (m *BladeMesh) Raw() rl.Mesh {
	return m.raw
}

// Unload releases the GPU buffers.
func (m *BladeMesh) Unload() {
	rl.UnloadMesh(&m.raw)
}
