package render

import (
	"fmt"
	"os"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Model is a loaded glTF/GLB drawn mesh by mesh, so each mesh can get its own
// transform. Vertices are already in world space.
type Model struct {
	model     rl.Model
	meshes    []rl.Mesh
	materials []rl.Material
	meshMtl   []int32
}

// LoadModel loads path and switches every material to the lit shader.
func LoadModel(path string, lit *Lit) (*Model, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("render: model: %w", err)
	}
	m := rl.LoadModel(path)
	if m.MeshCount == 0 {
		rl.UnloadModel(m)
		return nil, fmt.Errorf("render: model %s has no meshes", path)
	}
	out := &Model{
		model:     m,
		meshes:    unsafe.Slice(m.Meshes, m.MeshCount),
		materials: unsafe.Slice(m.Materials, m.MaterialCount),
		meshMtl:   unsafe.Slice(m.MeshMaterial, m.MeshCount),
	}
	for i := range out.materials {
		out.materials[i].Shader = lit.Shader()
	}
	return out, nil
}

// MeshCount is the number of drawable meshes.
func (m *Model) MeshCount() int { return len(m.meshes) }

// DrawMesh draws mesh i with transform. Must be called between BeginMode3D and EndMode3D.
func (m *Model) DrawMesh(i int, transform mgl32.Mat4) {
	if i < 0 || i >= len(m.meshes) {
		return
	}
	mtl := m.materials[0]
	if k := int(m.meshMtl[i]); k >= 0 && k < len(m.materials) {
		mtl = m.materials[k]
	}
	rl.DrawMesh(m.meshes[i], mtl, Matrix(transform))
}

// RayHit tests ray against mesh i's triangles placed with transform.
func (m *Model) RayHit(ray rl.Ray, i int, transform mgl32.Mat4) (float32, bool) {
	if i < 0 || i >= len(m.meshes) {
		return 0, false
	}
	c := rl.GetRayCollisionMesh(ray, m.meshes[i], Matrix(transform))
	return c.Distance, c.Hit
}

// Unload frees the model's GPU resources.
func (m *Model) Unload() {
	rl.UnloadModel(m.model)
}

// Matrix converts a column-major mgl32 matrix to raylib's layout.
func Matrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

// Vector3 converts to raylib's vector type.
func Vector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
