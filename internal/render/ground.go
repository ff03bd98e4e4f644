package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-scene/internal/config"
	"portfolio-scene/internal/texture"
)

// Ground is the flat grass plane the scene stands on, centered at the origin.
type Ground struct {
	mesh   rl.Mesh
	mtl    rl.Material
	tex    rl.Texture2D
	tiling float32
}

// NewGround builds the plane mesh and uploads its grain texture.
func NewGround(cfg config.GroundConfig, lit *Lit) (*Ground, error) {
	base, err := texture.ParseHex(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("render: ground: %w", err)
	}
	img, err := texture.Ground(cfg.TextureSize, base, cfg.Grain)
	if err != nil {
		return nil, fmt.Errorf("render: ground: %w", err)
	}
	rlImg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rlImg)
	rl.UnloadImage(rlImg)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	mtl := rl.LoadMaterialDefault()
	mtl.Shader = lit.Shader()
	rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}

	tiling := cfg.Tiling
	if tiling <= 0 {
		tiling = 1
	}
	return &Ground{
		mesh:   rl.GenMeshPlane(cfg.Size, cfg.Size, 1, 1),
		mtl:    mtl,
		tex:    tex,
		tiling: tiling,
	}, nil
}

// Draw renders the plane. Must be called between BeginMode3D and EndMode3D.
func (g *Ground) Draw(lit *Lit) {
	lit.SetTiling(g.tiling)
	rl.DrawMesh(g.mesh, g.mtl, rl.MatrixIdentity())
	lit.SetTiling(1)
}

// Unload frees the mesh and texture. The shader belongs to Lit.
func (g *Ground) Unload() {
	rl.UnloadMesh(&g.mesh)
	rl.UnloadTexture(g.tex)
}
