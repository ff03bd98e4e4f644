package registry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"portfolio-scene/internal/catalog"
	"portfolio-scene/internal/gltfscan"
	"portfolio-scene/internal/logger"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) gltfscan.Box {
	return gltfscan.Box{Min: mgl32.Vec3{minX, minY, minZ}, Max: mgl32.Vec3{maxX, maxY, maxZ}}
}

func sampleGraph() *gltfscan.Graph {
	return &gltfscan.Graph{
		MeshCount: 6,
		Nodes: []gltfscan.Node{
			{Index: 0, Name: "Root", Parent: -1},
			{Index: 1, Name: "Cube084", Parent: 0},
			{Index: 2, Name: "Cube084_body", Parent: 1, FirstMesh: 0, MeshCount: 2, HasBounds: true, Bounds: box(0, 0, 0, 1, 1, 1)},
			{Index: 3, Name: "Cube084_label", Parent: 2, FirstMesh: 2, MeshCount: 1, HasBounds: true, Bounds: box(1, 0, 0, 2, 1, 1)},
			{Index: 4, Name: "face001", Parent: 0, FirstMesh: 3, MeshCount: 1, HasBounds: true, Bounds: box(-1, 0, 4, 1, 2, 6), Origin: mgl32.Vec3{0, 0, 5}},
			{Index: 5, Name: "Tree", Parent: 0, FirstMesh: 4, MeshCount: 1, HasBounds: true, Bounds: box(50, 0, 50, 51, 9, 51)},
			{Index: 6, Name: "Cube085", Parent: 1, FirstMesh: 5, MeshCount: 1, HasBounds: true, Bounds: box(5, 0, 0, 6, 1, 1)},
		},
	}
}

func sampleNames(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse([]byte("character: face001\nclickable: [Cube084, Cube085, Cube090, face001]\n"))
	require.NoError(t, err)
	return c
}

// rayHit is a slab test for a ray from origin along dir.
func rayHit(origin, dir mgl32.Vec3) HitFunc {
	return func(_ *Region, b gltfscan.Box) (float32, bool) {
		tmin, tmax := float32(-1e30), float32(1e30)
		for i := 0; i < 3; i++ {
			if dir[i] == 0 {
				if origin[i] < b.Min[i] || origin[i] > b.Max[i] {
					return 0, false
				}
				continue
			}
			t1 := (b.Min[i] - origin[i]) / dir[i]
			t2 := (b.Max[i] - origin[i]) / dir[i]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin, tmax = max(tmin, t1), min(tmax, t2)
		}
		if tmax < max(tmin, 0) {
			return 0, false
		}
		return max(tmin, 0), true
	}
}

func TestBind(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	r := Bind(sampleGraph(), sampleNames(t), logger.NewWithCore(core))

	regions := r.Regions()
	require.Len(t, regions, 3)
	assert.Equal(t, "Cube084", regions[0].Name)
	assert.Equal(t, "Cube085", regions[1].Name)
	assert.Equal(t, "face001", regions[2].Name)

	cube, ok := r.Region("Cube084")
	require.True(t, ok)
	assert.Equal(t, []int{0, 1, 2}, cube.Meshes, "descendant meshes join the nearest recognized ancestor")
	assert.Equal(t, box(0, 0, 0, 2, 1, 1), cube.Bounds)
	assert.False(t, cube.Character)

	nested, ok := r.Region("Cube085")
	require.True(t, ok)
	assert.Equal(t, []int{5}, nested.Meshes, "a recognized node nested under another keeps its own meshes")

	_, ok = r.Region("Cube090")
	assert.False(t, ok)

	owner, ok := r.Owner(2)
	require.True(t, ok)
	assert.Same(t, cube, owner)
	_, ok = r.Owner(4)
	assert.False(t, ok, "unrecognized meshes have no owner")
	_, ok = r.Owner(99)
	assert.False(t, ok)

	pos, ok := r.Character()
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, pos)

	unknown := recorded.FilterMessage("unrecognized node").All()
	assert.Len(t, unknown, 4)
	missing := recorded.FilterMessage("recognized node missing from model").All()
	require.Len(t, missing, 1)
	assert.Equal(t, "Cube090", missing[0].ContextMap()["name"])
	assert.Equal(t, zapcore.WarnLevel, missing[0].Level)
}

func TestBind_NoCharacter(t *testing.T) {
	g := &gltfscan.Graph{Nodes: []gltfscan.Node{{Name: "Cube084", Parent: -1}}}
	r := Bind(g, sampleNames(t), nil)

	_, ok := r.Character()
	assert.False(t, ok)
	r.SetCharacterPosition(mgl32.Vec3{1, 2, 3})
	reg, ok := r.Region("Cube084")
	require.True(t, ok)
	_, ok = r.Bounds(reg)
	assert.False(t, ok, "region without meshes has no bounds")
}

func TestPick_NearestHit(t *testing.T) {
	r := Bind(sampleGraph(), sampleNames(t), nil)
	hit := rayHit(mgl32.Vec3{-10, 0.5, 0.5}, mgl32.Vec3{1, 0, 0})

	reg, ok := r.Pick(hit)
	require.True(t, ok)
	assert.Equal(t, "Cube084", reg.Name)

	hits := r.Hits(hit)
	require.Len(t, hits, 2)
	assert.Equal(t, "Cube084", hits[0].Name)
	assert.Equal(t, "Cube085", hits[1].Name)

	reg, ok = r.Pick(rayHit(mgl32.Vec3{-10, 50, 0.5}, mgl32.Vec3{1, 0, 0}))
	assert.False(t, ok)
	assert.Nil(t, reg)
}

func TestCharacterBoundsFollowDisplacement(t *testing.T) {
	r := Bind(sampleGraph(), sampleNames(t), nil)
	face, ok := r.Region("face001")
	require.True(t, ok)

	r.SetCharacterPosition(mgl32.Vec3{0, 0, 0})
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, r.Displacement(face))
	cube, _ := r.Region("Cube084")
	assert.Equal(t, mgl32.Vec3{}, r.Displacement(cube))

	b, ok := r.Bounds(face)
	require.True(t, ok)
	assert.Equal(t, box(-1, 0, -1, 1, 2, 1), b)

	reg, ok := r.Pick(rayHit(mgl32.Vec3{-10, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}))
	require.True(t, ok)
	assert.Equal(t, "face001", reg.Name, "the moved character is now in front")
}

func TestTransform(t *testing.T) {
	r := Bind(sampleGraph(), sampleNames(t), nil)
	cube, _ := r.Region("Cube084")
	face, _ := r.Region("face001")

	assert.Equal(t, mgl32.Ident4(), r.Transform(cube, 1))

	// scaling keeps the region center fixed
	m := r.Transform(cube, 2)
	center := cube.Bounds.Center()
	got := mgl32.TransformCoordinate(center, m)
	assert.InDelta(t, center.X(), got.X(), 1e-5)
	corner := mgl32.TransformCoordinate(cube.Bounds.Max, m)
	assert.InDelta(t, 3, corner.X(), 1e-5)

	r.SetCharacterPosition(mgl32.Vec3{0, 1, 5})
	moved := mgl32.TransformCoordinate(mgl32.Vec3{0, 0, 5}, r.Transform(face, 1))
	assert.Equal(t, mgl32.Vec3{0, 1, 5}, moved)

	hover := mgl32.TransformCoordinate(face.Bounds.Center(), r.Transform(face, 1.15))
	assert.InDelta(t, face.Bounds.Center().Y()+1, hover.Y(), 1e-5)
}

func TestWithCharacter(t *testing.T) {
	names := sampleNames(t)
	assert.Same(t, Names(names), WithCharacter(names, "face001"))
	assert.Same(t, Names(names), WithCharacter(names, ""))

	listed := WithCharacter(names, "Cube085")
	assert.Equal(t, "Cube085", listed.Character())
	assert.Len(t, listed.Names(), 4)

	extra := WithCharacter(names, "hero")
	assert.True(t, extra.Recognized("hero"))
	assert.True(t, extra.Recognized("Cube084"))
	assert.Equal(t, "hero", extra.Names()[4])
}
