package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"portfolio-scene/internal/catalog"
	"portfolio-scene/internal/gltfscan"
	"portfolio-scene/internal/orbit"
	"portfolio-scene/internal/registry"
	"portfolio-scene/internal/render"
)

// clickSlop is how far, in pixels, the pointer may travel between press and
// release for the release to count as a click rather than an orbit drag.
const clickSlop = 5

type dragState struct {
	down    bool
	start   mgl32.Vec2
	dragged bool
}

// orbitInput reads this frame's drag and wheel. The rig ignores it while disabled.
func (s *Scene) orbitInput() (in orbit.Input) {
	if !s.pointerEnabled {
		return in
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		d := rl.GetMouseDelta()
		in.DragX, in.DragY = d.X, d.Y
	}
	in.Wheel = rl.GetMouseWheelMove()
	return in
}

// updatePointer tracks the pointer, refreshes the hover set and turns a
// press-release without drag into a click.
func (s *Scene) updatePointer() {
	if !s.pointerEnabled {
		return
	}
	mouse := rl.GetMousePosition()
	s.pointer.Move(mouse.X, mouse.Y, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	at := s.pointer.Screen()

	click := false
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		s.drag = dragState{down: true, start: at}
	case s.drag.down && !s.drag.dragged && at.Sub(s.drag.start).Len() > clickSlop:
		s.drag.dragged = true
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		click = s.drag.down && !s.drag.dragged
		s.drag = dragState{}
	}

	clear(s.hovered)
	if s.reg == nil {
		return
	}
	hit := s.hitFunc(rl.GetScreenToWorldRay(rl.NewVector2(at[0], at[1]), s.Camera))
	for _, reg := range s.reg.Hits(hit) {
		s.hovered[reg] = true
	}
	if !click {
		return
	}
	if reg, ok := s.reg.Pick(hit); ok {
		s.selectName(reg.Name)
	}
}

// hitFunc tests a region's box first, then its meshes' triangles.
func (s *Scene) hitFunc(ray rl.Ray) registry.HitFunc {
	return func(reg *registry.Region, box gltfscan.Box) (float32, bool) {
		bb := rl.NewBoundingBox(render.Vector3(box.Min), render.Vector3(box.Max))
		if !rl.GetRayCollisionBox(ray, bb).Hit {
			return 0, false
		}
		m := s.reg.Transform(reg, 1)
		var (
			best float32
			hit  bool
		)
		for _, i := range reg.Meshes {
			if d, ok := s.model.RayHit(ray, i, m); ok && (!hit || d < best) {
				best, hit = d, true
			}
		}
		return best, hit
	}
}

func (s *Scene) selectName(name string) {
	e, ok := s.cat.Lookup(name)
	if !ok {
		e = catalog.Exhibit{Name: name}
	}
	s.log.Debug("exhibit selected", zap.String("name", name))
	if s.OnSelect != nil {
		s.OnSelect(e)
	}
}
