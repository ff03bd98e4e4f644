// Package scene glues the portfolio world to raylib: it owns the camera, the
// lit ground and model, polls keyboard and mouse, and runs the per-frame order
// the interaction controller relies on.
package scene

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"portfolio-scene/internal/catalog"
	"portfolio-scene/internal/config"
	"portfolio-scene/internal/gltfscan"
	"portfolio-scene/internal/input"
	"portfolio-scene/internal/interaction"
	"portfolio-scene/internal/lighting"
	"portfolio-scene/internal/logger"
	"portfolio-scene/internal/orbit"
	"portfolio-scene/internal/registry"
	"portfolio-scene/internal/render"
	"portfolio-scene/internal/timer"
	"portfolio-scene/internal/tween"
)

const hoverScale = 1.15

// keyNames maps raylib keys to the names the input adapter understands.
var keyNames = []struct {
	key  int32
	name string
}{
	{rl.KeyW, "w"},
	{rl.KeyA, "a"},
	{rl.KeyS, "s"},
	{rl.KeyD, "d"},
	{rl.KeyUp, "ArrowUp"},
	{rl.KeyDown, "ArrowDown"},
	{rl.KeyLeft, "ArrowLeft"},
	{rl.KeyRight, "ArrowRight"},
}

// Scene holds a 3D camera and the loaded world. Update runs input, animation
// and camera logic; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera rl.Camera3D

	log    *logger.Logger
	cat    *catalog.Catalog
	lit    *render.Lit
	ground *render.Ground
	model  *render.Model      // nil when the model could not be loaded
	reg    *registry.Registry // nil when the model could not be bound

	rig    *orbit.Rig
	player *tween.Player
	sched  *timer.Scheduler
	ctl    *interaction.Controller

	pointer    input.Pointer
	drag       dragState
	hovered    map[*registry.Region]bool
	transforms []mgl32.Mat4

	keysEnabled    bool
	pointerEnabled bool

	// OnSelect is called with the exhibit of a clicked region.
	OnSelect func(catalog.Exhibit)
}

// New builds the scene. The window and GL context must exist. A model that
// cannot be loaded is logged and the scene runs with the ground only.
func New(cfg config.Config, cat *catalog.Catalog, log *logger.Logger) (*Scene, error) {
	if log == nil {
		log = logger.Nop()
	}
	light, err := lighting.FromConfig(cfg.Lighting)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	lit, err := render.NewLit(light)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	ground, err := render.NewGround(cfg.Ground, lit)
	if err != nil {
		lit.Unload()
		return nil, fmt.Errorf("scene: %w", err)
	}

	camPos := mgl32.Vec3(cfg.Camera.Position)
	target := mgl32.Vec3(cfg.Camera.Target)
	s := &Scene{
		log:    log,
		cat:    cat,
		lit:    lit,
		ground: ground,
		rig: orbit.New(camPos, target, orbit.Options{
			Damping:     cfg.Camera.Damping,
			RotateSpeed: cfg.Camera.RotateSpeed,
			ZoomSpeed:   cfg.Camera.ZoomSpeed,
		}),
		player:         tween.NewPlayer(),
		sched:          timer.NewScheduler(),
		hovered:        make(map[*registry.Region]bool),
		keysEnabled:    true,
		pointerEnabled: true,
	}
	s.Camera.Position = render.Vector3(camPos)
	s.Camera.Target = render.Vector3(target)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = cfg.Camera.Fovy
	s.Camera.Projection = rl.CameraPerspective

	s.ctl = interaction.New(interaction.Settings{
		MoveDistance:    cfg.Character.MoveDistance,
		JumpHeight:      cfg.Character.JumpHeight,
		MoveDuration:    cfg.Character.MoveDuration,
		SettleDelay:     cfg.Camera.SettleDelay,
		FollowSmoothing: cfg.Camera.FollowSmoothing,
	}, s.rig, s.rig, s.player, s.sched, log.Named("interaction"))

	s.loadModel(cfg)
	return s, nil
}

func (s *Scene) loadModel(cfg config.Config) {
	path := cfg.Assets.ModelPath
	model, err := render.LoadModel(path, s.lit)
	if err != nil {
		s.log.Warn("model not loaded, running with the ground only", zap.String("path", path), zap.Error(err))
		return
	}
	s.model = model
	s.transforms = make([]mgl32.Mat4, model.MeshCount())

	graph, err := gltfscan.Open(path)
	if err != nil {
		s.log.Warn("model graph not readable, nothing is clickable", zap.String("path", path), zap.Error(err))
		return
	}
	if graph.MeshCount != model.MeshCount() {
		s.log.Warn("model mesh count mismatch, nothing is clickable",
			zap.Int("scanned", graph.MeshCount), zap.Int("loaded", model.MeshCount()))
		return
	}
	s.reg = registry.Bind(graph, registry.WithCharacter(s.cat, cfg.Character.Node), s.log.Named("registry"))

	if dim := graph.Bounds.MaxDimension(); dim > 0 && cfg.Camera.ZoomReference > 0 {
		s.Camera.Fovy = orbit.FitFovy(cfg.Camera.Fovy, cfg.Camera.ZoomReference, dim)
	}
	if pos, ok := s.reg.Character(); ok {
		s.ctl.BindCharacter(pos)
	}
}

// SetInput turns keyboard moves and pointer handling on or off, e.g. while the
// console or the exhibit dialog has focus.
func (s *Scene) SetInput(keys, pointer bool) {
	s.keysEnabled = keys
	if !pointer && s.pointerEnabled {
		s.drag = dragState{}
		clear(s.hovered)
	}
	s.pointerEnabled = pointer
}

// Update runs one frame: keys, timers, tweens, character sync, orbit, follow,
// camera sync and finally hover and click.
func (s *Scene) Update(dt time.Duration) {
	if s.keysEnabled {
		for _, k := range keyNames {
			if rl.IsKeyPressed(k.key) || rl.IsKeyPressedRepeat(k.key) {
				s.ctl.HandleKey(k.name)
			}
		}
	}

	s.sched.Advance(dt)
	s.player.Update(dt)
	if pos, ok := s.ctl.CharacterPosition(); ok && s.reg != nil {
		s.reg.SetCharacterPosition(pos)
	}

	s.rig.Update(s.orbitInput())
	s.ctl.Tick()
	s.Camera.Position = render.Vector3(s.rig.Position())
	s.Camera.Target = render.Vector3(s.rig.Look())

	s.updatePointer()
}

// RequestMove starts a move as if its key had been pressed.
func (s *Scene) RequestMove(d input.Direction) bool {
	return s.ctl.RequestMove(d)
}

// Open selects a recognized node by name, as a click on it would.
func (s *Scene) Open(name string) error {
	if s.reg != nil {
		if _, ok := s.reg.Region(name); !ok {
			return fmt.Errorf("open: %q is not a clickable node in the model", name)
		}
	} else if !s.cat.Recognized(name) {
		return fmt.Errorf("open: %q is not a clickable node", name)
	}
	s.selectName(name)
	return nil
}

// Controller exposes the interaction state for the overlay.
func (s *Scene) Controller() *interaction.Controller { return s.ctl }

// State is a one-line summary of the camera and character state.
func (s *Scene) State() string {
	pos, ok := s.ctl.CharacterPosition()
	if !ok {
		return fmt.Sprintf("camera %s, no character", s.ctl.Mode())
	}
	moving := ""
	if s.ctl.Moving() {
		moving = " moving"
	}
	return fmt.Sprintf("camera %s, character (%.1f, %.1f, %.1f)%s", s.ctl.Mode(), pos[0], pos[1], pos[2], moving)
}

// Draw renders the ground and the model. Hovered regions are drawn enlarged.
func (s *Scene) Draw() {
	s.lit.Apply()
	rl.BeginMode3D(s.Camera)
	s.ground.Draw(s.lit)
	if s.model != nil {
		s.drawModel()
	}
	rl.EndMode3D()
}

func (s *Scene) drawModel() {
	for i := range s.transforms {
		s.transforms[i] = mgl32.Ident4()
	}
	if s.reg != nil {
		for _, reg := range s.reg.Regions() {
			k := float32(1)
			if s.hovered[reg] {
				k = hoverScale
			}
			m := s.reg.Transform(reg, k)
			for _, i := range reg.Meshes {
				s.transforms[i] = m
			}
		}
	}
	for i, m := range s.transforms {
		s.model.DrawMesh(i, m)
	}
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	if s.model != nil {
		s.model.Unload()
	}
	s.ground.Unload()
	s.lit.Unload()
}
