// Package interaction owns the character and camera-mode state of the scene and
// mediates between input intents, the tween player and the deferred scheduler.
//
// Everything here runs on the frame loop's goroutine. The character position is
// written only by the move timeline while a move is in progress.
package interaction

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"portfolio-scene/internal/input"
	"portfolio-scene/internal/logger"
	"portfolio-scene/internal/timer"
	"portfolio-scene/internal/tween"
)

// Mode is the camera mode.
type Mode int

const (
	// ModeFree leaves the camera to orbit input.
	ModeFree Mode = iota
	// ModeFollowing moves the camera with the character every frame.
	ModeFollowing
)

func (m Mode) String() string {
	if m == ModeFollowing {
		return "following"
	}
	return "free"
}

// Camera is the camera the follow mode drives.
type Camera interface {
	Position() mgl32.Vec3
	SetPosition(p mgl32.Vec3)
	LookAt(p mgl32.Vec3)
}

// Orbit is the free orbit control the controller locks and releases.
type Orbit interface {
	SetEnabled(enabled bool)
	SetTarget(pivot mgl32.Vec3)
}

// Animator plays move timelines; *tween.Player satisfies it.
type Animator interface {
	Play(tl tween.Timeline, onComplete func()) tween.Handle
}

// Scheduler runs deferred actions; *timer.Scheduler satisfies it.
type Scheduler interface {
	After(delay time.Duration, fn func()) timer.Handle
}

// Settings are the fixed movement and camera parameters.
type Settings struct {
	MoveDistance    float32
	JumpHeight      float32
	MoveDuration    time.Duration
	SettleDelay     time.Duration
	FollowSmoothing float32
}

// DefaultSettings returns a 3 unit step, 1 unit hop, 200ms move, 300ms settle and 0.1 smoothing.
func DefaultSettings() Settings {
	return Settings{
		MoveDistance:    3,
		JumpHeight:      1,
		MoveDuration:    200 * time.Millisecond,
		SettleDelay:     300 * time.Millisecond,
		FollowSmoothing: 0.1,
	}
}

// Character is the controllable entity.
type Character struct {
	Position     mgl32.Vec3
	MoveDistance float32
	JumpHeight   float32
	MoveDuration time.Duration
	IsMoving     bool
}

// Controller is the single owner of interaction state.
type Controller struct {
	settings Settings
	cam      Camera
	orbit    Orbit
	anim     Animator
	sched    Scheduler
	log      *logger.Logger

	character   *Character
	mode        Mode
	offset      mgl32.Vec3
	orbitLocked bool
	unlock      timer.Handle
	move        tween.Handle
}

// New returns a controller in free mode with no character bound.
func New(s Settings, cam Camera, orbit Orbit, anim Animator, sched Scheduler, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		settings: s,
		cam:      cam,
		orbit:    orbit,
		anim:     anim,
		sched:    sched,
		log:      log,
		mode:     ModeFree,
	}
}

// BindCharacter attaches the character at its load position. The camera offset
// is captured from the current camera position, the camera starts following and
// control is handed to the orbit after the settle delay. Binding while a move is
// in progress is ignored.
func (c *Controller) BindCharacter(pos mgl32.Vec3) {
	if c.move.Active() {
		return
	}
	c.character = &Character{
		Position:     pos,
		MoveDistance: c.settings.MoveDistance,
		JumpHeight:   c.settings.JumpHeight,
		MoveDuration: c.settings.MoveDuration,
	}
	c.offset = c.cam.Position().Sub(pos)
	c.lockOrbit()
	c.unlock.Cancel()
	c.unlock = c.sched.After(c.settings.SettleDelay, c.releaseOrbit)
	c.log.Debug("character bound", zap.Any("position", pos), zap.Any("offset", c.offset))
}

// HandleKey feeds a key name through the input adapter. Unrecognized keys are ignored.
func (c *Controller) HandleKey(key string) bool {
	d, ok := input.KeyDirection(key)
	if !ok {
		return false
	}
	return c.RequestMove(d)
}

// RequestMove starts a one-step move in d. It reports false, changing nothing,
// when no character is bound or a move is already in progress.
func (c *Controller) RequestMove(d input.Direction) bool {
	ch := c.character
	if ch == nil {
		c.log.Debug("move ignored: no character", zap.Stringer("direction", d))
		return false
	}
	if ch.IsMoving {
		c.log.Debug("move ignored: already moving", zap.Stringer("direction", d))
		return false
	}

	from := ch.Position
	target := from.Add(d.Delta().Mul(ch.MoveDistance))

	ch.IsMoving = true
	c.lockOrbit()
	c.unlock.Cancel()

	half := ch.MoveDuration / 2
	var tl tween.Timeline
	tl.Add(tween.Track{From: from.X(), To: target.X(), Duration: ch.MoveDuration, Set: func(v float32) { ch.Position[0] = v }}).
		Add(tween.Track{From: from.Z(), To: target.Z(), Duration: ch.MoveDuration, Set: func(v float32) { ch.Position[2] = v }}).
		Add(tween.Track{From: from.Y(), To: from.Y() + ch.JumpHeight, Duration: half, Ease: ease.OutQuad, Set: func(v float32) { ch.Position[1] = v }}).
		Add(tween.Track{From: from.Y() + ch.JumpHeight, To: from.Y(), Duration: ch.MoveDuration - half, Offset: half, Ease: ease.InQuad, Set: func(v float32) { ch.Position[1] = v }})

	c.move = c.anim.Play(tl, func() {
		ch.IsMoving = false
		c.unlock = c.sched.After(c.settings.SettleDelay, c.releaseOrbit)
		c.log.Debug("move complete", zap.Any("position", ch.Position))
	})
	c.log.Debug("move started", zap.Stringer("direction", d), zap.Any("target", target))
	return true
}

// Tick runs once per rendered frame. While following, the camera closes a fixed
// fraction of the distance to the character plus offset and aims at the character.
func (c *Controller) Tick() {
	if c.mode != ModeFollowing || c.character == nil {
		return
	}
	pos := c.character.Position
	desired := pos.Add(c.offset)
	c.cam.SetPosition(lerpVec3(c.cam.Position(), desired, c.settings.FollowSmoothing))
	c.cam.LookAt(pos)
}

func (c *Controller) lockOrbit() {
	c.mode = ModeFollowing
	c.orbitLocked = true
	c.orbit.SetEnabled(false)
}

// releaseOrbit is the deferred unlock: hand the camera back to the orbit pivoting on the character.
func (c *Controller) releaseOrbit() {
	if c.character == nil || c.character.IsMoving {
		return
	}
	c.mode = ModeFree
	c.orbitLocked = false
	c.orbit.SetEnabled(true)
	c.orbit.SetTarget(c.character.Position)
	c.log.Debug("orbit released", zap.Any("pivot", c.character.Position))
}

// Mode returns the current camera mode.
func (c *Controller) Mode() Mode { return c.mode }

// Moving reports whether a move is in progress.
func (c *Controller) Moving() bool { return c.character != nil && c.character.IsMoving }

// OrbitLocked reports whether orbit input is currently disabled by the controller.
func (c *Controller) OrbitLocked() bool { return c.orbitLocked }

// Offset returns the camera-to-character offset captured at bind time.
func (c *Controller) Offset() mgl32.Vec3 { return c.offset }

// UnlockPending reports whether a deferred orbit release is scheduled.
func (c *Controller) UnlockPending() bool { return c.unlock.Pending() }

// CharacterPosition returns the character position, or false when none is bound.
func (c *Controller) CharacterPosition() (mgl32.Vec3, bool) {
	if c.character == nil {
		return mgl32.Vec3{}, false
	}
	return c.character.Position, true
}

// Settings returns the parameters the controller was built with.
func (c *Controller) Settings() Settings { return c.settings }
