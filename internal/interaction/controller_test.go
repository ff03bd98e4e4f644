package interaction

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-scene/internal/input"
	"portfolio-scene/internal/timer"
	"portfolio-scene/internal/tween"
)

const frame = 10 * time.Millisecond

type fakeCamera struct {
	pos  mgl32.Vec3
	look mgl32.Vec3
}

func (f *fakeCamera) Position() mgl32.Vec3     { return f.pos }
func (f *fakeCamera) SetPosition(p mgl32.Vec3) { f.pos = p }
func (f *fakeCamera) LookAt(p mgl32.Vec3)      { f.look = p }

type fakeOrbit struct {
	enabled bool
	pivot   mgl32.Vec3
	toggles int
}

func (f *fakeOrbit) SetEnabled(e bool) {
	if e != f.enabled {
		f.toggles++
	}
	f.enabled = e
}
func (f *fakeOrbit) SetTarget(p mgl32.Vec3) { f.pivot = p }

// rig wires a controller to a real player and scheduler and steps them the way the frame loop does.
type rig struct {
	t      *testing.T
	cam    *fakeCamera
	orbit  *fakeOrbit
	player *tween.Player
	sched  *timer.Scheduler
	ctl    *Controller
}

func newRig(t *testing.T, camPos, charPos mgl32.Vec3) *rig {
	r := &rig{
		t:      t,
		cam:    &fakeCamera{pos: camPos},
		orbit:  &fakeOrbit{enabled: true},
		player: tween.NewPlayer(),
		sched:  timer.NewScheduler(),
	}
	r.ctl = New(DefaultSettings(), r.cam, r.orbit, r.player, r.sched, nil)
	r.ctl.BindCharacter(charPos)
	return r
}

func (r *rig) step() {
	r.sched.Advance(frame)
	r.player.Update(frame)
	r.ctl.Tick()
}

func (r *rig) run(d time.Duration) {
	for t := time.Duration(0); t < d; t += frame {
		r.step()
	}
}

// settle finishes any move and lets the orbit handover happen.
func (r *rig) settle() {
	r.run(time.Second)
	require.False(r.t, r.ctl.Moving())
	require.Equal(r.t, ModeFree, r.ctl.Mode())
}

// untilIdle steps until the move completes and returns the number of frames taken.
func (r *rig) untilIdle() int {
	n := 0
	for r.ctl.Moving() {
		r.step()
		n++
		require.Less(r.t, n, 1000, "move never completed")
	}
	return n
}

func pos(t *testing.T, c *Controller) mgl32.Vec3 {
	p, ok := c.CharacterPosition()
	require.True(t, ok)
	return p
}

func TestRequestMove_TargetPerDirection(t *testing.T) {
	start := mgl32.Vec3{1, 2, 3}
	tests := []struct {
		dir  input.Direction
		want mgl32.Vec3
	}{
		{input.Forward, mgl32.Vec3{1, 2, 0}},
		{input.Backward, mgl32.Vec3{1, 2, 6}},
		{input.Left, mgl32.Vec3{-2, 2, 3}},
		{input.Right, mgl32.Vec3{4, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			r := newRig(t, mgl32.Vec3{0, 50, 50}, start)
			r.settle()

			require.True(t, r.ctl.RequestMove(tt.dir))
			r.untilIdle()
			assert.Equal(t, tt.want, pos(t, r.ctl))
		})
	}
}

func TestRequestMove_WithoutCharacterIsIgnored(t *testing.T) {
	cam := &fakeCamera{}
	orbit := &fakeOrbit{enabled: true}
	player := tween.NewPlayer()
	ctl := New(DefaultSettings(), cam, orbit, player, timer.NewScheduler(), nil)

	assert.False(t, ctl.RequestMove(input.Right))
	assert.False(t, ctl.Moving())
	assert.Equal(t, ModeFree, ctl.Mode())
	assert.True(t, orbit.enabled)
	assert.Equal(t, 0, player.Len())
	_, ok := ctl.CharacterPosition()
	assert.False(t, ok)
}

func TestRequestMove_LocksOrbitAndFollows(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()
	require.True(t, r.orbit.enabled)

	r.ctl.RequestMove(input.Forward)
	assert.True(t, r.ctl.Moving())
	assert.Equal(t, ModeFollowing, r.ctl.Mode())
	assert.True(t, r.ctl.OrbitLocked())
	assert.False(t, r.orbit.enabled)
}

func TestRequestMove_SecondRequestDuringMoveHasNoEffect(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()

	require.True(t, r.ctl.RequestMove(input.Right))
	r.step()
	before := pos(t, r.ctl)

	assert.False(t, r.ctl.RequestMove(input.Left))
	assert.Equal(t, before, pos(t, r.ctl))
	assert.True(t, r.ctl.Moving())
	assert.Equal(t, 1, r.player.Len())

	r.untilIdle()
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, pos(t, r.ctl))
}

func TestRequestMove_HopRisesAndReturns(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{0, 0, 0})
	r.settle()

	r.ctl.RequestMove(input.Forward)
	var peak float32
	for r.ctl.Moving() {
		r.step()
		p := pos(t, r.ctl)
		assert.GreaterOrEqual(t, p.Y(), float32(0))
		assert.LessOrEqual(t, p.Y(), float32(1)+1e-5)
		if p.Y() > peak {
			peak = p.Y()
		}
	}
	assert.InDelta(t, 1, peak, 1e-4, "hop reaches jump height at the midpoint")
	assert.Equal(t, float32(0), pos(t, r.ctl).Y())
}

func TestPressD_SettlesThenFreesAfterExactlySettleDelay(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()

	require.True(t, r.ctl.HandleKey("d"))
	frames := r.untilIdle()
	assert.Equal(t, 20, frames, "200ms move at 10ms frames")
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, pos(t, r.ctl))
	assert.False(t, r.ctl.Moving())
	assert.Equal(t, ModeFollowing, r.ctl.Mode())
	assert.True(t, r.ctl.UnlockPending())

	r.run(290 * time.Millisecond)
	assert.Equal(t, ModeFollowing, r.ctl.Mode(), "still settling at 290ms")

	r.step()
	assert.Equal(t, ModeFree, r.ctl.Mode(), "free at 300ms")
	assert.False(t, r.ctl.OrbitLocked())
	assert.True(t, r.orbit.enabled)
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, r.orbit.pivot, "orbit re-centred on resting position")
}

func TestTwoRapidForwardPressesMoveOneStep(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()

	assert.True(t, r.ctl.HandleKey("w"))
	r.run(50 * time.Millisecond)
	assert.False(t, r.ctl.HandleKey("W"))
	r.untilIdle()

	assert.Equal(t, mgl32.Vec3{0, 0, -3}, pos(t, r.ctl))
}

func TestNewMoveBeforeSettleCancelsPendingUnlock(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()
	togglesBefore := r.orbit.toggles

	r.ctl.RequestMove(input.Right)
	r.untilIdle()
	require.True(t, r.ctl.UnlockPending())

	r.run(100 * time.Millisecond)
	require.True(t, r.ctl.RequestMove(input.Right))
	assert.False(t, r.ctl.UnlockPending(), "pending unlock cancelled by the new move")

	// ends 100ms past when the first unlock would have fired, 200ms before the second
	r.run(300 * time.Millisecond)
	assert.False(t, r.ctl.Moving())
	assert.Equal(t, ModeFollowing, r.ctl.Mode())
	assert.False(t, r.orbit.enabled)

	r.run(200 * time.Millisecond)
	assert.Equal(t, ModeFree, r.ctl.Mode())
	assert.Equal(t, mgl32.Vec3{6, 0, 0}, r.orbit.pivot)
	// exactly one disable and one enable for the whole sequence
	assert.Equal(t, togglesBefore+2, r.orbit.toggles)
}

func TestReleaseOrbitTwiceIsIdempotent(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()
	toggles := r.orbit.toggles

	r.ctl.releaseOrbit()
	assert.Equal(t, ModeFree, r.ctl.Mode())
	assert.Equal(t, toggles, r.orbit.toggles)
}

func TestHandleKey_IgnoresUnknownKeys(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()

	assert.False(t, r.ctl.HandleKey("q"))
	assert.False(t, r.ctl.HandleKey("Enter"))
	assert.False(t, r.ctl.Moving())
	assert.Equal(t, ModeFree, r.ctl.Mode())
}

func TestBindCharacter_CapturesOffsetAndHandsOver(t *testing.T) {
	r := newRig(t, mgl32.Vec3{160, 80, -128}, mgl32.Vec3{128, 0, -112})

	assert.Equal(t, mgl32.Vec3{32, 80, -16}, r.ctl.Offset())
	assert.Equal(t, ModeFollowing, r.ctl.Mode())
	assert.False(t, r.orbit.enabled)

	r.step()
	assert.Equal(t, mgl32.Vec3{128, 0, -112}, r.cam.look, "follow aims at the character")
	assert.Equal(t, mgl32.Vec3{160, 80, -128}, r.cam.pos, "offset was captured from this position")

	r.run(300 * time.Millisecond)
	assert.Equal(t, ModeFree, r.ctl.Mode())
	assert.Equal(t, mgl32.Vec3{128, 0, -112}, r.orbit.pivot)
}

func TestTick_FreeModeLeavesCameraAlone(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()

	r.cam.pos = mgl32.Vec3{9, 9, 9}
	r.cam.look = mgl32.Vec3{1, 1, 1}
	r.ctl.Tick()
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, r.cam.pos)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, r.cam.look)
}

func TestFollow_ConvergesWithoutOvershoot(t *testing.T) {
	r := newRig(t, mgl32.Vec3{0, 50, 50}, mgl32.Vec3{})
	r.settle()
	require.Equal(t, mgl32.Vec3{0, 50, 50}, r.ctl.Offset())

	r.ctl.RequestMove(input.Forward)
	prevZ := r.cam.pos.Z()
	for r.ctl.Moving() {
		r.sched.Advance(frame)
		r.player.Update(frame)
		r.ctl.Tick()
		z := r.cam.pos.Z()
		assert.LessOrEqual(t, z, prevZ, "camera only moves toward the target")
		assert.GreaterOrEqual(t, z, float32(47), "never past the target")
		prevZ = z
	}

	// keep ticking follow while the settle window is held open
	for i := 0; i < 200; i++ {
		r.ctl.Tick()
		z := r.cam.pos.Z()
		assert.GreaterOrEqual(t, z, float32(47))
		assert.LessOrEqual(t, z, prevZ)
		prevZ = z
	}
	assert.InDelta(t, 0, r.cam.pos.X(), 1e-4)
	assert.InDelta(t, 50, r.cam.pos.Y(), 1e-3)
	assert.InDelta(t, 47, r.cam.pos.Z(), 1e-3)
	assert.Equal(t, mgl32.Vec3{0, 0, -3}, r.cam.look)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "free", ModeFree.String())
	assert.Equal(t, "following", ModeFollowing.String())
}
