package commands

import (
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-scene/internal/catalog"
	"portfolio-scene/internal/input"
)

type fakeOverlay struct {
	fps, mem, state bool
}

func (o *fakeOverlay) SetShowFPS(v bool)      { o.fps = v }
func (o *fakeOverlay) SetShowMemAlloc(v bool) { o.mem = v }
func (o *fakeOverlay) SetShowState(v bool)    { o.state = v }

type fakeScene struct {
	moves  []input.Direction
	accept bool
	opened []string
}

func (s *fakeScene) RequestMove(d input.Direction) bool {
	s.moves = append(s.moves, d)
	return s.accept
}

func (s *fakeScene) Open(name string) error {
	if name == "nope" {
		return errors.New("open: unknown node")
	}
	s.opened = append(s.opened, name)
	return nil
}

type fixture struct {
	reg     *Registry
	overlay *fakeOverlay
	scene   *fakeScene
	printed []string
	saved   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	f := &fixture{reg: NewRegistry(), overlay: &fakeOverlay{}, scene: &fakeScene{accept: true}}
	RegisterScene(f.reg, Deps{
		Overlay: f.overlay,
		Scene:   f.scene,
		Catalog: cat,
		Save:    func() error { f.saved++; return nil },
		Print:   func(line string) { f.printed = append(f.printed, line) },
	})
	return f
}

func (f *fixture) run(line string) error {
	args, ok := Parse(line)
	if !ok {
		return errors.New("not a command")
	}
	return f.reg.Execute(args)
}

func TestParse(t *testing.T) {
	args, ok := Parse("cmd fps --show")
	assert.True(t, ok)
	assert.Equal(t, []string{"fps", "--show"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("hello")
	assert.False(t, ok)
	_, ok = Parse("CMD fps")
	assert.False(t, ok)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t)
	assert.Error(t, f.reg.Execute(nil))
	assert.ErrorContains(t, f.run("cmd warp"), "unknown command")
	assert.ErrorContains(t, f.run("cmd fps --loud"), "usage")
}

func TestToggles(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("cmd fps --show"))
	assert.True(t, f.overlay.fps)
	require.NoError(t, f.run("cmd fps --hide"))
	assert.False(t, f.overlay.fps, "flags from the previous call do not leak")

	require.NoError(t, f.run("cmd mem -show"))
	assert.True(t, f.overlay.mem)
	require.NoError(t, f.run("cmd state --show"))
	assert.True(t, f.overlay.state)

	assert.Error(t, f.run("cmd state"))
	assert.Error(t, f.run("cmd state --show --hide"))
}

func TestMove(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("cmd move forward"))
	require.NoError(t, f.run("cmd move ArrowLeft"))
	require.NoError(t, f.run("cmd move D"))
	assert.Equal(t, []input.Direction{input.Forward, input.Left, input.Right}, f.scene.moves)

	assert.Error(t, f.run("cmd move"))
	assert.Error(t, f.run("cmd move up down"))
	assert.ErrorContains(t, f.run("cmd move sideways"), "unknown direction")

	f.scene.accept = false
	assert.ErrorContains(t, f.run("cmd move s"), "ignored")
}

func TestOpen(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("cmd open Cube084"))
	assert.Equal(t, []string{"Cube084"}, f.scene.opened)
	assert.Error(t, f.run("cmd open nope"))
	assert.Error(t, f.run("cmd open"))
}

func TestExhibitsAndHelp(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("cmd exhibits"))
	require.Len(t, f.printed, 20)
	assert.Contains(t, f.printed[0], "Cube009")

	f.printed = nil
	require.NoError(t, f.run("cmd help"))
	assert.Contains(t, f.printed, "cmd fps --show|--hide")
	assert.Contains(t, f.printed, "cmd save")
	assert.Len(t, f.printed, 8)
}

func TestSave(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.run("cmd save"))
	assert.Equal(t, 1, f.saved)
	assert.Equal(t, []string{"settings saved"}, f.printed)

	r := NewRegistry()
	RegisterScene(r, Deps{Overlay: &fakeOverlay{}, Scene: &fakeScene{}, Save: func() error { return errors.New("disk full") }})
	assert.ErrorContains(t, r.Execute([]string{"save"}), "disk full")
}

func TestRegister_CustomCommand(t *testing.T) {
	r := NewRegistry()
	var got string
	r.Register("echo", "cmd echo --text <s>", func(fs *flag.FlagSet) func() error {
		text := fs.String("text", "", "")
		return func() error { got = *text; return nil }
	})
	require.NoError(t, r.Execute([]string{"echo", "--text", "hi"}))
	assert.Equal(t, "hi", got)
	assert.Equal(t, []string{"cmd echo --text <s>"}, r.Usage())
}
