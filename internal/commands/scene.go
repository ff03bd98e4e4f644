package commands

import (
	"errors"
	"flag"
	"fmt"

	"portfolio-scene/internal/catalog"
	"portfolio-scene/internal/input"
)

// Overlay is the debug overlay the toggle commands act on.
type Overlay interface {
	SetShowFPS(show bool)
	SetShowMemAlloc(show bool)
	SetShowState(show bool)
}

// Scene is the part of the scene the console can drive.
type Scene interface {
	RequestMove(d input.Direction) bool
	Open(name string) error
}

// Deps are the targets of the built-in scene commands.
type Deps struct {
	Overlay Overlay
	Scene   Scene
	Catalog *catalog.Catalog
	Save    func() error
	Print   func(line string)
}

// RegisterScene adds fps, mem, state, move, open, exhibits, save and help.
func RegisterScene(r *Registry, d Deps) {
	out := d.Print
	if out == nil {
		out = func(string) {}
	}

	r.Register("fps", "cmd fps --show|--hide", toggle(d.Overlay.SetShowFPS))
	r.Register("mem", "cmd mem --show|--hide", toggle(d.Overlay.SetShowMemAlloc))
	r.Register("state", "cmd state --show|--hide", toggle(d.Overlay.SetShowState))

	r.Register("move", "cmd move <forward|backward|left|right|w|a|s|d>", func(fs *flag.FlagSet) func() error {
		return func() error {
			if fs.NArg() != 1 {
				return errors.New("move: expected one direction")
			}
			arg := fs.Arg(0)
			dir, ok := input.ParseDirection(arg)
			if !ok {
				dir, ok = input.KeyDirection(arg)
			}
			if !ok {
				return fmt.Errorf("move: unknown direction %q", arg)
			}
			if !d.Scene.RequestMove(dir) {
				return errors.New("move: ignored, no character or a move is in progress")
			}
			return nil
		}
	})

	r.Register("open", "cmd open <node>", func(fs *flag.FlagSet) func() error {
		return func() error {
			if fs.NArg() != 1 {
				return errors.New("open: expected one node name")
			}
			return d.Scene.Open(fs.Arg(0))
		}
	})

	r.Register("exhibits", "cmd exhibits", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, e := range d.Catalog.Exhibits() {
				out(fmt.Sprintf("%-8s %s", e.Name, e.DisplayTitle()))
			}
			return nil
		}
	})

	r.Register("save", "cmd save", func(fs *flag.FlagSet) func() error {
		return func() error {
			if d.Save == nil {
				return errors.New("save: not available")
			}
			if err := d.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
			out("settings saved")
			return nil
		}
	})

	r.Register("help", "cmd help", func(fs *flag.FlagSet) func() error {
		return func() error {
			for _, u := range r.Usage() {
				out(u)
			}
			return nil
		}
	})
}

func toggle(set func(bool)) Builder {
	return func(fs *flag.FlagSet) func() error {
		show := fs.Bool("show", false, "show the overlay line")
		hide := fs.Bool("hide", false, "hide the overlay line")
		return func() error {
			if *show == *hide {
				return fmt.Errorf("%s: pass exactly one of --show or --hide", fs.Name())
			}
			set(*show)
			return nil
		}
	}
}
