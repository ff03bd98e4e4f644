package graphics

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-scene/internal/config"
)

// maxFrameStep caps the delta passed to update so a stalled frame (window drag,
// breakpoint) does not skip a whole move.
const maxFrameStep = 100 * time.Millisecond

// Loop is the work Run drives. Init runs once after the window and GL context
// exist and its error aborts the run. Close runs before the window closes, so
// GPU resources can still be released. Init and Close may be nil.
type Loop struct {
	Init   func() error
	Update func(dt time.Duration)
	Draw   func()
	Close  func()
}

// Run opens the window and runs the main loop. Each frame calls Update with
// the elapsed time, then clears the screen and calls Draw.
// Esc is left to the UI; the window closes via its close button.
func Run(cfg config.WindowConfig, loop Loop) error {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if cfg.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(cfg.TargetFPS)
	}
	if loop.Close != nil {
		defer loop.Close()
	}
	if loop.Init != nil {
		if err := loop.Init(); err != nil {
			return err
		}
	}

	for !rl.WindowShouldClose() {
		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		loop.Update(min(dt, maxFrameStep))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		loop.Draw()
		rl.EndDrawing()
	}
	return nil
}
