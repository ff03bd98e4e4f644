package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// Text is only refreshed every updateInterval frames.
	updateInterval = 30
)

// Debug draws the runtime overlay in the top-right corner. All lines are off by default.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowState    bool

	state      func() string
	font       rl.Font
	frameCount uint32
	fpsText    string
	memText    string
	memStats   runtime.MemStats
}

// New returns an overlay with every line hidden. state supplies the
// controller line and may be nil.
func New(state func() string) *Debug {
	return &Debug{state: state}
}

// SetShowFPS sets whether the FPS counter is drawn.
func (d *Debug) SetShowFPS(show bool) { d.ShowFPS = show }

// SetShowMemAlloc sets whether the heap allocation line is drawn under FPS.
func (d *Debug) SetShowMemAlloc(show bool) { d.ShowMemAlloc = show }

// SetShowState sets whether the camera and character state line is drawn.
func (d *Debug) SetShowState(show bool) { d.ShowState = show }

// SetFont sets the overlay font. Zero texture ID = use raylib default.
func (d *Debug) SetFont(font rl.Font) { d.font = font }

// Draw renders the enabled lines. Call last in the draw loop.
// The state line is read every frame; FPS and heap every updateInterval frames.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if d.ShowFPS && d.fpsText == "" || d.ShowMemAlloc && d.memText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		d.drawRight(d.fpsText, screenW, y, rl.Green)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.memStats)
			d.memText = fmt.Sprintf("Mem: %.2f MiB", float64(d.memStats.Alloc)/(1024*1024))
		}
		d.drawRight(d.memText, screenW, y, rl.Green)
		y += lineHeight
	}
	if d.ShowState && d.state != nil {
		d.drawRight(d.state(), screenW, y, rl.Yellow)
	}
}

func (d *Debug) drawRight(text string, screenW, y int32, c rl.Color) {
	if text == "" {
		return
	}
	if d.font.Texture.ID != 0 {
		w := rl.MeasureTextEx(d.font, text, fontSize, 1).X
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(screenW)-w-padding, float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(text, screenW-rl.MeasureText(text, fontSize)-padding, y, fontSize, c)
}
