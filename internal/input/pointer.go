package input

import "github.com/go-gl/mathgl/mgl32"

// Pointer remembers the latest pointer position in screen pixels and as
// normalized device coordinates (x right, y up, both in [-1, 1]).
type Pointer struct {
	screen mgl32.Vec2
	ndc    mgl32.Vec2
	width  float32
	height float32
	seen   bool
}

// Move records a pointer event at (x, y) inside a viewport of width x height pixels.
// Events with an empty viewport are ignored.
func (p *Pointer) Move(x, y, width, height float32) {
	if width <= 0 || height <= 0 {
		return
	}
	p.screen = mgl32.Vec2{x, y}
	p.width, p.height = width, height
	p.ndc = mgl32.Vec2{
		x/width*2 - 1,
		-(y/height)*2 + 1,
	}
	p.seen = true
}

// NDC returns the normalized device coordinates of the last event.
func (p *Pointer) NDC() mgl32.Vec2 {
	return p.ndc
}

// Screen returns the pixel position of the last event.
func (p *Pointer) Screen() mgl32.Vec2 {
	return p.screen
}

// Seen reports whether any pointer event has been recorded.
func (p *Pointer) Seen() bool {
	return p.seen
}
