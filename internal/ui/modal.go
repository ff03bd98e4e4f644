package ui

import (
	_ "embed"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-scene/internal/modal"
)

//go:embed modal.css
var modalCSS string

const (
	buttonWidth  = 120
	buttonHeight = 32
	blockGap     = 14
	lineGap      = 6
)

// DefaultStylesheet returns the built-in rules for the exhibit dialog.
func DefaultStylesheet() *Stylesheet {
	sheet, err := ParseCSS(modalCSS)
	if err != nil {
		panic(err)
	}
	return sheet
}

// Modal draws the exhibit dialog: a dimmed backdrop, a centred panel with the
// title, the wrapped description and the link, plus Close and Open link buttons.
// Layout is rebuilt only when the view or the screen size changes.
type Modal struct {
	engine  *Engine
	state   *modal.State
	openURL func(url string)

	laidOut  modal.View
	screenW  int32
	screenH  int32
	nodes    []*Node
	closeBtn rl.Rectangle
	linkBtn  rl.Rectangle
}

// NewModal returns a dialog drawing st with e's styles. openURL is called when
// the link button is pressed; nil means rl.OpenURL.
func NewModal(e *Engine, st *modal.State, openURL func(string)) *Modal {
	if openURL == nil {
		openURL = rl.OpenURL
	}
	return &Modal{engine: e, state: st, openURL: openURL}
}

// ApplyGuiStyle points raygui at the engine font and a dark palette.
func ApplyGuiStyle(e *Engine) {
	gui.SetFont(e.Font())
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(rl.NewColor(28, 28, 34, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(45, 45, 52, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(62, 62, 74, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(rl.NewColor(70, 84, 100, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(210, 210, 210, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(80, 80, 94, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.NewColor(106, 176, 255, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 18)
}

// Update closes the dialog on Escape. Call once per frame before the scene sees input.
func (m *Modal) Update() {
	if m.state.IsOpen() && rl.IsKeyPressed(rl.KeyEscape) {
		m.state.Close()
	}
}

// Draw renders the dialog when it is open.
func (m *Modal) Draw() {
	if !m.state.IsOpen() {
		return
	}
	sw, sh := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if v := m.state.View(); v != m.laidOut || sw != m.screenW || sh != m.screenH || m.nodes == nil {
		m.layout(v, sw, sh)
	}

	m.engine.Draw(m.nodes)
	if gui.Button(m.closeBtn, "Close") {
		m.state.Close()
	}
	if link := m.laidOut.Link; link != "" && gui.Button(m.linkBtn, "Open link") {
		m.openURL(link)
	}
}

func (m *Modal) layout(v modal.View, sw, sh int32) {
	m.laidOut, m.screenW, m.screenH = v, sw, sh

	panel := m.engine.Style("modal", "")
	title := m.engine.Style("modal-title", "")
	desc := m.engine.Style("modal-description", "")
	link := m.engine.Style("modal-link", "")

	pad := float32(panel.Padding)
	pw := float32(panel.Width)
	if pw <= 0 || pw > float32(sw)-2*blockGap {
		pw = float32(sw) - 2*blockGap
	}
	inner := pw - 2*pad

	lines := modal.Wrap(v.Description, inner, func(s string) float32 {
		return m.engine.Measure(s, desc.FontSize)
	})
	descLine := float32(desc.FontSize + lineGap)

	ph := pad + float32(title.FontSize) + blockGap + float32(len(lines))*descLine
	if v.Link != "" {
		ph += blockGap + float32(link.FontSize)
	}
	ph += blockGap + buttonHeight + pad

	px := (float32(sw) - pw) / 2
	py := (float32(sh) - ph) / 2
	if py < 0 {
		py = 0
	}

	m.nodes = m.nodes[:0]
	m.nodes = append(m.nodes,
		NewNode("modal-backdrop", "", "", rl.NewRectangle(0, 0, float32(sw), float32(sh))),
		NewNode("modal", "", "", rl.NewRectangle(px, py, pw, ph)),
	)
	y := py + pad
	m.nodes = append(m.nodes, NewNode("modal-title", "", v.Title, rl.NewRectangle(px+pad, y, inner, float32(title.FontSize))))
	y += float32(title.FontSize) + blockGap
	for _, line := range lines {
		m.nodes = append(m.nodes, NewNode("modal-description", "", line, rl.NewRectangle(px+pad, y, inner, descLine)))
		y += descLine
	}
	if v.Link != "" {
		y += blockGap
		m.nodes = append(m.nodes, NewNode("modal-link", "", v.Link, rl.NewRectangle(px+pad, y, inner, float32(link.FontSize))))
	}

	by := py + ph - pad - buttonHeight
	m.closeBtn = rl.NewRectangle(px+pw-pad-buttonWidth, by, buttonWidth, buttonHeight)
	m.linkBtn = rl.NewRectangle(m.closeBtn.X-blockGap-buttonWidth, by, buttonWidth, buttonHeight)
}
