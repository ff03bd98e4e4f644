package ui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio-scene/internal/fonts"
)

const (
	defaultFontSize = 20
	fontAtlasSize   = 48
	textSpacing     = 1
)

// Engine holds the current stylesheet and draws nodes with raylib.
// Resolved styles are cached per class/id pair and dropped when the stylesheet changes.
// If a font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet  *Stylesheet
	styles map[string]ComputedStyle
	font   rl.Font
}

// New creates an empty UI engine (no stylesheet).
func New() *Engine {
	return &Engine{styles: make(map[string]ComputedStyle)}
}

// LoadCSS loads and parses a CSS file from path and appends its rules to the
// current stylesheet, so a user file can override the built-in rules.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if e.sheet != nil {
		sheet.Rules = append(append([]Rule(nil), e.sheet.Rules...), sheet.Rules...)
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// LoadFont builds a font atlas from src covering the given codepoints.
// Call after the window/OpenGL context exists. On failure the engine keeps its current font.
func (e *Engine) LoadFont(src fonts.Source, codepoints []rune) error {
	f := rl.LoadFontFromMemory(src.Ext, src.Data, fontAtlasSize, codepoints)
	if f.Texture.ID == 0 {
		return fmt.Errorf("ui: font %s could not be loaded", src.Name)
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	e.Unload()
	e.font = f
	return nil
}

// Font returns the loaded font, or raylib's default font.
func (e *Engine) Font() rl.Font {
	if e.font.Texture.ID != 0 {
		return e.font
	}
	return rl.GetFontDefault()
}

// Unload releases the loaded font.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// Measure returns the drawn width of text at the given size.
func (e *Engine) Measure(text string, size int32) float32 {
	return rl.MeasureTextEx(e.Font(), text, float32(size), textSpacing).X
}

// Style returns the computed style for a class/id pair.
func (e *Engine) Style(class, id string) ComputedStyle {
	key := class + "#" + id
	if s, ok := e.styles[key]; ok {
		return s
	}
	s := ResolveProps(e.resolveProps(class, id))
	e.styles[key] = s
	return s
}

// resolveProps returns merged properties for a class/id pair (last rule wins).
func (e *Engine) resolveProps(class, id string) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		sel := rule.Selector
		matches := (sel[0] == '.' && class != "" && sel[1:] == class) ||
			(sel[0] == '#' && id != "" && sel[1:] == id)
		if matches {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// resolveBounds returns the node's bounds with the style's position applied.
// Style width and height only fill in a size the node does not have.
func resolveBounds(b rl.Rectangle, style ComputedStyle, screenW, screenH int32) rl.Rectangle {
	if style.Width > 0 && b.Width == 0 {
		b.Width = float32(style.Width)
	}
	if style.Height > 0 && b.Height == 0 {
		b.Height = float32(style.Height)
	}
	if style.HasLeft {
		b.X = float32(style.Left)
	}
	if style.HasTop {
		b.Y = float32(style.Top)
	}
	if style.LeftPct >= 0 {
		b.X = float32((screenW - int32(b.Width)) * style.LeftPct / 100)
	}
	if style.TopPct >= 0 {
		b.Y = float32((screenH - int32(b.Height)) * style.TopPct / 100)
	}
	return b
}

// Draw draws nodes in order: background, border, then text.
func (e *Engine) Draw(nodes []*Node) {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	font := e.Font()
	for _, n := range nodes {
		style := e.Style(n.Class, n.ID)
		b := resolveBounds(n.Bounds, style, screenW, screenH)
		x, y, w, h := int32(b.X), int32(b.Y), int32(b.Width), int32(b.Height)

		if style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, style.Background)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		if n.Text != "" {
			pos := rl.NewVector2(float32(x+style.Padding), float32(y+style.Padding))
			rl.DrawTextEx(font, n.Text, pos, float32(style.FontSize), textSpacing, style.Color)
		}
	}
}

// HasStylesheet returns whether any rules are loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
