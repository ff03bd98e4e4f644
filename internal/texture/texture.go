// Package texture generates the procedural images the scene uploads to the GPU.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/noise"
)

// Ground returns a size x size tile of base colour roughened by monochrome noise.
// grain is the noise opacity in [0,1]; zero yields a flat tile.
func Ground(size int, base color.RGBA, grain float64) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("texture: ground size must be positive, got %d", size)
	}
	if grain < 0 || grain > 1 {
		return nil, fmt.Errorf("texture: grain must be within [0,1], got %g", grain)
	}
	solid := Solid(size, size, base)
	if grain == 0 {
		return solid, nil
	}
	grainImg := noise.Generate(size, size, &noise.Options{NoiseFn: noise.Uniform, Monochrome: true})
	return blend.Opacity(solid, grainImg, grain), nil
}

// Solid returns an opaque image filled with c.
func Solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// ParseHex parses #RGB or #RRGGBB, with or without the leading #, into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("texture: bad colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("texture: bad colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
