// Package lighting turns the configured sun and ambient light into the linear
// values the lit shader consumes.
package lighting

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"portfolio-scene/internal/config"
	"portfolio-scene/internal/texture"
)

// Lighting is one directional sun plus a uniform ambient term.
type Lighting struct {
	SunDirection mgl32.Vec3 // unit vector from the scene toward the sun
	SunColor     mgl32.Vec3
	Ambient      mgl32.Vec3 // colour already multiplied by intensity
}

// FromConfig builds the light set. The sun shines from its position toward the origin.
func FromConfig(cfg config.LightingConfig) (Lighting, error) {
	sun, err := texture.ParseHex(cfg.SunColor)
	if err != nil {
		return Lighting{}, fmt.Errorf("lighting: sun: %w", err)
	}
	amb, err := texture.ParseHex(cfg.AmbientColor)
	if err != nil {
		return Lighting{}, fmt.Errorf("lighting: ambient: %w", err)
	}
	if cfg.AmbientIntensity < 0 {
		return Lighting{}, fmt.Errorf("lighting: ambient intensity must not be negative, got %v", cfg.AmbientIntensity)
	}
	dir := mgl32.Vec3(cfg.SunPosition)
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 1, 0}
	}
	return Lighting{
		SunDirection: dir.Normalize(),
		SunColor:     unit(sun),
		Ambient:      unit(amb).Mul(cfg.AmbientIntensity),
	}, nil
}

func unit(c color.RGBA) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
