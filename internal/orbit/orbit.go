// Package orbit is the free camera rig: it orbits, tilts and dollies the camera
// around a pivot using spherical coordinates, with damped rotation. While
// disabled it ignores input and leaves the camera to whoever drives it.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the camera off the poles so the up vector stays valid.
const polarEpsilon = 1e-4

// Input is one frame of user orbit input.
type Input struct {
	DragX, DragY float32 // pointer movement in pixels while the orbit button is held
	Wheel        float32 // wheel notches, positive zooms in
}

// Options tune the rig. Zero values fall back to defaults.
type Options struct {
	Damping     float32 // fraction of the pending rotation applied per frame, 0 disables damping
	RotateSpeed float32 // radians per pixel of drag
	ZoomSpeed   float32 // radius factor per wheel notch, below 1
	MinDistance float32
	MaxDistance float32
}

// Rig owns the camera position, the point it looks at and the orbit pivot.
type Rig struct {
	position mgl32.Vec3
	look     mgl32.Vec3
	target   mgl32.Vec3
	enabled  bool

	damping     float32
	rotateSpeed float32
	zoomSpeed   float32
	minDistance float32
	maxDistance float32

	// pending input not yet applied
	deltaTheta float32
	deltaPhi   float32
	scale      float32
}

// New returns an enabled rig at position orbiting target.
func New(position, target mgl32.Vec3, opts Options) *Rig {
	r := &Rig{
		position:    position,
		look:        target,
		target:      target,
		enabled:     true,
		damping:     opts.Damping,
		rotateSpeed: opts.RotateSpeed,
		zoomSpeed:   opts.ZoomSpeed,
		minDistance: opts.MinDistance,
		maxDistance: opts.MaxDistance,
		scale:       1,
	}
	if r.rotateSpeed <= 0 {
		r.rotateSpeed = 0.005
	}
	if r.zoomSpeed <= 0 || r.zoomSpeed >= 1 {
		r.zoomSpeed = 0.95
	}
	if r.minDistance <= 0 {
		r.minDistance = 1
	}
	if r.maxDistance <= r.minDistance {
		r.maxDistance = 5000
	}
	return r
}

// Update applies one frame of input. Nothing happens while disabled.
func (r *Rig) Update(in Input) {
	if !r.enabled {
		return
	}
	r.deltaTheta -= in.DragX * r.rotateSpeed
	r.deltaPhi -= in.DragY * r.rotateSpeed
	switch {
	case in.Wheel > 0:
		r.scale *= math32.Pow(r.zoomSpeed, in.Wheel)
	case in.Wheel < 0:
		r.scale /= math32.Pow(r.zoomSpeed, -in.Wheel)
	}

	radius, theta, phi := toSpherical(r.position.Sub(r.target))
	if r.damping > 0 {
		theta += r.deltaTheta * r.damping
		phi += r.deltaPhi * r.damping
		r.deltaTheta *= 1 - r.damping
		r.deltaPhi *= 1 - r.damping
	} else {
		theta += r.deltaTheta
		phi += r.deltaPhi
		r.deltaTheta, r.deltaPhi = 0, 0
	}
	phi = clamp(phi, polarEpsilon, math32.Pi-polarEpsilon)
	radius = clamp(radius*r.scale, r.minDistance, r.maxDistance)
	r.scale = 1

	r.position = r.target.Add(fromSpherical(radius, theta, phi))
	r.look = r.target
}

// SetEnabled turns user control on or off. Pending input is dropped on disable.
func (r *Rig) SetEnabled(enabled bool) {
	if !enabled {
		r.deltaTheta, r.deltaPhi, r.scale = 0, 0, 1
	}
	r.enabled = enabled
}

// Enabled reports whether user control is on.
func (r *Rig) Enabled() bool { return r.enabled }

// SetTarget moves the pivot and aims the camera at it. The camera position is kept,
// so the orbit radius and angles are recomputed from it on the next Update.
func (r *Rig) SetTarget(pivot mgl32.Vec3) {
	r.target = pivot
	r.look = pivot
}

// Target returns the orbit pivot.
func (r *Rig) Target() mgl32.Vec3 { return r.target }

// Position returns the camera position.
func (r *Rig) Position() mgl32.Vec3 { return r.position }

// SetPosition places the camera directly (follow mode).
func (r *Rig) SetPosition(p mgl32.Vec3) { r.position = p }

// LookAt aims the camera without moving the pivot (follow mode).
func (r *Rig) LookAt(p mgl32.Vec3) { r.look = p }

// Look returns the point the camera aims at.
func (r *Rig) Look() mgl32.Vec3 { return r.look }

// toSpherical returns radius, azimuth around +Y measured from +Z, and polar angle from +Y.
func toSpherical(v mgl32.Vec3) (radius, theta, phi float32) {
	radius = v.Len()
	if radius == 0 {
		return 0, 0, 0
	}
	theta = math32.Atan2(v.X(), v.Z())
	phi = math32.Acos(clamp(v.Y()/radius, -1, 1))
	return radius, theta, phi
}

func fromSpherical(radius, theta, phi float32) mgl32.Vec3 {
	sinPhi := math32.Sin(phi)
	return mgl32.Vec3{
		radius * sinPhi * math32.Sin(theta),
		radius * math32.Cos(phi),
		radius * sinPhi * math32.Cos(theta),
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
