package orbit

import "github.com/chewxy/math32"

// FitFovy returns the vertical field of view, in degrees, after zooming a
// camera with fovy by reference/maxDim. Zoom scales the tangent of the half
// angle rather than the angle.
func FitFovy(fovy, reference, maxDim float32) float32 {
	if maxDim <= 0 || reference <= 0 {
		return fovy
	}
	zoom := reference / maxDim
	half := fovy * math32.Pi / 360
	return 2 * math32.Atan(math32.Tan(half)/zoom) * 180 / math32.Pi
}
