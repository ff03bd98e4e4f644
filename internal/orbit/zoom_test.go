package orbit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitFovy(t *testing.T) {
	assert.InDelta(t, 75, FitFovy(75, 1200, 1200), 1e-3)
	assert.InDelta(t, 90, FitFovy(90, 0, 10), 1e-6, "no reference keeps fovy")
	assert.InDelta(t, 90, FitFovy(90, 1200, 0), 1e-6, "empty model keeps fovy")

	// tan(45deg)/2 = 0.5 -> 2*atan(0.5)
	assert.InDelta(t, 53.1301, FitFovy(90, 200, 100), 1e-3)

	assert.Less(t, FitFovy(75, 1200, 100), float32(75), "small models zoom in")
	assert.Greater(t, FitFovy(75, 1200, 4000), float32(75), "large models zoom out")
}
