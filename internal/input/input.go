// Package input turns raw key names and pointer coordinates into intents the
// interaction controller understands.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/cases"
)

// Direction is one of the four grid moves.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// Delta returns the unit step for d on the XZ plane. Forward is -Z.
func (d Direction) Delta() mgl32.Vec3 {
	switch d {
	case Forward:
		return mgl32.Vec3{0, 0, -1}
	case Backward:
		return mgl32.Vec3{0, 0, 1}
	case Left:
		return mgl32.Vec3{-1, 0, 0}
	case Right:
		return mgl32.Vec3{1, 0, 0}
	}
	return mgl32.Vec3{}
}

// keyDirections is keyed by case-folded key name.
var keyDirections = map[string]Direction{
	"w":          Forward,
	"arrowup":    Forward,
	"s":          Backward,
	"arrowdown":  Backward,
	"a":          Left,
	"arrowleft":  Left,
	"d":          Right,
	"arrowright": Right,
}

// KeyDirection maps a key name ("w", "ArrowUp", "D", ...) to a direction, case-insensitively.
// Any other key reports false.
func KeyDirection(key string) (Direction, bool) {
	d, ok := keyDirections[cases.Fold().String(key)]
	return d, ok
}

// ParseDirection accepts a key name or a direction name ("left", "Backward").
func ParseDirection(s string) (Direction, bool) {
	if d, ok := KeyDirection(s); ok {
		return d, true
	}
	folded := cases.Fold().String(s)
	for _, d := range []Direction{Forward, Backward, Left, Right} {
		if d.String() == folded {
			return d, true
		}
	}
	return 0, false
}
