package gltfscan

import "github.com/go-gl/mathgl/mgl32"

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max mgl32.Vec3
}

// Union returns the smallest box containing both.
func (b Box) Union(o Box) Box {
	var out Box
	for i := 0; i < 3; i++ {
		out.Min[i] = min(b.Min[i], o.Min[i])
		out.Max[i] = max(b.Max[i], o.Max[i])
	}
	return out
}

// Transform returns the axis-aligned box enclosing b after m is applied to its corners.
func (b Box) Transform(m mgl32.Mat4) Box {
	var out Box
	for c := 0; c < 8; c++ {
		corner := mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if c&1 != 0 {
			corner[0] = b.Max[0]
		}
		if c&2 != 0 {
			corner[1] = b.Max[1]
		}
		if c&4 != 0 {
			corner[2] = b.Max[2]
		}
		p := mgl32.TransformCoordinate(corner, m)
		if c == 0 {
			out = Box{Min: p, Max: p}
			continue
		}
		out = out.Union(Box{Min: p, Max: p})
	}
	return out
}

// Center is the midpoint of the box.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size is the extent along each axis.
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// MaxDimension is the largest extent.
func (b Box) MaxDimension() float32 {
	s := b.Size()
	return max(s[0], s[1], s[2])
}

// Scale grows or shrinks the box by k around its center.
func (b Box) Scale(k float32) Box {
	c := b.Center()
	half := b.Size().Mul(0.5 * k)
	return Box{Min: c.Sub(half), Max: c.Add(half)}
}

// Translate moves the box by d.
func (b Box) Translate(d mgl32.Vec3) Box {
	return Box{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}
