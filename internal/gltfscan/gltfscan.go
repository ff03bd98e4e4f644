// Package gltfscan reads the node graph of a glTF/GLB asset without touching the GPU.
//
// raylib bakes every node's world transform into its vertices and emits one
// mesh per triangle primitive, walking nodes in document order. Scan follows the
// same walk so each node can be mapped to the index range of its raylib meshes,
// and reports world-space bounds computed from the POSITION accessor limits.
package gltfscan

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

const positionAttr = "POSITION"

var identity = [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// Node is one scanned glTF node.
type Node struct {
	Index     int
	Name      string
	Parent    int // -1 for roots
	World     mgl32.Mat4
	Origin    mgl32.Vec3 // world-space translation
	HasBounds bool
	Bounds    Box
	FirstMesh int // first raylib mesh index, valid when MeshCount > 0
	MeshCount int
}

// Graph is the scanned asset.
type Graph struct {
	Nodes     []Node
	Bounds    Box // union of every node's bounds
	MeshCount int
}

// Open decodes the file at path and scans it.
func Open(path string) (*Graph, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltfscan: open %s: %w", path, err)
	}
	return Scan(doc)
}

// Scan walks a decoded document.
func Scan(doc *gltf.Document) (*Graph, error) {
	n := len(doc.Nodes)
	parents := make([]int, n)
	for i := range parents {
		parents[i] = -1
	}
	for i, node := range doc.Nodes {
		for _, c := range node.Children {
			if c < 0 || c >= n {
				return nil, fmt.Errorf("gltfscan: node %d has out of range child %d", i, c)
			}
			if parents[c] != -1 {
				return nil, fmt.Errorf("gltfscan: node %d has more than one parent", c)
			}
			parents[c] = i
		}
	}

	worlds := make([]mgl32.Mat4, n)
	state := make([]uint8, n) // 0 pending, 1 visiting, 2 done
	var world func(i int) (mgl32.Mat4, error)
	world = func(i int) (mgl32.Mat4, error) {
		switch state[i] {
		case 2:
			return worlds[i], nil
		case 1:
			return mgl32.Mat4{}, fmt.Errorf("gltfscan: node %d is part of a cycle", i)
		}
		state[i] = 1
		m := localMatrix(doc.Nodes[i])
		if p := parents[i]; p >= 0 {
			pm, err := world(p)
			if err != nil {
				return mgl32.Mat4{}, err
			}
			m = pm.Mul4(m)
		}
		worlds[i] = m
		state[i] = 2
		return m, nil
	}

	g := &Graph{Nodes: make([]Node, n)}
	first := true
	for i, src := range doc.Nodes {
		w, err := world(i)
		if err != nil {
			return nil, err
		}
		node := Node{
			Index:  i,
			Name:   src.Name,
			Parent: parents[i],
			World:  w,
			Origin: w.Col(3).Vec3(),
		}
		if src.Mesh != nil {
			mi := *src.Mesh
			if mi < 0 || mi >= len(doc.Meshes) {
				return nil, fmt.Errorf("gltfscan: node %d references missing mesh %d", i, mi)
			}
			node.FirstMesh = g.MeshCount
			for _, prim := range doc.Meshes[mi].Primitives {
				if prim.Mode != gltf.PrimitiveTriangles {
					continue
				}
				node.MeshCount++
				if box, ok := primitiveBounds(doc, prim); ok {
					box = box.Transform(w)
					if node.HasBounds {
						node.Bounds = node.Bounds.Union(box)
					} else {
						node.Bounds, node.HasBounds = box, true
					}
				}
			}
			g.MeshCount += node.MeshCount
		}
		if node.HasBounds {
			if first {
				g.Bounds, first = node.Bounds, false
			} else {
				g.Bounds = g.Bounds.Union(node.Bounds)
			}
		}
		g.Nodes[i] = node
	}
	return g, nil
}

// Find returns the first node called name.
func (g *Graph) Find(name string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].Name == name {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	if n.Matrix != [16]float64{} && n.Matrix != identity {
		var m mgl32.Mat4
		for i, v := range n.Matrix {
			m[i] = float32(v)
		}
		return m
	}

	t := n.Translation
	r := n.Rotation
	if r == [4]float64{} {
		r = [4]float64{0, 0, 0, 1}
	}
	s := n.Scale
	if s == [3]float64{} {
		s = [3]float64{1, 1, 1}
	}
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}.Normalize()
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(q.Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func primitiveBounds(doc *gltf.Document, prim *gltf.Primitive) (Box, bool) {
	idx, ok := prim.Attributes[positionAttr]
	if !ok || idx < 0 || idx >= len(doc.Accessors) {
		return Box{}, false
	}
	acc := doc.Accessors[idx]
	if len(acc.Min) < 3 || len(acc.Max) < 3 {
		return Box{}, false
	}
	return Box{
		Min: mgl32.Vec3{float32(acc.Min[0]), float32(acc.Min[1]), float32(acc.Min[2])},
		Max: mgl32.Vec3{float32(acc.Max[0]), float32(acc.Max[1]), float32(acc.Max[2])},
	}, true
}
