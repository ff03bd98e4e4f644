// Package registry binds scanned model nodes to typed handles: one region per
// recognized clickable name and a character handle. Every mesh belongs to at
// most one region, the nearest recognized ancestor-or-self of its node.
package registry

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"portfolio-scene/internal/gltfscan"
	"portfolio-scene/internal/logger"
)

// Names is the set of node names the registry recognizes.
type Names interface {
	Names() []string
	Recognized(name string) bool
	Character() string
}

// Region is one clickable group of meshes.
type Region struct {
	Name      string
	Bounds    gltfscan.Box // world bounds at load time
	Meshes    []int        // raylib mesh indices
	Character bool
	hasBounds bool
}

// Registry is immutable after Bind apart from the character displacement.
type Registry struct {
	regions      []*Region
	byName       map[string]*Region
	owner        []*Region // by mesh index, nil for meshes outside every region
	character    *Region
	origin       mgl32.Vec3
	displacement mgl32.Vec3
}

// Bind walks the scanned graph and builds the regions.
func Bind(g *gltfscan.Graph, names Names, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	r := &Registry{
		byName: make(map[string]*Region),
		owner:  make([]*Region, g.MeshCount),
	}

	found := make(map[string]int, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.Name == "" {
			continue
		}
		if names.Recognized(n.Name) {
			found[n.Name]++
		} else {
			log.Debug("unrecognized node", zap.String("name", n.Name), zap.Int("index", n.Index))
		}
	}

	for _, name := range names.Names() {
		if found[name] == 0 {
			log.Warn("recognized node missing from model", zap.String("name", name))
			continue
		}
		if found[name] > 1 {
			log.Warn("node name appears more than once, binding all", zap.String("name", name), zap.Int("count", found[name]))
		}
		reg := &Region{Name: name, Character: name == names.Character()}
		r.regions = append(r.regions, reg)
		r.byName[name] = reg
		if reg.Character {
			r.character = reg
			if n, ok := g.Find(name); ok {
				r.origin = n.Origin
			}
		}
	}

	for i := range g.Nodes {
		n := &g.Nodes[i]
		if n.MeshCount == 0 {
			continue
		}
		reg := r.ownerOf(g, n)
		if reg == nil {
			continue
		}
		for m := n.FirstMesh; m < n.FirstMesh+n.MeshCount; m++ {
			reg.Meshes = append(reg.Meshes, m)
			r.owner[m] = reg
		}
		if n.HasBounds {
			if reg.hasBounds {
				reg.Bounds = reg.Bounds.Union(n.Bounds)
			} else {
				reg.Bounds, reg.hasBounds = n.Bounds, true
			}
		}
	}

	log.Info("model bound",
		zap.Int("regions", len(r.regions)),
		zap.Int("meshes", g.MeshCount),
		zap.Bool("character", r.character != nil))
	return r
}

func (r *Registry) ownerOf(g *gltfscan.Graph, n *gltfscan.Node) *Region {
	for hops := 0; n != nil && hops <= len(g.Nodes); hops++ {
		if reg, ok := r.byName[n.Name]; ok {
			return reg
		}
		if n.Parent < 0 {
			return nil
		}
		n = &g.Nodes[n.Parent]
	}
	return nil
}

// Regions returns the bound regions in catalog order.
func (r *Registry) Regions() []*Region { return r.regions }

// Region looks up a bound region by node name.
func (r *Registry) Region(name string) (*Region, bool) {
	reg, ok := r.byName[name]
	return reg, ok
}

// Owner returns the region a raylib mesh belongs to.
func (r *Registry) Owner(mesh int) (*Region, bool) {
	if mesh < 0 || mesh >= len(r.owner) || r.owner[mesh] == nil {
		return nil, false
	}
	return r.owner[mesh], true
}

// Character returns the character's load position, or false when the model has none.
func (r *Registry) Character() (mgl32.Vec3, bool) {
	if r.character == nil {
		return mgl32.Vec3{}, false
	}
	return r.origin, true
}

// SetCharacterPosition records where the character is now, so its meshes and
// bounds follow it.
func (r *Registry) SetCharacterPosition(p mgl32.Vec3) {
	if r.character == nil {
		return
	}
	r.displacement = p.Sub(r.origin)
}

// Displacement is how far a region has moved since load.
func (r *Registry) Displacement(reg *Region) mgl32.Vec3 {
	if reg != nil && reg.Character {
		return r.displacement
	}
	return mgl32.Vec3{}
}

// Bounds returns the current world bounds of a region.
func (r *Registry) Bounds(reg *Region) (gltfscan.Box, bool) {
	if reg == nil || !reg.hasBounds {
		return gltfscan.Box{}, false
	}
	return reg.Bounds.Translate(r.Displacement(reg)), true
}

// HitFunc reports the distance along a ray at which it hits reg, given the
// region's current bounds. Callers may test the box alone or refine against
// the region's meshes.
type HitFunc func(reg *Region, box gltfscan.Box) (distance float32, ok bool)

// Pick returns the nearest region the ray hits.
func (r *Registry) Pick(hit HitFunc) (*Region, bool) {
	var (
		best     *Region
		bestDist float32
	)
	for _, reg := range r.regions {
		box, ok := r.Bounds(reg)
		if !ok {
			continue
		}
		d, ok := hit(reg, box)
		if !ok {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = reg, d
		}
	}
	return best, best != nil
}

// Hits returns every region the ray hits, in catalog order.
func (r *Registry) Hits(hit HitFunc) []*Region {
	var out []*Region
	for _, reg := range r.regions {
		box, ok := r.Bounds(reg)
		if !ok {
			continue
		}
		if _, ok := hit(reg, box); ok {
			out = append(out, reg)
		}
	}
	return out
}

// Transform returns the model matrix for a region's meshes: scaled by k around
// the region's load-time center, then moved by its displacement. Meshes carry
// world-space vertices, so an unmoved region at k == 1 gets the identity.
func (r *Registry) Transform(reg *Region, k float32) mgl32.Mat4 {
	d := r.Displacement(reg)
	if k == 1 || reg == nil || !reg.hasBounds {
		return mgl32.Translate3D(d[0], d[1], d[2])
	}
	c := reg.Bounds.Center()
	to := c.Add(d)
	return mgl32.Translate3D(to[0], to[1], to[2]).
		Mul4(mgl32.Scale3D(k, k, k)).
		Mul4(mgl32.Translate3D(-c[0], -c[1], -c[2]))
}

// WithCharacter overrides which recognized name is the character. The node is
// added to the recognized set when names does not list it.
func WithCharacter(names Names, node string) Names {
	if node == "" || node == names.Character() {
		return names
	}
	return characterOverride{inner: names, node: node}
}

type characterOverride struct {
	inner Names
	node  string
}

func (o characterOverride) Character() string { return o.node }

func (o characterOverride) Recognized(name string) bool {
	return name == o.node || o.inner.Recognized(name)
}

func (o characterOverride) Names() []string {
	all := o.inner.Names()
	if o.inner.Recognized(o.node) {
		return all
	}
	return append(all, o.node)
}
