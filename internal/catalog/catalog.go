// Package catalog holds the exhibit table: which model nodes are clickable,
// which one is the character, and the title, description and link shown for each.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed exhibits.yaml
var builtin []byte

// Exhibit is the metadata attached to one clickable node.
type Exhibit struct {
	Name        string `yaml:"-"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
}

// DisplayTitle is the title, or the node name when the exhibit has none.
func (e Exhibit) DisplayTitle() string {
	if strings.TrimSpace(e.Title) == "" {
		return e.Name
	}
	return e.Title
}

type document struct {
	Character string             `yaml:"character"`
	Clickable []string           `yaml:"clickable"`
	Exhibits  map[string]Exhibit `yaml:"exhibits"`
}

// Catalog is immutable after Parse.
type Catalog struct {
	character string
	clickable []string
	known     map[string]struct{}
	exhibits  map[string]Exhibit
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(builtin)
}

// Load reads a catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if doc.Character == "" {
		return nil, errors.New("catalog: character name is required")
	}

	c := &Catalog{
		character: doc.Character,
		known:     make(map[string]struct{}, len(doc.Clickable)),
		exhibits:  make(map[string]Exhibit, len(doc.Exhibits)),
	}
	for _, name := range doc.Clickable {
		if _, dup := c.known[name]; dup {
			return nil, fmt.Errorf("catalog: duplicate clickable name %q", name)
		}
		c.known[name] = struct{}{}
		c.clickable = append(c.clickable, name)
	}
	if _, ok := c.known[c.character]; !ok {
		return nil, fmt.Errorf("catalog: character %q is not in the clickable list", c.character)
	}
	for name, e := range doc.Exhibits {
		if _, ok := c.known[name]; !ok {
			return nil, fmt.Errorf("catalog: exhibit %q is not in the clickable list", name)
		}
		e.Name = name
		c.exhibits[name] = e
	}
	return c, nil
}

// Character returns the node name of the controllable character.
func (c *Catalog) Character() string { return c.character }

// Names returns the recognized node names in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.clickable))
	copy(out, c.clickable)
	return out
}

// Recognized reports whether name is a clickable node.
func (c *Catalog) Recognized(name string) bool {
	_, ok := c.known[name]
	return ok
}

// Lookup returns the exhibit for a recognized name. Names without metadata
// still resolve, with only Name set, so the modal can fall back to it.
func (c *Catalog) Lookup(name string) (Exhibit, bool) {
	if !c.Recognized(name) {
		return Exhibit{}, false
	}
	if e, ok := c.exhibits[name]; ok {
		return e, true
	}
	return Exhibit{Name: name}, true
}

// Exhibits returns every exhibit with metadata, sorted by node name.
func (c *Catalog) Exhibits() []Exhibit {
	out := make([]Exhibit, 0, len(c.exhibits))
	for _, e := range c.exhibits {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
