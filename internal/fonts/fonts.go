// Package fonts resolves the UI font: a configured TTF/OTF file, a family name
// searched under assets/fonts, or the embedded Go Regular face.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/goregular"
)

// Extensions we consider as font files.
var Exts = []string{".ttf", ".otf"}

// Source is font file data ready for raylib's LoadFontFromMemory.
type Source struct {
	Name string
	Ext  string // ".ttf" or ".otf"
	Data []byte
}

// Embedded returns the Go Regular face compiled into the binary.
func Embedded() Source {
	return Source{Name: "Go Regular", Ext: ".ttf", Data: goregular.TTF}
}

// BaseDirs returns candidate base directories for fonts (relative to process cwd).
func BaseDirs() []string {
	return []string{"assets/fonts", "../../assets/fonts"}
}

// Resolve returns the configured font. An empty setting yields the embedded face.
// A setting that is not an existing file is treated as a family name to search for.
func Resolve(setting string) (Source, error) {
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return Embedded(), nil
	}
	path := setting
	if _, err := os.Stat(path); err != nil {
		_, full, findErr := FindFont(setting)
		if findErr != nil {
			return Source{}, fmt.Errorf("fonts: %q is neither a file nor a font under %v", setting, BaseDirs())
		}
		path = full
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !isFontExt(ext) {
		return Source{}, fmt.Errorf("fonts: %s: unsupported extension", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("fonts: %w", err)
	}
	return Source{Name: filepath.Base(path), Ext: ext, Data: data}, nil
}

// Codepoints returns printable ASCII plus every rune used in texts, sorted.
// raylib only rasterizes the glyphs it is asked for.
func Codepoints(texts ...string) []rune {
	seen := make(map[rune]struct{}, 128)
	for r := rune(32); r < 127; r++ {
		seen[r] = struct{}{}
	}
	for _, t := range texts {
		for _, r := range t {
			if r >= 32 {
				seen[r] = struct{}{}
			}
		}
	}
	out := make([]rune, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func isFontExt(ext string) bool {
	for _, e := range Exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ScanDir returns relative paths of all font files under dir (e.g. "Inter/Inter-Regular.ttf").
// Paths use forward slashes. Only .ttf and .otf are included.
func ScanDir(dir string) ([]string, error) {
	var out []string
	dir = filepath.Clean(dir)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() || !isFontExt(strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	return out, err
}

// normalizeForMatch lowercases and removes spaces, dashes, and underscores for fuzzy matching.
func normalizeForMatch(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(s))
}

// FindFont searches BaseDirs for a font file whose path contains search, ignoring
// case, spaces, dashes and underscores. A "Regular" file wins when several match.
func FindFont(search string) (relPath string, fullPath string, err error) {
	return findIn(BaseDirs(), search)
}

func findIn(bases []string, search string) (string, string, error) {
	norm := normalizeForMatch(search)
	if norm == "" {
		return "", "", os.ErrNotExist
	}
	var candidates []struct{ rel, full string }
	for _, base := range bases {
		list, walkErr := ScanDir(base)
		if walkErr != nil {
			continue
		}
		for _, rel := range list {
			if strings.Contains(normalizeForMatch(rel), norm) {
				candidates = append(candidates, struct{ rel, full string }{rel, filepath.Join(base, filepath.FromSlash(rel))})
			}
		}
	}
	if len(candidates) == 0 {
		return "", "", os.ErrNotExist
	}
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c.rel), "regular") {
			return c.rel, c.full, nil
		}
	}
	return candidates[0].rel, candidates[0].full, nil
}
