// Package modal is the state behind the exhibit details dialog: what it shows,
// whether it is open, and the text layout helpers its renderer needs.
package modal

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jinzhu/copier"

	"portfolio-scene/internal/catalog"
)

// View is what the dialog displays for one exhibit.
type View struct {
	Name        string
	Title       string
	Description string
	Link        string // normalized, empty when the exhibit has no usable link
}

// FromExhibit builds the view. The title falls back to the node name.
func FromExhibit(e catalog.Exhibit) (View, error) {
	var v View
	if err := copier.Copy(&v, &e); err != nil {
		return View{}, fmt.Errorf("modal: %w", err)
	}
	v.Title = e.DisplayTitle()
	v.Link, _ = NormalizeLink(e.Link)
	return v, nil
}

// NormalizeLink returns an absolute URL for a link. Links without a scheme are
// taken as https. Empty links, "#" and schemes other than http, https and mailto
// report false.
func NormalizeLink(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" || link == "#" {
		return "", false
	}
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	switch strings.ToLower(u.Scheme) {
	case "":
		u, err = url.Parse("https://" + link)
		if err != nil || u.Host == "" {
			return "", false
		}
		return u.String(), true
	case "http", "https":
		if u.Host == "" {
			return "", false
		}
		return u.String(), true
	case "mailto":
		return u.String(), true
	}
	return "", false
}

// State tracks the single dialog. The zero value is closed.
type State struct {
	open bool
	view View
}

// Open shows v, replacing whatever was shown.
func (s *State) Open(v View) {
	s.view = v
	s.open = true
}

// Close hides the dialog. Closing a closed dialog does nothing.
func (s *State) Close() {
	s.open = false
}

// IsOpen reports whether the dialog is visible.
func (s *State) IsOpen() bool { return s.open }

// View returns the exhibit shown, or last shown.
func (s *State) View() View { return s.view }

// Wrap breaks text into lines no wider than width, as reported by measure.
// A word wider than width gets a line of its own.
func Wrap(text string, width float32, measure func(string) float32) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if measure(candidate) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}
