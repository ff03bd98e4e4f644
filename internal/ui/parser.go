package ui

import (
	"fmt"
	"strings"
)

// ParseCSS parses a primitive CSS file: selectors .class or #id, optionally
// comma-separated, and blocks of "key: value;". No combinators, no @rules.
// Later rules override earlier for the same selector. Blocks with other
// selectors are skipped; an unclosed block is an error.
func ParseCSS(content string) (*Stylesheet, error) {
	sheet := &Stylesheet{}
	s := stripCSSComments(content)
	for {
		open := strings.Index(s, "{")
		if open == -1 {
			if strings.Contains(s, "}") {
				return nil, fmt.Errorf("ui: css: unexpected }")
			}
			return sheet, nil
		}
		close := findMatchingBrace(s, open)
		if close == -1 {
			return nil, fmt.Errorf("ui: css: unclosed block after %q", strings.TrimSpace(s[:open]))
		}
		props := parseDeclarations(s[open+1 : close])
		for _, sel := range strings.Split(s[:open], ",") {
			sel = strings.TrimSpace(sel)
			if len(sel) < 2 || (sel[0] != '.' && sel[0] != '#') {
				continue
			}
			sheet.Rules = append(sheet.Rules, Rule{Selector: sel, Props: props})
		}
		s = s[close+1:]
	}
}

func stripCSSComments(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "/*")
		if start == -1 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end == -1 {
			return b.String()
		}
		s = s[start+2+end+2:]
	}
}

func findMatchingBrace(s string, openIdx int) int {
	depth := 1
	for i := openIdx + 1; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parseDeclarations(body string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(body, ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			props[k] = strings.TrimSpace(v)
		}
	}
	return props
}
