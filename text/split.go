package text

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Split returns the grapheme clusters of s in order. An empty string yields
// no units.
func Split(s string) []string {
	if s == "" {
		return nil
	}
	s = norm.NFC.String(s)
	units := make([]string, 0, uniseg.GraphemeClusterCount(s))
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		units = append(units, gr.Str())
	}
	return units
}

// IsBlank reports whether s contains only whitespace and zero-width spaces.
func IsBlank(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f', '\v', '\u200b', '\u00a0':
			continue
		}
		return false
	}
	return true
}
