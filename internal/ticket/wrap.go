package ticket

import (
	"strings"

	"golang.org/x/image/font"
)

// MeasureWidth returns the rendered pixel width of s in face. The glyph
// advance is the primary measure; faces that report no advance fall back to
// the bounding box width. A width exactly equal to the budget counts as
// fitting in both cases.
func MeasureWidth(face font.Face, s string) int {
	if s == "" {
		return 0
	}
	if adv := font.MeasureString(face, s); adv > 0 {
		return adv.Ceil()
	}
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.X - bounds.Min.X).Ceil()
}

// Wrap splits text into lines that each render within maxWidthPx. Tokens are
// whitespace-separated and accumulated greedily with single spaces. A single
// token wider than the budget is emitted verbatim on its own line; there is
// no sub-word wrapping and no truncation. Empty input yields one empty line
// so callers keep their blank-line intent.
func Wrap(text string, face font.Face, maxWidthPx int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if MeasureWidth(face, candidate) <= maxWidthPx {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = word
	}
	return append(lines, line)
}
