// Package document holds the client-side review state for a converted
// document: chapter navigation, the shared edit buffer, heading slugs,
// and export helpers.
package document

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	goslug "github.com/gosimple/slug"
)

// Slugify normalizes a heading title into its identifier: lowercase,
// punctuation stripped, whitespace runs joined with hyphens. Equal
// titles always produce equal slugs; titles differing only in case,
// punctuation, or spacing collapse to the same slug.
func Slugify(title string) string {
	return goslug.Make(title)
}

// FindHeading returns the index of the first heading line whose text
// slugs to the same identifier as title, or -1 when no line matches.
//
// Lines may carry ANSI styling (glamour output); it is stripped before
// comparison. Only lines bearing a markdown heading marker are
// candidates, so a body line that merely repeats a chapter title does
// not become a scroll target. The mapping is computed fresh on every
// call so hand-edits degrade to a miss instead of binding to stale
// structure. Duplicate titles resolve to the first match.
func FindHeading(lines []string, title string) int {
	target := Slugify(title)
	if target == "" {
		return -1
	}

	for i, line := range lines {
		text := strings.TrimSpace(ansi.Strip(line))
		if !strings.HasPrefix(text, "#") {
			continue
		}
		text = strings.TrimSpace(strings.TrimLeft(text, "#"))

		if Slugify(text) == target {
			return i
		}
	}

	return -1
}
