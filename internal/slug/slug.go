// Package slug derives stable section identifiers from heading text.
//
// The same (title, level) pair always yields the same id, so the navigation
// index and the parsed section tree can be built independently and still
// cross-reference each other. Two same-level headings with identical text
// collide by design; consumers resolve collisions last-match-wins.
package slug

import (
	"strconv"
	"strings"
)

// IntroID is the id of the synthetic Introduction section.
var IntroID = Make("Introduction", 2)

// Make returns the identifier for a heading at the given level.
// Title text is lower-cased, runs of non-alphanumerics collapse to a single
// hyphen, and the result carries an "h<level>-" prefix so identical titles at
// different levels never share an id.
func Make(title string, level int) string {
	var b strings.Builder
	b.Grow(len(title))

	pendingSep := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		} else {
			pendingSep = true
		}
	}

	return "h" + strconv.Itoa(level) + "-" + b.String()
}
