package section

import (
	"errors"
	"strings"
)

var (
	// ErrSectionNotFound means no heading at the requested level matched the
	// title. Callers must not persist anything on this error.
	ErrSectionNotFound = errors.New("section not found")

	// ErrAmbiguousTitle means more than one heading matched; the caller has
	// to disambiguate rather than have us guess in line order.
	ErrAmbiguousTitle = errors.New("ambiguous section title")
)

// Extract returns the verbatim text belonging to the heading identified by
// title and level, without building the full section tree. An exact match on
// the heading text wins; substring matching is only a fallback for minor
// formatting drift between stored metadata and the document. Capture stops
// at the next heading of the same or shallower depth, so a major heading
// always terminates a subsection extraction.
func Extract(doc, title string, level int) (string, error) {
	marker, ok := markerFor(level)
	if !ok {
		return "", ErrSectionNotFound
	}

	lines := splitLines(doc)

	var exact, partial []int
	for i, line := range lines {
		text, isHeading := headingTitle(line, marker)
		if !isHeading {
			continue
		}
		if text == title {
			exact = append(exact, i)
		} else if strings.Contains(text, title) {
			partial = append(partial, i)
		}
	}

	matches := exact
	if len(matches) == 0 {
		matches = partial
	}
	switch len(matches) {
	case 0:
		return "", ErrSectionNotFound
	case 1:
	default:
		return "", ErrAmbiguousTitle
	}

	start := matches[0]
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if stopsCapture(lines[i], level) {
			end = i
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:end], "\n")), nil
}

// stopsCapture reports whether line is a heading at the given level or
// shallower.
func stopsCapture(line string, level int) bool {
	if _, ok := headingTitle(line, majorMarker); ok {
		return true
	}
	if level == 3 {
		if _, ok := headingTitle(line, subMarker); ok {
			return true
		}
	}
	return false
}

func markerFor(level int) (string, bool) {
	switch level {
	case 2:
		return majorMarker, true
	case 3:
		return subMarker, true
	}
	return "", false
}
