package section

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/regreader/internal/slug"
)

const (
	majorMarker = "## "
	subMarker   = "### "
)

// IntroTitle is the title of the synthetic section holding any text that
// precedes the first heading.
const IntroTitle = "Introduction"

// Parser partitions documents into sections. Parsing is a pure function of
// the input text; the logger only reports structural oddities such as
// orphaned subsections.
type Parser struct {
	log *slog.Logger
}

func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.Default()
	}
	return &Parser{log: log}
}

// Parse splits the document at major headings only. Subsection markers are
// left inside their parent's content. Text before the first heading becomes
// a synthetic Introduction section when it has any non-blank line; an empty
// document yields no sections at all.
func (p *Parser) Parse(doc string) []*Section {
	var sections []*Section
	var open *Section
	var buf []string
	var intro []string

	for _, line := range splitLines(doc) {
		if title, ok := headingTitle(line, majorMarker); ok {
			if open != nil {
				open.Content = joinTrimmed(buf)
				sections = append(sections, open)
			}
			open = &Section{ID: slug.Make(title, 2), Title: title, Level: 2}
			buf = []string{line}
			continue
		}
		if open != nil {
			buf = append(buf, line)
		} else {
			intro = append(intro, line)
		}
	}
	if open != nil {
		open.Content = joinTrimmed(buf)
		sections = append(sections, open)
	}

	return prependIntro(sections, intro)
}

// ParseNested splits at both major and subsection headings, nesting each
// level-3 section under the nearest preceding level-2 section. A parent's
// own content stops at its first subsection. Subsections with no preceding
// major heading are kept at the top level rather than dropped.
func (p *Parser) ParseNested(doc string) []*Section {
	var sections []*Section
	var parent *Section // current level-2 container, stays open across its children
	var open *Section   // section whose content is accumulating
	var buf []string
	var intro []string

	// closeOpen freezes the accumulating section's content and, for
	// subsections, attaches it to its parent.
	closeOpen := func() {
		if open == nil {
			return
		}
		open.Content = joinTrimmed(buf)
		buf = nil
		if open.Level == 3 {
			if parent != nil {
				parent.Children = append(parent.Children, open)
			} else {
				p.log.Warn("subsection has no parent section, keeping at top level",
					"id", open.ID, "title", open.Title)
				sections = append(sections, open)
			}
		}
		open = nil
	}
	closeParent := func() {
		closeOpen()
		if parent != nil {
			sections = append(sections, parent)
			parent = nil
		}
	}

	for _, line := range splitLines(doc) {
		if title, ok := headingTitle(line, majorMarker); ok {
			closeParent()
			parent = &Section{ID: slug.Make(title, 2), Title: title, Level: 2}
			open = parent
			buf = []string{line}
			continue
		}
		if title, ok := headingTitle(line, subMarker); ok {
			closeOpen()
			open = &Section{ID: slug.Make(title, 3), Title: title, Level: 3}
			buf = []string{line}
			continue
		}
		if open != nil {
			buf = append(buf, line)
		} else {
			intro = append(intro, line)
		}
	}
	closeParent()

	return prependIntro(sections, intro)
}

// headingTitle reports whether line opens a heading with the given marker
// and returns the trimmed heading text. Markers are only structural at
// column 0.
func headingTitle(line, marker string) (string, bool) {
	if !strings.HasPrefix(line, marker) {
		return "", false
	}
	return strings.TrimSpace(line[len(marker):]), true
}

// splitLines returns the document's lines; an empty document has none.
func splitLines(doc string) []string {
	if doc == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}

// joinTrimmed joins lines and strips leading and trailing blank lines,
// keeping interior blanks intact.
func joinTrimmed(lines []string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// prependIntro synthesizes the Introduction section when the pre-heading
// text has anything non-blank in it.
func prependIntro(sections []*Section, intro []string) []*Section {
	content := joinTrimmed(intro)
	if content == "" {
		return sections
	}
	head := &Section{
		ID:      slug.IntroID,
		Title:   IntroTitle,
		Level:   2,
		Content: content,
	}
	return append([]*Section{head}, sections...)
}
