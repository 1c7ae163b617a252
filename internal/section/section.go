// Package section splits a flat regulation document into an ordered section
// tree and resolves cross-references between the tree and the navigation
// index built from heading metadata.
//
// A document is plain text in a lightweight heading syntax: lines starting
// with "## " open a major (level-2) section, lines starting with "### " open
// a nested (level-3) subsection. Everything else, including any other
// markdown syntax, is opaque content carried verbatim inside the owning
// section.
package section

// HeadingRef describes a heading's text and depth independently of parsed
// content. Titles are not guaranteed unique.
type HeadingRef struct {
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Section is a contiguous span of the source document belonging to one
// heading. Content includes the heading line itself and runs up to the next
// heading of the same or shallower depth.
type Section struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Level    int        `json:"level"`
	Content  string     `json:"content"`
	Children []*Section `json:"children,omitempty"`
}

// NavEntry is one row of the navigation index. Ids are computed by the same
// slug scheme the parser uses, so entries resolve against parsed sections as
// long as the heading text matches.
type NavEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}
