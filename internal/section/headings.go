package section

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Headings derives a heading manifest from the document body, for callers
// whose upstream source does not supply one. Only the two structural depths
// are collected; everything else in the document is opaque.
func Headings(doc string) []HeadingRef {
	src := []byte(doc)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var refs []HeadingRef
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && (h.Level == 2 || h.Level == 3) {
			refs = append(refs, HeadingRef{
				Title: string(h.Text(src)),
				Level: h.Level,
			})
		}
		return ast.WalkContinue, nil
	})
	return refs
}
