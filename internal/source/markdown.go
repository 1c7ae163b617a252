package source

import (
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownNormalizer handles markdown uploads. The body already is the
// heading syntax, so it passes through verbatim; goldmark is only used to
// pull a document title from the first top-level heading.
type MarkdownNormalizer struct{}

func (n *MarkdownNormalizer) Normalize(r io.Reader, filename string) (string, string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", "", err
	}

	title := titleFromFilename(filename)
	if t := firstH1(src); t != "" {
		title = t
	}
	return title, string(src), nil
}

// firstH1 returns the text of the first level-1 heading, if any.
func firstH1(src []byte) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		if h, ok := c.(*ast.Heading); ok && h.Level == 1 {
			return strings.TrimSpace(string(h.Text(src)))
		}
	}
	return ""
}
