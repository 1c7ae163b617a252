// Package render turns parsed sections into HTML for the collapsible
// display units of a reading surface. Section ids carry through unchanged
// so rendered elements stay addressable by the navigation index.
package render

import (
	"bytes"
	"html"
	"html/template"
	"log/slog"
	"strings"

	"github.com/dgallion1/regreader/internal/section"
	"github.com/yuin/goldmark"
)

// Rendered is one collapsible display unit.
type Rendered struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Level    int           `json:"level"`
	HTML     template.HTML `json:"html"`
	Children []Rendered    `json:"children,omitempty"`
}

// Renderer converts section bodies with goldmark.
type Renderer struct {
	md  goldmark.Markdown
	log *slog.Logger
}

func New(log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		md:  goldmark.New(),
		log: log,
	}
}

// Sections renders a section tree. The heading line is dropped from each
// body; the display unit renders the title itself.
func (r *Renderer) Sections(secs []*section.Section) []Rendered {
	out := make([]Rendered, 0, len(secs))
	for _, s := range secs {
		out = append(out, Rendered{
			ID:       s.ID,
			Title:    s.Title,
			Level:    s.Level,
			HTML:     r.body(s),
			Children: r.Sections(s.Children),
		})
	}
	return out
}

func (r *Renderer) body(s *section.Section) template.HTML {
	body := stripHeadingLine(s.Content)
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(body), &buf); err != nil {
		r.log.Warn("markdown conversion failed, falling back to preformatted text",
			"id", s.ID, "error", err)
		return template.HTML("<pre>" + html.EscapeString(body) + "</pre>")
	}
	return template.HTML(buf.String())
}

// stripHeadingLine removes the leading heading marker line the parser keeps
// in section content.
func stripHeadingLine(content string) string {
	if !strings.HasPrefix(content, "## ") && !strings.HasPrefix(content, "### ") {
		return content
	}
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		return strings.TrimLeft(content[i+1:], "\n")
	}
	return ""
}
