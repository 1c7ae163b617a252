package source

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLNormalizer handles HTML uploads. Heading tags become heading-syntax
// lines (h1/h2 major, h3 and deeper nested); paragraph-like elements become
// plain lines; chrome elements are skipped.
type HTMLNormalizer struct{}

func (n *HTMLNormalizer) Normalize(r io.Reader, filename string) (string, string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", "", fmt.Errorf("parse html: %w", err)
	}

	title := titleFromFilename(filename)
	if t := findTitle(doc); t != "" {
		title = t
	}

	var lines []string
	emit := func(line string) {
		if line != "" {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, line)
		}
	}

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if level := headingLevel(node.Data); level > 0 {
				marker := "## "
				if level >= 3 {
					marker = "### "
				}
				emit(marker + textContent(node))
				return // heading text already extracted
			}

			switch node.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "li":
				emit("- " + textContent(node))
				return
			case "p", "td", "blockquote":
				emit(textContent(node))
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	body := findBody(doc)
	if body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return title, strings.Join(lines, "\n"), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
