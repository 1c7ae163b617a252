package section

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func testParser() *Parser {
	return NewParser(slog.New(slog.DiscardHandler))
}

const licensingDoc = "## Licensing\nRules here.\n### Fees\n$50 fee.\n## Zoning\nZone rules."

func TestParse_MajorSections(t *testing.T) {
	p := testParser()
	sections := p.Parse(licensingDoc)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Licensing" || sections[0].Level != 2 {
		t.Errorf("unexpected first section: %+v", sections[0])
	}
	if sections[0].ID != "h2-licensing" {
		t.Errorf("expected id %q, got %q", "h2-licensing", sections[0].ID)
	}
	// Flat parse leaves the subsection inside its parent's content.
	if !strings.Contains(sections[0].Content, "### Fees") {
		t.Errorf("expected subsection text inside parent content, got %q", sections[0].Content)
	}
	if sections[1].Title != "Zoning" {
		t.Errorf("expected %q, got %q", "Zoning", sections[1].Title)
	}
	if strings.Contains(sections[0].Content, "Zone rules.") {
		t.Errorf("first section content leaked past the next heading: %q", sections[0].Content)
	}
}

func TestParse_ContentIncludesHeadingLine(t *testing.T) {
	sections := testParser().Parse("## Foo\nbar")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Content != "## Foo\nbar" {
		t.Errorf("expected content to start with the heading line, got %q", sections[0].Content)
	}
}

func TestParse_IntroductionSynthesis(t *testing.T) {
	sections := testParser().Parse("intro text\n## First\ncontent")

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != IntroTitle {
		t.Errorf("expected synthetic Introduction first, got %q", sections[0].Title)
	}
	if sections[0].ID != "h2-introduction" {
		t.Errorf("unexpected introduction id %q", sections[0].ID)
	}
	if sections[0].Content != "intro text" {
		t.Errorf("expected intro content %q, got %q", "intro text", sections[0].Content)
	}
	if sections[1].Title != "First" {
		t.Errorf("expected %q, got %q", "First", sections[1].Title)
	}
}

func TestParse_BlankIntroIsDropped(t *testing.T) {
	sections := testParser().Parse("\n   \n## Only\nbody")
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "Only" {
		t.Errorf("expected %q, got %q", "Only", sections[0].Title)
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	if got := testParser().Parse(""); len(got) != 0 {
		t.Fatalf("expected no sections for empty document, got %d", len(got))
	}
}

func TestParse_HeadinglessDocument(t *testing.T) {
	doc := "just text, no headings"
	sections := testParser().Parse(doc)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != IntroTitle || sections[0].Content != doc {
		t.Errorf("expected full text under Introduction, got %+v", sections[0])
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := testParser()
	a := p.Parse(licensingDoc)
	b := p.Parse(licensingDoc)
	if !reflect.DeepEqual(a, b) {
		t.Error("reparsing the same document produced a different tree")
	}

	a = p.ParseNested(licensingDoc)
	b = p.ParseNested(licensingDoc)
	if !reflect.DeepEqual(a, b) {
		t.Error("nested reparse produced a different tree")
	}
}

func TestParseNested_Scenario(t *testing.T) {
	sections := testParser().ParseNested(licensingDoc)

	if len(sections) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(sections))
	}
	lic := sections[0]
	if lic.Title != "Licensing" || lic.Level != 2 {
		t.Fatalf("unexpected first section: %+v", lic)
	}
	if len(lic.Children) != 1 {
		t.Fatalf("expected 1 subsection under Licensing, got %d", len(lic.Children))
	}
	fees := lic.Children[0]
	if fees.Title != "Fees" || fees.Level != 3 {
		t.Errorf("unexpected subsection: %+v", fees)
	}
	if fees.Content != "### Fees\n$50 fee." {
		t.Errorf("unexpected subsection content %q", fees.Content)
	}
	// The parent's own content stops at the first subsection heading.
	if lic.Content != "## Licensing\nRules here." {
		t.Errorf("unexpected parent content %q", lic.Content)
	}
	if sections[1].Title != "Zoning" || len(sections[1].Children) != 0 {
		t.Errorf("unexpected second section: %+v", sections[1])
	}
}

func TestParseNested_OrphanSubsectionKeptAtTopLevel(t *testing.T) {
	doc := "### Stray\norphan body\n## Real\nreal body"
	sections := testParser().ParseNested(doc)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "Stray" || sections[0].Level != 3 {
		t.Errorf("expected orphan subsection first, got %+v", sections[0])
	}
	if !strings.Contains(sections[0].Content, "orphan body") {
		t.Errorf("orphan content dropped: %q", sections[0].Content)
	}
	if sections[1].Title != "Real" {
		t.Errorf("expected %q, got %q", "Real", sections[1].Title)
	}
}

// Every non-blank line of the input must survive somewhere in the parsed
// tree; sectioning may duplicate lines but never drop them.
func TestParse_LineCoverage(t *testing.T) {
	doc := "preamble line\n\n## A\na one\na two\n### A1\nnested line\n\n## B\nb one\n- item\n**bold** text"
	p := testParser()

	for name, sections := range map[string][]*Section{
		"flat":   p.Parse(doc),
		"nested": p.ParseNested(doc),
	} {
		var all strings.Builder
		var collect func([]*Section)
		collect = func(secs []*Section) {
			for _, s := range secs {
				all.WriteString(s.Content)
				all.WriteString("\n")
				collect(s.Children)
			}
		}
		collect(sections)

		for _, line := range strings.Split(doc, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !strings.Contains(all.String(), line) {
				t.Errorf("%s parse dropped line %q", name, line)
			}
		}
	}
}
