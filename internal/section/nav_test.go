package section

import (
	"log/slog"
	"testing"
)

var navFixture = []HeadingRef{
	{Title: "A", Level: 2},
	{Title: "B", Level: 3},
	{Title: "C", Level: 2},
	{Title: "D", Level: 3},
}

func TestBuildIndex(t *testing.T) {
	entries := BuildIndex(navFixture)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	if entries[0].ID != "h2-a" || entries[1].ID != "h3-b" {
		t.Errorf("unexpected ids: %+v", entries[:2])
	}
	for i, e := range entries {
		if e.Title != navFixture[i].Title || e.Level != navFixture[i].Level {
			t.Errorf("entry %d lost metadata: %+v", i, e)
		}
	}
}

func TestBuildIndex_Empty(t *testing.T) {
	if got := BuildIndex(nil); len(got) != 0 {
		t.Fatalf("expected empty index, got %d entries", len(got))
	}
}

func TestAncestorOf(t *testing.T) {
	entries := BuildIndex(navFixture)

	if got := AncestorOf(entries, "h3-b"); got != "h2-a" {
		t.Errorf("ancestor of B = %q, want %q", got, "h2-a")
	}
	if got := AncestorOf(entries, "h3-d"); got != "h2-c" {
		t.Errorf("ancestor of D = %q, want %q", got, "h2-c")
	}
	// Level-2 entries have no ancestor container.
	if got := AncestorOf(entries, "h2-c"); got != "" {
		t.Errorf("ancestor of C = %q, want empty", got)
	}
	if got := AncestorOf(entries, "h3-nope"); got != "" {
		t.Errorf("ancestor of unknown id = %q, want empty", got)
	}
}

func TestAncestorOf_Orphan(t *testing.T) {
	entries := BuildIndex([]HeadingRef{
		{Title: "Stray", Level: 3},
		{Title: "Real", Level: 2},
	})
	if got := AncestorOf(entries, "h3-stray"); got != "" {
		t.Errorf("orphan subsection reported ancestor %q", got)
	}
}

// The navigation index and the parsed tree are built from different inputs;
// this shared fixture pins down that both sides compute the same ids from
// the same heading text.
func TestIndexMatchesParsedTree(t *testing.T) {
	doc := "## General Provisions\ntext\n### Definitions\nmore\n## Enforcement\nfinal"
	refs := []HeadingRef{
		{Title: "General Provisions", Level: 2},
		{Title: "Definitions", Level: 3},
		{Title: "Enforcement", Level: 2},
	}

	entries := BuildIndex(refs)
	p := NewParser(slog.New(slog.DiscardHandler))

	var parsed []string
	var collect func([]*Section)
	collect = func(secs []*Section) {
		for _, s := range secs {
			parsed = append(parsed, s.ID)
			collect(s.Children)
		}
	}
	collect(p.ParseNested(doc))

	if len(parsed) != len(entries) {
		t.Fatalf("parsed %d sections but index has %d entries", len(parsed), len(entries))
	}
	for i, e := range entries {
		if parsed[i] != e.ID {
			t.Errorf("entry %d: index id %q, parsed id %q", i, e.ID, parsed[i])
		}
	}
}

func TestHeadings_DerivedManifestMatchesIndex(t *testing.T) {
	doc := "# Top\nignored h1\n## General Provisions\ntext\n### Definitions\nmore\n#### deep\nignored h4"
	refs := Headings(doc)

	want := []HeadingRef{
		{Title: "General Provisions", Level: 2},
		{Title: "Definitions", Level: 3},
	}
	if len(refs) != len(want) {
		t.Fatalf("expected %d refs, got %d: %+v", len(want), len(refs), refs)
	}
	for i, r := range refs {
		if r != want[i] {
			t.Errorf("ref %d = %+v, want %+v", i, r, want[i])
		}
	}
}
