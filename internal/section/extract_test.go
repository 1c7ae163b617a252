package section

import (
	"errors"
	"testing"
)

func TestExtract_RoundTrip(t *testing.T) {
	doc := "## Foo\nbar\nbaz\n## Next\nother content"
	got, err := Extract(doc, "Foo", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "## Foo\nbar\nbaz" {
		t.Errorf("expected exact section text, got %q", got)
	}
}

func TestExtract_SubsectionStopsAtMajorHeading(t *testing.T) {
	doc := "## Licensing\nRules here.\n### Fees\n$50 fee.\n## Zoning\nZone rules."
	got, err := Extract(doc, "Fees", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "### Fees\n$50 fee." {
		t.Errorf("expected fee subsection, got %q", got)
	}
}

func TestExtract_SubsectionStopsAtNextSubsection(t *testing.T) {
	doc := "## T\n### A\nfirst\n### B\nsecond"
	got, err := Extract(doc, "A", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "### A\nfirst" {
		t.Errorf("expected capture to stop at the next subsection, got %q", got)
	}
}

func TestExtract_MajorCaptureSpansSubsections(t *testing.T) {
	doc := "## T\nintro\n### A\nnested\n## U\nafter"
	got, err := Extract(doc, "T", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "## T\nintro\n### A\nnested" {
		t.Errorf("expected subsections inside a major extraction, got %q", got)
	}
}

func TestExtract_Miss(t *testing.T) {
	_, err := Extract("## Foo\nbar", "Missing", 2)
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound, got %v", err)
	}
	// Wrong level is also a miss.
	_, err = Extract("## Foo\nbar", "Foo", 3)
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound for wrong level, got %v", err)
	}
	_, err = Extract("", "Foo", 2)
	if !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound for empty document, got %v", err)
	}
}

// An exact title match must win even when that title is a substring of
// another heading at the same level.
func TestExtract_ExactMatchBeatsSubstring(t *testing.T) {
	doc := "## Fees and Penalties\npenalty text\n## Fees\nfee text"
	got, err := Extract(doc, "Fees", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "## Fees\nfee text" {
		t.Errorf("substring match shadowed the exact match: %q", got)
	}
}

func TestExtract_SubstringFallback(t *testing.T) {
	doc := "## Section 4: Appeals\nappeal text\n## Other\nother"
	got, err := Extract(doc, "Appeals", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "## Section 4: Appeals\nappeal text" {
		t.Errorf("expected substring fallback capture, got %q", got)
	}
}

func TestExtract_AmbiguousTitle(t *testing.T) {
	// Two substring matches and no exact match.
	doc := "## Fee Schedule\na\n## Fee Waivers\nb"
	_, err := Extract(doc, "Fee", 2)
	if !errors.Is(err, ErrAmbiguousTitle) {
		t.Fatalf("expected ErrAmbiguousTitle, got %v", err)
	}

	// Duplicate exact titles are ambiguous too.
	doc = "## Fees\na\n## Fees\nb"
	_, err = Extract(doc, "Fees", 2)
	if !errors.Is(err, ErrAmbiguousTitle) {
		t.Fatalf("expected ErrAmbiguousTitle for duplicates, got %v", err)
	}
}
