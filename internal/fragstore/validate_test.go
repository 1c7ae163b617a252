package fragstore

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	ok := Fragment{DocID: "d", SectionID: "h2-fees", Title: "Fees", Level: 2, Tag: "Licensing Rules", Body: "## Fees\n$50"}
	f := ok
	if err := Validate(&f, 1024); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Tag != "licensing-rules" {
		t.Errorf("tag not normalized: %q", f.Tag)
	}

	cases := map[string]Fragment{
		"blank body":  {Title: "Fees", Level: 2, Body: "   \n  "},
		"empty body":  {Title: "Fees", Level: 2, Body: ""},
		"bad level":   {Title: "Fees", Level: 1, Body: "text"},
		"no title":    {Title: " ", Level: 2, Body: "text"},
		"body too big": {Title: "Fees", Level: 2, Body: strings.Repeat("x", 2048)},
	}
	for name, frag := range cases {
		frag := frag
		if err := Validate(&frag, 1024); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Licensing", "licensing"},
		{"  Zoning / Land Use ", "zoning-land-use"},
		{"", DefaultTag},
		{"***", DefaultTag},
	}
	for _, c := range cases {
		if got := NormalizeTag(c.in); got != c.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
