package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		level int
		want  string
	}{
		{"Licensing", 2, "h2-licensing"},
		{"Fees", 3, "h3-fees"},
		{"Zoning & Land Use", 2, "h2-zoning-land-use"},
		{"  Permit   Renewal  ", 2, "h2-permit-renewal"},
		{"Section 4.2 (Appeals)", 3, "h3-section-4-2-appeals"},
		{"---", 2, "h2-"},
		{"", 2, "h2-"},
	}
	for _, c := range cases {
		if got := Make(c.title, c.level); got != c.want {
			t.Errorf("Make(%q, %d) = %q, want %q", c.title, c.level, got, c.want)
		}
	}
}

func TestMake_Deterministic(t *testing.T) {
	if Make("Licensing", 2) != Make("Licensing", 2) {
		t.Error("same title and level produced different ids")
	}
}

func TestMake_LevelsNeverCollide(t *testing.T) {
	titles := []string{"Fees", "General Provisions", "a", ""}
	for _, title := range titles {
		if Make(title, 2) == Make(title, 3) {
			t.Errorf("Make(%q, 2) == Make(%q, 3)", title, title)
		}
	}
}

func TestIntroID(t *testing.T) {
	if IntroID != "h2-introduction" {
		t.Errorf("IntroID = %q, want %q", IntroID, "h2-introduction")
	}
}
