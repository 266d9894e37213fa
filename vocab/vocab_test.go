package vocab

import "testing"

func TestEnumerated_InspireField(t *testing.T) {
	terms, err := Enumerated("elements/inspire_field")
	if err != nil {
		t.Fatalf("enumerated err: %v", err)
	}
	if len(terms) == 0 {
		t.Fatalf("empty enum")
	}
	found := false
	for _, term := range terms {
		if term == "Gravitation and Cosmology" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Gravitation and Cosmology in %v", terms)
	}
}

func TestEnumerated_UnknownPathIsError(t *testing.T) {
	if _, err := Enumerated("elements/nope"); err == nil {
		t.Fatalf("expected error for unknown schema path")
	}
}

func TestNormalizeArxivCategory(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"hep-th", "hep-th"},
		{"HEP-TH", "hep-th"},
		{"Astro-Ph.co", "astro-ph.CO"},
		{"q-alg", "math.QA"}, // obsolete alias
		{"supr-con", "cond-mat.supr-con"},
		{"z", ""},
		{"", ""},
	} {
		got, err := NormalizeArxivCategory(tt.in)
		if err != nil {
			t.Fatalf("normalize err: %v", err)
		}
		if got != tt.want {
			t.Fatalf("NormalizeArxivCategory(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidArxivCategories(t *testing.T) {
	cats, err := ValidArxivCategories()
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(cats) < 50 {
		t.Fatalf("suspiciously small category list: %d", len(cats))
	}
}

func TestNormalizeRank(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"PD", "POSTDOC"},
		{"Postdoc", "POSTDOC"},
		{"SENIOR", "SENIOR"},
		{"ug", "UNDERGRADUATE"},
		{"STUDENT", "PHD"},
		{"VISITING SCIENTIST", "VISITOR"},
		{"wizard", "OTHER"},
		{"", ""},
	} {
		if got := NormalizeRank(tt.in); got != tt.want {
			t.Fatalf("NormalizeRank(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDegreeType(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want string
	}{
		{"PhD", "phd"},
		{"PHD", "phd"},
		{"phd", "phd"},
		{"Bachelor", "bachelor"},
		{"UG", "bachelor"},
		{"MAS", "master"},
		{"habilitation", "other"},
		{"", "other"},
	} {
		if got := NormalizeDegreeType(tt.in); got != tt.want {
			t.Fatalf("NormalizeDegreeType(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
