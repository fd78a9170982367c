package service

import "testing"

func TestNormalizeResourceType(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already canonical", input: "video", want: "video"},
		{name: "surrounding whitespace", input: " Video ", want: "video"},
		{name: "uppercase", input: "QUIZ", want: "quiz"},
		{name: "internal whitespace run", input: "interactive   exercice", want: "interactive exercice"},
		{name: "leading space variant", input: " interactive exercice", want: "interactive exercice"},
		{name: "english variant spelling", input: "Interactive Exercise", want: "interactive exercice"},
		{name: "hyphenated variant", input: "interactive-exercice", want: "interactive exercice"},
		{name: "empty", input: "", want: ""},
		{name: "whitespace only", input: "   ", want: ""},
		{name: "tab and newline", input: "\tvideo\n", want: "video"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeResourceType(tc.input)
			if got != tc.want {
				t.Fatalf("normalizeResourceType(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeResourceTypeIdempotent(t *testing.T) {
	inputs := []string{
		" Video ", "QUIZ", "interactive   exercice", "Interactive Exercise",
		"interactive-exercice", "exercice interactif", "podcast", "", "  ",
		"Other", "article ",
	}
	// Table entries must be fixed points too, or a second pass could drift.
	for variant, canonical := range variantSpellings {
		inputs = append(inputs, variant, canonical)
	}

	for _, input := range inputs {
		once := normalizeResourceType(input)
		twice := normalizeResourceType(once)
		if once != twice {
			t.Fatalf("normalizeResourceType not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
