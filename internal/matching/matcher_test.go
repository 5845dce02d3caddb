package matching

import "testing"

func TestPercentageSelfMatch(t *testing.T) {
	lists := [][]string{
		{"Python"},
		{"Python", "SQL", "Machine Learning"},
		{"  go ", "Kubernetes", "docker"},
	}

	for _, skills := range lists {
		for _, mode := range []Mode{Lenient, Strict} {
			if got := Percentage(skills, skills, mode); got != 100 {
				t.Fatalf("self-match of %v (mode %d) = %d, want 100", skills, mode, got)
			}
		}
	}
}

func TestPercentageEmptyInputs(t *testing.T) {
	if got := Percentage(nil, []string{"python"}, Lenient); got != 0 {
		t.Fatalf("empty reference scored %d, want 0", got)
	}
	if got := Percentage([]string{"python"}, nil, Lenient); got != 0 {
		t.Fatalf("empty candidate scored %d, want 0", got)
	}
	// Whitespace-only tokens clean down to nothing.
	if got := Percentage([]string{"  ", ""}, []string{"python"}, Lenient); got != 0 {
		t.Fatalf("blank reference scored %d, want 0", got)
	}
}

func TestPercentageBounded(t *testing.T) {
	cases := [][2][]string{
		{{"python"}, {"java", "c++", "rust"}},
		{{"python", "sql"}, {"python"}},
		{{"a", "b", "c"}, {"a", "a", "a"}},
	}

	for _, c := range cases {
		got := Percentage(c[0], c[1], Lenient)
		if got < 0 || got > 100 {
			t.Fatalf("Percentage(%v, %v) = %d, out of [0,100]", c[0], c[1], got)
		}
	}
}

func TestPercentageLenientSubstring(t *testing.T) {
	reference := []string{"proficiency in python"}
	candidate := []string{"Python"}

	if got := Percentage(reference, candidate, Lenient); got != 100 {
		t.Fatalf("lenient substring match scored %d, want 100", got)
	}
	if got := Percentage(reference, candidate, Strict); got != 0 {
		t.Fatalf("strict match scored %d, want 0", got)
	}
}

func TestPercentagePartial(t *testing.T) {
	reference := []string{"Python", "SQL", "Machine Learning"}
	candidate := []string{"python", "sql", "excel"}

	// 2 of 3 candidate skills covered.
	if got := Percentage(reference, candidate, Lenient); got != 67 {
		t.Fatalf("partial match scored %d, want 67", got)
	}
}

func TestNormalize(t *testing.T) {
	got := Normalize([]string{" Python ", "", "SQL", "  "})
	want := []string{"python", "sql"}

	if len(got) != len(want) {
		t.Fatalf("Normalize returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Normalize returned %v, want %v", got, want)
		}
	}
}

func TestSplitAndPrimary(t *testing.T) {
	skills := Split("Python, SQL, , Machine Learning")
	if len(skills) != 3 {
		t.Fatalf("Split returned %d tokens, want 3: %v", len(skills), skills)
	}

	if got := Primary("Python, SQL"); got != "Python" {
		t.Fatalf("Primary = %q, want %q", got, "Python")
	}
	if got := Primary("  ,  "); got != "general" {
		t.Fatalf("Primary fallback = %q, want %q", got, "general")
	}
}
