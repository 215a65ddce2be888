package core

import "testing"

func TestCategorize(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"Tuition Fee Term 1", CategoryTuition},
		{"Frais de Scolarité", CategoryTuition},
		{"Inscription 2024", CategoryTuition},
		{"Final Exam Fee", CategoryExam},
		{"Frais d'Examen", CategoryExam},
		{"Frais de Transport", CategoryTransport},
		{"School Bus Transport", CategoryTransport},
		{"Library Membership", CategoryLibrary},
		{"Frais de Bibliotheque", CategoryLibrary},
		{"Science Lab Fee", CategoryLab},
		{"Laboratoire de Chimie", CategoryLab},
		{"Sport Annuel", CategorySport},
		{"Insurance Premium", CategoryInsurance},
		{"Assurance Scolaire", CategoryInsurance},
		{"Uniform", CategoryOther},
		{"", CategoryOther},
	}
	for _, c := range cases {
		if got := Categorize(c.name); got != c.want {
			t.Errorf("Categorize(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestCategorizeOrderedFirstMatchWins(t *testing.T) {
	// The name carries both a tuition and an insurance keyword; the tuition
	// entry comes first in the table, so tuition must win.
	if got := Categorize("Scolarité et Assurance"); got != CategoryTuition {
		t.Fatalf("expected first matching category to win, got %q", got)
	}
}

func TestCategorizeDeterministic(t *testing.T) {
	names := []string{"Frais de Transport", "Tuition", "Uniform", "Sport"}
	for _, n := range names {
		first := Categorize(n)
		for i := 0; i < 100; i++ {
			if got := Categorize(n); got != first {
				t.Fatalf("Categorize(%q) drifted from %q to %q", n, first, got)
			}
		}
	}
}
