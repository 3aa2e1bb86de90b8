package formula

import "testing"

func TestEqualIsStructural(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"P ∧ Q", "P ∧ Q", true},
		{"P ∧ Q", "Q ∧ P", false},
		{"P ∧ Q ∧ R", "P ∧ (Q ∧ R)", false},
		{"¬¬P", "P", false},
		{"∀x P(x)", "∀y P(y)", false},
		{"Likes(a, b)", "Likes(a, b)", true},
		{"Likes(a, b)", "Likes(b, a)", false},
	}
	for _, tt := range tests {
		a, b := parse(t, tt.a), parse(t, tt.b)
		if got := a.Equal(b); got != tt.equal {
			t.Errorf("Equal(%q, %q): expected %v, got %v", tt.a, tt.b, tt.equal, got)
		}
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		input string
		term  Term
		want  string
	}{
		{"P(x)", Term{Name: "a"}, "P(a)"},
		{"P(x) ∧ Q(x, y)", Term{Name: "a"}, "P(a) ∧ Q(a, y)"},
		{"∃y Likes(x, y)", Term{Name: "a"}, "∃y Likes(a, y)"},
		// a quantifier rebinding x shadows the substitution
		{"P(x) ∧ ∀x Q(x)", Term{Name: "a"}, "P(a) ∧ ∀x Q(x)"},
		{"P(x)", Term{Name: "father", Args: []Term{{Name: "a"}}}, "P(father(a))"},
	}
	for _, tt := range tests {
		got := Substitute(parse(t, tt.input), "x", tt.term)
		want := parse(t, tt.want)
		if !got.Equal(want) {
			t.Errorf("Substitute(%q, x, %s): expected %s, got %s", tt.input, tt.term, want, got)
		}
	}
}

func TestOccurs(t *testing.T) {
	tests := []struct {
		input string
		name  string
		want  bool
	}{
		{"P(a) ∧ Q", "a", true},
		{"P(a) ∧ Q", "b", false},
		{"∀x Likes(x, father(c))", "c", true},
		{"∀x P(x)", "x", true},
		{"⊥", "a", false},
	}
	for _, tt := range tests {
		if got := Occurs(parse(t, tt.input), tt.name); got != tt.want {
			t.Errorf("Occurs(%q, %q): expected %v, got %v", tt.input, tt.name, tt.want, got)
		}
	}
}

func TestMatchInstance(t *testing.T) {
	tests := []struct {
		pattern  string
		instance string
		v        string
		term     string
		ok       bool
	}{
		{"P(x)", "P(a)", "x", "a", true},
		{"Likes(x, x)", "Likes(a, a)", "x", "a", true},
		// both occurrences must be replaced by the same term
		{"Likes(x, x)", "Likes(a, b)", "x", "", false},
		{"P(x) → Q", "P(father(a)) → Q", "x", "father(a)", true},
		{"P(x)", "Q(a)", "x", "", false},
		// x shadowed by a nested quantifier stays untouched
		{"P(x) ∧ ∀x Q(x)", "P(a) ∧ ∀x Q(x)", "x", "a", true},
		{"P(x) ∧ ∀x Q(x)", "P(a) ∧ ∀x Q(a)", "x", "", false},
	}
	for _, tt := range tests {
		pattern, instance := parse(t, tt.pattern), parse(t, tt.instance)
		term, ok := MatchInstance(pattern, instance, tt.v)
		if ok != tt.ok {
			t.Errorf("MatchInstance(%q, %q, %s): expected ok=%v, got %v", tt.pattern, tt.instance, tt.v, tt.ok, ok)
			continue
		}
		if ok && term.String() != tt.term {
			t.Errorf("MatchInstance(%q, %q, %s): expected term %s, got %s", tt.pattern, tt.instance, tt.v, tt.term, term)
		}
	}
}

func TestMatchInstanceNoOccurrence(t *testing.T) {
	// When v does not occur, only an identical instance matches.
	pattern, same, other := parse(t, "P ∧ Q"), parse(t, "P ∧ Q"), parse(t, "P ∧ R")
	if _, ok := MatchInstance(pattern, same, "x"); !ok {
		t.Error("expected identical instance to match")
	}
	if _, ok := MatchInstance(pattern, other, "x"); ok {
		t.Error("expected differing instance not to match")
	}
}
