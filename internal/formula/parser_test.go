package formula

import (
	"errors"
	"testing"

	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/lexer"
)

var testVars = map[string]bool{"x": true, "y": true, "z": true, "u": true, "v": true, "w": true}

func parse(t *testing.T, input string) Formula {
	t.Helper()
	toks, err := lexer.Scan(input)
	if err != nil {
		t.Fatalf("Scan(%q) failed: %v", input, err)
	}
	f, err := Parse(toks[:len(toks)-1], testVars) // drop EOF
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", input, err)
	}
	return f
}

func TestParsePrecedence(t *testing.T) {
	f := parse(t, "¬P ∧ Q → R ∨ S ↔ T")
	want := Binary{
		Op: Iff,
		Left: Binary{
			Op:    Implies,
			Left:  Binary{Op: And, Left: Not{Operand: Atom{Name: "P"}}, Right: Atom{Name: "Q"}},
			Right: Binary{Op: Or, Left: Atom{Name: "R"}, Right: Atom{Name: "S"}},
		},
		Right: Atom{Name: "T"},
	}
	if !f.Equal(want) {
		t.Errorf("expected %s, got %s", want, f)
	}
}

func TestParseAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  Formula
	}{
		// → is right-associative
		{"P → Q → R", Binary{Op: Implies, Left: Atom{Name: "P"},
			Right: Binary{Op: Implies, Left: Atom{Name: "Q"}, Right: Atom{Name: "R"}}}},
		// ∧ is left-associative
		{"P ∧ Q ∧ R", Binary{Op: And,
			Left:  Binary{Op: And, Left: Atom{Name: "P"}, Right: Atom{Name: "Q"}},
			Right: Atom{Name: "R"}}},
		{"(P → Q) → R", Binary{Op: Implies,
			Left:  Binary{Op: Implies, Left: Atom{Name: "P"}, Right: Atom{Name: "Q"}},
			Right: Atom{Name: "R"}}},
	}
	for _, tt := range tests {
		if f := parse(t, tt.input); !f.Equal(tt.want) {
			t.Errorf("Parse(%q): expected %s, got %s", tt.input, tt.want, f)
		}
	}
}

func TestParseASCII(t *testing.T) {
	if f, g := parse(t, `~P /\ Q -> R \/ S <-> T`), parse(t, "¬P ∧ Q → R ∨ S ↔ T"); !f.Equal(g) {
		t.Errorf("ASCII and unicode forms differ: %s vs %s", f, g)
	}
	if f, g := parse(t, "forall x P(x) -> #"), parse(t, "∀x P(x) → ⊥"); !f.Equal(g) {
		t.Errorf("ASCII and unicode forms differ: %s vs %s", f, g)
	}
}

func TestParseQuantifiers(t *testing.T) {
	f := parse(t, "∀x ∃y Likes(x, y)")
	want := Quantifier{Q: Forall, Variable: "x", Body: Quantifier{Q: Exists, Variable: "y",
		Body: Atom{Name: "Likes", Args: []Term{{Name: "x"}, {Name: "y"}}}}}
	if !f.Equal(want) {
		t.Errorf("expected %s, got %s", want, f)
	}

	// The quantifier binds only its immediate subformula.
	f = parse(t, "∀x P(x) ∧ Q")
	if _, ok := f.(Binary); !ok {
		t.Errorf("expected ∧ at the root, got %s", f)
	}
}

func TestParseFunctionTerms(t *testing.T) {
	f := parse(t, "Equal(father(x), y)")
	want := Atom{Name: "Equal", Args: []Term{
		{Name: "father", Args: []Term{{Name: "x"}}},
		{Name: "y"},
	}}
	if !f.Equal(want) {
		t.Errorf("expected %s, got %s", want, f)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
	}{
		{"(P ∧ Q", "mismatched parentheses"},
		{"P ∧ Q)", "mismatched parentheses"},
		{"P ∧", "missing operand"},
		{"∧ P", "missing operand"},
		{"∀q P", "'q' is not an allowed variable name"},
		{"∀ P", "'P' is not an allowed variable name"},
		{"p ∧ Q", "predicate 'p' must start with a capital letter"},
		{"P(X)", "term 'X' must start with a lowercase letter"},
	}
	for _, tt := range tests {
		toks, err := lexer.Scan(tt.input)
		if err != nil {
			t.Fatalf("Scan(%q) failed: %v", tt.input, err)
		}
		_, err = Parse(toks[:len(toks)-1], testVars)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tt.input)
			continue
		}
		var parseErr *diag.ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Parse(%q): expected *diag.ParseError, got %T", tt.input, err)
			continue
		}
		if parseErr.Message != tt.msg {
			t.Errorf("Parse(%q): expected %q, got %q", tt.input, tt.msg, parseErr.Message)
		}
	}
}

// Rendering a formula and parsing it back must yield a structurally
// identical tree.
func TestRenderRoundTrip(t *testing.T) {
	inputs := []string{
		"P",
		"¬¬P",
		"¬(P ∧ Q)",
		"P ∧ Q ∧ R",
		"P ∧ (Q ∧ R)",
		"P → Q → R",
		"(P → Q) → R",
		"P ∨ Q → ¬R ↔ ⊥",
		"∀x (P(x) → ∃y Likes(x, y))",
		"∀x P(x) ∧ Q",
		"Equal(father(x), y) ∨ ⊥",
	}
	for _, input := range inputs {
		f := parse(t, input)
		for _, unicode := range []bool{true, false} {
			rendered := Render(f, unicode)
			g := parse(t, rendered)
			if !f.Equal(g) {
				t.Errorf("round trip of %q via %q changed the tree to %s", input, rendered, g)
			}
		}
	}
}
