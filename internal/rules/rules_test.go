package rules

import (
	"testing"

	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/proof"
)

var testVars = map[string]bool{"x": true, "y": true, "z": true, "u": true, "v": true, "w": true}

// validateAll parses and validates a proof, returning the first rule error.
func validateAll(t *testing.T, src string) *diag.RuleError {
	t.Helper()
	doc, err := proof.Parse(src, proof.Options{AllowedVars: testVars})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	for _, line := range doc.Lines {
		if rerr := Validate(line, doc); rerr != nil {
			return rerr
		}
	}
	return nil
}

func expectValid(t *testing.T, src string) {
	t.Helper()
	if rerr := validateAll(t, src); rerr != nil {
		t.Errorf("expected a valid proof, got line %d: %s", rerr.Line, rerr.Message)
	}
}

func expectError(t *testing.T, src string, line int, msg string) {
	t.Helper()
	rerr := validateAll(t, src)
	if rerr == nil {
		t.Error("expected a rule error, proof validated")
		return
	}
	if rerr.Line != line || rerr.Message != msg {
		t.Errorf("expected line %d: %q, got line %d: %q", line, msg, rerr.Line, rerr.Message)
	}
}

func TestPropositionalRules(t *testing.T) {
	valid := map[string]string{
		"reiteration": `1. | P (assumption)
2. | P (reiteration 1)
`,
		"conjunction": `1. P (premise)
2. Q (premise)
3. P ∧ Q (conjunction introduction 1, 2)
4. P (conjunction elimination 3)
5. Q (conjunction elimination 3)
`,
		"disjunction": `1. P ∨ Q (premise)
2. | P (assumption)
3. | Q ∨ P (disjunction introduction 2)
4. | Q (assumption)
5. | Q ∨ P (disjunction introduction 4)
6. Q ∨ P (disjunction elimination 1, 2-3, 4-5)
`,
		"conditional from a one-line subproof": `1. | P (assumption)
2. P → P (conditional introduction 1-1)
`,
		"conditional": `1. P (premise)
2. Q (premise)
3. | P (assumption)
4. | Q (reiteration 2)
5. P → Q (conditional introduction 3-4)
6. Q (conditional elimination 5, 1)
`,
		"biconditional": `1. P → Q (premise)
2. Q → P (premise)
3. | P (assumption)
4. | Q (conditional elimination 1, 3)
5. | Q (assumption)
6. | P (conditional elimination 2, 5)
7. P ↔ Q (biconditional introduction 3-4, 5-6)
`,
		"negation": `1. ¬P (premise)
2. | P (assumption)
3. | ¬P (reiteration 1)
4. | ⊥ (contradiction introduction 2, 3)
5. ¬P (negation introduction 2-4)
`,
		"double negation": `1. ¬¬P (premise)
2. P (negation elimination 1)
`,
		"explosion": `1. ⊥ (premise)
2. Q (contradiction elimination 1)
`,
	}
	for name, src := range valid {
		t.Run(name, func(t *testing.T) { expectValid(t, src) })
	}
}

func TestBiconditionalElimRightToLeft(t *testing.T) {
	expectValid(t, `1. P ↔ Q (premise)
2. Q (premise)
3. P (biconditional elimination 1, 2)
`)
}

func TestRulePredicateFailures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{
			name: "conjunction order is fixed",
			src:  "1. P (premise)\n2. Q (premise)\n3. Q ∧ P (conjunction introduction 1, 2)\n",
			line: 3,
			msg:  "conjunction introduction does not justify Q∧P",
		},
		{
			name: "conjunction elimination needs a conjunction",
			src:  "1. P ∨ Q (premise)\n2. P (conjunction elimination 1)\n",
			line: 2,
			msg:  "conjunction elimination does not justify P",
		},
		{
			name: "reiteration must match exactly",
			src:  "1. | P (assumption)\n2. | ¬¬P (reiteration 1)\n",
			line: 2,
			msg:  "reiteration does not justify ¬¬P",
		},
		{
			name: "modus ponens needs the antecedent",
			src:  "1. P → Q (premise)\n2. Q (premise)\n3. Q (conditional elimination 1, 2)\n",
			line: 3,
			msg:  "conditional elimination does not justify Q",
		},
		{
			name: "negation introduction needs a contradiction",
			src:  "1. | P (assumption)\n2. | P (reiteration 1)\n3. ¬P (negation introduction 1-2)\n",
			line: 3,
			msg:  "negation introduction does not justify ¬P",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { expectError(t, tt.src, tt.line, tt.msg) })
	}
}

// Scenario: a conjunction introduction citing one line fails on arity
// regardless of the other lines' content.
func TestWrongNumberOfCitations(t *testing.T) {
	expectError(t, "1. P (premise)\n2. P ∧ P (conjunction introduction 1)\n",
		2, "wrong number of citations for conjunction introduction")
	expectError(t, "1. P (premise)\n2. P (reiteration 1, 1)\n",
		2, "wrong number of citations for reiteration")
	expectError(t, "1. P (premise 1)\n",
		1, "wrong number of citations for premise")
	expectError(t, "1. P (premise)\n2. | Q (assumption 1)\n3. | Q (reiteration 2)\n",
		2, "wrong number of citations for assumption")
}

func TestCitationShape(t *testing.T) {
	expectError(t, "1. | P (assumption)\n2. | P (reiteration 1)\n3. P → P (conditional introduction 1)\n",
		3, "conditional introduction expects a cited subproof")
	expectError(t, "1. | P (assumption)\n2. | P (reiteration 1)\n3. P (reiteration 1-2)\n",
		3, "reiteration cannot cite a subproof")
}

func TestScopeViolations(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{
			name: "citing the interior of a closed subproof",
			src: `1. | P (assumption)
2. | P (reiteration 1)
3. P → P (conditional introduction 1-2)
4. P (reiteration 2)
`,
			line: 4,
			msg:  "cited line 2 is out of scope",
		},
		{
			name: "citing a later line",
			src:  "1. | P (assumption)\n2. | Q (reiteration 3)\n3. | Q (reiteration 2)\n",
			line: 2,
			msg:  "cited line 3 is out of scope",
		},
		{
			name: "citing a sibling subproof line",
			src: `1. P ∨ P (premise)
2. | P (assumption)
3. | P (reiteration 2)
4. | P (assumption)
5. | P (reiteration 3)
6. P (disjunction elimination 1, 2-3, 4-5)
`,
			line: 5,
			msg:  "cited line 3 is out of scope",
		},
		{
			name: "citing a nonexistent line",
			src:  "1. P (premise)\n2. P (reiteration 9)\n",
			line: 2,
			msg:  "cited line 9 does not exist",
		},
		{
			name: "citing a range that is not a subproof",
			src: `1. | P (assumption)
2. | P (reiteration 1)
3. P → P (conditional introduction 1-3)
`,
			line: 3,
			msg:  "cited range 1-3 is not a subproof",
		},
		{
			name: "citing a subproof nested below the current scope",
			src: `1. | P (assumption)
2. | | Q (assumption)
3. | | Q (reiteration 2)
4. | Q → Q (conditional introduction 2-3)
5. Q → Q (conditional introduction 2-3)
`,
			line: 5,
			msg:  "cited subproof 2-3 is out of scope",
		},
		{
			name: "citing a boxed-constant line",
			src: `1. | [c] (assumption)
2. | P (reiteration 1)
`,
			line: 2,
			msg:  "cited line 1 has no formula",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { expectError(t, tt.src, tt.line, tt.msg) })
	}
}

func TestPremisePlacement(t *testing.T) {
	expectError(t, "1. | P (assumption)\n2. | Q (premise)\n",
		2, "premise inside a subproof")
	expectError(t, "1. | P (assumption)\n2. | P (reiteration 1)\n3. P → P (conditional introduction 1-2)\n4. Q (premise)\n",
		4, "premise must appear at the start of the proof")
}

func TestConditionalIntroduction(t *testing.T) {
	// Concluding the implication the right way around succeeds; swapping
	// antecedent and consequent is rejected with the offending formula.
	expectValid(t, `1. Q (premise)
2. | P (assumption)
3. | Q (reiteration 1)
4. P → Q (conditional introduction 2-3)
`)
	expectError(t, `1. Q (premise)
2. | P (assumption)
3. | Q (reiteration 1)
4. Q → P (conditional introduction 2-3)
`, 4, "conditional introduction does not justify Q→P")
}

func TestQuantifierRules(t *testing.T) {
	valid := map[string]string{
		"universal elimination": `1. ∀x Likes(x, a) (premise)
2. Likes(b, a) (universal elimination 1)
`,
		"existential introduction": `1. Likes(a, b) (premise)
2. ∃x Likes(x, b) (existential introduction 1)
`,
		"universal introduction": `1. ∀x P(x) (premise)
2. | [c] (assumption)
3. | P(c) (universal elimination 1)
4. ∀x P(x) (universal introduction 2-3)
`,
		"existential elimination": `1. ∃x P(x) (premise)
2. ∀x (P(x) → Q) (premise)
3. | [c] P(c) (assumption)
4. | P(c) → Q (universal elimination 2)
5. | Q (conditional elimination 4, 3)
6. Q (existential elimination 1, 3-5)
`,
	}
	for name, src := range valid {
		t.Run(name, func(t *testing.T) { expectValid(t, src) })
	}

	invalid := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{
			name: "universal elimination with inconsistent instance",
			src:  "1. ∀x Likes(x, x) (premise)\n2. Likes(a, b) (universal elimination 1)\n",
			line: 2,
			msg:  "universal elimination does not justify Likes(a, b)",
		},
		{
			name: "universal introduction with a stale constant",
			src: `1. P(c) (premise)
2. | [c] (assumption)
3. | P(c) (reiteration 1)
4. ∀x P(x) (universal introduction 2-3)
`,
			line: 4,
			msg:  "universal introduction does not justify ∀x P(x)",
		},
		{
			name: "universal introduction needs a boxed constant",
			src: `1. P(a) (premise)
2. | Q (assumption)
3. | P(a) (reiteration 1)
4. ∀x P(x) (universal introduction 2-3)
`,
			line: 4,
			msg:  "universal introduction does not justify ∀x P(x)",
		},
		{
			name: "existential elimination leaking the constant",
			src: `1. ∃x P(x) (premise)
2. | [c] P(c) (assumption)
3. | P(c) (reiteration 2)
4. P(c) (existential elimination 1, 2-3)
`,
			line: 4,
			msg:  "existential elimination does not justify P(c)",
		},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) { expectError(t, tt.src, tt.line, tt.msg) })
	}
}
