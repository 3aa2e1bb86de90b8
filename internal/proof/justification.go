package proof

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Canonical rule names. These are the names used in error messages; the
// justification grammar also accepts symbolic aliases like "∧ Intro: 1, 2".
const (
	RulePremise     = "premise"
	RuleAssumption  = "assumption"
	RuleReit        = "reiteration"
	RuleConjIntro   = "conjunction introduction"
	RuleConjElim    = "conjunction elimination"
	RuleDisjIntro   = "disjunction introduction"
	RuleDisjElim    = "disjunction elimination"
	RuleCondIntro   = "conditional introduction"
	RuleCondElim    = "conditional elimination"
	RuleBicondIntro = "biconditional introduction"
	RuleBicondElim  = "biconditional elimination"
	RuleNegIntro    = "negation introduction"
	RuleNegElim     = "negation elimination"
	RuleContIntro   = "contradiction introduction"
	RuleContElim    = "contradiction elimination"
	RuleForallIntro = "universal introduction"
	RuleForallElim  = "universal elimination"
	RuleExistsIntro = "existential introduction"
	RuleExistsElim  = "existential elimination"
)

var ruleNames = map[string]bool{
	RulePremise: true, RuleAssumption: true, RuleReit: true,
	RuleConjIntro: true, RuleConjElim: true,
	RuleDisjIntro: true, RuleDisjElim: true,
	RuleCondIntro: true, RuleCondElim: true,
	RuleBicondIntro: true, RuleBicondElim: true,
	RuleNegIntro: true, RuleNegElim: true,
	RuleContIntro: true, RuleContElim: true,
	RuleForallIntro: true, RuleForallElim: true,
	RuleExistsIntro: true, RuleExistsElim: true,
}

// wordAliases maps shorthand and symbolic name parts onto the vocabulary of
// the canonical rule names.
var wordAliases = map[string]string{
	"intro":  "introduction",
	"elim":   "elimination",
	"reit":   "reiteration",
	"and":    "conjunction",
	"or":     "disjunction",
	"not":    "negation",
	"bottom": "contradiction",
	"forall": "universal",
	"exists": "existential",
	"∧":      "conjunction",
	`/\`:     "conjunction",
	"&":      "conjunction",
	"∨":      "disjunction",
	`\/`:     "disjunction",
	"→":      "conditional",
	"->":     "conditional",
	"↔":      "biconditional",
	"<->":    "biconditional",
	"¬":      "negation",
	"~":      "negation",
	"⊥":      "contradiction",
	"#":      "contradiction",
	"∀":      "universal",
	"∃":      "existential",
}

// symbolicNames is the short form used by the formatter's unicode output.
var symbolicNames = map[string]string{
	RuleReit:        "Reit",
	RuleConjIntro:   "∧ Intro",
	RuleConjElim:    "∧ Elim",
	RuleDisjIntro:   "∨ Intro",
	RuleDisjElim:    "∨ Elim",
	RuleCondIntro:   "→ Intro",
	RuleCondElim:    "→ Elim",
	RuleBicondIntro: "↔ Intro",
	RuleBicondElim:  "↔ Elim",
	RuleNegIntro:    "¬ Intro",
	RuleNegElim:     "¬ Elim",
	RuleContIntro:   "⊥ Intro",
	RuleContElim:    "⊥ Elim",
	RuleForallIntro: "∀ Intro",
	RuleForallElim:  "∀ Elim",
	RuleExistsIntro: "∃ Intro",
	RuleExistsElim:  "∃ Elim",
}

// Cite is one citation in a justification: a single line, or a whole
// subproof given as its first and last line numbers.
type Cite struct {
	Start   int
	End     int
	IsRange bool
}

func (c Cite) String() string {
	if c.IsRange {
		return fmt.Sprintf("%d-%d", c.Start, c.End)
	}
	return fmt.Sprintf("%d", c.Start)
}

// Justification is a canonical rule name plus its citations.
type Justification struct {
	Rule  string
	Cites []Cite
}

// Render produces re-parseable justification text: the symbolic short form
// when unicode is set, the canonical word form otherwise.
func (j Justification) Render(unicode bool) string {
	cites := make([]string, len(j.Cites))
	for i, c := range j.Cites {
		cites[i] = c.String()
	}
	if unicode {
		if name, ok := symbolicNames[j.Rule]; ok {
			if len(cites) == 0 {
				return name
			}
			return name + ": " + strings.Join(cites, ", ")
		}
		return j.Rule
	}
	if len(cites) == 0 {
		return j.Rule
	}
	return j.Rule + " " + strings.Join(cites, ", ")
}

// The justification mini-grammar: one or more name words or connective
// symbols, then optional citations, e.g. "conjunction introduction 1, 2",
// "∧ Intro: 1, 2", "-> Intro: 2-4".
type justGrammar struct {
	Name  []string   `parser:"@(Word | Sym)+"`
	Cites []justCite `parser:"( \":\"? @@ ( \",\" @@ )* )?"`
}

type justCite struct {
	Start int  `parser:"@Number"`
	End   *int `parser:"( \"-\" @Number )?"`
}

var justLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Sym", Pattern: `∧|∨|→|↔|¬|⊥|∀|∃|<->|->|/\\|\\/|~|&|#`},
	{Name: "Dash", Pattern: `-`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var justParser = participle.MustBuild[justGrammar](
	participle.Lexer(justLexer),
	participle.Elide("Whitespace"),
)

// errUnknownRule distinguishes an unknown rule name from malformed syntax.
type errUnknownRule struct{ name string }

func (e errUnknownRule) Error() string { return fmt.Sprintf("unknown rule %s", e.name) }

// parseJustification parses the text between the justification parentheses
// and canonicalizes the rule name.
func parseJustification(text string) (Justification, error) {
	ast, err := justParser.ParseString("", text)
	if err != nil {
		return Justification{}, fmt.Errorf("malformed justification")
	}
	parts := make([]string, len(ast.Name))
	for i, w := range ast.Name {
		word := strings.ToLower(w)
		if canon, ok := wordAliases[word]; ok {
			word = canon
		}
		parts[i] = word
	}
	name := strings.Join(parts, " ")
	if !ruleNames[name] {
		return Justification{}, errUnknownRule{name: strings.Join(ast.Name, " ")}
	}
	j := Justification{Rule: name}
	for _, c := range ast.Cites {
		cite := Cite{Start: c.Start}
		if c.End != nil {
			cite.End = *c.End
			cite.IsRange = true
			// k-k is legal: a one-line subproof whose assumption is also
			// its conclusion.
			if cite.End < cite.Start {
				return Justification{}, fmt.Errorf("invalid citation range %d-%d", cite.Start, cite.End)
			}
		}
		j.Cites = append(j.Cites, cite)
	}
	return j, nil
}
