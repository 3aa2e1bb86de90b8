package format

import (
	"fmt"
	"strings"

	"github.com/provalab/fitchcheck/internal/formula"
	"github.com/provalab/fitchcheck/internal/proof"
)

// latexLabels maps the canonical rule names to the labels conventionally
// used in typeset natural-deduction proofs.
var latexLabels = map[string]string{
	proof.RulePremise:     "premise",
	proof.RuleAssumption:  "assumption",
	proof.RuleReit:        "R",
	proof.RuleConjIntro:   `$\land$I`,
	proof.RuleConjElim:    `$\land$E`,
	proof.RuleDisjIntro:   `$\lor$I`,
	proof.RuleDisjElim:    `$\lor$E`,
	proof.RuleCondIntro:   `$\rightarrow$I`,
	proof.RuleCondElim:    `$\rightarrow$E`,
	proof.RuleBicondIntro: `$\leftrightarrow$I`,
	proof.RuleBicondElim:  `$\leftrightarrow$E`,
	proof.RuleNegIntro:    `$\lnot$I`,
	proof.RuleNegElim:     `$\lnot$E`,
	proof.RuleContIntro:   `$\bot$I`,
	proof.RuleContElim:    `$\bot$E`,
	proof.RuleForallIntro: `$\forall$I`,
	proof.RuleForallElim:  `$\forall$E`,
	proof.RuleExistsIntro: `$\exists$I`,
	proof.RuleExistsElim:  `$\exists$E`,
}

// LaTeX exports the proof as a logicproof environment.
func LaTeX(doc *proof.Document) string {
	maxDepth := 0
	for _, l := range doc.Lines {
		if l.Depth > maxDepth {
			maxDepth = l.Depth
		}
	}

	var out strings.Builder
	fmt.Fprintf(&out, "\\begin{logicproof}{%d}\n", maxDepth)

	depth := 0
	for i, l := range doc.Lines {
		for depth < l.Depth {
			out.WriteString(indent(depth) + "\\begin{subproof}\n")
			depth++
		}
		for depth > l.Depth {
			depth--
			out.WriteString(indent(depth) + "\\end{subproof}\n")
		}

		var body string
		if l.Boxed != "" {
			body = "\\fbox{$" + l.Boxed + "$}"
			if l.Formula != nil {
				body += "\\ "
			}
		}
		if l.Formula != nil {
			body += formula.RenderLaTeX(l.Formula)
		}

		terminator := " \\\\"
		if i == len(doc.Lines)-1 || doc.Lines[i+1].Depth < depth {
			terminator = ""
		}
		fmt.Fprintf(&out, "%s%s & %s%s\n", indent(depth), body, latexJustification(l.Just), terminator)
	}
	for depth > 0 {
		depth--
		out.WriteString(indent(depth) + "\\end{subproof}\n")
	}
	out.WriteString("\\end{logicproof}\n")
	return out.String()
}

func latexJustification(j proof.Justification) string {
	label := latexLabels[j.Rule]
	if len(j.Cites) == 0 {
		return label
	}
	cites := make([]string, len(j.Cites))
	for i, c := range j.Cites {
		if c.IsRange {
			cites[i] = fmt.Sprintf("%d--%d", c.Start, c.End)
		} else {
			cites[i] = fmt.Sprintf("%d", c.Start)
		}
	}
	return label + " " + strings.Join(cites, ", ")
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
