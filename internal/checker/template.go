package checker

import (
	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/formula"
	"github.com/provalab/fitchcheck/internal/proof"
)

// matchTemplate enforces the template contract: premises equal the
// template's leading formulas in order, and the final top-level line equals
// the template's conclusion. The proof is already known to be valid here.
func (c *Checker) matchTemplate(doc *proof.Document, template []formula.Formula) error {
	wantPremises := template[:len(template)-1]
	wantConclusion := template[len(template)-1]

	var premises []*proof.Line
	for _, l := range doc.Lines {
		if l.Just.Rule == proof.RulePremise {
			premises = append(premises, l)
		}
	}
	if len(premises) != len(wantPremises) {
		last := doc.Lines[len(doc.Lines)-1]
		return &diag.RuleError{
			Line:    last.Number,
			Message: "proof does not match the template: wrong number of premises",
		}
	}
	unicode := c.cfg.UseUnicode()
	for i, p := range premises {
		if !p.Formula.Equal(wantPremises[i]) {
			return &diag.RuleError{
				Line:    p.Number,
				Message: "proof does not match the template: expected premise " + formula.Render(wantPremises[i], unicode),
			}
		}
	}

	last := doc.Lines[len(doc.Lines)-1]
	if last.Depth != 0 || last.Formula == nil || !last.Formula.Equal(wantConclusion) {
		return &diag.RuleError{
			Line:    last.Number,
			Message: "proof does not match the template: expected conclusion " + formula.Render(wantConclusion, unicode),
		}
	}
	return nil
}
