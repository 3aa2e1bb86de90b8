// Package rules implements the inference-rule catalog and the per-line
// checker. Each rule has a fixed citation arity and shape (single lines or
// whole closed subproofs) and a structural predicate over the cited
// formulas and the line's own formula. Validation is fail-fast: the first
// failing line stops the run.
package rules

import (
	"fmt"

	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/formula"
	"github.com/provalab/fitchcheck/internal/proof"
)

// citeKind is the required shape of one citation slot.
type citeKind int

const (
	citeLine citeKind = iota
	citeSubproof
)

type rule struct {
	shape []citeKind
	check func(rc *ruleContext) bool
}

// catalog maps canonical rule names to their shapes and predicates. Premise
// and assumption have no predicate here: premise placement is checked
// separately and assumptions are validated structurally by the parser.
var catalog = map[string]rule{
	proof.RulePremise:    {},
	proof.RuleAssumption: {},

	proof.RuleReit: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			return rc.lines[0].Equal(rc.conclusion)
		},
	},

	proof.RuleConjIntro: {
		shape: []citeKind{citeLine, citeLine},
		check: func(rc *ruleContext) bool {
			want := formula.Binary{Op: formula.And, Left: rc.lines[0], Right: rc.lines[1]}
			return want.Equal(rc.conclusion)
		},
	},
	proof.RuleConjElim: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			conj, ok := rc.lines[0].(formula.Binary)
			if !ok || conj.Op != formula.And {
				return false
			}
			return conj.Left.Equal(rc.conclusion) || conj.Right.Equal(rc.conclusion)
		},
	},

	proof.RuleDisjIntro: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			disj, ok := rc.conclusion.(formula.Binary)
			if !ok || disj.Op != formula.Or {
				return false
			}
			return disj.Left.Equal(rc.lines[0]) || disj.Right.Equal(rc.lines[0])
		},
	},
	proof.RuleDisjElim: {
		shape: []citeKind{citeLine, citeSubproof, citeSubproof},
		check: func(rc *ruleContext) bool {
			disj, ok := rc.lines[0].(formula.Binary)
			if !ok || disj.Op != formula.Or {
				return false
			}
			first, second := rc.subs[0], rc.subs[1]
			if first.assumption == nil || second.assumption == nil {
				return false
			}
			if !first.assumption.Equal(disj.Left) || !second.assumption.Equal(disj.Right) {
				return false
			}
			return first.conclusion.Equal(rc.conclusion) && second.conclusion.Equal(rc.conclusion)
		},
	},

	proof.RuleCondIntro: {
		shape: []citeKind{citeSubproof},
		check: func(rc *ruleContext) bool {
			sub := rc.subs[0]
			if sub.assumption == nil {
				return false
			}
			want := formula.Binary{Op: formula.Implies, Left: sub.assumption, Right: sub.conclusion}
			return want.Equal(rc.conclusion)
		},
	},
	proof.RuleCondElim: {
		shape: []citeKind{citeLine, citeLine},
		check: func(rc *ruleContext) bool {
			cond, ok := rc.lines[0].(formula.Binary)
			if !ok || cond.Op != formula.Implies {
				return false
			}
			return cond.Left.Equal(rc.lines[1]) && cond.Right.Equal(rc.conclusion)
		},
	},

	proof.RuleBicondIntro: {
		shape: []citeKind{citeSubproof, citeSubproof},
		check: func(rc *ruleContext) bool {
			first, second := rc.subs[0], rc.subs[1]
			if first.assumption == nil || second.assumption == nil {
				return false
			}
			if !first.conclusion.Equal(second.assumption) || !second.conclusion.Equal(first.assumption) {
				return false
			}
			want := formula.Binary{Op: formula.Iff, Left: first.assumption, Right: first.conclusion}
			return want.Equal(rc.conclusion)
		},
	},
	proof.RuleBicondElim: {
		shape: []citeKind{citeLine, citeLine},
		check: func(rc *ruleContext) bool {
			bicond, ok := rc.lines[0].(formula.Binary)
			if !ok || bicond.Op != formula.Iff {
				return false
			}
			side := rc.lines[1]
			if bicond.Left.Equal(side) {
				return bicond.Right.Equal(rc.conclusion)
			}
			if bicond.Right.Equal(side) {
				return bicond.Left.Equal(rc.conclusion)
			}
			return false
		},
	},

	proof.RuleNegIntro: {
		shape: []citeKind{citeSubproof},
		check: func(rc *ruleContext) bool {
			sub := rc.subs[0]
			if sub.assumption == nil {
				return false
			}
			if _, ok := sub.conclusion.(formula.Bottom); !ok {
				return false
			}
			want := formula.Not{Operand: sub.assumption}
			return want.Equal(rc.conclusion)
		},
	},
	proof.RuleNegElim: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			outer, ok := rc.lines[0].(formula.Not)
			if !ok {
				return false
			}
			inner, ok := outer.Operand.(formula.Not)
			return ok && inner.Operand.Equal(rc.conclusion)
		},
	},

	proof.RuleContIntro: {
		shape: []citeKind{citeLine, citeLine},
		check: func(rc *ruleContext) bool {
			if _, ok := rc.conclusion.(formula.Bottom); !ok {
				return false
			}
			neg, ok := rc.lines[1].(formula.Not)
			return ok && neg.Operand.Equal(rc.lines[0])
		},
	},
	proof.RuleContElim: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			_, ok := rc.lines[0].(formula.Bottom)
			return ok
		},
	},

	proof.RuleForallElim: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			all, ok := rc.lines[0].(formula.Quantifier)
			if !ok || all.Q != formula.Forall {
				return false
			}
			_, ok = formula.MatchInstance(all.Body, rc.conclusion, all.Variable)
			return ok
		},
	},
	proof.RuleExistsIntro: {
		shape: []citeKind{citeLine},
		check: func(rc *ruleContext) bool {
			some, ok := rc.conclusion.(formula.Quantifier)
			if !ok || some.Q != formula.Exists {
				return false
			}
			_, ok = formula.MatchInstance(some.Body, rc.lines[0], some.Variable)
			return ok
		},
	},
	proof.RuleForallIntro: {shape: []citeKind{citeSubproof}, check: checkForallIntro},
	proof.RuleExistsElim:  {shape: []citeKind{citeLine, citeSubproof}, check: checkExistsElim},
}

// checkForallIntro: the cited subproof introduces a boxed constant c with no
// assumed formula and concludes φ[x:=c]; the conclusion is ∀x φ. c must be
// fresh: it may not occur in the conclusion, nor anywhere the subproof could
// see from outside itself.
func checkForallIntro(rc *ruleContext) bool {
	sub := rc.subs[0]
	if sub.boxed == "" || sub.assumption != nil {
		return false
	}
	all, ok := rc.conclusion.(formula.Quantifier)
	if !ok || all.Q != formula.Forall {
		return false
	}
	if formula.Occurs(rc.conclusion, sub.boxed) {
		return false
	}
	instance := formula.Substitute(all.Body, all.Variable, formula.Term{Name: sub.boxed})
	if !instance.Equal(sub.conclusion) {
		return false
	}
	return rc.constFresh(sub)
}

// checkExistsElim: from ∃x φ and a subproof assuming [c] φ[x:=c] concluding
// ψ, conclude ψ. c must be fresh and may not occur in ψ.
func checkExistsElim(rc *ruleContext) bool {
	some, ok := rc.lines[0].(formula.Quantifier)
	if !ok || some.Q != formula.Exists {
		return false
	}
	sub := rc.subs[0]
	if sub.boxed == "" || sub.assumption == nil {
		return false
	}
	if formula.Occurs(some, sub.boxed) {
		return false
	}
	instance := formula.Substitute(some.Body, some.Variable, formula.Term{Name: sub.boxed})
	if !instance.Equal(sub.assumption) {
		return false
	}
	if !sub.conclusion.Equal(rc.conclusion) {
		return false
	}
	if formula.Occurs(rc.conclusion, sub.boxed) {
		return false
	}
	return rc.constFresh(sub)
}

// ruleContext carries the resolved citations of the line under validation.
type ruleContext struct {
	doc        *proof.Document
	line       *proof.Line
	conclusion formula.Formula
	lines      []formula.Formula // resolved single-line citations, in order
	subs       []citedSubproof   // resolved subproof citations, in order
}

type citedSubproof struct {
	sp         *proof.Subproof
	boxed      string
	assumption formula.Formula // nil on boxed-constant-only assumptions
	conclusion formula.Formula
}

// constFresh reports whether the subproof's boxed constant stays out of
// every line visible from the subproof's assumption.
func (rc *ruleContext) constFresh(sub citedSubproof) bool {
	for _, l := range rc.doc.Lines {
		if l.Number >= sub.sp.Start {
			break
		}
		if l.Formula == nil {
			continue
		}
		if !proof.InScope(l.Scope, rc.line.Scope) {
			continue
		}
		if formula.Occurs(l.Formula, sub.boxed) {
			return false
		}
	}
	return true
}

func ruleErr(line *proof.Line, format string, args ...any) *diag.RuleError {
	return &diag.RuleError{Line: line.Number, Message: fmt.Sprintf(format, args...)}
}

// Validate checks one line's justification against the document built so
// far. The document must already contain every line up to and including
// this one; lines are validated in document order.
func Validate(line *proof.Line, doc *proof.Document) *diag.RuleError {
	r, ok := catalog[line.Just.Rule]
	if !ok {
		// Unknown names are rejected by the parser; reaching this is a
		// catalog bug, but report it in-band rather than panic.
		return ruleErr(line, "unknown rule %s", line.Just.Rule)
	}

	if len(line.Just.Cites) != len(r.shape) {
		return ruleErr(line, "wrong number of citations for %s", line.Just.Rule)
	}

	if line.Just.Rule == proof.RulePremise {
		return validatePremise(line, doc)
	}
	if line.Just.Rule == proof.RuleAssumption {
		return nil
	}

	rc := &ruleContext{doc: doc, line: line, conclusion: line.Formula}
	for i, cite := range line.Just.Cites {
		if cite.IsRange != (r.shape[i] == citeSubproof) {
			if cite.IsRange {
				return ruleErr(line, "%s cannot cite a subproof", line.Just.Rule)
			}
			return ruleErr(line, "%s expects a cited subproof", line.Just.Rule)
		}
		if cite.IsRange {
			sub, rerr := resolveSubproof(line, doc, cite)
			if rerr != nil {
				return rerr
			}
			rc.subs = append(rc.subs, sub)
		} else {
			f, rerr := resolveLine(line, doc, cite.Start)
			if rerr != nil {
				return rerr
			}
			rc.lines = append(rc.lines, f)
		}
	}

	if !r.check(rc) {
		return ruleErr(line, "%s does not justify %s", line.Just.Rule, line.Formula)
	}
	return nil
}

func validatePremise(line *proof.Line, doc *proof.Document) *diag.RuleError {
	if line.Depth != 0 {
		return ruleErr(line, "premise inside a subproof")
	}
	for _, l := range doc.Lines {
		if l == line {
			return nil
		}
		if l.Just.Rule != proof.RulePremise {
			return ruleErr(line, "premise must appear at the start of the proof")
		}
	}
	return nil
}

// resolveLine resolves a single-line citation and enforces Fitch visibility:
// the cited line precedes the citing line and lies in the citing line's
// scope or one of its ancestors. Interior lines of closed subproofs are out
// of scope.
func resolveLine(citing *proof.Line, doc *proof.Document, number int) (formula.Formula, *diag.RuleError) {
	cited := doc.LineByNumber(number)
	if cited == nil {
		return nil, ruleErr(citing, "cited line %d does not exist", number)
	}
	if cited.Number >= citing.Number || !proof.InScope(cited.Scope, citing.Scope) {
		return nil, ruleErr(citing, "cited line %d is out of scope", number)
	}
	if cited.Formula == nil {
		return nil, ruleErr(citing, "cited line %d has no formula", number)
	}
	return cited.Formula, nil
}

// resolveSubproof resolves a whole-subproof citation. The subproof must be
// closed before the citing line, and its parent scope must be visible.
func resolveSubproof(citing *proof.Line, doc *proof.Document, cite proof.Cite) (citedSubproof, *diag.RuleError) {
	sp := doc.SubproofAt(cite.Start, cite.End)
	if sp == nil {
		return citedSubproof{}, ruleErr(citing, "cited range %d-%d is not a subproof", cite.Start, cite.End)
	}
	if sp.End >= citing.Number || !proof.InScope(sp.Parent, citing.Scope) || proof.InScope(sp, citing.Scope) {
		return citedSubproof{}, ruleErr(citing, "cited subproof %d-%d is out of scope", cite.Start, cite.End)
	}
	assumption := doc.LineByNumber(sp.Start)
	conclusion := doc.LineByNumber(sp.End)
	if conclusion.Formula == nil {
		return citedSubproof{}, ruleErr(citing, "cited subproof %d-%d has no conclusion", cite.Start, cite.End)
	}
	return citedSubproof{
		sp:         sp,
		boxed:      assumption.Boxed,
		assumption: assumption.Formula,
		conclusion: conclusion.Formula,
	}, nil
}
