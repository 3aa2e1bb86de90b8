// Package formula defines the expression tree for propositional and
// first-order formulas, structural equality, substitution, and rendering.
// Equality is pure tree identity: no normalization happens after parsing.
package formula

import (
	"fmt"
	"strings"
)

// Op enumerates the binary connectives, loosest-binding last.
type Op int

const (
	And Op = iota
	Or
	Implies
	Iff
)

// Quant enumerates the quantifiers.
type Quant int

const (
	Forall Quant = iota
	Exists
)

// Term is a first-order term: a variable or constant when Args is empty,
// a function application otherwise.
type Term struct {
	Name string
	Args []Term
}

func (t Term) Equal(o Term) bool {
	if t.Name != o.Name || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (t Term) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "(" + strings.Join(parts, ", ") + ")"
}

// occurs reports whether name appears anywhere in the term.
func (t Term) occurs(name string) bool {
	if t.Name == name {
		return true
	}
	for _, a := range t.Args {
		if a.occurs(name) {
			return true
		}
	}
	return false
}

// substitute replaces every occurrence of the variable v by r.
func (t Term) substitute(v string, r Term) Term {
	if t.Name == v && len(t.Args) == 0 {
		return r
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.substitute(v, r)
	}
	return Term{Name: t.Name, Args: args}
}

// Formula is an immutable node in the expression tree.
type Formula interface {
	fmt.Stringer
	// Equal reports structural identity with another formula.
	Equal(Formula) bool

	render(sb *strings.Builder, syms symbols, parentPrec int)
}

// Atom is a proposition (no arguments) or a predicate application.
type Atom struct {
	Name string
	Args []Term
}

// Bottom is the contradiction marker.
type Bottom struct{}

// Not is negation.
type Not struct {
	Operand Formula
}

// Binary is a connective application.
type Binary struct {
	Op    Op
	Left  Formula
	Right Formula
}

// Quantifier binds Variable in Body.
type Quantifier struct {
	Q        Quant
	Variable string
	Body     Formula
}

func (a Atom) Equal(o Formula) bool {
	b, ok := o.(Atom)
	if !ok || a.Name != b.Name || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !a.Args[i].Equal(b.Args[i]) {
			return false
		}
	}
	return true
}

func (Bottom) Equal(o Formula) bool {
	_, ok := o.(Bottom)
	return ok
}

func (n Not) Equal(o Formula) bool {
	m, ok := o.(Not)
	return ok && n.Operand.Equal(m.Operand)
}

func (b Binary) Equal(o Formula) bool {
	c, ok := o.(Binary)
	return ok && b.Op == c.Op && b.Left.Equal(c.Left) && b.Right.Equal(c.Right)
}

func (q Quantifier) Equal(o Formula) bool {
	p, ok := o.(Quantifier)
	return ok && q.Q == p.Q && q.Variable == p.Variable && q.Body.Equal(p.Body)
}

// Substitute returns f with every free occurrence of the variable v replaced
// by the term t. A quantifier that rebinds v shadows the substitution.
func Substitute(f Formula, v string, t Term) Formula {
	switch n := f.(type) {
	case Atom:
		args := make([]Term, len(n.Args))
		for i, a := range n.Args {
			args[i] = a.substitute(v, t)
		}
		return Atom{Name: n.Name, Args: args}
	case Bottom:
		return n
	case Not:
		return Not{Operand: Substitute(n.Operand, v, t)}
	case Binary:
		return Binary{Op: n.Op, Left: Substitute(n.Left, v, t), Right: Substitute(n.Right, v, t)}
	case Quantifier:
		if n.Variable == v {
			return n
		}
		return Quantifier{Q: n.Q, Variable: n.Variable, Body: Substitute(n.Body, v, t)}
	}
	return f
}

// Occurs reports whether a term with the given name appears anywhere in f.
// Used for boxed-constant freshness checks.
func Occurs(f Formula, name string) bool {
	switch n := f.(type) {
	case Atom:
		for _, a := range n.Args {
			if a.occurs(name) {
				return true
			}
		}
		return false
	case Not:
		return Occurs(n.Operand, name)
	case Binary:
		return Occurs(n.Left, name) || Occurs(n.Right, name)
	case Quantifier:
		return n.Variable == name || Occurs(n.Body, name)
	}
	return false
}

// MatchInstance reports whether inst equals Substitute(pattern, v, t) for
// some single term t, and returns that t. Occurrences of v under a
// quantifier that rebinds v are shadowed, matching Substitute.
func MatchInstance(pattern, inst Formula, v string) (Term, bool) {
	m := &matcher{v: v}
	if !m.formulas(pattern, inst, true) {
		return Term{}, false
	}
	if m.binding == nil {
		// v does not occur free in the pattern; any instance must be
		// identical, and the substituted term is irrelevant. Report the
		// variable itself.
		return Term{Name: v}, true
	}
	return *m.binding, true
}

type matcher struct {
	v       string
	binding *Term
}

func (m *matcher) formulas(p, i Formula, active bool) bool {
	switch pn := p.(type) {
	case Atom:
		in, ok := i.(Atom)
		if !ok || pn.Name != in.Name || len(pn.Args) != len(in.Args) {
			return false
		}
		for k := range pn.Args {
			if !m.terms(pn.Args[k], in.Args[k], active) {
				return false
			}
		}
		return true
	case Bottom:
		_, ok := i.(Bottom)
		return ok
	case Not:
		in, ok := i.(Not)
		return ok && m.formulas(pn.Operand, in.Operand, active)
	case Binary:
		in, ok := i.(Binary)
		return ok && pn.Op == in.Op &&
			m.formulas(pn.Left, in.Left, active) &&
			m.formulas(pn.Right, in.Right, active)
	case Quantifier:
		in, ok := i.(Quantifier)
		if !ok || pn.Q != in.Q || pn.Variable != in.Variable {
			return false
		}
		return m.formulas(pn.Body, in.Body, active && pn.Variable != m.v)
	}
	return false
}

func (m *matcher) terms(p, i Term, active bool) bool {
	if active && p.Name == m.v && len(p.Args) == 0 {
		if m.binding == nil {
			m.binding = &i
			return true
		}
		return m.binding.Equal(i)
	}
	if p.Name != i.Name || len(p.Args) != len(i.Args) {
		return false
	}
	for k := range p.Args {
		if !m.terms(p.Args[k], i.Args[k], active) {
			return false
		}
	}
	return true
}
