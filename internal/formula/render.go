package formula

import "strings"

// Operator precedence, tightest first: ¬ and quantifiers bind their
// immediate subformula, then ∧, ∨, →, ↔. ∧, ∨ and ↔ associate left,
// → associates right. Rendering inserts the minimal parentheses needed to
// re-parse to an identical tree.
const (
	precIff = iota + 1
	precImplies
	precOr
	precAnd
	precUnary
	precAtom
)

type symbols struct {
	not     string
	and     string
	or      string
	implies string
	iff     string
	bottom  string
	forall  string
	exists  string
	// spaced separates binary connectives from their operands, needed for
	// the word-based ASCII connectives.
	spaced bool
}

var unicodeSymbols = symbols{
	not: "¬", and: "∧", or: "∨", implies: "→", iff: "↔",
	bottom: "⊥", forall: "∀", exists: "∃",
}

var asciiSymbols = symbols{
	not: "~", and: `/\`, or: `\/`, implies: "->", iff: "<->",
	bottom: "#", forall: "forall ", exists: "exists ",
	spaced: true,
}

var latexSymbols = symbols{
	not: `\lnot `, and: `\land`, or: `\lor`, implies: `\rightarrow`, iff: `\leftrightarrow`,
	bottom: `\bot`, forall: `\forall `, exists: `\exists `,
	spaced: true,
}

// RenderLaTeX renders f as LaTeX math-mode source, used by the proof
// exporter.
func RenderLaTeX(f Formula) string {
	return render(f, latexSymbols)
}

// String renders the formula with unicode connectives. This is the rendering
// used in rule-failure messages.
func (a Atom) String() string       { return render(a, unicodeSymbols) }
func (b Bottom) String() string     { return render(b, unicodeSymbols) }
func (n Not) String() string        { return render(n, unicodeSymbols) }
func (b Binary) String() string     { return render(b, unicodeSymbols) }
func (q Quantifier) String() string { return render(q, unicodeSymbols) }

// Render renders f with unicode or ASCII connectives.
func Render(f Formula, unicode bool) string {
	if unicode {
		return render(f, unicodeSymbols)
	}
	return render(f, asciiSymbols)
}

func render(f Formula, syms symbols) string {
	var sb strings.Builder
	f.render(&sb, syms, 0)
	return sb.String()
}

func (op Op) prec() int {
	switch op {
	case And:
		return precAnd
	case Or:
		return precOr
	case Implies:
		return precImplies
	default:
		return precIff
	}
}

func (op Op) symbol(syms symbols) string {
	switch op {
	case And:
		return syms.and
	case Or:
		return syms.or
	case Implies:
		return syms.implies
	default:
		return syms.iff
	}
}

func (a Atom) render(sb *strings.Builder, syms symbols, parentPrec int) {
	sb.WriteString(a.Name)
	if len(a.Args) > 0 {
		sb.WriteString("(")
		for i, t := range a.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.String())
		}
		sb.WriteString(")")
	}
}

func (Bottom) render(sb *strings.Builder, syms symbols, parentPrec int) {
	sb.WriteString(syms.bottom)
}

func (n Not) render(sb *strings.Builder, syms symbols, parentPrec int) {
	wrap := precUnary < parentPrec
	if wrap {
		sb.WriteString("(")
	}
	sb.WriteString(syms.not)
	n.Operand.render(sb, syms, precUnary)
	if wrap {
		sb.WriteString(")")
	}
}

func (b Binary) render(sb *strings.Builder, syms symbols, parentPrec int) {
	prec := b.Op.prec()
	wrap := prec < parentPrec
	if wrap {
		sb.WriteString("(")
	}
	leftPrec, rightPrec := prec, prec+1
	if b.Op == Implies {
		leftPrec, rightPrec = prec+1, prec
	}
	b.Left.render(sb, syms, leftPrec)
	if syms.spaced {
		sb.WriteString(" " + b.Op.symbol(syms) + " ")
	} else {
		sb.WriteString(b.Op.symbol(syms))
	}
	b.Right.render(sb, syms, rightPrec)
	if wrap {
		sb.WriteString(")")
	}
}

func (q Quantifier) render(sb *strings.Builder, syms symbols, parentPrec int) {
	wrap := precUnary < parentPrec
	if wrap {
		sb.WriteString("(")
	}
	if q.Q == Forall {
		sb.WriteString(syms.forall)
	} else {
		sb.WriteString(syms.exists)
	}
	sb.WriteString(q.Variable)
	sb.WriteString(" ")
	q.Body.render(sb, syms, precUnary)
	if wrap {
		sb.WriteString(")")
	}
}
