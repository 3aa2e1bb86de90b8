package formula

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/lexer"
)

// Parse builds a formula tree from the token subsequence of one proof line.
// The whole slice must be consumed. allowedVars is the set of legal
// quantified variable names; every other lowercase identifier is a constant
// or function symbol.
func Parse(toks []lexer.Token, allowedVars map[string]bool) (Formula, error) {
	p := &parser{toks: toks, vars: allowedVars}
	f, err := p.iff()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.toks) {
		t := p.toks[p.pos]
		if t.Kind == lexer.RParen {
			return nil, p.errorAt(t, "mismatched parentheses")
		}
		return nil, p.errorAt(t, fmt.Sprintf("unexpected %s", t.Kind))
	}
	return f, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
	vars map[string]bool
}

func (p *parser) errorAt(t lexer.Token, msg string) error {
	return &diag.ParseError{Line: t.Line, Column: t.Column, Message: msg}
}

// errorHere reports at the current token, or at the position just past the
// last token when input ran out.
func (p *parser) errorHere(msg string) error {
	if p.pos < len(p.toks) {
		return p.errorAt(p.toks[p.pos], msg)
	}
	if len(p.toks) > 0 {
		last := p.toks[len(p.toks)-1]
		return &diag.ParseError{Line: last.Line, Column: last.Column + len(last.Text), Message: msg}
	}
	return &diag.ParseError{Message: msg}
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.toks) {
		return lexer.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) accept(k lexer.Kind) (lexer.Token, bool) {
	if t, ok := p.peek(); ok && t.Kind == k {
		p.pos++
		return t, true
	}
	return lexer.Token{}, false
}

func (p *parser) iff() (Formula, error) {
	left, err := p.implies()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(lexer.Iff); !ok {
			return left, nil
		}
		right, err := p.implies()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: Iff, Left: left, Right: right}
	}
}

func (p *parser) implies() (Formula, error) {
	left, err := p.or()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept(lexer.Implies); !ok {
		return left, nil
	}
	right, err := p.implies()
	if err != nil {
		return nil, err
	}
	return Binary{Op: Implies, Left: left, Right: right}, nil
}

func (p *parser) or() (Formula, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(lexer.Or); !ok {
			return left, nil
		}
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: Or, Left: left, Right: right}
	}
}

func (p *parser) and() (Formula, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.accept(lexer.And); !ok {
			return left, nil
		}
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: And, Left: left, Right: right}
	}
}

func (p *parser) unary() (Formula, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorHere("missing operand")
	}
	switch t.Kind {
	case lexer.Not:
		p.pos++
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Not{Operand: operand}, nil
	case lexer.Forall, lexer.Exists:
		p.pos++
		name, ok := p.accept(lexer.Ident)
		if !ok {
			return nil, p.errorHere("expected a variable after the quantifier")
		}
		if !p.vars[name.Text] {
			return nil, p.errorAt(name, fmt.Sprintf("'%s' is not an allowed variable name", name.Text))
		}
		body, err := p.unary()
		if err != nil {
			return nil, err
		}
		q := Forall
		if t.Kind == lexer.Exists {
			q = Exists
		}
		return Quantifier{Q: q, Variable: name.Text, Body: body}, nil
	default:
		return p.primary()
	}
}

func (p *parser) primary() (Formula, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorHere("missing operand")
	}
	switch t.Kind {
	case lexer.Bottom:
		p.pos++
		return Bottom{}, nil
	case lexer.LParen:
		p.pos++
		f, err := p.iff()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(lexer.RParen); !ok {
			return nil, p.errorHere("mismatched parentheses")
		}
		return f, nil
	case lexer.Ident:
		if !startsUpper(t.Text) {
			return nil, p.errorAt(t, fmt.Sprintf("predicate '%s' must start with a capital letter", t.Text))
		}
		p.pos++
		args, err := p.termArgs()
		if err != nil {
			return nil, err
		}
		return Atom{Name: t.Text, Args: args}, nil
	default:
		return nil, p.errorAt(t, "missing operand")
	}
}

// termArgs parses an optional parenthesized argument list after a predicate
// or function name.
func (p *parser) termArgs() ([]Term, error) {
	if _, ok := p.accept(lexer.LParen); !ok {
		return nil, nil
	}
	var args []Term
	for {
		arg, err := p.term()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if _, ok := p.accept(lexer.Comma); ok {
			continue
		}
		if _, ok := p.accept(lexer.RParen); !ok {
			return nil, p.errorHere("mismatched parentheses")
		}
		return args, nil
	}
}

func (p *parser) term() (Term, error) {
	t, ok := p.accept(lexer.Ident)
	if !ok {
		return Term{}, p.errorHere("expected a term")
	}
	if startsUpper(t.Text) {
		return Term{}, p.errorAt(t, fmt.Sprintf("term '%s' must start with a lowercase letter", t.Text))
	}
	args, err := p.termArgs()
	if err != nil {
		return Term{}, err
	}
	return Term{Name: t.Text, Args: args}, nil
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
