package proof

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/provalab/fitchcheck/internal/diag"
	"github.com/provalab/fitchcheck/internal/formula"
	"github.com/provalab/fitchcheck/internal/lexer"
)

// Options controls structural parsing.
type Options struct {
	// AllowedVars is the set of legal quantified variable names.
	AllowedVars map[string]bool
	// LooseNumbers accepts arbitrary unique line numbers instead of
	// requiring the sequence 1, 2, 3, ... Used by the renumbering mode.
	LooseNumbers bool
}

// Parse builds the proof document. Errors are *diag.LexError or
// *diag.ParseError; both abort parsing immediately.
func Parse(src string, opts Options) (*Document, error) {
	toks, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}

	p := &docParser{
		opts: opts,
		doc:  &Document{byNumber: make(map[int]*Line)},
	}
	for _, line := range splitLines(toks) {
		if err := p.parseLine(line); err != nil {
			return nil, err
		}
	}
	if len(p.doc.Lines) == 0 {
		return nil, &diag.ParseError{Line: 1, Message: "proof is empty"}
	}
	// End of input closes every open subproof.
	p.closeTo(0)
	return p.doc, nil
}

// splitLines partitions the token stream at newline markers, dropping blank
// lines and the trailing EOF.
func splitLines(toks []lexer.Token) [][]lexer.Token {
	var lines [][]lexer.Token
	var cur []lexer.Token
	for _, t := range toks {
		switch t.Kind {
		case lexer.Newline, lexer.EOF:
			if len(cur) > 0 {
				lines = append(lines, cur)
				cur = nil
			}
		default:
			cur = append(cur, t)
		}
	}
	return lines
}

type docParser struct {
	opts  Options
	doc   *Document
	stack []*Subproof
}

func errAt(t lexer.Token, msg string) error {
	return &diag.ParseError{Line: t.Line, Column: t.Column, Message: msg}
}

// isSeparator recognizes decorative lines made of bars and dashes, like the
// horizontal bar the formatter draws under premises and assumptions.
func isSeparator(toks []lexer.Token) bool {
	sawDash := false
	for _, t := range toks {
		switch t.Kind {
		case lexer.Dash:
			sawDash = true
		case lexer.Bar:
		default:
			return false
		}
	}
	return sawDash
}

func (p *docParser) parseLine(toks []lexer.Token) error {
	if isSeparator(toks) {
		return nil
	}
	source := toks[0].Line

	// Written line number.
	if toks[0].Kind != lexer.Number {
		return errAt(toks[0], "expected a line number")
	}
	number, _ := strconv.Atoi(toks[0].Text)
	if len(toks) < 2 || toks[1].Kind != lexer.Dot {
		return errAt(toks[0], "expected '.' after the line number")
	}
	if p.opts.LooseNumbers {
		if p.doc.byNumber[number] != nil {
			return errAt(toks[0], fmt.Sprintf("duplicate line number %d", number))
		}
	} else if want := len(p.doc.Lines) + 1; number != want {
		return errAt(toks[0], fmt.Sprintf("expected line number %d", want))
	}
	rest := toks[2:]

	// Subproof depth bars.
	depth := 0
	for len(rest) > 0 && rest[0].Kind == lexer.Bar {
		depth++
		rest = rest[1:]
	}

	// Optional boxed constant.
	boxed := ""
	if len(rest) > 0 && rest[0].Kind == lexer.LBracket {
		if len(rest) < 3 || rest[1].Kind != lexer.Ident || rest[2].Kind != lexer.RBracket {
			return errAt(rest[0], "malformed boxed constant")
		}
		boxed = rest[1].Text
		if r, _ := utf8.DecodeRuneInString(boxed); unicode.IsUpper(r) {
			return errAt(rest[1], fmt.Sprintf("boxed constant '%s' must start with a lowercase letter", boxed))
		}
		rest = rest[3:]
	}

	formulaToks, justToks, err := splitJustification(rest, source)
	if err != nil {
		return err
	}

	just, err := parseJustificationTokens(justToks, source)
	if err != nil {
		if len(formulaToks) == 0 {
			// The whole line is one paren group: a bare parenthesized
			// formula rather than a bad justification.
			return &diag.ParseError{Line: source, Message: "missing justification"}
		}
		// A trailing paren group that reads as a formula belongs to the
		// formula; the line has no justification at all.
		if _, ferr := formula.Parse(justToks, p.opts.AllowedVars); ferr == nil {
			return &diag.ParseError{Line: source, Message: "missing justification"}
		}
		return err
	}

	var f formula.Formula
	if len(formulaToks) > 0 {
		f, err = formula.Parse(formulaToks, p.opts.AllowedVars)
		if err != nil {
			return err
		}
	} else if boxed == "" {
		return &diag.ParseError{Line: source, Message: "missing formula"}
	}

	if boxed != "" && just.Rule != RuleAssumption {
		return &diag.ParseError{Line: source, Message: "boxed constant outside an assumption"}
	}

	// Depth transitions. An assumption opens a subproof one level deeper
	// than the enclosing scope; any other depth increase is structural.
	if just.Rule == RuleAssumption {
		switch {
		case depth == len(p.stack)+1:
			// opens a nested subproof
		case depth >= 1 && depth <= len(p.stack):
			// closes deeper subproofs and opens a sibling
			p.closeTo(depth - 1)
		default:
			return &diag.ParseError{Line: source, Message: "unmatched subproof delimiter"}
		}
		p.open(number)
	} else {
		if depth > len(p.stack) {
			return &diag.ParseError{Line: source, Message: "unmatched subproof delimiter"}
		}
		p.closeTo(depth)
	}

	line := &Line{
		Number:  number,
		Source:  source,
		Depth:   depth,
		Formula: f,
		Boxed:   boxed,
		Just:    just,
	}
	if len(p.stack) > 0 {
		line.Scope = p.stack[len(p.stack)-1]
	}
	p.doc.Lines = append(p.doc.Lines, line)
	p.doc.byNumber[number] = line
	return nil
}

// splitJustification peels the trailing parenthesized justification off a
// line's tokens.
func splitJustification(toks []lexer.Token, source int) (formulaToks, justToks []lexer.Token, err error) {
	if len(toks) == 0 || toks[len(toks)-1].Kind != lexer.RParen {
		return nil, nil, &diag.ParseError{Line: source, Message: "missing justification"}
	}
	depth := 0
	open := -1
	for i := len(toks) - 1; i >= 0; i-- {
		switch toks[i].Kind {
		case lexer.RParen:
			depth++
		case lexer.LParen:
			depth--
			if depth == 0 {
				open = i
			}
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return nil, nil, &diag.ParseError{Line: source, Message: "mismatched parentheses"}
	}
	justToks = toks[open+1 : len(toks)-1]
	if len(justToks) == 0 {
		return nil, nil, &diag.ParseError{Line: source, Message: "missing justification"}
	}
	// A trailing paren group full of formula tokens is a formula, not a
	// justification; the line is missing one.
	for _, t := range justToks {
		switch t.Kind {
		case lexer.Ident, lexer.Number, lexer.Dash, lexer.Comma, lexer.Colon,
			lexer.And, lexer.Or, lexer.Implies, lexer.Iff, lexer.Not,
			lexer.Bottom, lexer.Forall, lexer.Exists:
		default:
			return nil, nil, &diag.ParseError{Line: source, Message: "missing justification"}
		}
	}
	return toks[:open], justToks, nil
}

func parseJustificationTokens(toks []lexer.Token, source int) (Justification, error) {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = t.Text
	}
	text := ""
	for i, part := range parts {
		if i > 0 {
			text += " "
		}
		text += part
	}
	just, err := parseJustification(text)
	if err != nil {
		return Justification{}, &diag.ParseError{Line: source, Column: toks[0].Column, Message: err.Error()}
	}
	return just, nil
}

func (p *docParser) open(start int) {
	sp := &Subproof{Start: start}
	if len(p.stack) > 0 {
		sp.Parent = p.stack[len(p.stack)-1]
		sp.Parent.Children = append(sp.Parent.Children, sp)
	} else {
		p.doc.Subproofs = append(p.doc.Subproofs, sp)
	}
	p.doc.allSubs = append(p.doc.allSubs, sp)
	p.stack = append(p.stack, sp)
}

// closeTo pops subproofs until the stack is depth levels deep, recording the
// last written line number as each one's end.
func (p *docParser) closeTo(depth int) {
	for len(p.stack) > depth {
		sp := p.stack[len(p.stack)-1]
		sp.End = p.doc.Lines[len(p.doc.Lines)-1].Number
		p.stack = p.stack[:len(p.stack)-1]
	}
}
