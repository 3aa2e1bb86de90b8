// Package lexer turns raw proof text into a flat token sequence. Tokens keep
// 1-based line and column positions so every later stage can report exact
// locations. Newlines are emitted as tokens: the proof grammar is
// line-oriented.
package lexer

import (
	"unicode"

	"github.com/provalab/fitchcheck/internal/diag"
)

type Kind int

const (
	EOF Kind = iota
	Newline
	Number
	Dot
	Bar
	LParen
	RParen
	LBracket
	RBracket
	Comma
	Colon
	Dash
	Not
	And
	Or
	Implies
	Iff
	Bottom
	Forall
	Exists
	Ident
)

var kindNames = map[Kind]string{
	EOF:      "end of input",
	Newline:  "newline",
	Number:   "number",
	Dot:      "'.'",
	Bar:      "'|'",
	LParen:   "'('",
	RParen:   "')'",
	LBracket: "'['",
	RBracket: "']'",
	Comma:    "','",
	Colon:    "':'",
	Dash:     "'-'",
	Not:      "'¬'",
	And:      "'∧'",
	Or:       "'∨'",
	Implies:  "'→'",
	Iff:      "'↔'",
	Bottom:   "'⊥'",
	Forall:   "'∀'",
	Exists:   "'∃'",
	Ident:    "identifier",
}

func (k Kind) String() string { return kindNames[k] }

// Token is an immutable lexeme with its source position.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Column int
}

// Scan tokenizes the whole input. On an unrecognized character it stops and
// returns a *diag.LexError pointing at it.
func Scan(src string) ([]Token, error) {
	s := &scanner{src: []rune(src), line: 1, col: 1}
	return s.run()
}

type scanner struct {
	src  []rune
	pos  int
	line int
	col  int
	toks []Token
}

func (s *scanner) peek(off int) rune {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *scanner) emit(k Kind, text string) {
	s.toks = append(s.toks, Token{Kind: k, Text: text, Line: s.line, Column: s.col})
	s.advance(len([]rune(text)))
}

func (s *scanner) advance(n int) {
	s.pos += n
	s.col += n
}

func (s *scanner) run() ([]Token, error) {
	for s.pos < len(s.src) {
		r := s.src[s.pos]
		switch {
		case r == '\n':
			s.toks = append(s.toks, Token{Kind: Newline, Text: "\n", Line: s.line, Column: s.col})
			s.pos++
			s.line++
			s.col = 1
		case r == ' ' || r == '\t' || r == '\r':
			s.advance(1)
		case unicode.IsDigit(r):
			s.scanNumber()
		case unicode.IsLetter(r):
			s.scanWord()
		default:
			if err := s.scanSymbol(r); err != nil {
				return nil, err
			}
		}
	}
	s.toks = append(s.toks, Token{Kind: EOF, Line: s.line, Column: s.col})
	return s.toks, nil
}

func (s *scanner) scanNumber() {
	end := s.pos
	for end < len(s.src) && unicode.IsDigit(s.src[end]) {
		end++
	}
	s.emit(Number, string(s.src[s.pos:end]))
}

func (s *scanner) scanWord() {
	end := s.pos
	for end < len(s.src) && (unicode.IsLetter(s.src[end]) || unicode.IsDigit(s.src[end]) || s.src[end] == '_') {
		end++
	}
	word := string(s.src[s.pos:end])
	switch word {
	case "forall":
		s.emit(Forall, word)
	case "exists":
		s.emit(Exists, word)
	default:
		s.emit(Ident, word)
	}
}

func (s *scanner) scanSymbol(r rune) error {
	switch r {
	case '.':
		s.emit(Dot, ".")
	case '|':
		s.emit(Bar, "|")
	case '(':
		s.emit(LParen, "(")
	case ')':
		s.emit(RParen, ")")
	case '[':
		s.emit(LBracket, "[")
	case ']':
		s.emit(RBracket, "]")
	case ',':
		s.emit(Comma, ",")
	case ':':
		s.emit(Colon, ":")
	case '¬', '~':
		s.emit(Not, string(r))
	case '∧':
		s.emit(And, string(r))
	case '∨':
		s.emit(Or, string(r))
	case '→':
		s.emit(Implies, string(r))
	case '↔':
		s.emit(Iff, string(r))
	case '⊥', '#':
		s.emit(Bottom, string(r))
	case '∀':
		s.emit(Forall, string(r))
	case '∃':
		s.emit(Exists, string(r))
	case '-':
		if s.peek(1) == '>' {
			s.emit(Implies, "->")
		} else {
			s.emit(Dash, "-")
		}
	case '<':
		if s.peek(1) == '-' && s.peek(2) == '>' {
			s.emit(Iff, "<->")
		} else {
			return &diag.LexError{Line: s.line, Column: s.col, Char: r}
		}
	case '/':
		if s.peek(1) == '\\' {
			s.emit(And, `/\`)
		} else {
			return &diag.LexError{Line: s.line, Column: s.col, Char: r}
		}
	case '\\':
		if s.peek(1) == '/' {
			s.emit(Or, `\/`)
		} else {
			return &diag.LexError{Line: s.line, Column: s.col, Char: r}
		}
	default:
		return &diag.LexError{Line: s.line, Column: s.col, Char: r}
	}
	return nil
}
