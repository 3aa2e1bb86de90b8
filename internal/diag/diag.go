// Package diag defines the error taxonomy shared by the lexer, the parsers
// and the rule engine. LexError and ParseError are fatal structural errors;
// RuleError marks an invalid inference at an otherwise well-formed line.
package diag

import (
	"fmt"
	"strings"
)

// LexError is raised when the lexer meets a character it cannot tokenize.
type LexError struct {
	Line   int
	Column int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character '%c'", e.Char)
}

// ParseError is raised for malformed structure: bad formula syntax, bad
// justification syntax, unknown rule names and mismatched subproof
// delimiters. Column is optional (0 when unknown).
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// RuleError is raised when a well-formed line's justification does not hold:
// wrong citation arity, wrong structural relation, or an out-of-scope
// citation.
type RuleError struct {
	Line    int
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// Caret renders a source excerpt with a caret pointing at the given column,
// for human-facing reporters.
//
//	> 12 | P ∧ (Q
//	           ^
func Caret(line string, lineNumber, column int) string {
	if column < 1 {
		column = 1
	}
	caret := strings.Repeat(" ", column-1) + "^"
	return fmt.Sprintf("> %2d | %s\n       %s", lineNumber, line, caret)
}
