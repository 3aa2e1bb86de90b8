package lexer

import (
	"errors"
	"testing"

	"github.com/provalab/fitchcheck/internal/diag"
)

func TestScanTokens(t *testing.T) {
	toks, err := Scan("1. | P ∧ Q (premise)")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []struct {
		kind Kind
		text string
		col  int
	}{
		{Number, "1", 1},
		{Dot, ".", 2},
		{Bar, "|", 4},
		{Ident, "P", 6},
		{And, "∧", 8},
		{Ident, "Q", 10},
		{LParen, "(", 12},
		{Ident, "premise", 13},
		{RParen, ")", 20},
		{EOF, "", 21},
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Text != w.text {
			t.Errorf("token %d: expected %v %q, got %v %q", i, w.kind, w.text, toks[i].Kind, toks[i].Text)
		}
		if toks[i].Column != w.col {
			t.Errorf("token %d: expected column %d, got %d", i, w.col, toks[i].Column)
		}
		if toks[i].Line != 1 {
			t.Errorf("token %d: expected line 1, got %d", i, toks[i].Line)
		}
	}
}

func TestScanASCIIAliases(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
	}{
		{"~", Not},
		{`/\`, And},
		{`\/`, Or},
		{"->", Implies},
		{"<->", Iff},
		{"#", Bottom},
		{"forall", Forall},
		{"exists", Exists},
	}
	for _, tt := range tests {
		toks, err := Scan(tt.input)
		if err != nil {
			t.Errorf("Scan(%q) failed: %v", tt.input, err)
			continue
		}
		if toks[0].Kind != tt.kind {
			t.Errorf("Scan(%q): expected kind %v, got %v", tt.input, tt.kind, toks[0].Kind)
		}
	}
}

func TestScanLineTracking(t *testing.T) {
	toks, err := Scan("P\n\nQ")
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	// P, newline, newline, Q, EOF
	if toks[3].Kind != Ident || toks[3].Line != 3 || toks[3].Column != 1 {
		t.Errorf("expected Q at line 3 column 1, got line %d column %d", toks[3].Line, toks[3].Column)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		input string
		line  int
		col   int
		char  rune
	}{
		{"P $ Q", 1, 3, '$'},
		{"P\nQ ? R", 2, 3, '?'},
		{"P < Q", 1, 3, '<'},
		{"P / Q", 1, 3, '/'},
	}
	for _, tt := range tests {
		_, err := Scan(tt.input)
		if err == nil {
			t.Errorf("Scan(%q): expected error", tt.input)
			continue
		}
		var lexErr *diag.LexError
		if !errors.As(err, &lexErr) {
			t.Errorf("Scan(%q): expected *diag.LexError, got %T", tt.input, err)
			continue
		}
		if lexErr.Line != tt.line || lexErr.Column != tt.col || lexErr.Char != tt.char {
			t.Errorf("Scan(%q): expected %d:%d %q, got %d:%d %q",
				tt.input, tt.line, tt.col, tt.char, lexErr.Line, lexErr.Column, lexErr.Char)
		}
	}
}
