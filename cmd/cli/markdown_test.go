package cli

import (
	"testing"

	"github.com/provalab/fitchcheck/internal/checker"
	"github.com/provalab/fitchcheck/internal/config"
	"github.com/provalab/fitchcheck/internal/diag"
)

// A rule error inside a fenced block must be reported at the absolute
// markdown line, even when the proof skips physical lines with separators.
func TestRelocateRuleError(t *testing.T) {
	block := `1. P (premise)
---
2. Q (reiteration 1)
`
	md := "# Notes\n\n```fitch\n" + block + "```\n"

	c := checker.New(config.Default())
	res := c.CheckSource(block)
	if res.Valid {
		t.Fatal("expected the block to fail")
	}

	// Block content starts at markdown line 4, so the offset is 3.
	relocate(res, md, 3)

	rerr, ok := res.Err.(*diag.RuleError)
	if !ok {
		t.Fatalf("expected a rule error, got %T", res.Err)
	}
	// Proof line 2 sits on physical block line 3, markdown line 6.
	if rerr.Line != 6 {
		t.Errorf("expected markdown line 6, got %d", rerr.Line)
	}
	if res.Source != md {
		t.Error("expected the result source to be the markdown text")
	}
	if res.Doc != nil {
		t.Error("expected the block document to be dropped after relocation")
	}
}

func TestRelocateParseError(t *testing.T) {
	block := "1. P (premise)\n2. | | Q (assumption)\n"
	md := "```fitch\n" + block + "```\n"

	c := checker.New(config.Default())
	res := c.CheckSource(block)
	if res.Valid {
		t.Fatal("expected the block to fail")
	}

	relocate(res, md, 1)

	perr, ok := res.Err.(*diag.ParseError)
	if !ok {
		t.Fatalf("expected a parse error, got %T", res.Err)
	}
	if perr.Line != 3 {
		t.Errorf("expected markdown line 3, got %d", perr.Line)
	}
}
