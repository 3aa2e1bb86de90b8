// Package checker drives a single proof-checking run: lex, parse, then
// validate every line in document order, stopping at the first failure.
package checker

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/provalab/fitchcheck/internal/config"
	"github.com/provalab/fitchcheck/internal/formula"
	"github.com/provalab/fitchcheck/internal/lexer"
	"github.com/provalab/fitchcheck/internal/proof"
	"github.com/provalab/fitchcheck/internal/rules"
)

// Result is the outcome of checking one proof. Err is nil on success and
// otherwise one of *diag.LexError, *diag.ParseError or *diag.RuleError.
type Result struct {
	Valid  bool
	Err    error
	Path   string
	Source string
	// Doc is the parsed document, nil when parsing failed.
	Doc *proof.Document
}

type Checker struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Checker {
	return &Checker{cfg: cfg}
}

// CheckFile reads and checks a proof file.
func (c *Checker) CheckFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read proof file: %w", err)
	}
	res := c.CheckSource(string(data))
	res.Path = path
	return res, nil
}

// CheckSource checks proof text.
func (c *Checker) CheckSource(src string) *Result {
	res := &Result{Source: src}
	doc, err := proof.Parse(src, proof.Options{AllowedVars: c.cfg.VariableSet()})
	if err != nil {
		res.Err = err
		return res
	}
	res.Doc = doc
	if err := c.validate(doc); err != nil {
		res.Err = err
		return res
	}
	res.Valid = true
	return res
}

// CheckSourceWithTemplate checks proof text and additionally requires it to
// match a template: the template's leading formulas must be the proof's
// premises, in order, and its last formula the proof's final top-level
// conclusion.
func (c *Checker) CheckSourceWithTemplate(src string, template []formula.Formula) *Result {
	res := &Result{Source: src}
	doc, err := proof.Parse(src, proof.Options{AllowedVars: c.cfg.VariableSet()})
	if err != nil {
		res.Err = err
		return res
	}
	res.Doc = doc
	if err := c.validate(doc); err != nil {
		res.Err = err
		return res
	}
	if err := c.matchTemplate(doc, template); err != nil {
		res.Err = err
		return res
	}
	res.Valid = true
	return res
}

func (c *Checker) validate(doc *proof.Document) error {
	for _, line := range doc.Lines {
		if rerr := rules.Validate(line, doc); rerr != nil {
			return rerr
		}
		log.Debug("line validated", "line", line.Number, "rule", line.Just.Rule)
	}
	return nil
}

// ParseTemplate parses a template file: one formula per non-blank line, the
// last being the required conclusion.
func (c *Checker) ParseTemplate(data string) ([]formula.Formula, error) {
	toks, err := lexer.Scan(data)
	if err != nil {
		return nil, err
	}
	vars := c.cfg.VariableSet()
	var out []formula.Formula
	var cur []lexer.Token
	flush := func() error {
		if len(cur) == 0 {
			return nil
		}
		f, err := formula.Parse(cur, vars)
		if err != nil {
			return err
		}
		out = append(out, f)
		cur = nil
		return nil
	}
	for _, t := range toks {
		if t.Kind == lexer.Newline || t.Kind == lexer.EOF {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		cur = append(cur, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("template is empty")
	}
	return out, nil
}
