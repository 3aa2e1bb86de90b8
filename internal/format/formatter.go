// Package format contains the authoring helpers: the proof pretty-printer,
// the line renumberer, and the LaTeX exporter. All of them work on an
// already-parsed document and never change its meaning.
package format

import (
	"fmt"
	"strings"

	"github.com/provalab/fitchcheck/internal/formula"
	"github.com/provalab/fitchcheck/internal/proof"
)

// Options controls rendering of formatted proofs.
type Options struct {
	// Unicode selects unicode connectives and the symbolic justification
	// form; ASCII and word-form rules otherwise.
	Unicode bool
}

type renderLine struct {
	number int
	depth  int
	boxed  string
	form   formula.Formula
	just   proof.Justification
}

// Format pretty-prints a document: canonical bars, aligned justifications,
// and separator bars under the premise block and under each assumption.
// The output parses back to an equivalent document.
func Format(doc *proof.Document, opts Options) string {
	lines := make([]renderLine, len(doc.Lines))
	for i, l := range doc.Lines {
		lines[i] = renderLine{
			number: l.Number,
			depth:  l.Depth,
			boxed:  l.Boxed,
			form:   l.Formula,
			just:   l.Just,
		}
	}
	return renderDocument(lines, opts)
}

func renderDocument(lines []renderLine, opts Options) string {
	numWidth := 1
	for _, l := range lines {
		if w := len(fmt.Sprintf("%d", l.number)); w > numWidth {
			numWidth = w
		}
	}

	lefts := make([]string, len(lines))
	for i, l := range lines {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%*d. ", numWidth, l.number)
		sb.WriteString(strings.Repeat("| ", l.depth))
		if l.boxed != "" {
			sb.WriteString("[" + l.boxed + "]")
			if l.form != nil {
				sb.WriteString(" ")
			}
		}
		if l.form != nil {
			sb.WriteString(formula.Render(l.form, opts.Unicode))
		}
		lefts[i] = sb.String()
	}

	width := 0
	for _, left := range lefts {
		if w := len([]rune(left)); w > width {
			width = w
		}
	}

	var out strings.Builder
	for i, l := range lines {
		pad := width - len([]rune(lefts[i]))
		fmt.Fprintf(&out, "%s%s  (%s)\n", lefts[i], strings.Repeat(" ", pad), l.just.Render(opts.Unicode))

		if needsSeparator(lines, i) {
			out.WriteString(strings.Repeat(" ", numWidth+2))
			out.WriteString(strings.Repeat("| ", l.depth))
			out.WriteString("---\n")
		}
	}
	return out.String()
}

// needsSeparator draws the Fitch bar under each assumption and under the
// last premise, provided the block has a body below it.
func needsSeparator(lines []renderLine, i int) bool {
	l := lines[i]
	if i+1 >= len(lines) {
		return false
	}
	switch l.just.Rule {
	case proof.RuleAssumption:
		return lines[i+1].depth >= l.depth
	case proof.RulePremise:
		return lines[i+1].just.Rule != proof.RulePremise
	}
	return false
}
