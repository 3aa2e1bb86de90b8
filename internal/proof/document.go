// Package proof parses Fitch-style proof text into a structured document:
// an ordered sequence of lines plus a strictly nested subproof tree.
package proof

import "github.com/provalab/fitchcheck/internal/formula"

// Line is one proof line. It is immutable once the document is built.
type Line struct {
	// Number is the written, 1-based proof line number cited by
	// justifications.
	Number int
	// Source is the physical line in the input, which differs from Number
	// only around blank and separator lines.
	Source int
	// Depth is the subproof nesting depth, 0 at top level.
	Depth int
	// Formula is nil on a boxed-constant-only assumption line.
	Formula formula.Formula
	// Boxed is the boxed constant introduced by this assumption, or "".
	Boxed string
	Just  Justification
	// Scope is the innermost subproof containing this line, nil at top
	// level.
	Scope *Subproof
}

// Subproof is a contiguous range of lines opened by an assumption. End is
// set when the subproof closes; the document parser closes every subproof by
// the end of input.
type Subproof struct {
	Start    int
	End      int
	Parent   *Subproof
	Children []*Subproof
}

// contains reports whether s is sp or nested anywhere below sp.
func (sp *Subproof) contains(s *Subproof) bool {
	for ; s != nil; s = s.Parent {
		if s == sp {
			return true
		}
	}
	return false
}

// Document is the root container. It owns all lines and subproofs and is
// discarded after one checker run.
type Document struct {
	Lines []*Line
	// Subproofs holds the top-level subproofs; nested ones hang off
	// Children.
	Subproofs []*Subproof

	byNumber map[int]*Line
	allSubs  []*Subproof
}

// LineByNumber returns the line with the given written number, or nil.
func (d *Document) LineByNumber(n int) *Line {
	return d.byNumber[n]
}

// SubproofAt returns the subproof whose assumption is line start and whose
// last line is end, or nil.
func (d *Document) SubproofAt(start, end int) *Subproof {
	for _, sp := range d.allSubs {
		if sp.Start == start && sp.End == end {
			return sp
		}
	}
	return nil
}

// InScope reports whether the scope `outer` is the same as `inner` or one of
// its ancestors. A nil scope is the top level, an ancestor of everything.
func InScope(outer, inner *Subproof) bool {
	if outer == nil {
		return true
	}
	return outer.contains(inner)
}
