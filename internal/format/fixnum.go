package format

import "github.com/provalab/fitchcheck/internal/proof"

// FixNumbers renders the document with lines renumbered 1, 2, 3, ... in
// document order and citations remapped accordingly. The document should be
// parsed with LooseNumbers. Citations of line numbers that do not exist are
// left untouched; the checker will flag them.
func FixNumbers(doc *proof.Document, opts Options) string {
	renum := make(map[int]int, len(doc.Lines))
	for i, l := range doc.Lines {
		renum[l.Number] = i + 1
	}

	lines := make([]renderLine, len(doc.Lines))
	for i, l := range doc.Lines {
		just := proof.Justification{Rule: l.Just.Rule, Cites: make([]proof.Cite, len(l.Just.Cites))}
		for k, c := range l.Just.Cites {
			mapped := c
			if n, ok := renum[c.Start]; ok {
				mapped.Start = n
			}
			if c.IsRange {
				if n, ok := renum[c.End]; ok {
					mapped.End = n
				}
			}
			just.Cites[k] = mapped
		}
		lines[i] = renderLine{
			number: i + 1,
			depth:  l.Depth,
			boxed:  l.Boxed,
			form:   l.Formula,
			just:   just,
		}
	}
	return renderDocument(lines, opts)
}
