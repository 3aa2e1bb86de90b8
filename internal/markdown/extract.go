// Package markdown extracts proofs embedded in fenced code blocks so course
// notes and exercise sheets can be checked as a whole.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one embedded proof: its text and the 1-based source line where
// the block's content starts.
type Block struct {
	StartLine int
	Language  string
	Text      string
}

// ExtractProofBlocks walks the markdown AST and collects fenced code blocks
// whose info string is one of the configured proof languages.
func ExtractProofBlocks(source []byte, languages []string) ([]Block, error) {
	wanted := make(map[string]bool, len(languages))
	for _, l := range languages {
		wanted[l] = true
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	var blocks []Block
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || node.Kind() != ast.KindFencedCodeBlock {
			return ast.WalkContinue, nil
		}
		fenced := node.(*ast.FencedCodeBlock)
		if !wanted[string(fenced.Language(source))] {
			return ast.WalkContinue, nil
		}

		lines := fenced.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}

		start := bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
		blocks = append(blocks, Block{
			StartLine: start,
			Language:  string(fenced.Language(source)),
			Text:      buf.String(),
		})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}
