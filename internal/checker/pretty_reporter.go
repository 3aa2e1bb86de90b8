package checker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/provalab/fitchcheck/internal/color"
	"github.com/provalab/fitchcheck/internal/diag"
)

var (
	boldGreen = lipgloss.NewStyle().
			Bold(true).
			Foreground(color.DarkGreen)

	boldRed = lipgloss.NewStyle().
		Bold(true).
		Foreground(color.DarkRed)

	red = lipgloss.NewStyle().
		Foreground(color.Red)

	muted = lipgloss.NewStyle().
		Foreground(color.DarkGray)

	foreground = lipgloss.NewStyle().
			Foreground(color.LightGray)
)

// PrettyReporter renders a human-friendly, styled result with the offending
// source line and a caret where a position is known. It is opt-in; the
// machine contract stays on StdoutReporter.
type PrettyReporter struct{}

func NewPrettyReporter() *PrettyReporter {
	return &PrettyReporter{}
}

func (r *PrettyReporter) Report(result *Result) {
	if result.Err == nil {
		fmt.Println(boldGreen.Render("✓ " + successMessage))
		return
	}

	fmt.Println(boldRed.Render("✗ Proof check failed"))
	fmt.Println(red.Render(ContractLine(result)))

	if excerpt := r.excerpt(result); excerpt != "" {
		fmt.Println(foreground.Render(excerpt))
	}
	if result.Path != "" {
		fmt.Println(muted.Render("file: " + result.Path))
	}
}

// excerpt quotes the offending source line, with a caret when the error
// carries a column.
func (r *PrettyReporter) excerpt(result *Result) string {
	srcLines := strings.Split(result.Source, "\n")
	line, col := 0, 0
	switch e := result.Err.(type) {
	case *diag.LexError:
		line, col = e.Line, e.Column
	case *diag.ParseError:
		line, col = e.Line, e.Column
	case *diag.RuleError:
		// Rule errors carry proof line numbers; map back to the source.
		if result.Doc != nil {
			if l := result.Doc.LineByNumber(e.Line); l != nil {
				line = l.Source
			}
		}
	}
	if line < 1 || line > len(srcLines) {
		return ""
	}
	if col > 0 {
		return diag.Caret(srcLines[line-1], line, col)
	}
	return fmt.Sprintf("> %2d | %s", line, srcLines[line-1])
}
