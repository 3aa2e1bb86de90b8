package checker

import (
	"fmt"

	"github.com/provalab/fitchcheck/internal/diag"
)

// Reporter turns a check result into output.
type Reporter interface {
	Report(result *Result)
}

const successMessage = "The proof is correct!"

// ContractLine renders the single output line that callers pattern-match on:
//
//	The proof is correct!
//	Fatal error: parser failure near line <N>: <message>
//	Line <N>: <message>
//
// This format is a compatibility requirement; editor integrations extract
// the line number and message from it.
func ContractLine(result *Result) string {
	switch e := result.Err.(type) {
	case nil:
		return successMessage
	case *diag.LexError:
		return fmt.Sprintf("Fatal error: parser failure near line %d: %s", e.Line, e.Error())
	case *diag.ParseError:
		return fmt.Sprintf("Fatal error: parser failure near line %d: %s", e.Line, e.Message)
	case *diag.RuleError:
		return fmt.Sprintf("Line %d: %s", e.Line, e.Message)
	default:
		return fmt.Sprintf("Fatal error: %v", result.Err)
	}
}
