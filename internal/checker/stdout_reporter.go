package checker

import "fmt"

// StdoutReporter emits exactly one contract-format line on stdout. This is
// the default reporter and the one editor integrations consume.
type StdoutReporter struct{}

func NewStdoutReporter() *StdoutReporter {
	return &StdoutReporter{}
}

func (r *StdoutReporter) Report(result *Result) {
	fmt.Println(ContractLine(result))
}
