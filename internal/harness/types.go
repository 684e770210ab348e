package harness

import "fmt"

// Result captures the outcome of one scenario run.
type Result struct {
	// Pass is true when every declared expectation held.
	Pass bool

	// IDs is the selection the query produced, as ascending point ids.
	// Nil when the run failed before producing a result.
	IDs []int64

	// Lines is the rendered output, one "<x> <y>" entry per selected
	// point, in output order. Nil when the run produced no output.
	Lines []string

	// Errors lists the expectations that did not hold.
	Errors []string
}

// NewResult returns a passing result with no findings.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records an expectation failure and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
