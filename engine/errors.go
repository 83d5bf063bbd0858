package engine

import "github.com/pkg/errors"

// ContractViolation is a fatal error reported when the Game adapter
// violates one of its invariants (e.g. an out-of-range Index, or Size()
// disagreeing with Next(node)). Violations are not recovered locally:
// a violation found during traversal makes Solve panic with this type
// on the goroutine that called Solve, and callers that want a diagnostic
// rather than a crash should recover once at the top of main, the way
// cmd/mccfr-solve does. A zero entry in Size() is reported differently:
// Solve returns it as its error before any trajectory runs.
type ContractViolation struct {
	Invariant string
	Index     int
	cause     error
}

func (e *ContractViolation) Error() string {
	if e.cause != nil {
		return errors.Wrapf(e.cause, "adapter contract violation at infoset %d: %s", e.Index, e.Invariant).Error()
	}
	return errors.Errorf("adapter contract violation at infoset %d: %s", e.Index, e.Invariant).Error()
}

func (e *ContractViolation) Unwrap() error { return e.cause }

// wrapViolation attaches a cause to a ContractViolation, matching the
// github.com/pkg/errors idiom the retrieved corpus uses for annotating
// lower-level failures (e.g. a load failure surfaced while validating an
// adapter's Size() against an observed Next(node)).
func wrapViolation(invariant string, index int, cause error) *ContractViolation {
	return &ContractViolation{Invariant: invariant, Index: index, cause: cause}
}
