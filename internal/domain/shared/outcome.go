package shared

import (
	"errors"
	"fmt"
)

// Severity tells composition logic whether a failed step aborts the operation.
type Severity int

const (
	// SeverityFatal marks a step whose failure fails the whole operation.
	SeverityFatal Severity = iota
	// SeverityAdvisory marks a best-effort step; failures are reported, not returned.
	SeverityAdvisory
)

// String returns the severity name
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeverityAdvisory:
		return "advisory"
	default:
		return "unknown"
	}
}

// Outcome is the result of one step of a composite operation.
// A nil Err means the step succeeded.
type Outcome struct {
	Step     string
	Severity Severity
	Err      error
}

// Fatal builds an outcome for a step that must succeed
func Fatal(step string, err error) Outcome {
	return Outcome{Step: step, Severity: SeverityFatal, Err: err}
}

// Advisory builds an outcome for a best-effort step
func Advisory(step string, err error) Outcome {
	return Outcome{Step: step, Severity: SeverityAdvisory, Err: err}
}

// Failed reports whether the step failed
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// String renders the outcome as "step: error"
func (o Outcome) String() string {
	if o.Err == nil {
		return o.Step + ": ok"
	}
	return fmt.Sprintf("%s: %v", o.Step, o.Err)
}

// Outcomes is the joined result of concurrently executed steps.
type Outcomes []Outcome

// Err joins the errors of all failed fatal steps, or returns nil.
func (oc Outcomes) Err() error {
	var errs []error
	for _, o := range oc {
		if o.Severity == SeverityFatal && o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Step, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Advisories returns the failed advisory steps.
func (oc Outcomes) Advisories() Outcomes {
	var out Outcomes
	for _, o := range oc {
		if o.Severity == SeverityAdvisory && o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}

// Warnings renders failed advisory steps as messages for callers.
func (oc Outcomes) Warnings() []string {
	adv := oc.Advisories()
	if len(adv) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(adv))
	for _, o := range adv {
		msgs = append(msgs, o.String())
	}
	return msgs
}
