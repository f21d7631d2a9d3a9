// SPDX-License-Identifier: MPL-2.0

package procexec

import "slices"

type (
	// Outcome is the recorded result of one step in a batch.
	Outcome struct {
		Step     string
		ExitCode ExitCode
		Err      error
	}

	// Report collects step outcomes in execution order. Whether a failed step
	// fails the whole batch is decided by the caller, not by the Report.
	Report struct {
		outcomes []Outcome
	}
)

// OK reports whether the step succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil && o.ExitCode.IsSuccess()
}

// Record appends the outcome of a Run and returns it.
func (r *Report) Record(step string, res *Result, err error) Outcome {
	o := Outcome{Step: step, ExitCode: CodeOf(res, err), Err: err}
	if o.Err == nil && res != nil {
		o.Err = res.Error
	}
	r.outcomes = append(r.outcomes, o)
	return o
}

// Outcomes returns the recorded outcomes in order.
func (r *Report) Outcomes() []Outcome {
	return slices.Clone(r.outcomes)
}

// Failed returns the outcomes that did not succeed.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// OK reports whether every recorded step succeeded.
func (r *Report) OK() bool {
	return len(r.Failed()) == 0
}

// Len returns the number of recorded steps.
func (r *Report) Len() int {
	return len(r.outcomes)
}
