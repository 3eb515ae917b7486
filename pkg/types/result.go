package types

import "time"

// Output records one file produced by a goal
type Output struct {
	Source      string `json:"source" yaml:"source"`
	Destination string `json:"destination" yaml:"destination"`
	Density     string `json:"density,omitempty" yaml:"density,omitempty"`
	Overwrote   bool   `json:"overwrote,omitempty" yaml:"overwrote,omitempty"`
}

// Result summarizes one goal invocation for reporting
type Result struct {
	Goal     string        `json:"goal" yaml:"goal"`
	DryRun   bool          `json:"dryRun" yaml:"dryRun"`
	Outputs  []Output      `json:"outputs" yaml:"outputs"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewResult creates an empty result for the named goal
func NewResult(goal string, dryRun bool) *Result {
	return &Result{
		Goal:    goal,
		DryRun:  dryRun,
		Outputs: []Output{},
	}
}

// Add appends an output
func (r *Result) Add(o Output) {
	r.Outputs = append(r.Outputs, o)
}

// Warn appends a non-fatal condition
func (r *Result) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
