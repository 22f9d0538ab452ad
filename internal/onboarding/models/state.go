// Package models defines the onboarding wizard state machine as an explicit
// enum with a transition function, so tests can enumerate every transition
// instead of inferring them from handler conditionals.
package models

import "strings"

// Unset is the placeholder written for any answer the user skipped.
const Unset = "Unset"

// State identifies a position in the onboarding wizard.
//
// Transitions: Step_i --advance(valid)--> Step_{i+1},
// Step2 --advance(valid)--> Finalized, any state --skip()--> Finalized.
// Finalized is terminal.
type State int

const (
	StateStep0 State = iota
	StateStep1
	StateStep2
	StateFinalized
)

// ParseStep maps a wire step index to a wizard state. Only the three question
// steps are addressable from the wire.
func ParseStep(step int) (State, bool) {
	if step < 0 || step > 2 {
		return 0, false
	}
	return State(step), true
}

func (s State) String() string {
	switch s {
	case StateStep0:
		return "step_0"
	case StateStep1:
		return "step_1"
	case StateStep2:
		return "step_2"
	case StateFinalized:
		return "finalized"
	}
	return "unknown"
}

// Terminal reports whether no transition leaves this state.
func (s State) Terminal() bool { return s == StateFinalized }

// Answers carries the wizard's collected free-text answers. The wizard state
// lives client-side; every request carries the full set collected so far.
type Answers struct {
	Domain     string `json:"domain"`
	Constraint string `json:"constraint"`
	Goal       string `json:"goal"`
}

// ForState returns the answer belonging to a question step.
func (a Answers) ForState(s State) string {
	switch s {
	case StateStep0:
		return a.Domain
	case StateStep1:
		return a.Constraint
	case StateStep2:
		return a.Goal
	}
	return ""
}

// Complete reports whether every answer is non-blank after trimming. The
// finalizing advance requires a complete set; only skip may finalize with
// blanks, and it substitutes placeholders first.
func (a Answers) Complete() bool {
	t := a.Trimmed()
	return t.Domain != "" && t.Constraint != "" && t.Goal != ""
}

// Trimmed returns the answers with surrounding whitespace removed.
func (a Answers) Trimmed() Answers {
	return Answers{
		Domain:     strings.TrimSpace(a.Domain),
		Constraint: strings.TrimSpace(a.Constraint),
		Goal:       strings.TrimSpace(a.Goal),
	}
}

// WithUnsetDefaults substitutes the Unset placeholder for every blank answer.
// Used by skip, which finalizes with whatever is already filled.
func (a Answers) WithUnsetDefaults() Answers {
	t := a.Trimmed()
	if t.Domain == "" {
		t.Domain = Unset
	}
	if t.Constraint == "" {
		t.Constraint = Unset
	}
	if t.Goal == "" {
		t.Goal = Unset
	}
	return t
}

// Advance computes the transition out of state s given the collected answers.
// It returns ok=false (state unchanged) when the answer for the current step
// trims to empty, or when s is terminal.
func Advance(s State, a Answers) (State, bool) {
	if s.Terminal() {
		return s, false
	}
	if strings.TrimSpace(a.ForState(s)) == "" {
		return s, false
	}
	return s + 1, true
}
