// Package models defines the slice of the externally-owned user profile that
// this service reads and writes. The identity provider owns the full profile;
// these fields live under its public metadata and are created lazily on first
// write.
package models

import (
	"slices"
	"time"
)

// Field names a user-editable foundations field.
type Field string

const (
	FieldDomain     Field = "domain"
	FieldConstraint Field = "constraint"
	FieldGoal       Field = "goal"
)

// ParseField validates a field name from the wire.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldDomain, FieldConstraint, FieldGoal:
		return Field(s), true
	}
	return "", false
}

// Foundations holds the onboarding-derived fields and module progress.
// CompletedModules is an append-only ordered set of catalog slugs; insertion
// order is the order the user completed them, not catalog order.
type Foundations struct {
	Domain           string   `json:"domain,omitempty"`
	Constraint       string   `json:"constraint,omitempty"`
	Goal             string   `json:"goal,omitempty"`
	CompletedModules []string `json:"completedModules,omitempty"`
}

// Value returns the stored value for a foundations field.
func (f Foundations) Value(field Field) string {
	switch field {
	case FieldDomain:
		return f.Domain
	case FieldConstraint:
		return f.Constraint
	case FieldGoal:
		return f.Goal
	}
	return ""
}

// SetValue sets a foundations field in place.
func (f *Foundations) SetValue(field Field, value string) {
	switch field {
	case FieldDomain:
		f.Domain = value
	case FieldConstraint:
		f.Constraint = value
	case FieldGoal:
		f.Goal = value
	}
}

// Profile is the sub-document of the externally-hosted user profile that this
// service owns. OnboardingComplete and AccessKeyValidated are set exactly once
// and never unset.
type Profile struct {
	UserID             string      `json:"-"`
	OnboardingComplete bool        `json:"onboardingComplete,omitempty"`
	OnboardingDate     *time.Time  `json:"onboardingDate,omitempty"`
	AccessKeyValidated bool        `json:"accessKeyValidated,omitempty"`
	AccessKeyDate      *time.Time  `json:"accessKeyDate,omitempty"`
	Foundations        Foundations `json:"foundations"`
}

// HasCompleted reports whether the user has completed the module slug.
func (p *Profile) HasCompleted(slug string) bool {
	return slices.Contains(p.Foundations.CompletedModules, slug)
}

// Clone returns a deep copy so store snapshots cannot alias caller state.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Foundations.CompletedModules = slices.Clone(p.Foundations.CompletedModules)
	if p.OnboardingDate != nil {
		d := *p.OnboardingDate
		cp.OnboardingDate = &d
	}
	if p.AccessKeyDate != nil {
		d := *p.AccessKeyDate
		cp.AccessKeyDate = &d
	}
	return &cp
}

// OnboardingRecord is the one-time write produced by onboarding finalization.
type OnboardingRecord struct {
	Domain      string
	Constraint  string
	Goal        string
	CompletedAt time.Time
}
