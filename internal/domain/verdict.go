package domain

import "strings"

// RiskLevel is the categorical severity assigned by the model. The model
// is asked for HIGH/MEDIUM/LOW only, but responses are untrusted so any
// string may show up here; UNKNOWN is the interpreter's fallback.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
	RiskLevelUnknown  RiskLevel = "UNKNOWN"
)

// Normalize returns the upper-cased risk level for comparison and display.
func (r RiskLevel) Normalize() RiskLevel {
	return RiskLevel(strings.ToUpper(strings.TrimSpace(string(r))))
}

// Decision is the gate outcome derived from a verdict.
type Decision string

const (
	DecisionPass  Decision = "pass"
	DecisionBlock Decision = "block"
)

// ReviewVerdict is the typed outcome of one review. Created exactly once
// per review by the response interpreter and immutable afterward.
type ReviewVerdict struct {
	RiskLevel   RiskLevel
	Summary     string
	UsedContext string
}

// Decide maps the verdict's risk level to a gate decision. Only an
// explicit HIGH or CRITICAL blocks; LOW, MEDIUM, UNKNOWN, empty, and any
// unrecognized value pass. The gate fails open on ambiguous verdicts so a
// parse failure alone never blocks a PR.
func (v ReviewVerdict) Decide() Decision {
	switch v.RiskLevel.Normalize() {
	case RiskLevelHigh, RiskLevelCritical:
		return DecisionBlock
	}
	return DecisionPass
}
