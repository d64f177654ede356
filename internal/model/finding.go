package model

import "strings"

// Interpretation classifies a single clinical finding.
type Interpretation string

const (
	InterpretationNormal   Interpretation = "normal"
	InterpretationAbnormal Interpretation = "abnormal"
	InterpretationCritical Interpretation = "critical"
)

// AssessmentFinding is one observed parameter with its clinical reading.
// Findings are immutable; a new record for the same parameter replaces the
// old one, the engine never mutates a finding in place.
type AssessmentFinding struct {
	Parameter            string         `json:"parameter"`
	Value                interface{}    `json:"value"`
	Interpretation       Interpretation `json:"interpretation"`
	ClinicalSignificance string         `json:"clinical_significance"`
}

// IsCritical reports whether the finding should raise an immediate alert,
// independent of any later scoring pass.
func (f AssessmentFinding) IsCritical() bool {
	if f.Interpretation == InterpretationCritical {
		return true
	}
	sig := strings.ToUpper(f.ClinicalSignificance)
	return strings.Contains(sig, "CRITICAL") || strings.Contains(sig, "IMMEDIATE")
}

// ReplaceFinding returns a copy of findings with any existing record for
// the same parameter replaced by next, preserving first-seen order.
func ReplaceFinding(findings []AssessmentFinding, next AssessmentFinding) []AssessmentFinding {
	out := make([]AssessmentFinding, 0, len(findings)+1)
	replaced := false
	for _, f := range findings {
		if f.Parameter == next.Parameter {
			out = append(out, next)
			replaced = true
			continue
		}
		out = append(out, f)
	}
	if !replaced {
		out = append(out, next)
	}
	return out
}
