package model

// TherapyLine is the ordinal tier of an escalation ladder.
type TherapyLine string

const (
	LineFirst  TherapyLine = "first"
	LineSecond TherapyLine = "second"
	LineThird  TherapyLine = "third"
	LineFourth TherapyLine = "fourth"
	LineFifth  TherapyLine = "fifth"
)

// TherapyLines returns the ladder tiers in escalation order.
func TherapyLines() []TherapyLine {
	return []TherapyLine{LineFirst, LineSecond, LineThird, LineFourth, LineFifth}
}

// Ordinal returns the zero-based position of the line, or -1 for an
// unrecognized value.
func (l TherapyLine) Ordinal() int {
	for i, line := range TherapyLines() {
		if line == l {
			return i
		}
	}
	return -1
}

// Next returns the successor line and false at the terminal line.
func (l TherapyLine) Next() (TherapyLine, bool) {
	ord := l.Ordinal()
	lines := TherapyLines()
	if ord < 0 || ord >= len(lines)-1 {
		return "", false
	}
	return lines[ord+1], true
}

// Condition identifies one escalation ladder.
type Condition string

const (
	ConditionAsthma      Condition = "asthma"
	ConditionSepticShock Condition = "septic_shock"
	ConditionPPH         Condition = "postpartum_hemorrhage"
	ConditionEclampsia   Condition = "eclampsia"
)

// TherapyStep is one rung of an escalation ladder for a single drug.
// Steps are static reference data, never mutated at runtime. Several steps
// may share a line; those are concurrent per-class options, not sub-steps.
// EscalationTrigger is advisory free text evaluated by the provider, not a
// machine predicate.
type TherapyStep struct {
	Line                 TherapyLine `json:"line"`
	Drug                 string      `json:"drug"`
	Class                string      `json:"class,omitempty"`
	Dose                 string      `json:"dose"`
	Route                string      `json:"route"`
	Frequency            string      `json:"frequency"`
	MaxDose              string      `json:"max_dose"`
	Dilution             string      `json:"dilution,omitempty"`
	AdministrationTime   string      `json:"administration_time,omitempty"`
	Monitoring           []string    `json:"monitoring"`
	Contraindications    []string    `json:"contraindications"`
	SideEffects          []string    `json:"side_effects"`
	EscalationTrigger    string      `json:"escalation_trigger"`
	DeescalationCriteria string      `json:"deescalation_criteria,omitempty"`
}
