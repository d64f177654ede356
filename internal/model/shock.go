package model

// ShockType is one of the mutually-scored categories of circulatory failure.
type ShockType string

const (
	ShockHypovolemic      ShockType = "hypovolemic"
	ShockCardiogenic      ShockType = "cardiogenic"
	ShockSeptic           ShockType = "septic"
	ShockAnaphylactic     ShockType = "anaphylactic"
	ShockObstructive      ShockType = "obstructive"
	ShockUndifferentiated ShockType = "undifferentiated"
)

// ShockTypes returns all scored types in their canonical enumeration order.
// Score ties are broken by this order, so it must stay stable.
func ShockTypes() []ShockType {
	return []ShockType{
		ShockHypovolemic,
		ShockCardiogenic,
		ShockSeptic,
		ShockAnaphylactic,
		ShockObstructive,
		ShockUndifferentiated,
	}
}

// AbnormalFinding is one possible abnormal result of an assessment step.
// A single finding may implicate multiple shock types at once.
type AbnormalFinding struct {
	Finding        string         `json:"finding"`
	Interpretation Interpretation `json:"interpretation"`
	ShockTypes     []ShockType    `json:"shock_types"`
}

// AssessmentStep is one physical-exam item of the shock differential.
// Steps are static reference data; Order defines presentation sequence and
// must be strictly increasing and unique within a protocol.
type AssessmentStep struct {
	Order            int               `json:"order"`
	Parameter        string            `json:"parameter"`
	Method           string            `json:"method"`
	NormalFinding    string            `json:"normal_finding"`
	AbnormalFindings []AbnormalFinding `json:"abnormal_findings"`
	ClinicalTip      string            `json:"clinical_tip,omitempty"`
}

// HistoryQuestion is one boolean history item, tagged with exactly one
// shock type. An affirmative answer weighs more than a physical finding.
type HistoryQuestion struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	ShockType ShockType `json:"shock_type"`
}

// StepSelection records the provider's choice for one assessment step.
// IsNormal selections contribute nothing to any score.
type StepSelection struct {
	StepOrder int    `json:"step_order"`
	Finding   string `json:"finding"`
	IsNormal  bool   `json:"is_normal"`
}

// HistoryAnswer records one answered history question.
type HistoryAnswer struct {
	QuestionID  string `json:"question_id"`
	Affirmative bool   `json:"affirmative"`
}

// AssessmentState is the caller-owned snapshot the scoring engine runs
// over. The engine never holds a copy across calls.
type AssessmentState struct {
	Selections []StepSelection `json:"selections"`
	Answers    []HistoryAnswer `json:"answers"`
}

// ShockScore is the derived score for one shock type, recomputed fresh on
// every findings change and never stored.
type ShockScore struct {
	Type     ShockType `json:"type"`
	Score    int       `json:"score"`
	Evidence []string  `json:"evidence"`
}

// ShockIdentification is the outcome of a completed assessment.
type ShockIdentification struct {
	Type   ShockType    `json:"type"`
	Scores []ShockScore `json:"scores"`
}
