package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// BolusType selects the fluid resuscitation protocol.
type BolusType string

const (
	BolusStandard    BolusType = "standard"
	BolusCardiogenic BolusType = "cardiogenic"
)

// BolusOutcome records the reassessed response to a bolus.
type BolusOutcome string

const (
	OutcomePending      BolusOutcome = "pending"
	OutcomeImproved     BolusOutcome = "improved"
	OutcomeNoChange     BolusOutcome = "no_change"
	OutcomeDeteriorated BolusOutcome = "deteriorated"
	OutcomeOverloaded   BolusOutcome = "overloaded"
)

// ReassessmentItem is one post-bolus check. OverloadSign marks findings
// that mandate stopping fluids when present on an overload parameter.
type ReassessmentItem struct {
	Parameter    string `json:"parameter"`
	Finding      string `json:"finding"`
	OverloadSign bool   `json:"overload_sign"`
}

// FluidBolusRecord is one administered bolus within a session. Records are
// append-only; TotalGivenMLKg is the running cumulative mL/kg that drives
// escalation thresholds.
type FluidBolusRecord struct {
	ID             uuid.UUID          `json:"id" db:"id"`
	SessionID      uuid.UUID          `json:"session_id" db:"session_id"`
	BolusNumber    int                `json:"bolus_number" db:"bolus_number"`
	Type           BolusType          `json:"type" db:"bolus_type"`
	VolumeMLKg     float64            `json:"volume_ml_kg" db:"volume_ml_kg"`
	VolumeML       int                `json:"volume_ml" db:"volume_ml"`
	TotalGivenMLKg float64            `json:"total_given_ml_kg" db:"total_given_ml_kg"`
	TimeGiven      time.Time          `json:"time_given" db:"time_given"`
	Outcome        BolusOutcome       `json:"outcome" db:"outcome"`
	Reassessment   []ReassessmentItem `json:"reassessment,omitempty" db:"-"`
	ReassessJSON   json.RawMessage    `json:"-" db:"reassessment"`
}

// MarshalReassessment folds the reassessment checklist into its column
// representation before persisting.
func (r *FluidBolusRecord) MarshalReassessment() error {
	if len(r.Reassessment) == 0 {
		r.ReassessJSON = nil
		return nil
	}
	raw, err := json.Marshal(r.Reassessment)
	if err != nil {
		return err
	}
	r.ReassessJSON = raw
	return nil
}

// UnmarshalReassessment hydrates the checklist from the column after loading.
func (r *FluidBolusRecord) UnmarshalReassessment() error {
	if len(r.ReassessJSON) == 0 {
		return nil
	}
	return json.Unmarshal(r.ReassessJSON, &r.Reassessment)
}

// VascularAccess tracks the IV attempt history used by the IO escalation
// predicate. The engine owns no clock; elapsed time is derived by the
// caller from StartedAt.
type VascularAccess struct {
	SessionID      uuid.UUID  `json:"session_id" db:"session_id"`
	FailedAttempts int        `json:"failed_attempts" db:"failed_attempts"`
	StartedAt      *time.Time `json:"started_at,omitempty" db:"started_at"`
	IOEscalated    bool       `json:"io_escalated" db:"io_escalated"`
}
