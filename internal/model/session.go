package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SessionStatus is the lifecycle of an assessment session.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusReferred  SessionStatus = "referred"
)

// AssessmentSession is one patient encounter. The scoring engine itself is
// stateless; the session row is where the caller-owned AssessmentState and
// fluid protocol bookkeeping are persisted between requests.
type AssessmentSession struct {
	Base
	PatientRef     string          `json:"patient_ref" db:"patient_ref"`
	AgeYears       float64         `json:"age_years" db:"age_years"`
	WeightKg       float64         `json:"weight_kg" db:"weight_kg"`
	Status         SessionStatus   `json:"status" db:"status"`
	IdentifiedType *ShockType      `json:"identified_type,omitempty" db:"identified_type"`
	State          AssessmentState `json:"state" db:"-"`
	StateJSON      json.RawMessage `json:"-" db:"state"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty" db:"completed_at"`
}

// MarshalState serializes the in-memory assessment state into the column
// representation before persisting.
func (s *AssessmentSession) MarshalState() error {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return err
	}
	s.StateJSON = raw
	return nil
}

// UnmarshalState hydrates the in-memory assessment state from the column
// representation after loading.
func (s *AssessmentSession) UnmarshalState() error {
	if len(s.StateJSON) == 0 {
		s.State = AssessmentState{}
		return nil
	}
	return json.Unmarshal(s.StateJSON, &s.State)
}

// EscalationState tracks a session's position on one condition's ladder.
// The walk is strictly one-directional; de-escalation criteria on the
// therapy steps are advisory only.
type EscalationState struct {
	SessionID uuid.UUID   `json:"session_id" db:"session_id"`
	Condition Condition   `json:"condition" db:"condition"`
	Line      TherapyLine `json:"line" db:"line"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}
