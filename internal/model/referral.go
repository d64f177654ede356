package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Intervention is one timestamped treatment for the referral timeline.
type Intervention struct {
	Description string    `json:"description"`
	Time        time.Time `json:"time"`
}

// VitalsSnapshot is one point of the vitals trend attached to a referral.
type VitalsSnapshot struct {
	Time            time.Time `json:"time"`
	HeartRate       int       `json:"heart_rate"`
	RespiratoryRate int       `json:"respiratory_rate"`
	SpO2            int       `json:"spo2"`
	SystolicBP      int       `json:"systolic_bp,omitempty"`
	CapillaryRefill float64   `json:"capillary_refill_seconds,omitempty"`
}

// Referral is the SBAR-structured handoff payload assembled by the service
// layer. The engine only supplies the reason string and identified type.
type Referral struct {
	Base
	SessionID        uuid.UUID        `json:"session_id" db:"session_id"`
	PatientRef       string           `json:"patient_ref" db:"patient_ref"`
	AgeYears         float64          `json:"age_years" db:"age_years"`
	WeightKg         float64          `json:"weight_kg" db:"weight_kg"`
	WorkingDiagnosis string           `json:"working_diagnosis" db:"working_diagnosis"`
	Reason           string           `json:"reason" db:"reason"`
	VitalsTrend      []VitalsSnapshot `json:"vitals_trend" db:"-"`
	Interventions    []Intervention   `json:"interventions" db:"-"`
	CurrentInfusions []string         `json:"current_infusions" db:"-"`
	Labs             JSONMap          `json:"labs,omitempty" db:"-"`
	CallbackContact  string           `json:"callback_contact" db:"callback_contact"`
	DetailsJSON      json.RawMessage  `json:"-" db:"details"`
}

type referralDetails struct {
	VitalsTrend      []VitalsSnapshot `json:"vitals_trend"`
	Interventions    []Intervention   `json:"interventions"`
	CurrentInfusions []string         `json:"current_infusions"`
	Labs             JSONMap          `json:"labs,omitempty"`
}

// MarshalDetails folds the trend, intervention and infusion slices into the
// details column before persisting.
func (r *Referral) MarshalDetails() error {
	raw, err := json.Marshal(referralDetails{
		VitalsTrend:      r.VitalsTrend,
		Interventions:    r.Interventions,
		CurrentInfusions: r.CurrentInfusions,
		Labs:             r.Labs,
	})
	if err != nil {
		return err
	}
	r.DetailsJSON = raw
	return nil
}

// UnmarshalDetails hydrates the slices from the details column after loading.
func (r *Referral) UnmarshalDetails() error {
	if len(r.DetailsJSON) == 0 {
		return nil
	}
	var d referralDetails
	if err := json.Unmarshal(r.DetailsJSON, &d); err != nil {
		return err
	}
	r.VitalsTrend = d.VitalsTrend
	r.Interventions = d.Interventions
	r.CurrentInfusions = d.CurrentInfusions
	r.Labs = d.Labs
	return nil
}
