package model

// Urgency classifies how quickly an action must be performed.
type Urgency string

const (
	UrgencyRoutine  Urgency = "routine"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyCritical Urgency = "critical"
)

// Phase is one step of the ABCDE assessment sequence.
type Phase string

const (
	PhaseAirway      Phase = "airway"
	PhaseBreathing   Phase = "breathing"
	PhaseCirculation Phase = "circulation"
	PhaseDisability  Phase = "disability"
	PhaseExposure    Phase = "exposure"
)

// Phases returns the ABCDE phases in assessment order.
func Phases() []Phase {
	return []Phase{PhaseAirway, PhaseBreathing, PhaseCirculation, PhaseDisability, PhaseExposure}
}

// Action is one recommended next step within a phase. Actions are
// regenerated from the findings snapshot on every change, never persisted;
// IDs are deterministic for a given phase and triggering condition so the
// caller can track completion across regenerations. Sequence values within
// one generated list are gapless ascending integers starting at 1.
type Action struct {
	ID                string   `json:"id"`
	Sequence          int      `json:"sequence"`
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	Rationale         string   `json:"rationale"`
	ExpectedOutcome   string   `json:"expected_outcome"`
	Urgency           Urgency  `json:"urgency"`
	Phase             Phase    `json:"phase"`
	Timeframe         string   `json:"timeframe"`
	Dosing            string   `json:"dosing,omitempty"`
	Monitoring        []string `json:"monitoring"`
	Prerequisites     []string `json:"prerequisites,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`
}

// AirwayFindings is the typed findings snapshot for the airway phase.
type AirwayFindings struct {
	Patent               bool `json:"patent"`
	Obstructed           bool `json:"obstructed"`
	SecretionsPresent    bool `json:"secretions_present"`
	StridorPresent       bool `json:"stridor_present"`
	ToleratesPositioning bool `json:"tolerates_positioning"`
}

// BreathingFindings is the typed findings snapshot for the breathing phase.
type BreathingFindings struct {
	BreathingAdequate  bool `json:"breathing_adequate"`
	OxygenApplied      bool `json:"oxygen_applied"`
	SpO2               int  `json:"spo2"`
	RespiratoryRate    int  `json:"respiratory_rate"`
	WheezePresent      bool `json:"wheeze_present"`
	RetractionsPresent bool `json:"retractions_present"`
}

// CirculationFindings is the typed findings snapshot for the circulation phase.
type CirculationFindings struct {
	HeartRate       int     `json:"heart_rate"`
	CapillaryRefill float64 `json:"capillary_refill_seconds"`
	PulsesWeak      bool    `json:"pulses_weak"`
	AccessObtained  bool    `json:"access_obtained"`
	ActiveBleeding  bool    `json:"active_bleeding"`
	SignsOfShock    bool    `json:"signs_of_shock"`
}

// DisabilityFindings is the typed findings snapshot for the disability phase.
type DisabilityFindings struct {
	AVPU           string  `json:"avpu"`
	GlucoseMgDL    float64 `json:"glucose_mg_dl"`
	GlucoseKnown   bool    `json:"glucose_known"`
	SeizureActive  bool    `json:"seizure_active"`
	PupilsAbnormal bool    `json:"pupils_abnormal"`
}

// ExposureFindings is the typed findings snapshot for the exposure phase.
type ExposureFindings struct {
	TemperatureC    float64 `json:"temperature_c"`
	RashPresent     bool    `json:"rash_present"`
	TraumaSuspected bool    `json:"trauma_suspected"`
}

// PhaseAssessment is the caller-owned snapshot a phase generator runs
// over. Exactly one findings field matching Phase is consulted.
type PhaseAssessment struct {
	Phase       Phase                `json:"phase"`
	WeightKg    float64              `json:"weight_kg"`
	AgeYears    float64              `json:"age_years"`
	Airway      *AirwayFindings      `json:"airway,omitempty"`
	Breathing   *BreathingFindings   `json:"breathing,omitempty"`
	Circulation *CirculationFindings `json:"circulation,omitempty"`
	Disability  *DisabilityFindings  `json:"disability,omitempty"`
	Exposure    *ExposureFindings    `json:"exposure,omitempty"`
}
