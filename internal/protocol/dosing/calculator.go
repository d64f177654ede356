package dosing

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

var (
	// ErrInvalidWeight is returned for non-positive patient weight.
	ErrInvalidWeight = errors.New("weight must be greater than zero")
	// ErrInvalidAge is returned for negative patient age.
	ErrInvalidAge = errors.New("age must not be negative")
	// ErrDrugNotFound is returned for a dilution lookup on an unknown drug.
	ErrDrugNotFound = errors.New("drug not found")
	// ErrUnknownBolusType is returned for an unrecognized bolus protocol.
	ErrUnknownBolusType = errors.New("unknown bolus type")
)

// Bolus is a computed fluid bolus order.
type Bolus struct {
	Type       model.BolusType `json:"type"`
	PerKgML    float64         `json:"per_kg_ml"`
	VolumeML   int             `json:"volume_ml"`
	Rate       string          `json:"rate"`
	MaxTotalKg float64         `json:"max_total_ml_kg"`
}

// Per-protocol bolus volumes. The cardiogenic protocol uses smaller
// boluses and a lower cumulative cap because of overload risk.
const (
	standardPerKgML    = 10
	cardiogenicPerKgML = 5

	standardMaxTotalMLKg    = 60
	cardiogenicMaxTotalMLKg = 20
)

// FluidBolus computes a weight-based crystalloid bolus for the given
// protocol. Volume is rounded to the nearest whole millilitre.
func FluidBolus(weightKg float64, bolusType model.BolusType) (*Bolus, error) {
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}

	switch bolusType {
	case model.BolusStandard:
		return &Bolus{
			Type:       bolusType,
			PerKgML:    standardPerKgML,
			VolumeML:   int(math.Round(weightKg * standardPerKgML)),
			Rate:       "Over 5-10 minutes, reassess perfusion after each bolus",
			MaxTotalKg: standardMaxTotalMLKg,
		}, nil
	case model.BolusCardiogenic:
		return &Bolus{
			Type:       bolusType,
			PerKgML:    cardiogenicPerKgML,
			VolumeML:   int(math.Round(weightKg * cardiogenicPerKgML)),
			Rate:       "Over 10-20 minutes, reassess for overload signs after each bolus",
			MaxTotalKg: cardiogenicMaxTotalMLKg,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBolusType, bolusType)
	}
}

// Dilution is a computed inotrope/vasoactive preparation instruction.
type Dilution struct {
	Drug        string  `json:"drug"`
	MgToAdd     float64 `json:"mg_to_add"`
	DiluentML   int     `json:"diluent_ml"`
	Preparation string  `json:"preparation"`
	Rate        string  `json:"rate"`
}

// Per-drug dilution scale factors in mg per kg of body weight added to
// 100 mL of diluent. Epinephrine and norepinephrine are prepared so that
// 1 mL/h delivers 0.1 mcg/kg/min; dopamine and dobutamine so that 1 mL/h
// delivers 1 mcg/kg/min.
var dilutionFactors = map[string]struct {
	mgPerKg       float64
	mcgKgMinPerML float64
}{
	"epinephrine":    {0.6, 0.1},
	"norepinephrine": {0.6, 0.1},
	"dopamine":       {6, 1},
	"dobutamine":     {6, 1},
}

const dilutionDiluentML = 100

// InotropeDilution computes the preparation instruction and the rate
// conversion for a vasoactive infusion. Unknown drugs return
// ErrDrugNotFound rather than a sentinel string so callers cannot mistake
// a miss for a valid zero-dose answer.
func InotropeDilution(drug string, weightKg float64) (*Dilution, error) {
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}

	key := strings.ToLower(strings.TrimSpace(drug))
	factor, ok := dilutionFactors[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDrugNotFound, drug)
	}

	mg := factor.mgPerKg * weightKg
	return &Dilution{
		Drug:      key,
		MgToAdd:   mg,
		DiluentML: dilutionDiluentML,
		Preparation: fmt.Sprintf("Add %.1f mg of %s to %d mL of D5W or NS",
			mg, key, dilutionDiluentML),
		Rate: fmt.Sprintf("1 mL/h = %.1f mcg/kg/min", factor.mcgKgMinPerML),
	}, nil
}
