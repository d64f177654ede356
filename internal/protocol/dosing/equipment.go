package dosing

import (
	"fmt"
	"math"
)

// Equipment sizing and ventilation formulas consolidated here so they are
// computed and tested once instead of inline per screen.

// TidalVolumeRange is the bag-valve-mask tidal volume window in mL.
type TidalVolumeRange struct {
	MinML int `json:"min_ml"`
	MaxML int `json:"max_ml"`
}

const (
	tidalVolumeMinMLKg = 6
	tidalVolumeMaxMLKg = 8
)

// BVMTidalVolume returns the target tidal volume window of weight*6 to
// weight*8 mL.
func BVMTidalVolume(weightKg float64) (*TidalVolumeRange, error) {
	if weightKg <= 0 {
		return nil, ErrInvalidWeight
	}
	return &TidalVolumeRange{
		MinML: int(math.Round(weightKg * tidalVolumeMinMLKg)),
		MaxML: int(math.Round(weightKg * tidalVolumeMaxMLKg)),
	}, nil
}

// SuctionCatheterFr returns the suction catheter size, age/4 + 4 French.
func SuctionCatheterFr(ageYears float64) (float64, error) {
	if ageYears < 0 {
		return 0, ErrInvalidAge
	}
	return ageYears/4 + 4, nil
}

// ETTSize returns the uncuffed endotracheal tube internal diameter in mm,
// age/4 + 4, rounded to the nearest half size. Cuffed tubes use a half
// size smaller.
func ETTSize(ageYears float64, cuffed bool) (float64, error) {
	if ageYears < 0 {
		return 0, ErrInvalidAge
	}
	size := ageYears/4 + 4
	if cuffed {
		size -= 0.5
	}
	return math.Round(size*2) / 2, nil
}

// DefibrillationEnergy returns the shock energy in joules: 2 J/kg for the
// first shock, 4 J/kg thereafter.
func DefibrillationEnergy(weightKg float64, shockNumber int) (int, error) {
	if weightKg <= 0 {
		return 0, ErrInvalidWeight
	}
	perKg := 4.0
	if shockNumber <= 1 {
		perKg = 2.0
	}
	return int(math.Round(weightKg * perKg)), nil
}

// DextroseBolus returns the hypoglycemia correction order, 2 mL/kg of
// 10% dextrose.
func DextroseBolus(weightKg float64) (string, error) {
	if weightKg <= 0 {
		return "", ErrInvalidWeight
	}
	return fmt.Sprintf("%.0f mL of D10W IV over 5 minutes", weightKg*2), nil
}

// SalbutamolNebDose returns the nebulized salbutamol order, 0.15 mg/kg
// with a 2.5 mg floor and 5 mg ceiling.
func SalbutamolNebDose(weightKg float64) (string, error) {
	if weightKg <= 0 {
		return "", ErrInvalidWeight
	}
	mg := weightKg * 0.15
	if mg < 2.5 {
		mg = 2.5
	}
	if mg > 5 {
		mg = 5
	}
	return fmt.Sprintf("%.1f mg nebulized with oxygen", mg), nil
}
