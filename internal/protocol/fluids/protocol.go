package fluids

import (
	"strings"
	"time"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

// IV-to-IO escalation bounds. The engine owns no clock; elapsed time is
// derived by the caller from a wall-clock start.
const (
	IOEscalationElapsed  = 90 * time.Second
	IOEscalationAttempts = 2
)

// Cumulative-volume thresholds in mL/kg.
const (
	StandardReassessEveryMLKg = 10
	StandardInotropeMLKg      = 40
	StandardHardStopMLKg      = 60
	CardiogenicHardStopMLKg   = 20
)

// Parameters whose overload-flagged reassessment findings mandate
// stopping fluids. Matched case-insensitively.
var overloadParameters = map[string]bool{
	"hepatomegaly": true,
	"crackles":     true,
	"jvd":          true,
	"spo2":         true,
}

// ShouldEscalateToIO reports whether vascular access should move to the
// intraosseous route: true iff 90 seconds have elapsed or two IV attempts
// have failed. Pure predicate; acting on it is the caller's job.
func ShouldEscalateToIO(failedAttempts int, elapsed time.Duration) bool {
	return elapsed >= IOEscalationElapsed || failedAttempts >= IOEscalationAttempts
}

// IsOverloaded reports whether any reassessment item shows a fluid
// overload sign on an overload parameter. A positive result is a hard
// stop: no further boluses, escalate to inotropes.
func IsOverloaded(items []model.ReassessmentItem) bool {
	for _, item := range items {
		if item.OverloadSign && overloadParameters[strings.ToLower(strings.TrimSpace(item.Parameter))] {
			return true
		}
	}
	return false
}

// Recommendation is the fluid-protocol guidance after a bolus.
type Recommendation string

const (
	RecommendContinue          Recommendation = "continue"
	RecommendReassess          Recommendation = "reassess"
	RecommendConsiderInotropes Recommendation = "consider_inotropes"
	RecommendStopFluids        Recommendation = "stop_fluids"
)

// Recommend maps the cumulative volume and overload status onto the
// protocol guidance. Overload always wins; the cardiogenic protocol caps
// at 20 mL/kg regardless of response; the standard protocol escalates to
// inotrope consideration at 40 mL/kg and hard-stops at 60 mL/kg with
// mandatory inotrope reassessment.
func Recommend(bolusType model.BolusType, totalMLKg float64, overloaded bool) Recommendation {
	if overloaded {
		return RecommendStopFluids
	}

	if bolusType == model.BolusCardiogenic {
		if totalMLKg >= CardiogenicHardStopMLKg {
			return RecommendStopFluids
		}
		return RecommendReassess
	}

	switch {
	case totalMLKg >= StandardHardStopMLKg:
		return RecommendStopFluids
	case totalMLKg >= StandardInotropeMLKg:
		return RecommendConsiderInotropes
	case totalMLKg > 0 && int(totalMLKg)%StandardReassessEveryMLKg == 0:
		return RecommendReassess
	default:
		return RecommendContinue
	}
}
