package sequencer

import (
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/dosing"
)

const hypoglycemiaThresholdMgDL = 54

func disabilityActions(pa model.PhaseAssessment) []model.Action {
	f := pa.Disability
	b := newBuilder(model.PhaseDisability)

	if f.SeizureActive {
		b.add(1, "seizure", model.Action{
			Title:           "Terminate the seizure",
			Description:     "Midazolam 0.1 mg/kg IV/IO, or 0.2 mg/kg buccal if no access; protect from injury, do not restrain",
			Rationale:       "Active seizure ongoing",
			ExpectedOutcome: "Seizure stops within 5 minutes of the dose",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Immediately",
			Dosing:          fmt.Sprintf("Midazolam %.1f mg IV/IO (0.1 mg/kg)", pa.WeightKg*0.1),
			Monitoring:      []string{"Seizure activity", "Respiratory depression", "SpO2"},
		})
	}

	if !f.GlucoseKnown {
		b.add(2, "glucose_check", model.Action{
			Title:           "Check blood glucose",
			Description:     "Bedside capillary glucose; never omit in any altered child",
			Rationale:       "Hypoglycemia mimics every neurological emergency",
			ExpectedOutcome: "Glucose value documented",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Within 5 minutes",
			Monitoring:      []string{"Glucose value"},
		})
	}

	if f.GlucoseKnown && f.GlucoseMgDL > 0 && f.GlucoseMgDL < hypoglycemiaThresholdMgDL {
		dose := ""
		if d, err := dosing.DextroseBolus(pa.WeightKg); err == nil {
			dose = d
		}
		b.add(3, "dextrose", model.Action{
			Title:           "Correct hypoglycemia",
			Description:     "Dextrose bolus followed by a repeat glucose in 15 minutes",
			Rationale:       fmt.Sprintf("Glucose %.0f mg/dL below threshold of %d", f.GlucoseMgDL, hypoglycemiaThresholdMgDL),
			ExpectedOutcome: "Glucose above 70 mg/dL on recheck",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Immediately",
			Dosing:          dose,
			Monitoring:      []string{"Repeat glucose at 15 minutes", "Mental status"},
			Prerequisites:   []string{"Vascular access obtained"},
		})
	}

	if f.PupilsAbnormal || (f.AVPU != "" && f.AVPU != "A") {
		b.add(4, "neuro", model.Action{
			Title:           "Focused neurological assessment",
			Description:     "Document AVPU, pupil size and reactivity, posture, and tone; consider raised intracranial pressure",
			Rationale:       "Altered consciousness or abnormal pupils present",
			ExpectedOutcome: "Baseline neurological status documented for trending",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Within 10 minutes",
			Monitoring:      []string{"AVPU trend", "Pupillary response"},
		})
	}

	b.add(5, "reassess", model.Action{
		Title:           "Reassess disability",
		Description:     "Recheck AVPU and pupils after every systemic intervention",
		Rationale:       "Neurological state reflects perfusion and oxygenation changes",
		ExpectedOutcome: "Documented trend",
		Urgency:         model.UrgencyRoutine,
		Timeframe:       "After each intervention",
		Monitoring:      []string{"AVPU", "Pupils"},
	})

	return b.list()
}
