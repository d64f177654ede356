package sequencer

import (
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/dosing"
)

func breathingActions(pa model.PhaseAssessment) []model.Action {
	f := pa.Breathing
	b := newBuilder(model.PhaseBreathing)

	if !f.OxygenApplied && f.SpO2 < 94 {
		urgency := model.UrgencyUrgent
		if f.SpO2 < 92 {
			urgency = model.UrgencyCritical
		}
		b.add(1, "oxygen", model.Action{
			Title:           "Apply high-flow oxygen",
			Description:     "15 L/min via non-rebreather mask, or blow-by if the mask is not tolerated",
			Rationale:       fmt.Sprintf("SpO2 %d%% below target of 94%%", f.SpO2),
			ExpectedOutcome: "SpO2 rises above 94% within minutes",
			Urgency:         urgency,
			Timeframe:       "Immediately",
			Monitoring:      []string{"Continuous SpO2", "Respiratory rate", "Work of breathing"},
		})
	}

	if !f.BreathingAdequate {
		dosingNote := ""
		if tv, err := dosing.BVMTidalVolume(pa.WeightKg); err == nil {
			dosingNote = fmt.Sprintf("Tidal volume %d-%d mL, just enough for visible chest rise", tv.MinML, tv.MaxML)
		}
		b.add(2, "bvm", model.Action{
			Title:           "Begin bag-valve-mask ventilation",
			Description:     "Two-person technique with jaw thrust, rate 20-30 breaths/min for infants, 12-20 for children",
			Rationale:       "Spontaneous breathing inadequate to maintain ventilation",
			ExpectedOutcome: "Visible chest rise and improving SpO2",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Immediately",
			Dosing:          dosingNote,
			Monitoring:      []string{"Chest rise", "SpO2", "Gastric distension"},
			Prerequisites:   []string{"Airway positioned and cleared"},
		})
	}

	if f.WheezePresent {
		dose := ""
		if d, err := dosing.SalbutamolNebDose(pa.WeightKg); err == nil {
			dose = d
		}
		b.add(3, "bronchodilator", model.Action{
			Title:           "Give nebulized salbutamol",
			Description:     "Salbutamol nebulized with oxygen as the driving gas",
			Rationale:       "Audible wheeze with respiratory distress",
			ExpectedOutcome: "Reduced wheeze and work of breathing within 20 minutes",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Within 10 minutes",
			Dosing:          dose,
			Monitoring:      []string{"Air entry", "Heart rate", "SpO2"},
		})
	}

	if f.RetractionsPresent && f.BreathingAdequate {
		b.add(4, "positioning", model.Action{
			Title:           "Position of comfort",
			Description:     "Allow the child to sit upright or remain with the caregiver; do not force recumbency",
			Rationale:       "Retractions with preserved breathing; agitation worsens obstruction",
			ExpectedOutcome: "Reduced distress and accessory muscle use",
			Urgency:         model.UrgencyRoutine,
			Timeframe:       "Ongoing",
			Monitoring:      []string{"Work of breathing"},
		})
	}

	b.add(5, "reassess", model.Action{
		Title:           "Reassess breathing",
		Description:     "Recheck rate, effort, air entry, and SpO2 after each intervention",
		Rationale:       "Breathing status changes quickly after every intervention",
		ExpectedOutcome: "Documented trend before moving to circulation",
		Urgency:         model.UrgencyRoutine,
		Timeframe:       "After each intervention",
		Monitoring:      []string{"Respiratory rate", "SpO2", "Air entry"},
	})

	return b.list()
}
