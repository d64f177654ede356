package sequencer

import (
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/dosing"
)

func circulationActions(pa model.PhaseAssessment) []model.Action {
	f := pa.Circulation
	b := newBuilder(model.PhaseCirculation)

	if f.ActiveBleeding {
		b.add(1, "hemorrhage", model.Action{
			Title:           "Control external hemorrhage",
			Description:     "Direct pressure with gauze; tourniquet for uncontrollable limb bleeding",
			Rationale:       "Ongoing blood loss defeats any resuscitation downstream",
			ExpectedOutcome: "Visible bleeding controlled",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Immediately",
			Monitoring:      []string{"Bleeding recurrence", "Distal perfusion if tourniquet applied"},
		})
	}

	if !f.AccessObtained {
		b.add(2, "access", model.Action{
			Title:           "Obtain vascular access",
			Description:     "Two IV attempts or 90 seconds, whichever comes first, then go intraosseous",
			Rationale:       "No route for fluids or drugs",
			ExpectedOutcome: "Patent IV or IO with flushing confirmed",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Within 90 seconds",
			Monitoring:      []string{"Attempt count", "Elapsed time", "Site patency"},
		})
	}

	if f.SignsOfShock {
		dosingNote := ""
		if bolus, err := dosing.FluidBolus(pa.WeightKg, model.BolusStandard); err == nil {
			dosingNote = fmt.Sprintf("%d mL NS (%.0f mL/kg), %s", bolus.VolumeML, bolus.PerKgML, bolus.Rate)
		}
		b.add(3, "bolus", model.Action{
			Title:           "Give a crystalloid bolus",
			Description:     "Push-pull or pressure bag; reassess perfusion and preload signs after the bolus",
			Rationale:       "Clinical signs of shock with access available",
			ExpectedOutcome: "Heart rate falls, capillary refill shortens",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Start within 5 minutes",
			Dosing:          dosingNote,
			Monitoring:      []string{"Heart rate", "Capillary refill", "Liver edge", "Crackles"},
			Prerequisites:   []string{"Vascular access obtained"},
			Contraindications: []string{"Signs of fluid overload"},
		})
	}

	if f.CapillaryRefill > 2 || f.PulsesWeak {
		b.add(4, "perfusion", model.Action{
			Title:           "Serial perfusion checks",
			Description:     "Recheck central versus peripheral pulses, refill time, and mental status every 5 minutes",
			Rationale:       "Perfusion abnormalities present; trend determines escalation",
			ExpectedOutcome: "Documented perfusion trend",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Every 5 minutes",
			Monitoring:      []string{"Capillary refill", "Pulse quality", "Mental status"},
		})
	}

	b.add(5, "monitor", model.Action{
		Title:           "Continuous monitoring",
		Description:     "ECG, SpO2, and cycling blood pressure on the monitor",
		Rationale:       "Circulatory state changes faster than intermittent checks detect",
		ExpectedOutcome: "Continuous trend available to the team",
		Urgency:         model.UrgencyRoutine,
		Timeframe:       "Ongoing",
		Monitoring:      []string{"ECG rhythm", "Blood pressure trend"},
	})

	return b.list()
}
