package sequencer

import (
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

const (
	hypothermiaThresholdC = 36.0
	feverThresholdC       = 38.5
)

func exposureActions(pa model.PhaseAssessment) []model.Action {
	f := pa.Exposure
	b := newBuilder(model.PhaseExposure)

	b.add(1, "expose", model.Action{
		Title:           "Fully expose and examine",
		Description:     "Undress completely, examine front and back including the scalp, then cover promptly",
		Rationale:       "Rashes, injuries, and bleeding sources hide under clothing",
		ExpectedOutcome: "Complete skin survey documented",
		Urgency:         model.UrgencyRoutine,
		Timeframe:       "Within 10 minutes",
		Monitoring:      []string{"Temperature during exposure"},
	})

	if f.RashPresent {
		b.add(2, "rash", model.Action{
			Title:           "Characterize the rash",
			Description:     "Glass test for non-blanching petechiae; urticaria with respiratory signs points to anaphylaxis",
			Rationale:       "Petechial rash with fever suggests meningococcal sepsis; urticaria suggests anaphylaxis",
			ExpectedOutcome: "Rash classified and escalation triggered if non-blanching",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Immediately on discovery",
			Monitoring:      []string{"Rash progression, outline lesions with a pen"},
		})
	}

	if f.TemperatureC > 0 && f.TemperatureC < hypothermiaThresholdC {
		b.add(3, "warm", model.Action{
			Title:           "Active warming",
			Description:     "Warm blankets, overhead warmer, warmed IV fluids",
			Rationale:       fmt.Sprintf("Temperature %.1f C below %.0f C; hypothermia worsens coagulopathy and acidosis", f.TemperatureC, hypothermiaThresholdC),
			ExpectedOutcome: "Core temperature rising toward normal",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Start within 10 minutes",
			Monitoring:      []string{"Core temperature every 15 minutes"},
		})
	}

	if f.TemperatureC >= feverThresholdC {
		b.add(4, "fever", model.Action{
			Title:           "Treat fever and culture",
			Description:     "Antipyretic, blood culture before antibiotics if sepsis is suspected",
			Rationale:       fmt.Sprintf("Temperature %.1f C at or above %.1f C", f.TemperatureC, feverThresholdC),
			ExpectedOutcome: "Temperature falling, cultures obtained",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Within 30 minutes",
			Dosing:          fmt.Sprintf("Paracetamol %.0f mg PO/PR (15 mg/kg)", pa.WeightKg*15),
			Monitoring:      []string{"Temperature", "Do not delay antibiotics for the antipyretic"},
		})
	}

	if f.TraumaSuspected {
		b.add(5, "trauma", model.Action{
			Title:           "Log-roll and secondary survey",
			Description:     "Maintain spinal precautions, inspect the back, palpate the spine",
			Rationale:       "Suspected trauma requires a complete posterior examination",
			ExpectedOutcome: "Posterior injuries identified or excluded",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "After primary survey stabilization",
			Monitoring:      []string{"Spinal tenderness", "New injuries"},
			Prerequisites:   []string{"Enough staff for controlled log-roll"},
		})
	}

	b.add(6, "cover", model.Action{
		Title:           "Cover and prevent heat loss",
		Description:     "Re-dress or blanket the child as soon as the examination is complete",
		Rationale:       "Children lose heat rapidly when exposed",
		ExpectedOutcome: "Normothermia maintained",
		Urgency:         model.UrgencyRoutine,
		Timeframe:       "Immediately after examination",
		Monitoring:      []string{"Temperature"},
	})

	return b.list()
}
