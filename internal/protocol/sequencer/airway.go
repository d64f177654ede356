package sequencer

import (
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
	"github.com/jwalitptl/peds-protocol-api/internal/protocol/dosing"
)

func airwayActions(pa model.PhaseAssessment) []model.Action {
	f := pa.Airway
	b := newBuilder(model.PhaseAirway)

	if !f.Patent || f.Obstructed {
		b.add(1, "position", model.Action{
			Title:           "Open and position the airway",
			Description:     "Head tilt-chin lift, or jaw thrust if trauma is suspected; neutral position for infants, sniffing position for children",
			Rationale:       "Airway not reliably patent",
			ExpectedOutcome: "Audible air movement without obstruction sounds",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Immediately",
			Monitoring:      []string{"Air movement", "Chest rise", "Obstruction sounds"},
		})
	}

	if f.SecretionsPresent {
		dosingNote := ""
		if fr, err := dosing.SuctionCatheterFr(pa.AgeYears); err == nil {
			dosingNote = fmt.Sprintf("Catheter size %.1f Fr (age/4 + 4)", fr)
		}
		b.add(2, "suction", model.Action{
			Title:           "Suction the airway",
			Description:     "Suction visible secretions under direct vision, limit each pass to 10 seconds",
			Rationale:       "Secretions compromising airway patency",
			ExpectedOutcome: "Clear airway sounds, improved air entry",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Immediately after positioning",
			Dosing:          dosingNote,
			Monitoring:      []string{"SpO2 during suction", "Heart rate (vagal response)"},
			Prerequisites:   []string{"Airway positioned"},
		})
	}

	if f.Obstructed && !f.StridorPresent {
		b.add(3, "adjunct", model.Action{
			Title:           "Place an airway adjunct",
			Description:     "Oropharyngeal airway if unconscious without gag; nasopharyngeal if gag present and no basal skull fracture",
			Rationale:       "Positioning alone not maintaining the airway",
			ExpectedOutcome: "Airway maintained without continuous manual support",
			Urgency:         model.UrgencyUrgent,
			Timeframe:       "Within 2 minutes",
			Monitoring:      []string{"Tolerance of adjunct", "Air movement"},
			Contraindications: []string{"OPA with intact gag reflex", "NPA with suspected basal skull fracture"},
		})
	}

	if f.StridorPresent {
		b.add(4, "stridor", model.Action{
			Title:           "Keep the child calm, prepare advanced airway",
			Description:     "Avoid distressing procedures, allow position of comfort, call for senior airway support",
			Rationale:       "Stridor indicates upper airway narrowing; crying worsens obstruction",
			ExpectedOutcome: "No progression while definitive management is assembled",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Immediately",
			Monitoring:      []string{"Stridor at rest versus agitation", "Drooling", "SpO2"},
		})
	}

	if !f.Patent {
		dosingNote := ""
		if size, err := dosing.ETTSize(pa.AgeYears, true); err == nil {
			dosingNote = fmt.Sprintf("Cuffed ETT %.1f mm (age/4 + 3.5), prepare a half size either way", size)
		}
		b.add(5, "intubation", model.Action{
			Title:           "Prepare for intubation",
			Description:     "Assemble equipment, drugs, and the most experienced operator available",
			Rationale:       "Airway cannot be maintained with basic maneuvers",
			ExpectedOutcome: "Secured airway with confirmed tube position",
			Urgency:         model.UrgencyCritical,
			Timeframe:       "Within 5 minutes",
			Dosing:          dosingNote,
			Monitoring:      []string{"SpO2 throughout", "End-tidal CO2 after placement"},
			Prerequisites:   []string{"Preoxygenation", "Suction ready", "BVM ready as rescue"},
		})
	}

	b.add(6, "reassess", model.Action{
		Title:           "Reassess airway patency",
		Description:     "Confirm the airway remains patent before moving to breathing",
		Rationale:       "A positioned airway can re-obstruct at any time",
		ExpectedOutcome: "Patent airway confirmed",
		Urgency:         model.UrgencyRoutine,
		Timeframe:       "Continuous",
		Monitoring:      []string{"Air movement", "Obstruction sounds"},
	})

	return b.list()
}
