package shock

import "github.com/jwalitptl/peds-protocol-api/internal/model"

// Physical exam steps of the shock differential, in presentation order.
// Order values are strictly increasing and unique; Validate enforces this.
// An abnormal finding may implicate several shock types at once, all with
// equal weight.
var assessmentSteps = []model.AssessmentStep{
	{
		Order:         1,
		Parameter:     "mental status",
		Method:        "AVPU scale, interaction with caregiver",
		NormalFinding: "Alert and interactive",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "lethargic",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockSeptic, model.ShockHypovolemic},
			},
			{
				Finding:        "unresponsive",
				Interpretation: model.InterpretationCritical,
				ShockTypes:     []model.ShockType{model.ShockSeptic, model.ShockHypovolemic, model.ShockCardiogenic},
			},
		},
		ClinicalTip: "Irritability that cannot be consoled is an early sign of poor cerebral perfusion",
	},
	{
		Order:         2,
		Parameter:     "heart rate",
		Method:        "Auscultation or monitor, compare against age norms",
		NormalFinding: "Within age-appropriate range",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "tachycardic",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockHypovolemic, model.ShockSeptic},
			},
			{
				Finding:        "bradycardic",
				Interpretation: model.InterpretationCritical,
				ShockTypes:     []model.ShockType{model.ShockCardiogenic},
			},
		},
		ClinicalTip: "Tachycardia is the earliest compensatory sign; bradycardia in shock is pre-arrest",
	},
	{
		Order:         3,
		Parameter:     "pulses",
		Method:        "Palpate central and peripheral pulses simultaneously",
		NormalFinding: "Central and peripheral pulses equal and strong",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "bounding",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockSeptic},
			},
			{
				Finding:        "weak or thready",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockHypovolemic, model.ShockCardiogenic},
			},
			{
				Finding:        "absent femoral",
				Interpretation: model.InterpretationCritical,
				ShockTypes:     []model.ShockType{model.ShockObstructive, model.ShockCardiogenic},
			},
		},
		ClinicalTip: "Bounding pulses with warm skin suggest the vasodilated phase of septic shock",
	},
	{
		Order:         4,
		Parameter:     "capillary refill",
		Method:        "Press sternum or nail bed for 5 seconds, count refill time",
		NormalFinding: "Under 2 seconds",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "prolonged over 3 seconds",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockHypovolemic, model.ShockCardiogenic},
			},
			{
				Finding:        "flash refill under 1 second",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockSeptic, model.ShockAnaphylactic},
			},
		},
		ClinicalTip: "Use the sternum in a cold room; peripheral CRT is unreliable when the child is cold",
	},
	{
		Order:         5,
		Parameter:     "skin temperature",
		Method:        "Run the back of the hand from trunk to extremities",
		NormalFinding: "Warm to the fingertips",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "warm",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockSeptic},
			},
			{
				Finding:        "cool or mottled",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockHypovolemic, model.ShockCardiogenic},
			},
		},
		ClinicalTip: "Note the line where cool skin begins; a rising line means worsening perfusion",
	},
	{
		Order:         6,
		Parameter:     "blood pressure",
		Method:        "Correct cuff size, compare against age-based hypotension threshold",
		NormalFinding: "Above 5th percentile for age",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "hypotension",
				Interpretation: model.InterpretationCritical,
				ShockTypes:     []model.ShockType{model.ShockHypovolemic, model.ShockSeptic},
			},
			{
				Finding:        "narrow pulse pressure",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockHypovolemic, model.ShockCardiogenic},
			},
			{
				Finding:        "wide pulse pressure",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockSeptic, model.ShockAnaphylactic},
			},
		},
		ClinicalTip: "Hypotension is a late and pre-terminal sign in children; do not wait for it",
	},
	{
		Order:         7,
		Parameter:     "respiratory pattern",
		Method:        "Observe effort, auscultate all fields",
		NormalFinding: "Comfortable effort, clear fields",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "increased work of breathing",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockCardiogenic, model.ShockObstructive},
			},
			{
				Finding:        "stridor or wheeze with rash",
				Interpretation: model.InterpretationCritical,
				ShockTypes:     []model.ShockType{model.ShockAnaphylactic},
			},
		},
		ClinicalTip: "Quiet tachypnea without distress suggests metabolic acidosis compensation",
	},
	{
		Order:         8,
		Parameter:     "preload signs",
		Method:        "Palpate liver edge, inspect neck veins, auscultate bases",
		NormalFinding: "Liver at costal margin, flat neck veins, clear bases",
		AbnormalFindings: []model.AbnormalFinding{
			{
				Finding:        "hepatomegaly",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockCardiogenic, model.ShockObstructive},
			},
			{
				Finding:        "distended neck veins",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockObstructive, model.ShockCardiogenic},
			},
			{
				Finding:        "basal crackles",
				Interpretation: model.InterpretationAbnormal,
				ShockTypes:     []model.ShockType{model.ShockCardiogenic},
			},
		},
		ClinicalTip: "A liver edge more than 2 cm below the costal margin argues against giving further fluid",
	},
}

// History questions asked before the physical exam. Each carries exactly
// one shock type; an affirmative answer weighs more than a single exam
// finding.
var historyQuestions = []model.HistoryQuestion{
	{
		ID:        "fluid_loss",
		Question:  "Vomiting, diarrhea, burns, or visible blood loss?",
		ShockType: model.ShockHypovolemic,
	},
	{
		ID:        "fever",
		Question:  "Fever or a known focus of infection in the last 72 hours?",
		ShockType: model.ShockSeptic,
	},
	{
		ID:        "allergen",
		Question:  "Exposure to a known allergen, new food, or drug?",
		ShockType: model.ShockAnaphylactic,
	},
	{
		ID:        "cardiac",
		Question:  "Known congenital heart disease or recent viral illness with fatigue?",
		ShockType: model.ShockCardiogenic,
	},
	{
		ID:        "chest_trauma",
		Question:  "Chest trauma or sudden deterioration on positive-pressure ventilation?",
		ShockType: model.ShockObstructive,
	},
}

// Steps returns the exam steps in presentation order.
func Steps() []model.AssessmentStep {
	out := make([]model.AssessmentStep, len(assessmentSteps))
	copy(out, assessmentSteps)
	return out
}

// HistoryQuestions returns the history items asked before the exam.
func HistoryQuestions() []model.HistoryQuestion {
	out := make([]model.HistoryQuestion, len(historyQuestions))
	copy(out, historyQuestions)
	return out
}
