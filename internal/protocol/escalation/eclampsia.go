package escalation

import "github.com/jwalitptl/peds-protocol-api/internal/model"

// Eclampsia seizure-control ladder.
var eclampsiaLadder = []model.TherapyStep{
	{
		Line:               model.LineFirst,
		Drug:               "Magnesium sulfate",
		Dose:               "4 g loading",
		Route:              "IV infusion",
		Frequency:          "Single loading dose",
		MaxDose:            "4 g loading",
		AdministrationTime: "Over 20 minutes",
		Monitoring:         []string{"Respiratory rate", "Deep tendon reflexes", "Urine output"},
		Contraindications:  []string{"Myasthenia gravis", "Heart block"},
		SideEffects:        []string{"Flushing", "Respiratory depression at toxic levels"},
		EscalationTrigger:  "Seizure recurs during or after loading dose",
	},
	{
		Line:                 model.LineSecond,
		Drug:                 "Magnesium sulfate",
		Dose:                 "1 g/h maintenance",
		Route:                "IV infusion",
		Frequency:            "Continuous for 24 h after last seizure",
		MaxDose:              "2 g/h",
		Monitoring:           []string{"Respiratory rate >= 12/min", "Patellar reflexes present", "Urine output >= 25 mL/h"},
		Contraindications:    []string{"Absent reflexes (hold infusion)"},
		SideEffects:          []string{"Respiratory depression", "Cardiac conduction delay"},
		EscalationTrigger:    "Recurrent seizures on maintenance infusion",
		DeescalationCriteria: "24 hours seizure-free with stable blood pressure",
	},
	{
		Line:               model.LineThird,
		Drug:               "Magnesium sulfate",
		Dose:               "2 g rebolus",
		Route:              "IV",
		Frequency:          "Single rebolus",
		MaxDose:            "2 g",
		AdministrationTime: "Over 5-10 minutes",
		Monitoring:         []string{"Respiratory rate", "Reflexes", "Magnesium level if available"},
		Contraindications:  []string{"Signs of magnesium toxicity"},
		SideEffects:        []string{"Respiratory depression"},
		EscalationTrigger:  "Seizure persists beyond rebolus",
	},
	{
		Line:              model.LineFourth,
		Drug:              "Diazepam",
		Dose:              "10 mg",
		Route:             "Slow IV",
		Frequency:         "May repeat once",
		MaxDose:           "20 mg",
		Monitoring:        []string{"Airway and breathing", "Sedation depth"},
		Contraindications: []string{},
		SideEffects:       []string{"Respiratory depression", "Sedation"},
		EscalationTrigger: "Status epilepticus despite benzodiazepine",
	},
	{
		Line:              model.LineFifth,
		Drug:              "Labetalol",
		Class:             "antihypertensive",
		Dose:              "20 mg, doubling every 10 minutes",
		Route:             "IV",
		Frequency:         "Every 10 minutes to BP target",
		MaxDose:           "300 mg cumulative",
		Monitoring:        []string{"Blood pressure every 5 minutes", "Fetal monitoring if antepartum"},
		Contraindications: []string{"Asthma", "Bradycardia"},
		SideEffects:       []string{"Bradycardia", "Hypotension"},
		EscalationTrigger: "Terminal line: arrange urgent delivery and critical-care referral",
	},
}
