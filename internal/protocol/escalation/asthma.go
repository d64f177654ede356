package escalation

import "github.com/jwalitptl/peds-protocol-api/internal/model"

// Acute severe asthma ladder. First line carries the bronchodilator pair
// plus four alternative steroid formulations; the provider selects one
// option per class, not all of them.
var asthmaLadder = []model.TherapyStep{
	{
		Line:              model.LineFirst,
		Drug:              "Salbutamol",
		Class:             "bronchodilator",
		Dose:              "0.15 mg/kg (minimum 2.5 mg)",
		Route:             "Nebulized with oxygen",
		Frequency:         "Every 20 minutes x3, then reassess",
		MaxDose:           "5 mg per dose",
		Monitoring:        []string{"SpO2", "Heart rate", "Work of breathing", "Air entry"},
		Contraindications: []string{},
		SideEffects:       []string{"Tachycardia", "Tremor", "Hypokalemia"},
		EscalationTrigger: "No improvement in work of breathing or SpO2 after 3 back-to-back nebulizations",
	},
	{
		Line:              model.LineFirst,
		Drug:              "Ipratropium bromide",
		Class:             "bronchodilator",
		Dose:              "250 mcg (<20 kg) or 500 mcg (>=20 kg)",
		Route:             "Nebulized, mixed with salbutamol",
		Frequency:         "Every 20 minutes x3 doses only",
		MaxDose:           "500 mcg per dose",
		Monitoring:        []string{"Heart rate", "Dry mouth"},
		Contraindications: []string{"Soy or peanut allergy (MDI formulation)"},
		SideEffects:       []string{"Dry mouth", "Blurred vision"},
		EscalationTrigger: "Given with first-line salbutamol; escalate together",
	},
	{
		Line:              model.LineFirst,
		Drug:              "Prednisolone",
		Class:             "steroid",
		Dose:              "1-2 mg/kg",
		Route:             "Oral",
		Frequency:         "Once daily for 3-5 days",
		MaxDose:           "60 mg",
		Monitoring:        []string{"Tolerating oral intake"},
		Contraindications: []string{"Unable to swallow", "Vomiting"},
		SideEffects:       []string{"Vomiting", "Behavioral change"},
		EscalationTrigger: "Use IV alternative if vomiting or too distressed to swallow",
	},
	{
		Line:              model.LineFirst,
		Drug:              "Methylprednisolone",
		Class:             "steroid",
		Dose:              "1-2 mg/kg",
		Route:             "IV",
		Frequency:         "Every 6 hours",
		MaxDose:           "60 mg/day",
		Monitoring:        []string{"Blood glucose"},
		Contraindications: []string{},
		SideEffects:       []string{"Hyperglycemia", "Hypertension"},
		EscalationTrigger: "IV alternative when oral route unavailable",
	},
	{
		Line:              model.LineFirst,
		Drug:              "Dexamethasone",
		Class:             "steroid",
		Dose:              "0.6 mg/kg",
		Route:             "Oral or IV",
		Frequency:         "Single dose, may repeat at 24 h",
		MaxDose:           "16 mg",
		Monitoring:        []string{"Blood glucose"},
		Contraindications: []string{},
		SideEffects:       []string{"Hyperglycemia"},
		EscalationTrigger: "Single-dose alternative to prednisolone",
	},
	{
		Line:              model.LineFirst,
		Drug:              "Hydrocortisone",
		Class:             "steroid",
		Dose:              "4 mg/kg",
		Route:             "IV",
		Frequency:         "Every 6 hours",
		MaxDose:           "100 mg per dose",
		Monitoring:        []string{"Blood glucose", "Blood pressure"},
		Contraindications: []string{},
		SideEffects:       []string{"Hyperglycemia", "Fluid retention"},
		EscalationTrigger: "IV alternative when oral route unavailable",
	},
	{
		Line:               model.LineSecond,
		Drug:               "Magnesium sulfate",
		Dose:               "25-50 mg/kg",
		Route:              "IV infusion",
		Frequency:          "Single dose",
		MaxDose:            "2 g",
		AdministrationTime: "Over 20 minutes",
		Monitoring:         []string{"Blood pressure", "Deep tendon reflexes", "Respiratory rate"},
		Contraindications:  []string{"Renal failure", "Heart block"},
		SideEffects:        []string{"Hypotension", "Flushing", "Muscle weakness"},
		EscalationTrigger:  "Persistent severe distress 20-30 minutes after infusion completes",
	},
	{
		Line:                 model.LineThird,
		Drug:                 "Salbutamol",
		Class:                "bronchodilator",
		Dose:                 "0.5 mg/kg/h continuous",
		Route:                "Continuous nebulization",
		Frequency:            "Continuous, reassess hourly",
		MaxDose:              "15 mg/h",
		Monitoring:           []string{"Continuous ECG", "Serum potassium", "Lactate"},
		Contraindications:    []string{},
		SideEffects:          []string{"Tachyarrhythmia", "Hypokalemia", "Lactic acidosis"},
		EscalationTrigger:    "Deterioration or no response after 1 hour of continuous nebulization",
		DeescalationCriteria: "Sustained improvement in air entry and SpO2 >= 94% on decreasing oxygen",
	},
	{
		Line:               model.LineFourth,
		Drug:               "Aminophylline",
		Dose:               "5-10 mg/kg loading, then 1 mg/kg/h",
		Route:              "IV infusion",
		Frequency:          "Loading dose then continuous",
		MaxDose:            "500 mg loading",
		AdministrationTime: "Loading dose over 60 minutes",
		Monitoring:         []string{"Continuous ECG", "Serum theophylline levels", "Seizure watch"},
		Contraindications:  []string{"Recent theophylline use without level"},
		SideEffects:        []string{"Arrhythmia", "Vomiting", "Seizures"},
		EscalationTrigger:  "Impending respiratory failure despite infusion",
	},
	{
		Line:              model.LineFifth,
		Drug:              "Epinephrine",
		Dose:              "0.01 mg/kg of 1:1000",
		Route:             "IM, lateral thigh",
		Frequency:         "May repeat every 5-15 minutes",
		MaxDose:           "0.5 mg per dose",
		Monitoring:        []string{"Continuous ECG", "Blood pressure", "Prepare for intubation"},
		Contraindications: []string{},
		SideEffects:       []string{"Tachycardia", "Hypertension", "Anxiety"},
		EscalationTrigger: "Terminal line: arrange PICU transfer and prepare for mechanical ventilation",
	},
}
