package escalation

import "github.com/jwalitptl/peds-protocol-api/internal/model"

// Fluid-refractory septic shock vasoactive ladder. Entered when cumulative
// fluids reach the inotrope threshold with poor perfusion, or immediately
// on overload signs. Epinephrine and norepinephrine are concurrent
// first-line options chosen by cold versus warm shock phenotype.
var septicShockLadder = []model.TherapyStep{
	{
		Line:              model.LineFirst,
		Drug:              "Epinephrine",
		Class:             "inotrope",
		Dose:              "0.05-0.3 mcg/kg/min",
		Route:             "IV/IO infusion",
		Frequency:         "Continuous, titrate every 5-10 minutes",
		MaxDose:           "1 mcg/kg/min",
		Dilution:          "0.6 mg/kg in 100 mL: 1 mL/h = 0.1 mcg/kg/min",
		Monitoring:        []string{"Continuous ECG", "Invasive or cycling BP", "Lactate", "Urine output"},
		Contraindications: []string{},
		SideEffects:       []string{"Tachyarrhythmia", "Hyperglycemia", "Tissue ischemia with extravasation"},
		EscalationTrigger: "Cold shock persisting at 0.3 mcg/kg/min",
	},
	{
		Line:              model.LineFirst,
		Drug:              "Norepinephrine",
		Class:             "vasopressor",
		Dose:              "0.05-0.3 mcg/kg/min",
		Route:             "IV/IO infusion",
		Frequency:         "Continuous, titrate every 5-10 minutes",
		MaxDose:           "1 mcg/kg/min",
		Dilution:          "0.6 mg/kg in 100 mL: 1 mL/h = 0.1 mcg/kg/min",
		Monitoring:        []string{"Continuous ECG", "Invasive or cycling BP", "Perfusion of extremities"},
		Contraindications: []string{},
		SideEffects:       []string{"Hypertension", "Reflex bradycardia", "Tissue ischemia with extravasation"},
		EscalationTrigger: "Warm shock persisting at 0.3 mcg/kg/min",
	},
	{
		Line:              model.LineSecond,
		Drug:              "Dopamine",
		Class:             "inotrope",
		Dose:              "5-10 mcg/kg/min",
		Route:             "IV/IO infusion, peripheral acceptable",
		Frequency:         "Continuous",
		MaxDose:           "20 mcg/kg/min",
		Dilution:          "6 mg/kg in 100 mL: 1 mL/h = 1 mcg/kg/min",
		Monitoring:        []string{"Continuous ECG", "Blood pressure", "Infusion site"},
		Contraindications: []string{},
		SideEffects:       []string{"Tachyarrhythmia", "Extravasation injury"},
		EscalationTrigger: "Alternative when titrated first-line agents unavailable; escalate if shock persists",
	},
	{
		Line:               model.LineThird,
		Drug:               "Hydrocortisone",
		Class:              "steroid",
		Dose:               "1-2 mg/kg",
		Route:              "IV bolus then infusion",
		Frequency:          "Every 6 hours or 50 mg/m2/day infusion",
		MaxDose:            "100 mg per dose",
		AdministrationTime: "Bolus over 2-3 minutes",
		Monitoring:         []string{"Blood glucose", "Blood pressure response"},
		Contraindications:  []string{},
		SideEffects:        []string{"Hyperglycemia"},
		EscalationTrigger:  "Catecholamine-resistant shock despite two vasoactive agents",
	},
	{
		Line:              model.LineFourth,
		Drug:              "Milrinone",
		Class:             "inodilator",
		Dose:              "0.25-0.75 mcg/kg/min",
		Route:             "IV infusion",
		Frequency:         "Continuous",
		MaxDose:           "0.75 mcg/kg/min",
		Monitoring:        []string{"Blood pressure (hypotension risk)", "Renal function"},
		Contraindications: []string{"Severe hypotension"},
		SideEffects:       []string{"Hypotension", "Arrhythmia"},
		EscalationTrigger: "Low cardiac output with adequate blood pressure refractory to epinephrine",
	},
	{
		Line:              model.LineFifth,
		Drug:              "Vasopressin",
		Class:             "vasopressor",
		Dose:              "0.0003-0.002 units/kg/min",
		Route:             "IV infusion, central access",
		Frequency:         "Continuous",
		MaxDose:           "0.002 units/kg/min",
		Monitoring:        []string{"Sodium", "Urine output", "Distal perfusion"},
		Contraindications: []string{},
		SideEffects:       []string{"Hyponatremia", "Digital ischemia"},
		EscalationTrigger: "Terminal line: refractory shock, activate ECMO referral",
	},
}
