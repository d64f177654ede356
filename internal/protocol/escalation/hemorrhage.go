package escalation

import "github.com/jwalitptl/peds-protocol-api/internal/model"

// Postpartum hemorrhage uterotonic ladder. Tranexamic acid carries an
// administration window; the countdown itself is a UI concern derived
// from the wall-clock start time.
var hemorrhageLadder = []model.TherapyStep{
	{
		Line:              model.LineFirst,
		Drug:              "Oxytocin",
		Class:             "uterotonic",
		Dose:              "10 IU",
		Route:             "IM or slow IV",
		Frequency:         "Single dose, then 20-40 IU in 1 L NS infusion",
		MaxDose:           "40 IU total infusion",
		Monitoring:        []string{"Uterine tone", "Vaginal bleeding", "Blood pressure"},
		Contraindications: []string{},
		SideEffects:       []string{"Hypotension with rapid IV push", "Nausea"},
		EscalationTrigger: "Uterus remains atonic or bleeding continues after 15 minutes",
	},
	{
		Line:              model.LineSecond,
		Drug:              "Ergometrine",
		Class:             "uterotonic",
		Dose:              "0.2 mg",
		Route:             "IM",
		Frequency:         "May repeat after 15 minutes",
		MaxDose:           "1 mg in 24 h",
		Monitoring:        []string{"Blood pressure", "Uterine tone"},
		Contraindications: []string{"Hypertension", "Preeclampsia or eclampsia", "Cardiac disease"},
		SideEffects:       []string{"Hypertension", "Vomiting"},
		EscalationTrigger: "Bleeding continues 15 minutes after second-line dose",
	},
	{
		Line:              model.LineThird,
		Drug:              "Misoprostol",
		Class:             "uterotonic",
		Dose:              "800 mcg",
		Route:             "Sublingual",
		Frequency:         "Single dose",
		MaxDose:           "800 mcg",
		Monitoring:        []string{"Temperature (pyrexia common)", "Bleeding"},
		Contraindications: []string{},
		SideEffects:       []string{"Shivering", "Pyrexia", "Diarrhea"},
		EscalationTrigger: "Ongoing hemorrhage despite three uterotonic classes",
	},
	{
		Line:               model.LineFourth,
		Drug:               "Tranexamic acid",
		Class:              "antifibrinolytic",
		Dose:               "1 g (or 15 mg/kg)",
		Route:              "IV",
		Frequency:          "May repeat once after 30 minutes",
		MaxDose:            "2 g",
		AdministrationTime: "Over 10 minutes, start within 20 minutes of escalation decision",
		Monitoring:         []string{"Bleeding", "Signs of thrombosis"},
		Contraindications:  []string{"Active thromboembolic disease"},
		SideEffects:        []string{"Nausea", "Dizziness"},
		EscalationTrigger:  "Hemorrhage continues despite antifibrinolytic",
	},
	{
		Line:              model.LineFifth,
		Drug:              "Carboprost",
		Class:             "uterotonic",
		Dose:              "0.25 mg",
		Route:             "IM",
		Frequency:         "Every 15 minutes",
		MaxDose:           "2 mg (8 doses)",
		Monitoring:        []string{"Bronchospasm", "Bleeding", "Prepare surgical escalation"},
		Contraindications: []string{"Asthma"},
		SideEffects:       []string{"Bronchospasm", "Vomiting", "Diarrhea"},
		EscalationTrigger: "Terminal line: activate surgical management and massive transfusion referral",
	},
}
