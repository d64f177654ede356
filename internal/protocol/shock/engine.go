package shock

import (
	"fmt"
	"sort"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

// Scoring weights. History answers outweigh single exam findings; normal
// findings contribute nothing. Scores only ever accumulate, the engine
// never subtracts.
const (
	physicalWeight = 2
	historyWeight  = 3
)

// History question whose affirmative answer triggers the immediate alert
// path in addition to scoring.
const allergenQuestionID = "allergen"

// Score recomputes the full score vector over all six shock types from
// the caller-owned snapshot. The result is sorted descending by score;
// ties keep the canonical enumeration order. Idempotent: identical state
// yields identical output.
func Score(state model.AssessmentState) []model.ShockScore {
	types := model.ShockTypes()
	index := make(map[model.ShockType]int, len(types))
	scores := make([]model.ShockScore, len(types))
	for i, t := range types {
		index[t] = i
		scores[i] = model.ShockScore{Type: t, Evidence: []string{}}
	}

	for _, ans := range state.Answers {
		if !ans.Affirmative {
			continue
		}
		q, ok := questionByID(ans.QuestionID)
		if !ok {
			continue
		}
		i := index[q.ShockType]
		scores[i].Score += historyWeight
		scores[i].Evidence = append(scores[i].Evidence, fmt.Sprintf("History: %s", q.Question))
	}

	for _, sel := range state.Selections {
		if sel.IsNormal {
			continue
		}
		step, finding, ok := findingForSelection(sel)
		if !ok {
			continue
		}
		for _, t := range finding.ShockTypes {
			i := index[t]
			scores[i].Score += physicalWeight
			scores[i].Evidence = append(scores[i].Evidence, fmt.Sprintf("%s: %s", step.Parameter, finding.Finding))
		}
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Score > scores[b].Score
	})
	return scores
}

// Complete identifies the shock type from the current snapshot. A zero
// top score means insufficient information, which is itself a valid,
// actionable answer: undifferentiated shock.
func Complete(state model.AssessmentState) model.ShockIdentification {
	scores := Score(state)
	identified := scores[0].Type
	if scores[0].Score == 0 {
		identified = model.ShockUndifferentiated
	}
	return model.ShockIdentification{Type: identified, Scores: scores}
}

// DerivedFinding materializes the chart view of one selection: the
// observed parameter with its interpretation and clinical significance
// resolved from the protocol tables.
func DerivedFinding(sel model.StepSelection) (model.AssessmentFinding, bool) {
	step, ok := stepByOrder(sel.StepOrder)
	if !ok {
		return model.AssessmentFinding{}, false
	}
	if sel.IsNormal {
		return model.AssessmentFinding{
			Parameter:      step.Parameter,
			Value:          step.NormalFinding,
			Interpretation: model.InterpretationNormal,
		}, true
	}
	for _, f := range step.AbnormalFindings {
		if f.Finding == sel.Finding {
			return model.AssessmentFinding{
				Parameter:            step.Parameter,
				Value:                f.Finding,
				Interpretation:       f.Interpretation,
				ClinicalSignificance: step.ClinicalTip,
			}, true
		}
	}
	return model.AssessmentFinding{}, false
}

// IsCriticalSelection reports whether a selection should fire an
// immediate alert, independent of the scoring pass that follows.
func IsCriticalSelection(sel model.StepSelection) bool {
	if sel.IsNormal {
		return false
	}
	finding, ok := DerivedFinding(sel)
	return ok && finding.IsCritical()
}

// IsCriticalAnswer reports whether a history answer should fire an
// immediate alert. Only the affirmative allergen answer qualifies.
func IsCriticalAnswer(ans model.HistoryAnswer) bool {
	return ans.Affirmative && ans.QuestionID == allergenQuestionID
}

// Validate checks the static protocol tables: exam step order must be
// strictly increasing and unique, every tag must name a known shock type,
// and every history question must carry exactly one known type.
func Validate() error {
	seen := make(map[int]bool, len(assessmentSteps))
	lastOrder := 0
	known := make(map[model.ShockType]bool)
	for _, t := range model.ShockTypes() {
		known[t] = true
	}

	for _, step := range assessmentSteps {
		if step.Order <= lastOrder {
			return fmt.Errorf("step %q: order %d not strictly increasing", step.Parameter, step.Order)
		}
		if seen[step.Order] {
			return fmt.Errorf("step %q: duplicate order %d", step.Parameter, step.Order)
		}
		seen[step.Order] = true
		lastOrder = step.Order

		for _, f := range step.AbnormalFindings {
			for _, t := range f.ShockTypes {
				if !known[t] {
					return fmt.Errorf("step %q finding %q: unknown shock type %q", step.Parameter, f.Finding, t)
				}
			}
		}
	}

	ids := make(map[string]bool, len(historyQuestions))
	for _, q := range historyQuestions {
		if ids[q.ID] {
			return fmt.Errorf("history question %q: duplicate id", q.ID)
		}
		ids[q.ID] = true
		if !known[q.ShockType] {
			return fmt.Errorf("history question %q: unknown shock type %q", q.ID, q.ShockType)
		}
	}
	return nil
}

func questionByID(id string) (model.HistoryQuestion, bool) {
	for _, q := range historyQuestions {
		if q.ID == id {
			return q, true
		}
	}
	return model.HistoryQuestion{}, false
}

func stepByOrder(order int) (model.AssessmentStep, bool) {
	for _, s := range assessmentSteps {
		if s.Order == order {
			return s, true
		}
	}
	return model.AssessmentStep{}, false
}

func findingForSelection(sel model.StepSelection) (model.AssessmentStep, model.AbnormalFinding, bool) {
	step, ok := stepByOrder(sel.StepOrder)
	if !ok {
		return model.AssessmentStep{}, model.AbnormalFinding{}, false
	}
	for _, f := range step.AbnormalFindings {
		if f.Finding == sel.Finding {
			return step, f, true
		}
	}
	return model.AssessmentStep{}, model.AbnormalFinding{}, false
}

// FindingFor resolves a selection against the protocol tables, returning
// the step and the matched abnormal finding. Used by the service layer to
// derive interpretations for recorded findings.
func FindingFor(sel model.StepSelection) (model.AssessmentStep, model.AbnormalFinding, bool) {
	return findingForSelection(sel)
}

// QuestionByID resolves a history question id against the protocol tables.
func QuestionByID(id string) (model.HistoryQuestion, bool) {
	return questionByID(id)
}
