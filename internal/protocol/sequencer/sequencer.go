package sequencer

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

var (
	// ErrInvalidPatient is returned for non-positive weight or negative age.
	ErrInvalidPatient = errors.New("invalid patient parameters")
	// ErrMissingFindings is returned when the snapshot lacks the findings
	// struct for its phase.
	ErrMissingFindings = errors.New("missing findings for phase")
	// ErrUnknownPhase is returned for an unrecognized phase value.
	ErrUnknownPhase = errors.New("unknown phase")
)

// Generate returns the fully ordered action list for one phase, computed
// fresh from the snapshot. Nothing is persisted; callers track completion
// by the deterministic action ids across regenerations.
func Generate(pa model.PhaseAssessment) ([]model.Action, error) {
	if pa.WeightKg <= 0 || pa.AgeYears < 0 {
		return nil, ErrInvalidPatient
	}

	switch pa.Phase {
	case model.PhaseAirway:
		if pa.Airway == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFindings, pa.Phase)
		}
		return airwayActions(pa), nil
	case model.PhaseBreathing:
		if pa.Breathing == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFindings, pa.Phase)
		}
		return breathingActions(pa), nil
	case model.PhaseCirculation:
		if pa.Circulation == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFindings, pa.Phase)
		}
		return circulationActions(pa), nil
	case model.PhaseDisability:
		if pa.Disability == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFindings, pa.Phase)
		}
		return disabilityActions(pa), nil
	case model.PhaseExposure:
		if pa.Exposure == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingFindings, pa.Phase)
		}
		return exposureActions(pa), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPhase, pa.Phase)
	}
}

// NextAction returns the first action whose id is not in the completed
// set, or nil when the phase is done. Stateless: the list is regenerated
// by the caller on every findings change.
func NextAction(actions []model.Action, completed map[string]bool) *model.Action {
	for i := range actions {
		if !completed[actions[i].ID] {
			return &actions[i]
		}
	}
	return nil
}

// builder assigns gapless ascending sequence numbers starting at 1 while
// keeping ids tied to the action's canonical slot, so an id survives the
// omission of earlier actions on regeneration.
type builder struct {
	phase   model.Phase
	actions []model.Action
}

func newBuilder(phase model.Phase) *builder {
	return &builder{phase: phase}
}

func (b *builder) add(slot int, name string, a model.Action) {
	a.ID = fmt.Sprintf("%s-%d-%s", b.phase, slot, name)
	a.Phase = b.phase
	a.Sequence = len(b.actions) + 1
	b.actions = append(b.actions, a)
}

func (b *builder) list() []model.Action {
	return b.actions
}
