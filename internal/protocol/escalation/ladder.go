package escalation

import (
	"errors"
	"fmt"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

var (
	// ErrUnknownCondition is returned for a ladder lookup on a condition
	// that has no defined therapy ladder.
	ErrUnknownCondition = errors.New("unknown condition")
	// ErrTerminalLadder is returned when escalating past the last defined
	// line. It is a normal terminal condition, not a failure; the caller
	// handles it by triggering referral.
	ErrTerminalLadder = errors.New("escalation ladder exhausted")
	// ErrUnknownLine is returned for an unrecognized therapy line value.
	ErrUnknownLine = errors.New("unknown therapy line")
)

var ladders = map[model.Condition][]model.TherapyStep{
	model.ConditionAsthma:      asthmaLadder,
	model.ConditionSepticShock: septicShockLadder,
	model.ConditionPPH:         hemorrhageLadder,
	model.ConditionEclampsia:   eclampsiaLadder,
}

// Conditions returns the conditions that have a defined ladder.
func Conditions() []model.Condition {
	return []model.Condition{
		model.ConditionAsthma,
		model.ConditionSepticShock,
		model.ConditionPPH,
		model.ConditionEclampsia,
	}
}

// Ladder returns the full ordered therapy ladder for a condition.
func Ladder(condition model.Condition) ([]model.TherapyStep, error) {
	steps, ok := ladders[condition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, condition)
	}
	out := make([]model.TherapyStep, len(steps))
	copy(out, steps)
	return out, nil
}

// StepsAtLine returns every step at the given line. Multiple steps at one
// line are concurrent per-class options; the provider picks one per class.
func StepsAtLine(condition model.Condition, line model.TherapyLine) ([]model.TherapyStep, error) {
	steps, err := Ladder(condition)
	if err != nil {
		return nil, err
	}
	var out []model.TherapyStep
	for _, s := range steps {
		if s.Line == line {
			out = append(out, s)
		}
	}
	return out, nil
}

// NextStep returns the steps at the successor of the current line.
// Escalation is a strictly one-directional walk; ErrTerminalLadder marks
// the end of the ladder.
func NextStep(current model.TherapyLine, condition model.Condition) ([]model.TherapyStep, error) {
	steps, ok := ladders[condition]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCondition, condition)
	}
	if current.Ordinal() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLine, current)
	}

	next, ok := current.Next()
	if !ok {
		return nil, ErrTerminalLadder
	}

	var out []model.TherapyStep
	for _, s := range steps {
		if s.Line == next {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		// Ladder ends before the fifth line for this condition.
		return nil, ErrTerminalLadder
	}
	return out, nil
}

// Validate checks that every ladder's line values are monotonic in list
// order. Ladder tables are static; this guards against regressions when
// the tables are edited.
func Validate() error {
	for condition, steps := range ladders {
		last := -1
		for i, s := range steps {
			ord := s.Line.Ordinal()
			if ord < 0 {
				return fmt.Errorf("ladder %q step %d: %w: %q", condition, i, ErrUnknownLine, s.Line)
			}
			if ord < last {
				return fmt.Errorf("ladder %q step %d (%s): line %q regresses", condition, i, s.Drug, s.Line)
			}
			last = ord
		}
	}
	return nil
}
