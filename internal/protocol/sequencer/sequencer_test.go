package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/peds-protocol-api/internal/model"
)

func breathingSnapshot(f model.BreathingFindings) model.PhaseAssessment {
	return model.PhaseAssessment{
		Phase:     model.PhaseBreathing,
		WeightKg:  20,
		AgeYears:  5,
		Breathing: &f,
	}
}

func TestBreathingOxygenScenario(t *testing.T) {
	// oxygenApplied=false, spO2=90: exactly one oxygen action, critical,
	// first in the list with sequence 1.
	actions, err := Generate(breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: true,
		OxygenApplied:     false,
		SpO2:              90,
	}))
	require.NoError(t, err)
	require.NotEmpty(t, actions)

	var oxygen []model.Action
	for _, a := range actions {
		if a.ID == "breathing-1-oxygen" {
			oxygen = append(oxygen, a)
		}
	}
	require.Len(t, oxygen, 1)
	assert.Equal(t, model.UrgencyCritical, oxygen[0].Urgency)
	assert.Equal(t, 1, oxygen[0].Sequence)
	assert.Equal(t, oxygen[0], actions[0])
}

func TestBreathingOxygenOmittedWhenApplied(t *testing.T) {
	actions, err := Generate(breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: true,
		OxygenApplied:     true,
		SpO2:              90,
	}))
	require.NoError(t, err)

	for _, a := range actions {
		assert.NotEqual(t, "breathing-1-oxygen", a.ID)
	}
}

func TestSequenceGaplessAscending(t *testing.T) {
	for _, pa := range []model.PhaseAssessment{
		{Phase: model.PhaseAirway, WeightKg: 12, AgeYears: 2, Airway: &model.AirwayFindings{
			Patent: false, Obstructed: true, SecretionsPresent: true, StridorPresent: true,
		}},
		{Phase: model.PhaseBreathing, WeightKg: 20, AgeYears: 5, Breathing: &model.BreathingFindings{
			BreathingAdequate: false, SpO2: 85, WheezePresent: true,
		}},
		{Phase: model.PhaseCirculation, WeightKg: 15, AgeYears: 3, Circulation: &model.CirculationFindings{
			ActiveBleeding: true, SignsOfShock: true, CapillaryRefill: 4, PulsesWeak: true,
		}},
		{Phase: model.PhaseDisability, WeightKg: 18, AgeYears: 4, Disability: &model.DisabilityFindings{
			SeizureActive: true, GlucoseKnown: true, GlucoseMgDL: 40, AVPU: "P",
		}},
		{Phase: model.PhaseExposure, WeightKg: 25, AgeYears: 7, Exposure: &model.ExposureFindings{
			TemperatureC: 39.2, RashPresent: true, TraumaSuspected: true,
		}},
	} {
		actions, err := Generate(pa)
		require.NoError(t, err, pa.Phase)
		require.NotEmpty(t, actions, pa.Phase)
		for i, a := range actions {
			assert.Equal(t, i+1, a.Sequence, "%s action %s", pa.Phase, a.ID)
			assert.Equal(t, pa.Phase, a.Phase, a.ID)
			assert.NotEmpty(t, a.ID, pa.Phase)
			assert.NotEmpty(t, a.Title, a.ID)
		}
	}
}

func TestActionIDsDeterministic(t *testing.T) {
	pa := breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: false,
		OxygenApplied:     false,
		SpO2:              86,
		WheezePresent:     true,
	})

	first, err := Generate(pa)
	require.NoError(t, err)
	second, err := Generate(pa)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestActionIDsStableAcrossOmissions(t *testing.T) {
	// When oxygen is no longer needed, the BVM action keeps its id even
	// though its sequence moves up.
	withOxygen, err := Generate(breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: false,
		OxygenApplied:     false,
		SpO2:              86,
	}))
	require.NoError(t, err)

	withoutOxygen, err := Generate(breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: false,
		OxygenApplied:     true,
		SpO2:              86,
	}))
	require.NoError(t, err)

	findByID := func(actions []model.Action, id string) *model.Action {
		for i := range actions {
			if actions[i].ID == id {
				return &actions[i]
			}
		}
		return nil
	}

	before := findByID(withOxygen, "breathing-2-bvm")
	after := findByID(withoutOxygen, "breathing-2-bvm")
	require.NotNil(t, before)
	require.NotNil(t, after)
	assert.Equal(t, 2, before.Sequence)
	assert.Equal(t, 1, after.Sequence)
}

func TestNextActionSkipsCompleted(t *testing.T) {
	actions, err := Generate(breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: false,
		OxygenApplied:     false,
		SpO2:              86,
	}))
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(actions), 2)

	next := NextAction(actions, nil)
	require.NotNil(t, next)
	assert.Equal(t, actions[0].ID, next.ID)

	next = NextAction(actions, map[string]bool{actions[0].ID: true})
	require.NotNil(t, next)
	assert.Equal(t, actions[1].ID, next.ID)

	completed := make(map[string]bool, len(actions))
	for _, a := range actions {
		completed[a.ID] = true
	}
	assert.Nil(t, NextAction(actions, completed))
}

func TestGenerateInvalidPatient(t *testing.T) {
	_, err := Generate(model.PhaseAssessment{
		Phase:     model.PhaseBreathing,
		WeightKg:  0,
		Breathing: &model.BreathingFindings{},
	})
	assert.ErrorIs(t, err, ErrInvalidPatient)
}

func TestGenerateMissingFindings(t *testing.T) {
	_, err := Generate(model.PhaseAssessment{
		Phase:    model.PhaseBreathing,
		WeightKg: 20,
	})
	assert.ErrorIs(t, err, ErrMissingFindings)
}

func TestGenerateUnknownPhase(t *testing.T) {
	_, err := Generate(model.PhaseAssessment{
		Phase:    model.Phase("triage"),
		WeightKg: 20,
	})
	assert.ErrorIs(t, err, ErrUnknownPhase)
}

func TestBVMDosingUsesWeight(t *testing.T) {
	actions, err := Generate(breathingSnapshot(model.BreathingFindings{
		BreathingAdequate: false,
		OxygenApplied:     true,
		SpO2:              96,
	}))
	require.NoError(t, err)

	var bvm *model.Action
	for i := range actions {
		if actions[i].ID == "breathing-2-bvm" {
			bvm = &actions[i]
		}
	}
	require.NotNil(t, bvm)
	assert.Contains(t, bvm.Dosing, "120-160 mL")
}
