package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplaceFindingReplacesByParameter(t *testing.T) {
	findings := []AssessmentFinding{
		{Parameter: "heart_rate", Value: 150, Interpretation: InterpretationAbnormal},
		{Parameter: "crt", Value: 4, Interpretation: InterpretationAbnormal},
	}

	out := ReplaceFinding(findings, AssessmentFinding{
		Parameter: "heart_rate", Value: 120, Interpretation: InterpretationNormal,
	})

	assert.Len(t, out, 2)
	assert.Equal(t, "heart_rate", out[0].Parameter)
	assert.Equal(t, 120, out[0].Value)
	assert.Equal(t, InterpretationNormal, out[0].Interpretation)

	// Original slice untouched.
	assert.Equal(t, 150, findings[0].Value)
}

func TestReplaceFindingAppendsNewParameter(t *testing.T) {
	out := ReplaceFinding(nil, AssessmentFinding{Parameter: "spo2", Value: 91})
	assert.Len(t, out, 1)
}

func TestFindingIsCritical(t *testing.T) {
	assert.True(t, AssessmentFinding{Interpretation: InterpretationCritical}.IsCritical())
	assert.True(t, AssessmentFinding{
		Interpretation:       InterpretationAbnormal,
		ClinicalSignificance: "CRITICAL: pre-arrest sign",
	}.IsCritical())
	assert.True(t, AssessmentFinding{
		Interpretation:       InterpretationAbnormal,
		ClinicalSignificance: "Needs IMMEDIATE intervention",
	}.IsCritical())
	assert.False(t, AssessmentFinding{
		Interpretation:       InterpretationAbnormal,
		ClinicalSignificance: "monitor closely",
	}.IsCritical())
}

func TestTherapyLineOrdinalAndNext(t *testing.T) {
	assert.Equal(t, 0, LineFirst.Ordinal())
	assert.Equal(t, 4, LineFifth.Ordinal())
	assert.Equal(t, -1, TherapyLine("sixth").Ordinal())

	next, ok := LineFirst.Next()
	assert.True(t, ok)
	assert.Equal(t, LineSecond, next)

	_, ok = LineFifth.Next()
	assert.False(t, ok)

	_, ok = TherapyLine("bogus").Next()
	assert.False(t, ok)
}
