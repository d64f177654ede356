package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestSession(t *testing.T, weightKg float64) string {
	t.Helper()
	resp := makeRequest("POST", "/sessions", map[string]interface{}{
		"patient_ref": fmt.Sprintf("patient-%s", t.Name()),
		"age_years":   4.0,
		"weight_kg":   weightKg,
	})
	require.True(t, resp.IsSuccess(), resp.Message)
	id := resp.GetString("id")
	require.NotEmpty(t, id)
	return id
}

func TestSessionFlow(t *testing.T) {
	sessionID := createTestSession(t, 20)

	// Get session
	getResp := makeRequest("GET", fmt.Sprintf("/sessions/%s", sessionID), nil)
	assert.True(t, getResp.IsSuccess())
	assert.Equal(t, "active", getResp.Data["status"])
	assert.Equal(t, 20.0, getResp.Data["weight_kg"])

	// Record a physical finding pointing at septic shock
	selResp := makeRequest("POST", fmt.Sprintf("/sessions/%s/selections", sessionID), map[string]interface{}{
		"step_order": 3,
		"finding":    "bounding",
	})
	assert.True(t, selResp.IsSuccess(), selResp.Message)
	assert.NotEmpty(t, selResp.Data["scores"])

	// Affirmative fever history weighs more than the finding
	histResp := makeRequest("POST", fmt.Sprintf("/sessions/%s/history", sessionID), map[string]interface{}{
		"question_id": "fever",
		"affirmative": true,
	})
	assert.True(t, histResp.IsSuccess(), histResp.Message)

	// Scores endpoint reflects both inputs
	scoresResp := makeRequest("GET", fmt.Sprintf("/sessions/%s/scores", sessionID), nil)
	assert.True(t, scoresResp.IsSuccess())
	scores, ok := scoresResp.Data["scores"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, scores)
	top := scores[0].(map[string]interface{})
	assert.Equal(t, "septic", top["type"])
	assert.Equal(t, 5.0, top["score"])

	// Complete identifies septic shock
	completeResp := makeRequest("POST", fmt.Sprintf("/sessions/%s/complete", sessionID), nil)
	assert.True(t, completeResp.IsSuccess(), completeResp.Message)
	assert.Equal(t, "septic", completeResp.Data["type"])

	// Completed sessions reject further findings
	rejected := makeRequest("POST", fmt.Sprintf("/sessions/%s/selections", sessionID), map[string]interface{}{
		"step_order": 2,
		"finding":    "hypotension",
	})
	assert.False(t, rejected.IsSuccess())

	// Completing twice conflicts
	again := makeRequest("POST", fmt.Sprintf("/sessions/%s/complete", sessionID), nil)
	assert.False(t, again.IsSuccess())
	assert.Equal(t, http.StatusConflict, again.StatusCode)
}

func TestSessionValidation(t *testing.T) {
	// Weight outside the supported range
	resp := makeRequest("POST", "/sessions", map[string]interface{}{
		"patient_ref": "patient-validation",
		"age_years":   4.0,
		"weight_kg":   500.0,
	})
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Missing patient reference fails binding
	resp = makeRequest("POST", "/sessions", map[string]interface{}{
		"age_years": 4.0,
		"weight_kg": 20.0,
	})
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionNotFound(t *testing.T) {
	resp := makeRequest("GET", "/sessions/00000000-0000-0000-0000-000000000001", nil)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = makeRequest("GET", "/sessions/not-a-uuid", nil)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionUnknownFinding(t *testing.T) {
	sessionID := createTestSession(t, 15)

	resp := makeRequest("POST", fmt.Sprintf("/sessions/%s/selections", sessionID), map[string]interface{}{
		"step_order": 1,
		"finding":    "glowing",
	})
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = makeRequest("POST", fmt.Sprintf("/sessions/%s/history", sessionID), map[string]interface{}{
		"question_id": "horoscope",
		"affirmative": true,
	})
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionFindings(t *testing.T) {
	sessionID := createTestSession(t, 20)

	resp := makeRequest("POST", fmt.Sprintf("/sessions/%s/selections", sessionID), map[string]interface{}{
		"step_order": 6,
		"finding":    "hypotension",
	})
	require.True(t, resp.IsSuccess(), resp.Message)

	findings := makeRequest("GET", fmt.Sprintf("/sessions/%s/findings", sessionID), nil)
	require.True(t, findings.IsSuccess())
	list, ok := findings.Data["findings"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	entry := list[0].(map[string]interface{})
	assert.Equal(t, "blood pressure", entry["parameter"])
	assert.Equal(t, "critical", entry["interpretation"])

	// A repeat exam of the same step replaces the chart entry
	resp = makeRequest("POST", fmt.Sprintf("/sessions/%s/selections", sessionID), map[string]interface{}{
		"step_order": 6,
		"is_normal":  true,
	})
	require.True(t, resp.IsSuccess(), resp.Message)

	findings = makeRequest("GET", fmt.Sprintf("/sessions/%s/findings", sessionID), nil)
	require.True(t, findings.IsSuccess())
	list = findings.Data["findings"].([]interface{})
	require.Len(t, list, 1)
	entry = list[0].(map[string]interface{})
	assert.Equal(t, "normal", entry["interpretation"])
}

func TestCompletionStartsAccessClock(t *testing.T) {
	sessionID := createTestSession(t, 20)

	complete := makeRequest("POST", fmt.Sprintf("/sessions/%s/complete", sessionID), nil)
	require.True(t, complete.IsSuccess(), complete.Message)

	// The 90 second IV window runs from identification, before any
	// cannulation attempt is recorded.
	access := makeRequest("GET", fmt.Sprintf("/sessions/%s/access", sessionID), nil)
	require.True(t, access.IsSuccess())
	assert.Equal(t, 0.0, access.Data["failed_attempts"])
	assert.Greater(t, access.Data["elapsed_seconds"], 0.0)
	assert.Equal(t, false, access.Data["escalate_to_io"])
}

func TestAssessmentReference(t *testing.T) {
	steps := makeRequest("GET", "/assessment/steps", nil)
	assert.True(t, steps.IsSuccess())

	questions := makeRequest("GET", "/assessment/history-questions", nil)
	assert.True(t, questions.IsSuccess())
}
