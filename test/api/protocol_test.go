package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocolReference(t *testing.T) {
	resp := makeRequest("GET", "/protocol/reference", nil)
	require.True(t, resp.IsSuccess(), resp.Message)
	assert.NotEmpty(t, resp.Data["assessment_steps"])
	assert.NotEmpty(t, resp.Data["history_questions"])
	assert.NotEmpty(t, resp.Data["shock_types"])
	assert.NotEmpty(t, resp.Data["conditions"])
	assert.NotEmpty(t, resp.Data["ladders"])
	assert.NotEmpty(t, resp.Data["phases"])

	// Second read comes from cache and is identical
	cached := makeRequest("GET", "/protocol/reference", nil)
	require.True(t, cached.IsSuccess())
	assert.Equal(t, resp.RawData, cached.RawData)
}

func TestDosingBolus(t *testing.T) {
	resp := makeRequest("GET", "/protocol/dosing/bolus?weight_kg=20", nil)
	require.True(t, resp.IsSuccess(), resp.Message)
	assert.Equal(t, "standard", resp.Data["type"])
	assert.Equal(t, 10.0, resp.Data["per_kg_ml"])
	assert.Equal(t, 200.0, resp.Data["volume_ml"])

	resp = makeRequest("GET", "/protocol/dosing/bolus?weight_kg=20&type=cardiogenic", nil)
	require.True(t, resp.IsSuccess(), resp.Message)
	assert.Equal(t, 5.0, resp.Data["per_kg_ml"])
	assert.Equal(t, 100.0, resp.Data["volume_ml"])

	resp = makeRequest("GET", "/protocol/dosing/bolus?weight_kg=abc", nil)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDosingInfusions(t *testing.T) {
	resp := makeRequest("GET", "/protocol/dosing/infusions/epinephrine?weight_kg=10", nil)
	require.True(t, resp.IsSuccess(), resp.Message)
	assert.Equal(t, "epinephrine", resp.Data["drug"])
	assert.Equal(t, 6.0, resp.Data["mg_to_add"])

	resp = makeRequest("GET", "/protocol/dosing/infusions/insulin?weight_kg=10", nil)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEquipmentSizing(t *testing.T) {
	resp := makeRequest("GET", "/protocol/equipment?weight_kg=20&age_years=5", nil)
	require.True(t, resp.IsSuccess(), resp.Message)
	for _, key := range []string{
		"bvm_tidal_volume",
		"suction_catheter_fr",
		"ett_size_cuffed",
		"ett_size_uncuffed",
		"defib_first_shock_joules",
		"defib_later_shocks_joules",
		"dextrose_bolus",
		"salbutamol_nebuliser_dose",
	} {
		assert.Contains(t, resp.Data, key)
	}

	resp = makeRequest("GET", "/protocol/equipment?weight_kg=20", nil)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestActionSequencer(t *testing.T) {
	body := map[string]interface{}{
		"phase":     "airway",
		"weight_kg": 20,
		"age_years": 5,
		"airway": map[string]interface{}{
			"patent":             false,
			"obstructed":         true,
			"secretions_present": true,
		},
	}

	resp := makeRequest("POST", "/protocol/actions", body)
	require.True(t, resp.IsSuccess(), resp.Message)
	actions, ok := resp.Data["actions"].([]interface{})
	require.True(t, ok)
	require.NotEmpty(t, actions)
	first := actions[0].(map[string]interface{})
	assert.Equal(t, 1.0, first["sequence"])
	firstID := first["id"].(string)

	// Completing the first action surfaces the next one
	next := makeRequest("POST", "/protocol/actions/next", map[string]interface{}{
		"assessment": body,
		"completed":  []string{firstID},
	})
	require.True(t, next.IsSuccess(), next.Message)
	if len(actions) > 1 {
		nextAction := next.Data["next"].(map[string]interface{})
		assert.NotEqual(t, firstID, nextAction["id"])
	}

	// Findings for the named phase are required
	missing := makeRequest("POST", "/protocol/actions", map[string]interface{}{
		"phase":     "breathing",
		"weight_kg": 20,
		"age_years": 5,
	})
	assert.False(t, missing.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
}
