package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grcwalk/internal/models"
)

func TestFileName(t *testing.T) {
	date := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "risks-2024-03-07.json", FileName(KindRisks, date))
	assert.Equal(t, "action-plans-2024-03-07.json", FileName(KindActionPlans, date))
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKind("users")
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestEncode(t *testing.T) {
	data, err := Encode[models.Risk](nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	data, err = Encode([]models.Risk{{ID: "r1", Name: "Data Breach", Level: models.LevelHigh, ControlIDs: []string{}}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "Data Breach"`)
	assert.Contains(t, string(data), `"controlIds": []`)
	assert.NotContains(t, string(data), "createdAt")
}

func TestDecodeRisks(t *testing.T) {
	doc := `[
		{"id": "old-1", "name": "Data Breach", "description": "Leak", "category": "Cyber", "likelihood": 3, "impact": 5, "level": "Low"},
		{"name": "Outage", "description": "Downtime", "category": "Operational", "likelihood": 2, "impact": 2, "controlIds": ["c1"]}
	]`

	got, err := Decode[models.RiskInput](KindRisks, []byte(doc))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Data Breach", got[0].Name)
	assert.Equal(t, 5, got[0].Impact)
	assert.Equal(t, []string{"c1"}, got[1].ControlIDs)
}

func TestDecodeRejects(t *testing.T) {
	cases := map[string]string{
		"not an array":       `{"name": "x"}`,
		"null document":      `null`,
		"empty document":     ``,
		"broken json":        `[{"name": "x"`,
		"element not object": `["risk"]`,
		"null element":       `[null]`,
		"missing category":   `[{"name": "A", "description": "B", "likelihood": 1, "impact": 1}]`,
		"empty name":         `[{"name": "", "description": "B", "category": "C", "likelihood": 1, "impact": 1}]`,
		"string likelihood":  `[{"name": "A", "description": "B", "category": "C", "likelihood": "3", "impact": 1}]`,
		"fractional impact":  `[{"name": "A", "description": "B", "category": "C", "likelihood": 1, "impact": 1.5}]`,
		"second element bad": `[
			{"name": "A", "description": "B", "category": "C", "likelihood": 1, "impact": 1},
			{"name": "A", "description": "B", "likelihood": 1, "impact": 1}
		]`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Decode[models.RiskInput](KindRisks, []byte(doc))
			require.Error(t, err)
			assert.True(t, models.IsValidation(err), err.Error())
			assert.Nil(t, got)
		})
	}
}

func TestDecodeErrorNamesElementAndField(t *testing.T) {
	doc := `[
		{"name": "A", "description": "B", "category": "C", "likelihood": 1, "impact": 1},
		{"name": "A", "description": "B", "likelihood": 1, "impact": 1}
	]`
	_, err := Decode[models.RiskInput](KindRisks, []byte(doc))
	require.Error(t, err)
	assert.Equal(t, `element 1: missing required field "category"`, err.Error())
}

func TestSchemasForOtherKinds(t *testing.T) {
	_, err := Check(KindBowTies, []byte(`[{"riskId": "r1", "factorIds": "f1", "consequenceIds": []}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"factorIds" must be an array`)

	_, err = Check(KindVendors, []byte(`[{"name": "Acme", "status": "Active", "criticality": "High", "riskScore": 40}]`))
	assert.NoError(t, err)

	_, err = Check(KindActionPlans, []byte(`[{"title": "Patch", "status": "Completed"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"priority"`)

	elems, err := Check(KindRiskFactors, []byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, elems)
}
