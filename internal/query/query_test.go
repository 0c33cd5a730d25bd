package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grcwalk/internal/models"
)

func risk(id, name, desc, category string, l, i int) models.Risk {
	r := models.Risk{ID: id, Name: name, Description: desc, Category: category, Likelihood: l, Impact: i}
	r.Recalculate()
	return r
}

func fixture() []models.Risk {
	return []models.Risk{
		risk("1", "Data Breach", "Unauthorized access to customer data", "Cybersecurity", 3, 5),
		risk("2", "Financial Fraud", "Misappropriation of company funds", "Financial", 2, 4),
		risk("3", "Supplier Failure", "Key supplier unable to deliver", "Operational", 3, 3),
		risk("4", "Regulatory Fine", "Penalty for non-compliance", "Compliance", 1, 2),
	}
}

func TestRiskSearchIsCaseInsensitive(t *testing.T) {
	for _, term := range []string{"fraud", "FRAUD", "  Fraud "} {
		got := Filter(fixture(), RiskFilter{Search: term}.Match)
		require.Len(t, got, 1, term)
		assert.Equal(t, "Financial Fraud", got[0].Name)
	}
}

func TestRiskFilterCombinesPredicates(t *testing.T) {
	risks := fixture()

	got := Filter(risks, RiskFilter{Level: models.LevelHigh}.Match)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	got = Filter(risks, RiskFilter{Level: models.LevelHigh, Category: "Financial"}.Match)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = Filter(risks, RiskFilter{Search: "supplier", Category: "Financial"}.Match)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	assert.Len(t, Filter(risks, RiskFilter{}.Match), len(risks))
}

func TestSearchCoversDescription(t *testing.T) {
	got := Filter(fixture(), RiskFilter{Search: "customer"}.Match)
	require.Len(t, got, 1)
	assert.Equal(t, "Data Breach", got[0].Name)
}

func TestOtherFilters(t *testing.T) {
	controls := []models.Control{
		{ID: "c1", Name: "MFA", Type: models.ControlPreventive, Status: models.ControlImplemented},
		{ID: "c2", Name: "SIEM", Type: models.ControlDetective, Status: models.ControlPlanned},
	}
	got := Filter(controls, ControlFilter{Status: models.ControlPlanned}.Match)
	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)

	plans := []models.ActionPlan{
		{ID: "a1", Title: "Patch servers", Status: models.ActionInProgress, Priority: models.LevelHigh},
		{ID: "a2", Title: "Train staff", Description: "phishing awareness", Status: models.ActionNotStarted, Priority: models.LevelLow},
	}
	got2 := Filter(plans, ActionPlanFilter{Search: "PHISHING"}.Match)
	require.Len(t, got2, 1)
	assert.Equal(t, "a2", got2[0].ID)

	vendors := []models.Vendor{
		{ID: "v1", Name: "CloudCo", Status: models.VendorActive, Criticality: models.LevelCritical},
		{ID: "v2", Name: "PrintCo", Status: models.VendorActive, Criticality: models.LevelLow},
	}
	got3 := Filter(vendors, VendorFilter{Status: models.VendorActive, Criticality: models.LevelCritical}.Match)
	require.Len(t, got3, 1)
	assert.Equal(t, "v1", got3[0].ID)

	factors := []models.RiskFactor{
		{ID: "f1", Name: "Phishing", RiskIDs: []string{"1"}},
		{ID: "f2", Name: "Insider", RiskIDs: []string{"2"}},
	}
	got4 := Filter(factors, NodeFilter{RiskID: "2"}.MatchFactor)
	require.Len(t, got4, 1)
	assert.Equal(t, "f2", got4[0].ID)
}

func TestRecent(t *testing.T) {
	risks := fixture()

	got := Recent(risks, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "4", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	assert.Len(t, Recent(risks, 10), 4)
	assert.Empty(t, Recent(risks, 0))
	assert.Empty(t, Recent(risks, -1))
	assert.NotNil(t, Recent([]models.Risk{}, 5))
}

func TestCountRisks(t *testing.T) {
	counts := CountRisks(fixture())
	assert.Equal(t, map[models.RiskLevel]int{
		models.LevelCritical: 1,
		models.LevelHigh:     2,
		models.LevelMedium:   0,
		models.LevelLow:      1,
	}, counts)

	empty := CountRisks(nil)
	assert.Len(t, empty, 4)
}

func TestHeatmap(t *testing.T) {
	cells := Heatmap(fixture())
	require.Len(t, cells, 25)

	cell := cells[(3-1)*5+(5-1)]
	assert.Equal(t, 3, cell.Likelihood)
	assert.Equal(t, 5, cell.Impact)
	assert.Equal(t, models.LevelCritical, cell.Level)
	assert.Equal(t, 1, cell.Count)
	assert.Equal(t, []string{"1"}, cell.RiskIDs)

	assert.Equal(t, models.LevelLow, cells[0].Level)
	assert.Equal(t, 0, cells[0].Count)
	assert.NotNil(t, cells[0].RiskIDs)
}

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(DashboardInput{
		Risks: fixture(),
		Controls: []models.Control{
			{ID: "c1", Status: models.ControlImplemented},
			{ID: "c2", Status: models.ControlPartial},
			{ID: "c3", Status: models.ControlImplemented},
		},
		Factors:      []models.RiskFactor{{ID: "f1"}},
		Consequences: []models.Consequence{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}},
	})

	assert.Equal(t, 4, d.TotalRisks)
	assert.Equal(t, 3, d.HighImpactRisks)
	assert.Equal(t, 2, d.ImplementedControls)
	assert.Equal(t, 67, d.ImplementedPercent)
	assert.Equal(t, 25, d.FactorCoverage)
	assert.Equal(t, 75, d.ConsequenceCoverage)
	require.Len(t, d.RecentRisks, 4)
	assert.Equal(t, "4", d.RecentRisks[0].ID)

	empty := BuildDashboard(DashboardInput{})
	assert.Equal(t, 0, empty.ImplementedPercent)
	assert.Equal(t, 0, empty.FactorCoverage)
}

func TestDistinctLists(t *testing.T) {
	assert.Equal(t, []string{"Compliance", "Cybersecurity", "Financial", "Operational"}, Categories(fixture()))

	reqs := []models.ComplianceRequirement{
		{Framework: "NIST CSF"}, {Framework: "ISO 27001"}, {Framework: "NIST CSF"}, {Framework: ""},
	}
	assert.Equal(t, []string{"ISO 27001", "NIST CSF"}, Frameworks(reqs))
	assert.NotNil(t, Frameworks(nil))
}
