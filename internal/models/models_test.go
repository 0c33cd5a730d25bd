package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRiskLevelGrid(t *testing.T) {
	const (
		L = LevelLow
		M = LevelMedium
		H = LevelHigh
		C = LevelCritical
	)
	// строки — вероятность 1..5, столбцы — влияние 1..5
	grid := [5][5]RiskLevel{
		{L, L, M, M, M},
		{L, M, M, H, H},
		{M, M, H, H, C},
		{M, H, H, C, C},
		{M, H, C, C, C},
	}
	for l := 1; l <= 5; l++ {
		for i := 1; i <= 5; i++ {
			t.Run(fmt.Sprintf("%dx%d", l, i), func(t *testing.T) {
				assert.Equal(t, grid[l-1][i-1], CalculateRiskLevel(l, i))
			})
		}
	}

	assert.Equal(t, LevelCritical, CalculateRiskLevel(4, 5))
	assert.Equal(t, LevelHigh, CalculateRiskLevel(2, 4))
	assert.Equal(t, LevelMedium, CalculateRiskLevel(3, 1))
	assert.Equal(t, LevelLow, CalculateRiskLevel(1, 1))
}

func TestRiskPatchRecalculates(t *testing.T) {
	r := RiskInput{Name: "A", Description: "B", Category: "C", Likelihood: 5, Impact: 5}.Risk()
	assert.Equal(t, LevelCritical, r.Level)
	assert.NotNil(t, r.ControlIDs)

	impact := 1
	RiskPatch{Impact: &impact}.Apply(&r)
	assert.Equal(t, 5, r.Likelihood)
	assert.Equal(t, LevelMedium, r.Level)
}

func TestValidateMessages(t *testing.T) {
	valid := RiskInput{Name: "A", Description: "B", Category: "C", Likelihood: 1, Impact: 1}.Risk()
	require.NoError(t, Validate(valid))

	cases := []struct {
		name string
		v    any
		want string
	}{
		{"required", Risk{Description: "B", Category: "C", Likelihood: 1, Impact: 1, Level: LevelLow}, "name is required"},
		{"min", Risk{Name: "A", Description: "B", Category: "C", Likelihood: 0, Impact: 1, Level: LevelLow}, "likelihood must be at least 1"},
		{"enum", Control{Name: "A", Type: "Magic", Status: ControlPlanned, Effectiveness: 1}, `type has invalid value "Magic"`},
		{"date", ComplianceRequirement{Name: "A", Framework: "ISO", Status: ComplianceCompliant, DueDate: "31.12.2025"}, "dueDate must be a date in YYYY-MM-DD format"},
		{"email", Vendor{Name: "A", Status: VendorActive, Criticality: LevelLow, RiskLevel: LevelLow, ContactEmail: "nope"}, "contactEmail must be a valid e-mail address"},
		{"nested", ActionPlan{Title: "A", Status: ActionNotStarted, Priority: LevelLow, Tasks: []ActionTask{{}}}, "tasks[0].title is required"},
		{"progress", ActionPlan{Title: "A", Status: ActionNotStarted, Priority: LevelLow, Progress: 150}, "progress must be at most 100"},
		{"username", User{Username: "ab", Role: RoleViewer}, "username must be at least 3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.v)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestVendorInputKeepsEnteredLevelAndCopies(t *testing.T) {
	services := []string{"IaaS"}
	v := VendorInput{Name: "Acme", RiskScore: 85, RiskLevel: LevelHigh, Services: services}.Vendor()
	assert.Equal(t, 85, v.RiskScore)
	assert.Equal(t, LevelHigh, v.RiskLevel)

	assert.Equal(t, LevelLow, VendorInput{Name: "Acme", RiskScore: 85}.Vendor().RiskLevel)

	level := LevelCritical
	VendorPatch{RiskLevel: &level}.Apply(&v)
	assert.Equal(t, LevelCritical, v.RiskLevel)
	assert.Equal(t, 85, v.RiskScore)

	services[0] = "changed"
	assert.Equal(t, []string{"IaaS"}, v.Services)
	assert.NotNil(t, v.RelatedRiskIDs)
}

func TestRoleCanEdit(t *testing.T) {
	assert.True(t, RoleAdmin.CanEdit())
	assert.True(t, RoleAnalyst.CanEdit())
	assert.False(t, RoleViewer.CanEdit())
	assert.False(t, UserRole("guest").Valid())
}
