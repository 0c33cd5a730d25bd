package query

import (
	"math"
	"sort"

	"grcwalk/internal/models"
)

// RecentRisksOnDashboard — сколько последних рисков показывать на главной
const RecentRisksOnDashboard = 5

// CountRisks returns the number of risks per level. Every level is present.
func CountRisks(risks []models.Risk) map[models.RiskLevel]int {
	counts := make(map[models.RiskLevel]int, len(models.RiskLevels))
	for _, lvl := range models.RiskLevels {
		counts[lvl] = 0
	}
	for _, r := range risks {
		counts[models.CalculateRiskLevel(r.Likelihood, r.Impact)]++
	}
	return counts
}

type HeatmapCell struct {
	Likelihood int              `json:"likelihood"`
	Impact     int              `json:"impact"`
	Level      models.RiskLevel `json:"level"`
	Count      int              `json:"count"`
	RiskIDs    []string         `json:"riskIds"`
}

// Heatmap returns the 5×5 likelihood × impact grid, likelihood-major, both
// axes ascending. Each cell lists the risks that fall into it.
func Heatmap(risks []models.Risk) []HeatmapCell {
	cells := make([]HeatmapCell, 0, 25)
	for l := 1; l <= 5; l++ {
		for i := 1; i <= 5; i++ {
			cells = append(cells, HeatmapCell{
				Likelihood: l,
				Impact:     i,
				Level:      models.CalculateRiskLevel(l, i),
				RiskIDs:    []string{},
			})
		}
	}
	for _, r := range risks {
		if r.Likelihood < 1 || r.Likelihood > 5 || r.Impact < 1 || r.Impact > 5 {
			continue
		}
		c := &cells[(r.Likelihood-1)*5+(r.Impact-1)]
		c.Count++
		c.RiskIDs = append(c.RiskIDs, r.ID)
	}
	return cells
}

type Dashboard struct {
	TotalRisks          int                      `json:"totalRisks"`
	RiskCounts          map[models.RiskLevel]int `json:"riskCounts"`
	HighImpactRisks     int                      `json:"highImpactRisks"`
	TotalControls       int                      `json:"totalControls"`
	ImplementedControls int                      `json:"implementedControls"`
	ImplementedPercent  int                      `json:"implementedPercentage"`
	TotalRiskFactors    int                      `json:"totalRiskFactors"`
	FactorCoverage      int                      `json:"riskFactorCoverage"`
	TotalConsequences   int                      `json:"totalConsequences"`
	ConsequenceCoverage int                      `json:"consequenceCoverage"`
	RecentRisks         []models.Risk            `json:"recentRisks"`
}

// DashboardInput bundles the collections the dashboard is computed from.
type DashboardInput struct {
	Risks        []models.Risk
	Controls     []models.Control
	Factors      []models.RiskFactor
	Consequences []models.Consequence
}

func BuildDashboard(in DashboardInput) Dashboard {
	counts := CountRisks(in.Risks)

	implemented := 0
	for _, c := range in.Controls {
		if c.Status == models.ControlImplemented {
			implemented++
		}
	}

	return Dashboard{
		TotalRisks:          len(in.Risks),
		RiskCounts:          counts,
		HighImpactRisks:     counts[models.LevelHigh] + counts[models.LevelCritical],
		TotalControls:       len(in.Controls),
		ImplementedControls: implemented,
		ImplementedPercent:  percent(implemented, len(in.Controls)),
		TotalRiskFactors:    len(in.Factors),
		FactorCoverage:      percent(len(in.Factors), len(in.Risks)),
		TotalConsequences:   len(in.Consequences),
		ConsequenceCoverage: percent(len(in.Consequences), len(in.Risks)),
		RecentRisks:         Recent(in.Risks, RecentRisksOnDashboard),
	}
}

// percent rounds part/total*100 to the nearest integer; 0 when total is 0.
func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// Categories returns the distinct risk categories, sorted.
func Categories(risks []models.Risk) []string {
	return distinct(risks, func(r models.Risk) string { return r.Category })
}

// Frameworks returns the distinct compliance frameworks, sorted.
func Frameworks(reqs []models.ComplianceRequirement) []string {
	return distinct(reqs, func(r models.ComplianceRequirement) string { return r.Framework })
}

func distinct[T any](items []T, key func(T) string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, item := range items {
		k := key(item)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
