// Package query holds pure list filters and dashboard aggregates. Every
// function keeps the input order and never returns a nil slice.
package query

import (
	"slices"
	"strings"

	"grcwalk/internal/models"
)

// Filter returns the items for which match reports true.
func Filter[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Recent returns the last n items, newest first.
func Recent[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(items) {
		n = len(items)
	}
	out := make([]T, 0, n)
	for i := len(items) - 1; i >= len(items)-n; i-- {
		out = append(out, items[i])
	}
	return out
}

// contains — поиск подстроки без учёта регистра; пустой запрос подходит всем
func contains(needle string, fields ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func equals[T ~string](want, got T) bool {
	return want == "" || want == got
}

type RiskFilter struct {
	Search   string           `form:"search"`
	Category string           `form:"category"`
	Level    models.RiskLevel `form:"level"`
}

func (f RiskFilter) Match(r models.Risk) bool {
	return contains(f.Search, r.Name, r.Description) &&
		equals(f.Category, r.Category) &&
		equals(f.Level, r.Level)
}

type ControlFilter struct {
	Search string               `form:"search"`
	Type   models.ControlType   `form:"type"`
	Status models.ControlStatus `form:"status"`
}

func (f ControlFilter) Match(c models.Control) bool {
	return contains(f.Search, c.Name, c.Description) &&
		equals(f.Type, c.Type) &&
		equals(f.Status, c.Status)
}

// NodeFilter applies to risk factors and consequences.
type NodeFilter struct {
	Search string `form:"search"`
	RiskID string `form:"riskId"`
}

func (f NodeFilter) MatchFactor(n models.RiskFactor) bool {
	return contains(f.Search, n.Name, n.Description) && hasID(f.RiskID, n.RiskIDs)
}

func (f NodeFilter) MatchConsequence(n models.Consequence) bool {
	return contains(f.Search, n.Name, n.Description) && hasID(f.RiskID, n.RiskIDs)
}

type ComplianceFilter struct {
	Search    string                  `form:"search"`
	Framework string                  `form:"framework"`
	Status    models.ComplianceStatus `form:"status"`
}

func (f ComplianceFilter) Match(r models.ComplianceRequirement) bool {
	return contains(f.Search, r.Name, r.Description) &&
		equals(f.Framework, r.Framework) &&
		equals(f.Status, r.Status)
}

type ActionPlanFilter struct {
	Search   string                `form:"search"`
	Status   models.ActionStatus   `form:"status"`
	Priority models.ActionPriority `form:"priority"`
}

func (f ActionPlanFilter) Match(a models.ActionPlan) bool {
	return contains(f.Search, a.Title, a.Description) &&
		equals(f.Status, a.Status) &&
		equals(f.Priority, a.Priority)
}

type AuditPlanFilter struct {
	Search string             `form:"search"`
	Status models.AuditStatus `form:"status"`
}

func (f AuditPlanFilter) Match(a models.AuditPlan) bool {
	return contains(f.Search, a.Title, a.Description) && equals(f.Status, a.Status)
}

type VendorFilter struct {
	Search      string                   `form:"search"`
	Status      models.VendorStatus      `form:"status"`
	Criticality models.VendorCriticality `form:"criticality"`
	Category    string                   `form:"category"`
}

func (f VendorFilter) Match(v models.Vendor) bool {
	return contains(f.Search, v.Name, v.Description) &&
		equals(f.Status, v.Status) &&
		equals(f.Criticality, v.Criticality) &&
		equals(f.Category, v.Category)
}

func hasID(want string, ids []string) bool {
	return want == "" || slices.Contains(ids, want)
}
