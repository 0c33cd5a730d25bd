package transfer

import "fmt"

type fieldType int

const (
	text fieldType = iota
	number
	list
)

// field is one required property of an imported element.
type field struct {
	name string
	typ  fieldType
}

func (f field) check(obj map[string]any) string {
	v, ok := obj[f.name]
	if !ok || v == nil {
		return fmt.Sprintf("missing required field %q", f.name)
	}
	switch f.typ {
	case text:
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("field %q must be a string", f.name)
		}
		if s == "" {
			return fmt.Sprintf("field %q must not be empty", f.name)
		}
	case number:
		if _, ok := v.(float64); !ok {
			return fmt.Sprintf("field %q must be a number", f.name)
		}
	case list:
		if _, ok := v.([]any); !ok {
			return fmt.Sprintf("field %q must be an array", f.name)
		}
	}
	return ""
}

var schemas = map[Kind][]field{
	KindRisks: {
		{"name", text}, {"description", text}, {"category", text},
		{"likelihood", number}, {"impact", number},
	},
	KindControls: {
		{"name", text}, {"type", text}, {"status", text}, {"effectiveness", number},
	},
	KindRiskFactors:  {{"name", text}},
	KindConsequences: {{"name", text}},
	KindBowTies: {
		{"riskId", text}, {"factorIds", list}, {"consequenceIds", list},
	},
	KindCompliance: {
		{"name", text}, {"framework", text}, {"status", text},
	},
	KindActionPlans: {
		{"title", text}, {"status", text}, {"priority", text},
	},
	KindAuditPlans: {
		{"title", text}, {"status", text},
	},
	KindVendors: {
		{"name", text}, {"status", text}, {"criticality", text}, {"riskScore", number},
	},
}
