// Package transfer reads and writes the JSON documents used for bulk
// import and export: a flat array of entity objects, no envelope.
package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"grcwalk/internal/models"
)

type Kind string

const (
	KindRisks        Kind = "risks"
	KindControls     Kind = "controls"
	KindRiskFactors  Kind = "risk-factors"
	KindConsequences Kind = "consequences"
	KindBowTies      Kind = "bowtie-relationships"
	KindCompliance   Kind = "compliance"
	KindActionPlans  Kind = "action-plans"
	KindAuditPlans   Kind = "audit-plans"
	KindVendors      Kind = "vendors"
)

var Kinds = []Kind{
	KindRisks, KindControls, KindRiskFactors, KindConsequences, KindBowTies,
	KindCompliance, KindActionPlans, KindAuditPlans, KindVendors,
}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", models.NewValidationError("unknown entity kind %q", s)
}

// FileName is the download name of an export taken on date.
func FileName(kind Kind, date time.Time) string {
	return fmt.Sprintf("%s-%s.json", kind, date.Format("2006-01-02"))
}

// Encode renders items as an indented JSON array. A nil slice becomes [].
func Encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode export")
	}
	return data, nil
}

// Decode checks data against the schema of kind and decodes every element
// into T. Any failure rejects the whole document with a *models.ValidationError.
func Decode[T any](kind Kind, data []byte) ([]T, error) {
	elems, err := Check(kind, data)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(elems))
	for i, raw := range elems {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, models.NewValidationError("element %d: %s", i, describeJSONError(err))
		}
		out = append(out, v)
	}
	return out, nil
}

// Check verifies that data is a JSON array whose elements are objects
// carrying every required field of kind with the right primitive type.
func Check(kind Kind, data []byte) ([]json.RawMessage, error) {
	fields, ok := schemas[kind]
	if !ok {
		return nil, models.NewValidationError("unknown entity kind %q", kind)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, models.NewValidationError("import document must be a JSON array")
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, models.NewValidationError("import document is not valid JSON: %s", describeJSONError(err))
	}

	for i, raw := range elems {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			return nil, models.NewValidationError("element %d must be an object", i)
		}
		for _, f := range fields {
			if msg := f.check(obj); msg != "" {
				return nil, models.NewValidationError("element %d: %s", i, msg)
			}
		}
	}
	return elems, nil
}

func describeJSONError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("field %q has wrong type %s", typeErr.Field, typeErr.Value)
	}
	return err.Error()
}
