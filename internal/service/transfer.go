package service

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
	"grcwalk/internal/transfer"
)

// Export renders the whole collection of kind as a JSON array.
func (s *Service) Export(ctx context.Context, kind transfer.Kind) ([]byte, error) {
	switch kind {
	case transfer.KindRisks:
		return exportAll(ctx, s.repo.Risks())
	case transfer.KindControls:
		return exportAll(ctx, s.repo.Controls())
	case transfer.KindRiskFactors:
		return exportAll(ctx, s.repo.RiskFactors())
	case transfer.KindConsequences:
		return exportAll(ctx, s.repo.Consequences())
	case transfer.KindBowTies:
		return exportAll(ctx, s.repo.BowTies())
	case transfer.KindCompliance:
		return exportAll(ctx, s.repo.Compliance())
	case transfer.KindActionPlans:
		return exportAll(ctx, s.repo.ActionPlans())
	case transfer.KindAuditPlans:
		return exportAll(ctx, s.repo.AuditPlans())
	case transfer.KindVendors:
		return exportAll(ctx, s.repo.Vendors())
	}
	return nil, models.NewValidationError("unknown entity kind %q", kind)
}

// Import validates the whole document first and then creates every element
// through the regular create path in one transaction. Imported ids are
// discarded; references to ids missing from the store are dropped.
// It returns the number of created entities.
func (s *Service) Import(ctx context.Context, kind transfer.Kind, data []byte) (int, error) {
	switch kind {
	case transfer.KindRisks:
		return importAll(ctx, s, kind, data, s.createRisk)
	case transfer.KindControls:
		return importAll(ctx, s, kind, data, s.createControl)
	case transfer.KindRiskFactors:
		return importAll(ctx, s, kind, data, s.createRiskFactor)
	case transfer.KindConsequences:
		return importAll(ctx, s, kind, data, s.createConsequence)
	case transfer.KindBowTies:
		return importAll(ctx, s, kind, data, s.createBowTie)
	case transfer.KindCompliance:
		return importAll(ctx, s, kind, data, s.createCompliance)
	case transfer.KindActionPlans:
		return importAll(ctx, s, kind, data, s.createActionPlan)
	case transfer.KindAuditPlans:
		return importAll(ctx, s, kind, data, s.createAuditPlan)
	case transfer.KindVendors:
		return importAll(ctx, s, kind, data, s.createVendor)
	}
	return 0, models.NewValidationError("unknown entity kind %q", kind)
}

func exportAll[T any](ctx context.Context, col repository.Collection[T]) ([]byte, error) {
	items, err := col.List(ctx)
	if err != nil {
		return nil, err
	}
	return transfer.Encode(items)
}

func importAll[In, Out any](ctx context.Context, s *Service, kind transfer.Kind, data []byte, create func(context.Context, *txn, In) (Out, error)) (int, error) {
	items, err := transfer.Decode[In](kind, data)
	if err != nil {
		return 0, err
	}

	err = s.mutate(ctx, func(tx *txn) error {
		tx.importing = true
		for i, in := range items {
			if _, err := create(ctx, tx, in); err != nil {
				if models.IsValidation(err) {
					return models.NewValidationError("element %d: %s", i, err.Error())
				}
				return goerr.Wrap(err, "failed to import element", goerr.V("kind", kind), goerr.V("index", i))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
