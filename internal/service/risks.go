package service

import (
	"context"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func controlRisks(c *models.Control) *[]string { return &c.RiskIDs }
func riskControls(r *models.Risk) *[]string { return &r.ControlIDs }

func (s *Service) ListRisks(ctx context.Context, f query.RiskFilter) ([]models.Risk, error) {
	risks, err := s.repo.Risks().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(risks, f.Match), nil
}

func (s *Service) GetRisk(ctx context.Context, id string) (models.Risk, error) {
	return s.repo.Risks().Get(ctx, id)
}

// RecentRisks returns the n most recently created risks, newest first.
func (s *Service) RecentRisks(ctx context.Context, n int) ([]models.Risk, error) {
	risks, err := s.repo.Risks().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Recent(risks, n), nil
}

func (s *Service) RiskCategories(ctx context.Context) ([]string, error) {
	risks, err := s.repo.Risks().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Categories(risks), nil
}

func (s *Service) CreateRisk(ctx context.Context, in models.RiskInput) (models.Risk, error) {
	var out models.Risk
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createRisk(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateRisk(ctx context.Context, id string, patch models.RiskPatch) (models.Risk, error) {
	var out models.Risk
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.updateRisk(ctx, tx, id, patch)
		return err
	})
	return out, err
}

// DeleteRisk removes the risk, strips its id from every entity that
// references it and drops the bow-tie relationships anchored on it.
func (s *Service) DeleteRisk(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return s.deleteRisk(ctx, tx, id)
	})
}

func (s *Service) createRisk(ctx context.Context, tx *txn, in models.RiskInput) (models.Risk, error) {
	r := in.Risk()
	r.ID = s.newID()
	if err := models.Validate(r); err != nil {
		return r, err
	}

	var err error
	if r.ControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "controlIds", r.ControlIDs); err != nil {
		return r, err
	}
	if err := tx.Risks().Save(ctx, r); err != nil {
		return r, err
	}
	if err := linkEach(ctx, tx.Controls(), r.ControlIDs, r.ID, true, controlRisks); err != nil {
		return r, err
	}
	return r, nil
}

func (s *Service) updateRisk(ctx context.Context, tx *txn, id string, patch models.RiskPatch) (models.Risk, error) {
	r, err := tx.Risks().Get(ctx, id)
	if err != nil {
		return r, err
	}
	before := models.CloneIDs(r.ControlIDs)

	patch.Apply(&r)
	if err := models.Validate(r); err != nil {
		return r, err
	}
	if patch.ControlIDs != nil {
		if r.ControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "controlIds", r.ControlIDs); err != nil {
			return r, err
		}
	}
	if err := tx.Risks().Save(ctx, r); err != nil {
		return r, err
	}

	added, removed := diffIDs(before, r.ControlIDs)
	if err := linkEach(ctx, tx.Controls(), added, r.ID, true, controlRisks); err != nil {
		return r, err
	}
	if err := linkEach(ctx, tx.Controls(), removed, r.ID, false, controlRisks); err != nil {
		return r, err
	}
	return r, nil
}

func (s *Service) deleteRisk(ctx context.Context, tx *txn, id string) error {
	if err := tx.Risks().Delete(ctx, id); err != nil {
		return err
	}

	if err := stripAll(ctx, tx.Controls(), id, controlRisks); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.RiskFactors(), id, func(f *models.RiskFactor) *[]string { return &f.RiskIDs }); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.Consequences(), id, func(c *models.Consequence) *[]string { return &c.RiskIDs }); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.ActionPlans(), id, func(a *models.ActionPlan) *[]string { return &a.RelatedRiskIDs }); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.AuditPlans(), id, func(a *models.AuditPlan) *[]string { return &a.RelatedRiskIDs }); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.Vendors(), id, func(v *models.Vendor) *[]string { return &v.RelatedRiskIDs }); err != nil {
		return err
	}

	bowties, err := tx.BowTies().List(ctx)
	if err != nil {
		return err
	}
	for _, b := range bowties {
		if b.RiskID != id {
			continue
		}
		if err := tx.BowTies().Delete(ctx, b.ID); err != nil {
			return err
		}
	}
	return nil
}
