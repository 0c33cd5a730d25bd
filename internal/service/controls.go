package service

import (
	"context"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (s *Service) ListControls(ctx context.Context, f query.ControlFilter) ([]models.Control, error) {
	controls, err := s.repo.Controls().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(controls, f.Match), nil
}

func (s *Service) GetControl(ctx context.Context, id string) (models.Control, error) {
	return s.repo.Controls().Get(ctx, id)
}

func (s *Service) CreateControl(ctx context.Context, in models.ControlInput) (models.Control, error) {
	var out models.Control
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createControl(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateControl(ctx context.Context, id string, patch models.ControlPatch) (models.Control, error) {
	var out models.Control
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.updateControl(ctx, tx, id, patch)
		return err
	})
	return out, err
}

func (s *Service) DeleteControl(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return s.deleteControl(ctx, tx, id)
	})
}

func (s *Service) createControl(ctx context.Context, tx *txn, in models.ControlInput) (models.Control, error) {
	c := in.Control()
	c.ID = s.newID()
	if err := models.Validate(c); err != nil {
		return c, err
	}

	var err error
	if c.RiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "riskIds", c.RiskIDs); err != nil {
		return c, err
	}
	if err := tx.Controls().Save(ctx, c); err != nil {
		return c, err
	}
	if err := linkEach(ctx, tx.Risks(), c.RiskIDs, c.ID, true, riskControls); err != nil {
		return c, err
	}
	return c, nil
}

func (s *Service) updateControl(ctx context.Context, tx *txn, id string, patch models.ControlPatch) (models.Control, error) {
	c, err := tx.Controls().Get(ctx, id)
	if err != nil {
		return c, err
	}
	before := models.CloneIDs(c.RiskIDs)

	patch.Apply(&c)
	if err := models.Validate(c); err != nil {
		return c, err
	}
	if patch.RiskIDs != nil {
		if c.RiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "riskIds", c.RiskIDs); err != nil {
			return c, err
		}
	}
	if err := tx.Controls().Save(ctx, c); err != nil {
		return c, err
	}

	added, removed := diffIDs(before, c.RiskIDs)
	if err := linkEach(ctx, tx.Risks(), added, c.ID, true, riskControls); err != nil {
		return c, err
	}
	if err := linkEach(ctx, tx.Risks(), removed, c.ID, false, riskControls); err != nil {
		return c, err
	}
	return c, nil
}

func (s *Service) deleteControl(ctx context.Context, tx *txn, id string) error {
	if err := tx.Controls().Delete(ctx, id); err != nil {
		return err
	}

	if err := stripAll(ctx, tx.Risks(), id, riskControls); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.Compliance(), id, func(r *models.ComplianceRequirement) *[]string { return &r.ControlIDs }); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.ActionPlans(), id, func(a *models.ActionPlan) *[]string { return &a.RelatedControlIDs }); err != nil {
		return err
	}
	if err := stripAll(ctx, tx.AuditPlans(), id, func(a *models.AuditPlan) *[]string { return &a.RelatedControlIDs }); err != nil {
		return err
	}
	return stripAll(ctx, tx.Vendors(), id, func(v *models.Vendor) *[]string { return &v.RelatedControlIDs })
}
