package service

import (
	"context"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (s *Service) ListCompliance(ctx context.Context, f query.ComplianceFilter) ([]models.ComplianceRequirement, error) {
	reqs, err := s.repo.Compliance().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(reqs, f.Match), nil
}

func (s *Service) GetCompliance(ctx context.Context, id string) (models.ComplianceRequirement, error) {
	return s.repo.Compliance().Get(ctx, id)
}

func (s *Service) ComplianceFrameworks(ctx context.Context) ([]string, error) {
	reqs, err := s.repo.Compliance().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Frameworks(reqs), nil
}

func (s *Service) CreateCompliance(ctx context.Context, in models.ComplianceInput) (models.ComplianceRequirement, error) {
	var out models.ComplianceRequirement
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createCompliance(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateCompliance(ctx context.Context, id string, patch models.CompliancePatch) (models.ComplianceRequirement, error) {
	var out models.ComplianceRequirement
	err := s.mutate(ctx, func(tx *txn) error {
		r, err := tx.Compliance().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&r)
		if err := models.Validate(r); err != nil {
			return err
		}
		if patch.ControlIDs != nil {
			if r.ControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "controlIds", r.ControlIDs); err != nil {
				return err
			}
		}
		out = r
		return tx.Compliance().Save(ctx, r)
	})
	return out, err
}

func (s *Service) DeleteCompliance(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return tx.Compliance().Delete(ctx, id)
	})
}

func (s *Service) createCompliance(ctx context.Context, tx *txn, in models.ComplianceInput) (models.ComplianceRequirement, error) {
	r := in.Requirement()
	r.ID = s.newID()
	if err := models.Validate(r); err != nil {
		return r, err
	}
	var err error
	if r.ControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "controlIds", r.ControlIDs); err != nil {
		return r, err
	}
	return r, tx.Compliance().Save(ctx, r)
}
