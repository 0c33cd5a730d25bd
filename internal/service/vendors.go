package service

import (
	"context"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

func (s *Service) ListVendors(ctx context.Context, f query.VendorFilter) ([]models.Vendor, error) {
	vendors, err := s.repo.Vendors().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(vendors, f.Match), nil
}

func (s *Service) GetVendor(ctx context.Context, id string) (models.Vendor, error) {
	return s.repo.Vendors().Get(ctx, id)
}

func (s *Service) CreateVendor(ctx context.Context, in models.VendorInput) (models.Vendor, error) {
	var out models.Vendor
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createVendor(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateVendor(ctx context.Context, id string, patch models.VendorPatch) (models.Vendor, error) {
	var out models.Vendor
	err := s.mutate(ctx, func(tx *txn) error {
		v, err := tx.Vendors().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&v)
		s.fillVendor(&v)
		if err := models.Validate(v); err != nil {
			return err
		}
		if patch.RelatedRiskIDs != nil {
			if v.RelatedRiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "relatedRiskIds", v.RelatedRiskIDs); err != nil {
				return err
			}
		}
		if patch.RelatedControlIDs != nil {
			if v.RelatedControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "relatedControlIds", v.RelatedControlIDs); err != nil {
				return err
			}
		}
		out = v
		return tx.Vendors().Save(ctx, v)
	})
	return out, err
}

func (s *Service) DeleteVendor(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return tx.Vendors().Delete(ctx, id)
	})
}

func (s *Service) createVendor(ctx context.Context, tx *txn, in models.VendorInput) (models.Vendor, error) {
	v := in.Vendor()
	v.ID = s.newID()
	s.fillVendor(&v)
	if err := models.Validate(v); err != nil {
		return v, err
	}

	var err error
	if v.RelatedRiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "relatedRiskIds", v.RelatedRiskIDs); err != nil {
		return v, err
	}
	if v.RelatedControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "relatedControlIds", v.RelatedControlIDs); err != nil {
		return v, err
	}
	return v, tx.Vendors().Save(ctx, v)
}

func (s *Service) fillVendor(v *models.Vendor) {
	for i := range v.Documents {
		if v.Documents[i].ID == "" {
			v.Documents[i].ID = s.newID()
		}
	}
	for i := range v.Assessments {
		if v.Assessments[i].ID == "" {
			v.Assessments[i].ID = s.newID()
		}
	}
}
