package service

import (
	"context"
	"errors"
	"slices"

	"github.com/m-mizutani/goerr/v2"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

// ---- risk factors

func (s *Service) ListRiskFactors(ctx context.Context, f query.NodeFilter) ([]models.RiskFactor, error) {
	factors, err := s.repo.RiskFactors().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(factors, f.MatchFactor), nil
}

func (s *Service) GetRiskFactor(ctx context.Context, id string) (models.RiskFactor, error) {
	return s.repo.RiskFactors().Get(ctx, id)
}

func (s *Service) CreateRiskFactor(ctx context.Context, in models.RiskFactorInput) (models.RiskFactor, error) {
	var out models.RiskFactor
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createRiskFactor(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateRiskFactor(ctx context.Context, id string, patch models.NodePatch) (models.RiskFactor, error) {
	var out models.RiskFactor
	err := s.mutate(ctx, func(tx *txn) error {
		f, err := tx.RiskFactors().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.ApplyFactor(&f)
		if err := models.Validate(f); err != nil {
			return err
		}
		if patch.RiskIDs != nil {
			if f.RiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "riskIds", f.RiskIDs); err != nil {
				return err
			}
		}
		out = f
		return tx.RiskFactors().Save(ctx, f)
	})
	return out, err
}

// DeleteRiskFactor removes the factor and strips it from every bow-tie relationship.
func (s *Service) DeleteRiskFactor(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		if err := tx.RiskFactors().Delete(ctx, id); err != nil {
			return err
		}
		return stripAll(ctx, tx.BowTies(), id, func(b *models.BowTieRelationship) *[]string { return &b.FactorIDs })
	})
}

func (s *Service) createRiskFactor(ctx context.Context, tx *txn, in models.RiskFactorInput) (models.RiskFactor, error) {
	f := in.RiskFactor()
	f.ID = s.newID()
	if err := models.Validate(f); err != nil {
		return f, err
	}
	var err error
	if f.RiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "riskIds", f.RiskIDs); err != nil {
		return f, err
	}
	return f, tx.RiskFactors().Save(ctx, f)
}

// ---- consequences

func (s *Service) ListConsequences(ctx context.Context, f query.NodeFilter) ([]models.Consequence, error) {
	consequences, err := s.repo.Consequences().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(consequences, f.MatchConsequence), nil
}

func (s *Service) GetConsequence(ctx context.Context, id string) (models.Consequence, error) {
	return s.repo.Consequences().Get(ctx, id)
}

func (s *Service) CreateConsequence(ctx context.Context, in models.ConsequenceInput) (models.Consequence, error) {
	var out models.Consequence
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createConsequence(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateConsequence(ctx context.Context, id string, patch models.NodePatch) (models.Consequence, error) {
	var out models.Consequence
	err := s.mutate(ctx, func(tx *txn) error {
		c, err := tx.Consequences().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.ApplyConsequence(&c)
		if err := models.Validate(c); err != nil {
			return err
		}
		if patch.RiskIDs != nil {
			if c.RiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "riskIds", c.RiskIDs); err != nil {
				return err
			}
		}
		out = c
		return tx.Consequences().Save(ctx, c)
	})
	return out, err
}

// DeleteConsequence removes the consequence and strips it from every bow-tie relationship.
func (s *Service) DeleteConsequence(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		if err := tx.Consequences().Delete(ctx, id); err != nil {
			return err
		}
		return stripAll(ctx, tx.BowTies(), id, func(b *models.BowTieRelationship) *[]string { return &b.ConsequenceIDs })
	})
}

func (s *Service) createConsequence(ctx context.Context, tx *txn, in models.ConsequenceInput) (models.Consequence, error) {
	c := in.Consequence()
	c.ID = s.newID()
	if err := models.Validate(c); err != nil {
		return c, err
	}
	var err error
	if c.RiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "riskIds", c.RiskIDs); err != nil {
		return c, err
	}
	return c, tx.Consequences().Save(ctx, c)
}

// ---- bow-tie relationships

func (s *Service) ListBowTies(ctx context.Context) ([]models.BowTieRelationship, error) {
	return s.repo.BowTies().List(ctx)
}

func (s *Service) GetBowTie(ctx context.Context, id string) (models.BowTieRelationship, error) {
	return s.repo.BowTies().Get(ctx, id)
}

func (s *Service) CreateBowTie(ctx context.Context, in models.BowTieInput) (models.BowTieRelationship, error) {
	var out models.BowTieRelationship
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createBowTie(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateBowTie(ctx context.Context, id string, patch models.BowTiePatch) (models.BowTieRelationship, error) {
	var out models.BowTieRelationship
	err := s.mutate(ctx, func(tx *txn) error {
		b, err := tx.BowTies().Get(ctx, id)
		if err != nil {
			return err
		}
		prevRisk := b.RiskID

		patch.Apply(&b)
		if err := models.Validate(b); err != nil {
			return err
		}
		if b.RiskID != prevRisk {
			if err := s.checkBowTieRisk(ctx, tx, b); err != nil {
				return err
			}
		}
		if patch.FactorIDs != nil {
			if b.FactorIDs, err = resolveRefs(ctx, tx, tx.RiskFactors(), "factorIds", b.FactorIDs); err != nil {
				return err
			}
		}
		if patch.ConsequenceIDs != nil {
			if b.ConsequenceIDs, err = resolveRefs(ctx, tx, tx.Consequences(), "consequenceIds", b.ConsequenceIDs); err != nil {
				return err
			}
		}
		out = b
		return tx.BowTies().Save(ctx, b)
	})
	return out, err
}

func (s *Service) DeleteBowTie(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return tx.BowTies().Delete(ctx, id)
	})
}

func (s *Service) createBowTie(ctx context.Context, tx *txn, in models.BowTieInput) (models.BowTieRelationship, error) {
	b := in.BowTie()
	b.ID = s.newID()
	if err := models.Validate(b); err != nil {
		return b, err
	}
	if err := s.checkBowTieRisk(ctx, tx, b); err != nil {
		return b, err
	}

	var err error
	if b.FactorIDs, err = resolveRefs(ctx, tx, tx.RiskFactors(), "factorIds", b.FactorIDs); err != nil {
		return b, err
	}
	if b.ConsequenceIDs, err = resolveRefs(ctx, tx, tx.Consequences(), "consequenceIds", b.ConsequenceIDs); err != nil {
		return b, err
	}
	return b, tx.BowTies().Save(ctx, b)
}

// checkBowTieRisk requires b's risk to exist and to have no other relationship.
func (s *Service) checkBowTieRisk(ctx context.Context, tx *txn, b models.BowTieRelationship) error {
	if _, err := tx.Risks().Get(ctx, b.RiskID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.NewValidationError("riskId references unknown id %q", b.RiskID)
		}
		return err
	}

	existing, err := tx.BowTies().List(ctx)
	if err != nil {
		return err
	}
	for _, other := range existing {
		if other.ID != b.ID && other.RiskID == b.RiskID {
			return goerr.Wrap(models.ErrConflict, "bow-tie relationship already exists for risk",
				goerr.V("riskId", b.RiskID), goerr.V("existing", other.ID))
		}
	}
	return nil
}

// BowTieForRisk assembles the diagram of one risk. Without a relationship
// the factors and consequences tagged with the risk are used instead.
func (s *Service) BowTieForRisk(ctx context.Context, riskID string) (models.BowTieDiagram, error) {
	d := models.BowTieDiagram{Factors: []models.RiskFactor{}, Consequences: []models.Consequence{}}

	risk, err := s.repo.Risks().Get(ctx, riskID)
	if err != nil {
		return d, err
	}
	d.Risk = risk

	bowties, err := s.repo.BowTies().List(ctx)
	if err != nil {
		return d, err
	}
	for i := range bowties {
		if bowties[i].RiskID == riskID {
			d.Relationship = &bowties[i]
			break
		}
	}

	factors, err := s.repo.RiskFactors().List(ctx)
	if err != nil {
		return d, err
	}
	consequences, err := s.repo.Consequences().List(ctx)
	if err != nil {
		return d, err
	}

	if d.Relationship != nil {
		d.Factors = query.Filter(factors, func(f models.RiskFactor) bool {
			return slices.Contains(d.Relationship.FactorIDs, f.ID)
		})
		d.Consequences = query.Filter(consequences, func(c models.Consequence) bool {
			return slices.Contains(d.Relationship.ConsequenceIDs, c.ID)
		})
		return d, nil
	}

	byRisk := query.NodeFilter{RiskID: riskID}
	d.Factors = query.Filter(factors, byRisk.MatchFactor)
	d.Consequences = query.Filter(consequences, byRisk.MatchConsequence)
	return d, nil
}
