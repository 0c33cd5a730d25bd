package service

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"grcwalk/internal/models"
	"grcwalk/internal/query"
)

// ---- action plans

func (s *Service) ListActionPlans(ctx context.Context, f query.ActionPlanFilter) ([]models.ActionPlan, error) {
	plans, err := s.repo.ActionPlans().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(plans, f.Match), nil
}

func (s *Service) GetActionPlan(ctx context.Context, id string) (models.ActionPlan, error) {
	return s.repo.ActionPlans().Get(ctx, id)
}

func (s *Service) CreateActionPlan(ctx context.Context, in models.ActionPlanInput) (models.ActionPlan, error) {
	var out models.ActionPlan
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createActionPlan(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateActionPlan(ctx context.Context, id string, patch models.ActionPlanPatch) (models.ActionPlan, error) {
	var out models.ActionPlan
	err := s.mutate(ctx, func(tx *txn) error {
		a, err := tx.ActionPlans().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&a)
		s.fillActionPlan(&a)
		a.UpdatedAt = s.now()
		if err := models.Validate(a); err != nil {
			return err
		}
		if patch.RelatedRiskIDs != nil {
			if a.RelatedRiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "relatedRiskIds", a.RelatedRiskIDs); err != nil {
				return err
			}
		}
		if patch.RelatedControlIDs != nil {
			if a.RelatedControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "relatedControlIds", a.RelatedControlIDs); err != nil {
				return err
			}
		}
		out = a
		return tx.ActionPlans().Save(ctx, a)
	})
	return out, err
}

func (s *Service) DeleteActionPlan(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return tx.ActionPlans().Delete(ctx, id)
	})
}

// AddComment appends a timestamped comment to the plan.
func (s *Service) AddComment(ctx context.Context, planID string, in models.CommentInput) (models.ActionPlan, error) {
	var out models.ActionPlan
	err := s.mutate(ctx, func(tx *txn) error {
		a, err := tx.ActionPlans().Get(ctx, planID)
		if err != nil {
			return err
		}
		now := s.now()
		a.Comments = append(a.Comments, models.ActionComment{
			ID:        s.newID(),
			Content:   in.Content,
			Author:    in.Author,
			Timestamp: now,
		})
		a.UpdatedAt = now
		if err := models.Validate(a); err != nil {
			return err
		}
		out = a
		return tx.ActionPlans().Save(ctx, a)
	})
	return out, err
}

// UpdateTask changes one task of the plan.
func (s *Service) UpdateTask(ctx context.Context, planID, taskID string, patch models.TaskPatch) (models.ActionPlan, error) {
	var out models.ActionPlan
	err := s.mutate(ctx, func(tx *txn) error {
		a, err := tx.ActionPlans().Get(ctx, planID)
		if err != nil {
			return err
		}
		idx := -1
		for i := range a.Tasks {
			if a.Tasks[i].ID == taskID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return goerr.Wrap(models.ErrNotFound, "task not found", goerr.V("planId", planID), goerr.V("taskId", taskID))
		}

		if patch.Title != nil {
			a.Tasks[idx].Title = *patch.Title
		}
		if patch.Completed != nil {
			a.Tasks[idx].Completed = *patch.Completed
		}
		a.UpdatedAt = s.now()
		if err := models.Validate(a); err != nil {
			return err
		}
		out = a
		return tx.ActionPlans().Save(ctx, a)
	})
	return out, err
}

func (s *Service) createActionPlan(ctx context.Context, tx *txn, in models.ActionPlanInput) (models.ActionPlan, error) {
	a := in.ActionPlan()
	a.ID = s.newID()
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	s.fillActionPlan(&a)
	if err := models.Validate(a); err != nil {
		return a, err
	}

	var err error
	if a.RelatedRiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "relatedRiskIds", a.RelatedRiskIDs); err != nil {
		return a, err
	}
	if a.RelatedControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "relatedControlIds", a.RelatedControlIDs); err != nil {
		return a, err
	}
	return a, tx.ActionPlans().Save(ctx, a)
}

// fillActionPlan mints ids for new tasks and comments.
func (s *Service) fillActionPlan(a *models.ActionPlan) {
	for i := range a.Tasks {
		if a.Tasks[i].ID == "" {
			a.Tasks[i].ID = s.newID()
		}
	}
	for i := range a.Comments {
		if a.Comments[i].ID == "" {
			a.Comments[i].ID = s.newID()
		}
		if a.Comments[i].Timestamp.IsZero() {
			a.Comments[i].Timestamp = s.now()
		}
	}
}

// ---- audit plans

func (s *Service) ListAuditPlans(ctx context.Context, f query.AuditPlanFilter) ([]models.AuditPlan, error) {
	plans, err := s.repo.AuditPlans().List(ctx)
	if err != nil {
		return nil, err
	}
	return query.Filter(plans, f.Match), nil
}

func (s *Service) GetAuditPlan(ctx context.Context, id string) (models.AuditPlan, error) {
	return s.repo.AuditPlans().Get(ctx, id)
}

func (s *Service) CreateAuditPlan(ctx context.Context, in models.AuditPlanInput) (models.AuditPlan, error) {
	var out models.AuditPlan
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createAuditPlan(ctx, tx, in)
		return err
	})
	return out, err
}

func (s *Service) UpdateAuditPlan(ctx context.Context, id string, patch models.AuditPlanPatch) (models.AuditPlan, error) {
	var out models.AuditPlan
	err := s.mutate(ctx, func(tx *txn) error {
		a, err := tx.AuditPlans().Get(ctx, id)
		if err != nil {
			return err
		}
		patch.Apply(&a)
		s.fillAuditPlan(&a)
		a.UpdatedAt = s.now()
		if err := models.Validate(a); err != nil {
			return err
		}
		if patch.RelatedRiskIDs != nil {
			if a.RelatedRiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "relatedRiskIds", a.RelatedRiskIDs); err != nil {
				return err
			}
		}
		if patch.RelatedControlIDs != nil {
			if a.RelatedControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "relatedControlIds", a.RelatedControlIDs); err != nil {
				return err
			}
		}
		out = a
		return tx.AuditPlans().Save(ctx, a)
	})
	return out, err
}

func (s *Service) DeleteAuditPlan(ctx context.Context, id string) error {
	return s.mutate(ctx, func(tx *txn) error {
		return tx.AuditPlans().Delete(ctx, id)
	})
}

// AddFinding records a new finding on the audit plan. Status defaults to
// "Not Started".
func (s *Service) AddFinding(ctx context.Context, planID string, in models.FindingInput) (models.AuditPlan, error) {
	var out models.AuditPlan
	err := s.mutate(ctx, func(tx *txn) error {
		a, err := tx.AuditPlans().Get(ctx, planID)
		if err != nil {
			return err
		}
		status := in.Status
		if status == "" {
			status = models.ActionNotStarted
		}
		now := s.now()
		a.Findings = append(a.Findings, models.AuditFinding{
			ID:               s.newID(),
			Title:            in.Title,
			Description:      in.Description,
			Severity:         in.Severity,
			Recommendation:   in.Recommendation,
			ResponsibleParty: in.ResponsibleParty,
			DueDate:          in.DueDate,
			Status:           status,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
		a.UpdatedAt = now
		if err := models.Validate(a); err != nil {
			return err
		}
		out = a
		return tx.AuditPlans().Save(ctx, a)
	})
	return out, err
}

func (s *Service) createAuditPlan(ctx context.Context, tx *txn, in models.AuditPlanInput) (models.AuditPlan, error) {
	a := in.AuditPlan()
	a.ID = s.newID()
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	s.fillAuditPlan(&a)
	if err := models.Validate(a); err != nil {
		return a, err
	}

	var err error
	if a.RelatedRiskIDs, err = resolveRefs(ctx, tx, tx.Risks(), "relatedRiskIds", a.RelatedRiskIDs); err != nil {
		return a, err
	}
	if a.RelatedControlIDs, err = resolveRefs(ctx, tx, tx.Controls(), "relatedControlIds", a.RelatedControlIDs); err != nil {
		return a, err
	}
	return a, tx.AuditPlans().Save(ctx, a)
}

func (s *Service) fillAuditPlan(a *models.AuditPlan) {
	for i := range a.ChecklistItems {
		if a.ChecklistItems[i].ID == "" {
			a.ChecklistItems[i].ID = s.newID()
		}
	}
	for i := range a.Findings {
		f := &a.Findings[i]
		if f.ID == "" {
			f.ID = s.newID()
		}
		if f.CreatedAt.IsZero() {
			f.CreatedAt = s.now()
		}
		if f.UpdatedAt.IsZero() {
			f.UpdatedAt = f.CreatedAt
		}
	}
}
