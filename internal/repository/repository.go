// Package repository describes the entity store. Two implementations exist:
// repository/memory for development and tests, and database (gorm) for
// PostgreSQL.
package repository

import (
	"context"

	"grcwalk/internal/models"
)

// Collection is one entity table. Save is an upsert keyed by ID and replaces
// the entity's reference sets as a whole. Get and Delete return an error
// wrapping models.ErrNotFound for unknown ids.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}

// UserCollection adds lookup by login name. FindByUsername returns an error
// wrapping models.ErrNotFound when no account has that name.
type UserCollection interface {
	Collection[models.User]
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

type Repository interface {
	Risks() Collection[models.Risk]
	Controls() Collection[models.Control]
	RiskFactors() Collection[models.RiskFactor]
	Consequences() Collection[models.Consequence]
	BowTies() Collection[models.BowTieRelationship]
	Compliance() Collection[models.ComplianceRequirement]
	ActionPlans() Collection[models.ActionPlan]
	AuditPlans() Collection[models.AuditPlan]
	Vendors() Collection[models.Vendor]
	Users() UserCollection

	// Transaction runs fn against a transactional view of the store.
	// If fn returns an error nothing it wrote is kept.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
