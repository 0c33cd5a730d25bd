package database

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
)

// Repository stores entities in PostgreSQL through gorm. Reference sets live
// in junction tables and are rewritten on every Save.
type Repository struct {
	db *gorm.DB
}

var _ repository.Repository = (*Repository)(nil)

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func (r *Repository) Risks() repository.Collection[models.Risk] {
	return &table[models.Risk]{db: r.db, kind: "risk", links: []link[models.Risk]{
		{
			model: &RiskControl{}, table: "risk_controls", ownerCol: "risk_id", targetCol: "control_id",
			get: func(v *models.Risk) []string { return v.ControlIDs },
			set: func(v *models.Risk, ids []string) { v.ControlIDs = ids },
		},
	}}
}

func (r *Repository) Controls() repository.Collection[models.Control] {
	return &table[models.Control]{db: r.db, kind: "control", links: []link[models.Control]{
		{
			model: &RiskControl{}, table: "risk_controls", ownerCol: "control_id", targetCol: "risk_id",
			get: func(v *models.Control) []string { return v.RiskIDs },
			set: func(v *models.Control, ids []string) { v.RiskIDs = ids },
		},
	}}
}

func (r *Repository) RiskFactors() repository.Collection[models.RiskFactor] {
	return &table[models.RiskFactor]{db: r.db, kind: "risk factor", links: []link[models.RiskFactor]{
		{
			model: &RiskFactorRisk{}, table: "risk_factor_risks", ownerCol: "risk_factor_id", targetCol: "risk_id",
			get: func(v *models.RiskFactor) []string { return v.RiskIDs },
			set: func(v *models.RiskFactor, ids []string) { v.RiskIDs = ids },
		},
	}}
}

func (r *Repository) Consequences() repository.Collection[models.Consequence] {
	return &table[models.Consequence]{db: r.db, kind: "consequence", links: []link[models.Consequence]{
		{
			model: &ConsequenceRisk{}, table: "consequence_risks", ownerCol: "consequence_id", targetCol: "risk_id",
			get: func(v *models.Consequence) []string { return v.RiskIDs },
			set: func(v *models.Consequence, ids []string) { v.RiskIDs = ids },
		},
	}}
}

func (r *Repository) BowTies() repository.Collection[models.BowTieRelationship] {
	return &table[models.BowTieRelationship]{db: r.db, kind: "bow-tie relationship", links: []link[models.BowTieRelationship]{
		{
			model: &BowTieFactor{}, table: "bowtie_factors", ownerCol: "bowtie_id", targetCol: "factor_id",
			get: func(v *models.BowTieRelationship) []string { return v.FactorIDs },
			set: func(v *models.BowTieRelationship, ids []string) { v.FactorIDs = ids },
		},
		{
			model: &BowTieConsequence{}, table: "bowtie_consequences", ownerCol: "bowtie_id", targetCol: "consequence_id",
			get: func(v *models.BowTieRelationship) []string { return v.ConsequenceIDs },
			set: func(v *models.BowTieRelationship, ids []string) { v.ConsequenceIDs = ids },
		},
	}}
}

func (r *Repository) Compliance() repository.Collection[models.ComplianceRequirement] {
	return &table[models.ComplianceRequirement]{db: r.db, kind: "compliance requirement", links: []link[models.ComplianceRequirement]{
		{
			model: &ComplianceControl{}, table: "compliance_controls", ownerCol: "requirement_id", targetCol: "control_id",
			get: func(v *models.ComplianceRequirement) []string { return v.ControlIDs },
			set: func(v *models.ComplianceRequirement, ids []string) { v.ControlIDs = ids },
		},
	}}
}

func (r *Repository) ActionPlans() repository.Collection[models.ActionPlan] {
	return &table[models.ActionPlan]{db: r.db, kind: "action plan", links: []link[models.ActionPlan]{
		{
			model: &ActionPlanRisk{}, table: "action_plan_risks", ownerCol: "action_plan_id", targetCol: "risk_id",
			get: func(v *models.ActionPlan) []string { return v.RelatedRiskIDs },
			set: func(v *models.ActionPlan, ids []string) { v.RelatedRiskIDs = ids },
		},
		{
			model: &ActionPlanControl{}, table: "action_plan_controls", ownerCol: "action_plan_id", targetCol: "control_id",
			get: func(v *models.ActionPlan) []string { return v.RelatedControlIDs },
			set: func(v *models.ActionPlan, ids []string) { v.RelatedControlIDs = ids },
		},
	}}
}

func (r *Repository) AuditPlans() repository.Collection[models.AuditPlan] {
	return &table[models.AuditPlan]{db: r.db, kind: "audit plan", links: []link[models.AuditPlan]{
		{
			model: &AuditPlanRisk{}, table: "audit_plan_risks", ownerCol: "audit_plan_id", targetCol: "risk_id",
			get: func(v *models.AuditPlan) []string { return v.RelatedRiskIDs },
			set: func(v *models.AuditPlan, ids []string) { v.RelatedRiskIDs = ids },
		},
		{
			model: &AuditPlanControl{}, table: "audit_plan_controls", ownerCol: "audit_plan_id", targetCol: "control_id",
			get: func(v *models.AuditPlan) []string { return v.RelatedControlIDs },
			set: func(v *models.AuditPlan, ids []string) { v.RelatedControlIDs = ids },
		},
	}}
}

func (r *Repository) Vendors() repository.Collection[models.Vendor] {
	return &table[models.Vendor]{db: r.db, kind: "vendor", links: []link[models.Vendor]{
		{
			model: &VendorRisk{}, table: "vendor_risks", ownerCol: "vendor_id", targetCol: "risk_id",
			get: func(v *models.Vendor) []string { return v.RelatedRiskIDs },
			set: func(v *models.Vendor, ids []string) { v.RelatedRiskIDs = ids },
		},
		{
			model: &VendorControl{}, table: "vendor_controls", ownerCol: "vendor_id", targetCol: "control_id",
			get: func(v *models.Vendor) []string { return v.RelatedControlIDs },
			set: func(v *models.Vendor, ids []string) { v.RelatedControlIDs = ids },
		},
	}}
}

func (r *Repository) Users() repository.UserCollection {
	return &users{table: table[models.User]{db: r.db, kind: "user"}}
}

type users struct {
	table[models.User]
}

func (u *users) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("username = ?", username).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, goerr.Wrap(models.ErrNotFound, "user not found", goerr.V("username", username))
		}
		return user, goerr.Wrap(err, "failed to find user", goerr.V("username", username))
	}
	return user, nil
}

type identified interface {
	GetID() string
}

type table[T identified] struct {
	db    *gorm.DB
	kind  string
	links []link[T]
}

// id — UUIDv7, поэтому сортировка по id совпадает с порядком создания
func (t *table[T]) List(ctx context.Context) ([]T, error) {
	db := t.db.WithContext(ctx)

	items := make([]T, 0)
	if err := db.Order("id asc").Find(&items).Error; err != nil {
		return nil, goerr.Wrap(err, "failed to list "+t.kind+"s")
	}
	if err := t.loadLinks(db, items); err != nil {
		return nil, err
	}
	return items, nil
}

func (t *table[T]) Get(ctx context.Context, id string) (T, error) {
	db := t.db.WithContext(ctx)

	var item T
	if err := db.Where("id = ?", id).Take(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, goerr.Wrap(models.ErrNotFound, t.kind+" not found", goerr.V("id", id))
		}
		return item, goerr.Wrap(err, "failed to get "+t.kind, goerr.V("id", id))
	}

	items := []T{item}
	if err := t.loadLinks(db, items); err != nil {
		return item, err
	}
	return items[0], nil
}

func (t *table[T]) Save(ctx context.Context, v T) error {
	id := v.GetID()
	if id == "" {
		return goerr.New("cannot save "+t.kind+" without id", goerr.V("kind", t.kind))
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&v).Error; err != nil {
			return goerr.Wrap(err, "failed to save "+t.kind, goerr.V("id", id))
		}

		for _, l := range t.links {
			if err := tx.Exec("DELETE FROM "+l.table+" WHERE "+l.ownerCol+" = ?", id).Error; err != nil {
				return goerr.Wrap(err, "failed to clear links", goerr.V("table", l.table), goerr.V("id", id))
			}

			targets := l.get(&v)
			if len(targets) == 0 {
				continue
			}
			rows := make([]map[string]any, 0, len(targets))
			for _, target := range targets {
				rows = append(rows, map[string]any{l.ownerCol: id, l.targetCol: target})
			}
			if err := tx.Model(l.model).Create(rows).Error; err != nil {
				return goerr.Wrap(err, "failed to write links", goerr.V("table", l.table), goerr.V("id", id))
			}
		}
		return nil
	})
}

func (t *table[T]) Delete(ctx context.Context, id string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(new(T))
		if res.Error != nil {
			return goerr.Wrap(res.Error, "failed to delete "+t.kind, goerr.V("id", id))
		}
		if res.RowsAffected == 0 {
			return goerr.Wrap(models.ErrNotFound, t.kind+" not found", goerr.V("id", id))
		}

		for _, l := range t.links {
			if err := tx.Exec("DELETE FROM "+l.table+" WHERE "+l.ownerCol+" = ?", id).Error; err != nil {
				return goerr.Wrap(err, "failed to clear links", goerr.V("table", l.table), goerr.V("id", id))
			}
		}
		return nil
	})
}

// loadLinks fills every reference set of items with one query per junction table.
func (t *table[T]) loadLinks(db *gorm.DB, items []T) error {
	if len(t.links) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.GetID()
	}

	for _, l := range t.links {
		byOwner := make(map[string][]string)
		if len(ids) > 0 {
			var rows []linkRow
			err := db.Table(l.table).
				Select(l.ownerCol+" AS owner_id, "+l.targetCol+" AS target_id").
				Where(l.ownerCol+" IN ?", ids).
				Order(l.targetCol + " asc").
				Scan(&rows).Error
			if err != nil {
				return goerr.Wrap(err, "failed to load links", goerr.V("table", l.table))
			}
			for _, row := range rows {
				byOwner[row.OwnerID] = append(byOwner[row.OwnerID], row.TargetID)
			}
		}

		for i := range items {
			l.set(&items[i], models.CloneIDs(byOwner[items[i].GetID()]))
		}
	}
	return nil
}
