// Package memory is an in-process implementation of repository.Repository.
// Data lives for the lifetime of the process.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
)

type entity[T any] interface {
	GetID() string
	Clone() T
}

// table keeps items in insertion order.
type table[T entity[T]] struct {
	items map[string]T
	order []string
}

func newTable[T entity[T]]() *table[T] {
	return &table[T]{items: make(map[string]T)}
}

func (t *table[T]) clone() *table[T] {
	c := &table[T]{
		items: make(map[string]T, len(t.items)),
		order: slices.Clone(t.order),
	}
	for id, v := range t.items {
		c.items[id] = v.Clone()
	}
	return c
}

type state struct {
	risks        *table[models.Risk]
	controls     *table[models.Control]
	factors      *table[models.RiskFactor]
	consequences *table[models.Consequence]
	bowties      *table[models.BowTieRelationship]
	compliance   *table[models.ComplianceRequirement]
	actionPlans  *table[models.ActionPlan]
	auditPlans   *table[models.AuditPlan]
	vendors      *table[models.Vendor]
	users        *table[models.User]
	// username -> id
	usernames    map[string]string
}

func newState() *state {
	return &state{
		risks:        newTable[models.Risk](),
		controls:     newTable[models.Control](),
		factors:      newTable[models.RiskFactor](),
		consequences: newTable[models.Consequence](),
		bowties:      newTable[models.BowTieRelationship](),
		compliance:   newTable[models.ComplianceRequirement](),
		actionPlans:  newTable[models.ActionPlan](),
		auditPlans:   newTable[models.AuditPlan](),
		vendors:      newTable[models.Vendor](),
		users:        newTable[models.User](),
		usernames:    make(map[string]string),
	}
}

func (s *state) clone() *state {
	return &state{
		risks:        s.risks.clone(),
		controls:     s.controls.clone(),
		factors:      s.factors.clone(),
		consequences: s.consequences.clone(),
		bowties:      s.bowties.clone(),
		compliance:   s.compliance.clone(),
		actionPlans:  s.actionPlans.clone(),
		auditPlans:   s.auditPlans.clone(),
		vendors:      s.vendors.clone(),
		users:        s.users.clone(),
		usernames:    maps.Clone(s.usernames),
	}
}

type Repository struct {
	mu   *sync.RWMutex
	st   *state
	inTx bool
}

var _ repository.Repository = (*Repository)(nil)

func New() *Repository {
	return &Repository{
		mu: &sync.RWMutex{},
		st: newState(),
	}
}

// внутри транзакции блокировка уже захвачена
func (r *Repository) rlock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

func (r *Repository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

// Transaction snapshots the whole store and restores it if fn fails.
func (r *Repository) Transaction(ctx context.Context, fn func(tx repository.Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.st.clone()
	tx := &Repository{mu: r.mu, st: r.st, inTx: true}
	if err := fn(tx); err != nil {
		*r.st = *snapshot
		return err
	}
	return nil
}

func (r *Repository) Risks() repository.Collection[models.Risk] {
	return &collection[models.Risk]{repo: r, kind: "risk", pick: func(s *state) *table[models.Risk] { return s.risks }}
}

func (r *Repository) Controls() repository.Collection[models.Control] {
	return &collection[models.Control]{repo: r, kind: "control", pick: func(s *state) *table[models.Control] { return s.controls }}
}

func (r *Repository) RiskFactors() repository.Collection[models.RiskFactor] {
	return &collection[models.RiskFactor]{repo: r, kind: "risk factor", pick: func(s *state) *table[models.RiskFactor] { return s.factors }}
}

func (r *Repository) Consequences() repository.Collection[models.Consequence] {
	return &collection[models.Consequence]{repo: r, kind: "consequence", pick: func(s *state) *table[models.Consequence] { return s.consequences }}
}

func (r *Repository) BowTies() repository.Collection[models.BowTieRelationship] {
	return &collection[models.BowTieRelationship]{repo: r, kind: "bow-tie relationship", pick: func(s *state) *table[models.BowTieRelationship] { return s.bowties }}
}

func (r *Repository) Compliance() repository.Collection[models.ComplianceRequirement] {
	return &collection[models.ComplianceRequirement]{repo: r, kind: "compliance requirement", pick: func(s *state) *table[models.ComplianceRequirement] { return s.compliance }}
}

func (r *Repository) ActionPlans() repository.Collection[models.ActionPlan] {
	return &collection[models.ActionPlan]{repo: r, kind: "action plan", pick: func(s *state) *table[models.ActionPlan] { return s.actionPlans }}
}

func (r *Repository) AuditPlans() repository.Collection[models.AuditPlan] {
	return &collection[models.AuditPlan]{repo: r, kind: "audit plan", pick: func(s *state) *table[models.AuditPlan] { return s.auditPlans }}
}

func (r *Repository) Vendors() repository.Collection[models.Vendor] {
	return &collection[models.Vendor]{repo: r, kind: "vendor", pick: func(s *state) *table[models.Vendor] { return s.vendors }}
}

func (r *Repository) Users() repository.UserCollection {
	return &users{collection[models.User]{repo: r, kind: "user", pick: func(s *state) *table[models.User] { return s.users }}}
}

type collection[T entity[T]] struct {
	repo *Repository
	kind string
	pick func(*state) *table[T]
}

func (c *collection[T]) List(ctx context.Context) ([]T, error) {
	unlock := c.repo.rlock()
	defer unlock()

	t := c.pick(c.repo.st)
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.items[id].Clone())
	}
	return out, nil
}

func (c *collection[T]) Get(ctx context.Context, id string) (T, error) {
	unlock := c.repo.rlock()
	defer unlock()

	item, ok := c.pick(c.repo.st).items[id]
	if !ok {
		var zero T
		return zero, goerr.Wrap(models.ErrNotFound, c.kind+" not found", goerr.V("id", id))
	}
	return item.Clone(), nil
}

func (c *collection[T]) Save(ctx context.Context, v T) error {
	id := v.GetID()
	if id == "" {
		return goerr.New("cannot save "+c.kind+" without id", goerr.V("kind", c.kind))
	}

	unlock := c.repo.lock()
	defer unlock()

	t := c.pick(c.repo.st)
	if _, exists := t.items[id]; !exists {
		t.order = append(t.order, id)
	}
	t.items[id] = v.Clone()
	return nil
}

func (c *collection[T]) Delete(ctx context.Context, id string) error {
	unlock := c.repo.lock()
	defer unlock()

	t := c.pick(c.repo.st)
	if _, exists := t.items[id]; !exists {
		return goerr.Wrap(models.ErrNotFound, c.kind+" not found", goerr.V("id", id))
	}
	delete(t.items, id)
	t.order = slices.DeleteFunc(t.order, func(s string) bool { return s == id })
	return nil
}

// users keeps the username index in step with the users table.
type users struct {
	collection[models.User]
}

func (u *users) FindByUsername(ctx context.Context, username string) (models.User, error) {
	unlock := u.repo.rlock()
	defer unlock()

	st := u.repo.st
	if id, ok := st.usernames[username]; ok {
		return st.users.items[id].Clone(), nil
	}
	return models.User{}, goerr.Wrap(models.ErrNotFound, "user not found", goerr.V("username", username))
}

func (u *users) Save(ctx context.Context, v models.User) error {
	if v.ID == "" {
		return goerr.New("cannot save user without id", goerr.V("kind", u.kind))
	}

	unlock := u.repo.lock()
	defer unlock()

	st := u.repo.st
	if old, exists := st.users.items[v.ID]; exists {
		delete(st.usernames, old.Username)
	} else {
		st.users.order = append(st.users.order, v.ID)
	}
	st.users.items[v.ID] = v.Clone()
	st.usernames[v.Username] = v.ID
	return nil
}

func (u *users) Delete(ctx context.Context, id string) error {
	unlock := u.repo.lock()
	defer unlock()

	st := u.repo.st
	old, exists := st.users.items[id]
	if !exists {
		return goerr.Wrap(models.ErrNotFound, "user not found", goerr.V("id", id))
	}
	delete(st.users.items, id)
	delete(st.usernames, old.Username)
	st.users.order = slices.DeleteFunc(st.users.order, func(s string) bool { return s == id })
	return nil
}
