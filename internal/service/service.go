// Package service keeps the entity store consistent: every create, update
// and delete goes through here so that cross-entity references stay
// symmetric and deletes never leave dangling ids behind.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"grcwalk/internal/repository"
)

type Service struct {
	repo repository.Repository

	// одна мутация за раз; чтение блокировку не берёт
	mu sync.Mutex

	newID      func() string
	now        func() time.Time
	bcryptCost int
}

type Option func(*Service)

// WithIDGenerator replaces UUIDv7 id minting.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(s *Service) { s.now = fn }
}

func WithBcryptCost(cost int) Option {
	return func(s *Service) { s.bcryptCost = cost }
}

func New(repo repository.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		newID:      func() string { return uuid.Must(uuid.NewV7()).String() },
		now:        func() time.Time { return time.Now().UTC() },
		bcryptCost: bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// txn is the repository view a mutation works against.
type txn struct {
	repository.Repository

	// при импорте ссылки на несуществующие id отбрасываются, а не отклоняются
	importing bool
}

// mutate serializes writers and runs fn in one repository transaction.
func (s *Service) mutate(ctx context.Context, fn func(tx *txn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Transaction(ctx, func(tx repository.Repository) error {
		return fn(&txn{Repository: tx})
	})
}
