package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/crypto/bcrypt"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
)

const minPasswordLen = 6

func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.Users().List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id string) (models.User, error) {
	return s.repo.Users().Get(ctx, id)
}

// CreateUser registers an account. Usernames are unique.
func (s *Service) CreateUser(ctx context.Context, in models.UserInput) (models.User, error) {
	var out models.User
	err := s.mutate(ctx, func(tx *txn) (err error) {
		out, err = s.createUser(ctx, tx, in)
		return err
	})
	return out, err
}

// EnsureAdmin creates the bootstrap administrator unless an account with
// that name already exists. An empty password disables bootstrapping.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if password == "" {
		slog.Warn("ADMIN_PASSWORD is not set, skipping admin bootstrap")
		return nil
	}
	return s.mutate(ctx, func(tx *txn) error {
		if _, found, err := findUser(ctx, tx, username); err != nil || found {
			return err
		}
		u, err := s.createUser(ctx, tx, models.UserInput{Username: username, Password: password, Role: models.RoleAdmin})
		if err != nil {
			return err
		}
		slog.Info("admin user created", "username", u.Username)
		return nil
	})
}

// Authenticate checks credentials; any mismatch yields models.ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, found, err := findUser(ctx, s.repo, strings.TrimSpace(username))
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, goerr.Wrap(models.ErrUnauthorized, "unknown user", goerr.V("username", username))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, goerr.Wrap(models.ErrUnauthorized, "wrong password", goerr.V("username", username))
	}
	return u, nil
}

func (s *Service) createUser(ctx context.Context, tx *txn, in models.UserInput) (models.User, error) {
	u := models.User{
		ID:        s.newID(),
		Username:  strings.TrimSpace(in.Username),
		Role:      in.Role,
		CreatedAt: s.now(),
	}
	if u.Role == "" {
		u.Role = models.RoleViewer
	}
	if err := models.Validate(u); err != nil {
		return u, err
	}
	if len(in.Password) < minPasswordLen {
		return u, models.NewValidationError("password must be at least %d characters", minPasswordLen)
	}

	if _, found, err := findUser(ctx, tx, u.Username); err != nil {
		return u, err
	} else if found {
		return u, goerr.Wrap(models.ErrConflict, "username already taken", goerr.V("username", u.Username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return u, goerr.Wrap(err, "failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = u.CreatedAt
	return u, tx.Users().Save(ctx, u)
}

func findUser(ctx context.Context, r repository.Repository, username string) (models.User, bool, error) {
	u, err := r.Users().FindByUsername(ctx, username)
	switch {
	case err == nil:
		return u, true, nil
	case errors.Is(err, models.ErrNotFound):
		return models.User{}, false, nil
	default:
		return models.User{}, false, err
	}
}
