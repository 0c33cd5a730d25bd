package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
)

func TestCollectionCRUD(t *testing.T) {
	ctx := context.Background()
	repo := New()
	risks := repo.Risks()

	require.NoError(t, risks.Save(ctx, models.Risk{ID: "r1", Name: "A", ControlIDs: []string{"c1"}}))
	require.NoError(t, risks.Save(ctx, models.Risk{ID: "r2", Name: "B"}))

	got, err := risks.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)

	// изменение полученной копии не трогает хранилище
	got.ControlIDs[0] = "changed"
	again, err := risks.Get(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, again.ControlIDs)

	require.NoError(t, risks.Save(ctx, models.Risk{ID: "r1", Name: "A2"}))
	list, err := risks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A2", list[0].Name)
	assert.Equal(t, "r2", list[1].ID)

	require.NoError(t, risks.Delete(ctx, "r1"))
	_, err = risks.Get(ctx, "r1")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, risks.Delete(ctx, "r1"), models.ErrNotFound)

	assert.Error(t, risks.Save(ctx, models.Risk{Name: "no id"}))
}

func TestListIsNeverNil(t *testing.T) {
	list, err := New().Vendors().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestTransactionRollback(t *testing.T) {
	ctx := context.Background()
	repo := New()
	require.NoError(t, repo.Controls().Save(ctx, models.Control{ID: "c1", Name: "MFA"}))

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx repository.Repository) error {
		require.NoError(t, tx.Controls().Save(ctx, models.Control{ID: "c2", Name: "Backup"}))
		require.NoError(t, tx.Controls().Delete(ctx, "c1"))
		require.NoError(t, tx.Risks().Save(ctx, models.Risk{ID: "r1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	controls, err := repo.Controls().List(ctx)
	require.NoError(t, err)
	require.Len(t, controls, 1)
	assert.Equal(t, "c1", controls[0].ID)

	risks, err := repo.Risks().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, risks)
}

func TestTransactionCommit(t *testing.T) {
	ctx := context.Background()
	repo := New()

	err := repo.Transaction(ctx, func(tx repository.Repository) error {
		// вложенная транзакция выполняется в рамках внешней
		return tx.Transaction(ctx, func(inner repository.Repository) error {
			return inner.Users().Save(ctx, models.User{ID: "u1", Username: "admin"})
		})
	})
	require.NoError(t, err)

	u, err := repo.Users().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Username)
}

func TestFindByUsername(t *testing.T) {
	ctx := context.Background()
	repo := New()
	users := repo.Users()

	require.NoError(t, users.Save(ctx, models.User{ID: "u1", Username: "alice", Role: models.RoleViewer}))
	require.NoError(t, users.Save(ctx, models.User{ID: "u2", Username: "bob", Role: models.RoleAnalyst}))

	u, err := users.FindByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "u2", u.ID)

	_, err = users.FindByUsername(ctx, "carol")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// переименование убирает старое имя из индекса
	require.NoError(t, users.Save(ctx, models.User{ID: "u1", Username: "alicia", Role: models.RoleViewer}))
	_, err = users.FindByUsername(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrNotFound)
	u, err = users.FindByUsername(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, users.Delete(ctx, "u2"))
	_, err = users.FindByUsername(ctx, "bob")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, users.Delete(ctx, "u2"), models.ErrNotFound)

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alicia", list[0].Username)
}

func TestUsernameIndexIsRolledBack(t *testing.T) {
	ctx := context.Background()
	repo := New()

	boom := errors.New("boom")
	err := repo.Transaction(ctx, func(tx repository.Repository) error {
		require.NoError(t, tx.Users().Save(ctx, models.User{ID: "u1", Username: "admin"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.Users().FindByUsername(ctx, "admin")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
