package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grcwalk/internal/models"
	"grcwalk/internal/repository"
)

var errRollback = errors.New("rollback")

// withRepository runs fn inside a transaction that is always rolled back,
// so the test database stays clean.
func withRepository(t *testing.T, fn func(t *testing.T, repo repository.Repository)) {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	db, err := Open(ctx, dsn, 1)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	err = New(db).Transaction(ctx, func(tx repository.Repository) error {
		fn(t, tx)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
}

func TestRepositoryRiskControlLinks(t *testing.T) {
	withRepository(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		risk := models.RiskInput{Name: "Data Breach", Description: "Leak", Category: "Cyber", Likelihood: 3, Impact: 5}.Risk()
		risk.ID = "01900000-0000-7000-8000-000000000001"
		control := models.Control{
			ID: "01900000-0000-7000-8000-000000000002", Name: "MFA",
			Type: models.ControlPreventive, Status: models.ControlImplemented, Effectiveness: 4,
			RiskIDs: []string{risk.ID},
		}

		require.NoError(t, repo.Risks().Save(ctx, risk))
		require.NoError(t, repo.Controls().Save(ctx, control))

		// связь записана из меры и видна со стороны риска
		got, err := repo.Risks().Get(ctx, risk.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{control.ID}, got.ControlIDs)
		assert.Equal(t, models.LevelCritical, got.Level)

		control.RiskIDs = []string{}
		require.NoError(t, repo.Controls().Save(ctx, control))
		got, err = repo.Risks().Get(ctx, risk.ID)
		require.NoError(t, err)
		assert.Empty(t, got.ControlIDs)
		assert.NotNil(t, got.ControlIDs)

		require.NoError(t, repo.Risks().Delete(ctx, risk.ID))
		_, err = repo.Risks().Get(ctx, risk.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
		assert.ErrorIs(t, repo.Risks().Delete(ctx, risk.ID), models.ErrNotFound)
	})
}

func TestRepositoryJSONColumns(t *testing.T) {
	withRepository(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		plan := models.ActionPlan{
			ID: "01900000-0000-7000-8000-000000000010", Title: "Patch", Status: models.ActionInProgress,
			Priority: models.LevelHigh, Progress: 50,
			Tasks:             []models.ActionTask{{ID: "t1", Title: "Inventory", Completed: true}},
			Comments:          []models.ActionComment{},
			RelatedRiskIDs:    []string{"01900000-0000-7000-8000-000000000011"},
			RelatedControlIDs: []string{},
		}
		require.NoError(t, repo.ActionPlans().Save(ctx, plan))

		list, err := repo.ActionPlans().List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, plan.Tasks, list[0].Tasks)
		assert.Equal(t, plan.RelatedRiskIDs, list[0].RelatedRiskIDs)
		assert.Empty(t, list[0].RelatedControlIDs)
	})
}

func TestRepositoryUsers(t *testing.T) {
	withRepository(t, func(t *testing.T, repo repository.Repository) {
		ctx := context.Background()

		u := models.User{ID: "01900000-0000-7000-8000-000000000020", Username: "auditor", PasswordHash: "x", Role: models.RoleViewer}
		require.NoError(t, repo.Users().Save(ctx, u))

		u.Role = models.RoleAnalyst
		require.NoError(t, repo.Users().Save(ctx, u))

		got, err := repo.Users().Get(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAnalyst, got.Role)

		_, err = repo.Users().Get(ctx, "missing")
		assert.ErrorIs(t, err, models.ErrNotFound)

		found, err := repo.Users().FindByUsername(ctx, "auditor")
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
		assert.Equal(t, models.RoleAnalyst, found.Role)

		_, err = repo.Users().FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
