package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"grcwalk/internal/config"
	"grcwalk/internal/models"
	"grcwalk/internal/repository"
	"grcwalk/internal/repository/memory"
)

// Connect builds the repository selected by cfg.DBDriver.
func Connect(ctx context.Context, cfg *config.Config) (repository.Repository, error) {
	switch cfg.DBDriver {
	case config.DriverMemory:
		slog.Info("using in-memory store")
		return memory.New(), nil
	case config.DriverPostgres:
		db, err := Open(ctx, cfg.DBDSN, cfg.DBConnectAttempts)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			return nil, err
		}
		return New(db), nil
	default:
		return nil, goerr.New("unsupported DB driver", goerr.V("driver", cfg.DBDriver))
	}
}

// Open connects to PostgreSQL, retrying while the database starts up.
func Open(ctx context.Context, dsn string, maxAttempts int) (*gorm.DB, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= maxAttempts; i++ {
		slog.Info("trying to connect to DB", "attempt", i, "max_attempts", maxAttempts)

		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			slog.Info("connected to DB successfully")
			return db, nil
		}

		slog.Warn("failed to connect to DB", "error", err)
		if i == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "DB connect cancelled")
		case <-time.After(2 * time.Second):
		}
	}

	return nil, goerr.Wrap(err, "failed to connect to DB", goerr.V("attempts", maxAttempts))
}

// Migrate creates entity and junction tables.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Risk{},
		&models.Control{},
		&models.RiskFactor{},
		&models.Consequence{},
		&models.BowTieRelationship{},
		&models.ComplianceRequirement{},
		&models.ActionPlan{},
		&models.AuditPlan{},
		&models.Vendor{},
		&models.User{},

		// связи многие-ко-многим
		&RiskControl{},
		&RiskFactorRisk{},
		&ConsequenceRisk{},
		&BowTieFactor{},
		&BowTieConsequence{},
		&ComplianceControl{},
		&ActionPlanRisk{},
		&ActionPlanControl{},
		&AuditPlanRisk{},
		&AuditPlanControl{},
		&VendorRisk{},
		&VendorControl{},
	)
	if err != nil {
		return goerr.Wrap(err, "failed to migrate")
	}
	return nil
}
