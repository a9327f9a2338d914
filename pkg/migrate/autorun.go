package migrate

import (
	"context"
	"fmt"

	"github.com/bookhaven/bookhaven-backend/pkg/config"
	"github.com/bookhaven/bookhaven-backend/pkg/db"
	"github.com/bookhaven/bookhaven-backend/pkg/db/models"
	"github.com/bookhaven/bookhaven-backend/pkg/logger"
)

// MaybeRunDev builds the schema automatically when the app is running in
// dev mode and the feature flag is enabled. Postgres goes through the
// goose migration files; sqlite derives the schema from the GORM models,
// since the migration SQL is postgres-specific.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.DB.Driver == "sqlite" {
		ctx = logg.WithField(ctx, "driver", cfg.DB.Driver)
		logg.Info(ctx, "auto-migrating sqlite schema from models")
		if err := AutoMigrateModels(client); err != nil {
			return fmt.Errorf("auto-migrating sqlite schema: %w", err)
		}
		logg.Info(ctx, "sqlite schema up to date")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running Goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, cfg.DB.Driver, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}

// AutoMigrateModels creates or updates every table straight from the GORM
// models. This is the sqlite schema path.
func AutoMigrateModels(client *db.Client) error {
	return client.DB().AutoMigrate(
		&models.Book{},
		&models.Order{},
		&models.FAQ{},
		&models.Announcement{},
		&models.Article{},
		&models.Contact{},
		&models.Review{},
		&models.User{},
	)
}
