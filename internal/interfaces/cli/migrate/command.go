package migrate

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"coursegate/internal/domain/billing"
	"coursegate/internal/domain/entitlement"
	"coursegate/internal/infrastructure/config"
	"coursegate/internal/infrastructure/database"
	"coursegate/internal/infrastructure/persistence/migrations"
	"coursegate/internal/infrastructure/repository"
	"coursegate/internal/shared/errors"
	"coursegate/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending versions, roll back, inspect status, and seed the entitlement catalog.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := migrations.Run(cmd.Context(), db); err != nil {
				return err
			}
			logger.Info("migrations applied")
			return nil
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close(db)

			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("get sql connection: %w", err)
			}
			if err := goose.SetDialect("mysql"); err != nil {
				return err
			}
			if err := goose.DownContext(cmd.Context(), sqlDB, "."); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			logger.Info("rolled back one migration")
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close(db)

			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("get sql connection: %w", err)
			}
			if err := goose.SetDialect("mysql"); err != nil {
				return err
			}
			version, err := goose.GetDBVersionContext(cmd.Context(), sqlDB)
			if err != nil {
				return fmt.Errorf("read migration version: %w", err)
			}
			logger.Info("current migration version", "version", version)
			return nil
		},
	}
}

// newSeedCommand inserts an entitlement definition for every slug in the
// configured price catalog, plus the all-access membership, skipping rows
// that already exist.
func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed entitlement definitions from the price catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := initEnv()
			if err != nil {
				return err
			}
			defer database.Close(db)

			catalog, err := billing.NewCatalog(cfg.Stripe.Prices)
			if err != nil {
				return err
			}

			return seedDefinitions(cmd.Context(), db, catalog.Slugs())
		},
	}
}

func seedDefinitions(ctx context.Context, db *gorm.DB, slugs []string) error {
	repo := repository.NewEntitlementDefinitionRepository(db, logger.NewLogger())

	// The all-access slug is grantable even when no price currently sells it.
	slugs = append(slugs, entitlement.AllAccessSlug)

	for _, slug := range slugs {
		def, err := entitlement.NewDefinition(slug, entitlement.KindForSlug(slug))
		if err != nil {
			return err
		}
		if err := repo.Create(ctx, def); err != nil {
			if errors.IsConflictError(err) {
				logger.Debug("entitlement definition already present", "slug", slug)
				continue
			}
			return err
		}
		logger.Info("seeded entitlement definition", "slug", slug)
	}
	return nil
}

func initEnv() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}
