package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/parlourcover/parlour/internal/infrastructure/migration"
	"github.com/parlourcover/parlour/internal/interfaces/cli/bootstrap"
)

const scriptsDir = "./internal/infrastructure/migration/scripts"

var (
	env        string
	configPath string
	name       string
	steps      int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending migrations. SQLite databases are migrated from the gorm models instead of SQL scripts.`,
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new SQL migration for the configured driver",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Open(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Log.Infow("running up migrations", "environment", env, "driver", rt.Config.Database.Driver)

	if err := migration.Run(rt.DB, rt.Config.Database.Driver, rt.Log); err != nil {
		rt.Log.Errorw("migration failed", "error", err)
		return err
	}

	rt.Log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Open(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	strategy, err := migration.NewGooseStrategy(rt.Config.Database.Driver, rt.Log)
	if err != nil {
		return fmt.Errorf("down migration is only supported for SQL script drivers: %w", err)
	}

	rt.Log.Infow("running down migrations", "environment", env, "steps", steps)

	if err := strategy.MigrateDown(rt.DB, steps); err != nil {
		rt.Log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	rt.Log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := bootstrap.Open(env, configPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	strategy, err := migration.NewGooseStrategy(rt.Config.Database.Driver, rt.Log)
	if err != nil {
		return fmt.Errorf("status check is only supported for SQL script drivers: %w", err)
	}

	version, err := strategy.GetVersion(rt.DB)
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	fmt.Printf("\nMigration Status:\n")
	fmt.Printf("  Environment:     %s\n", env)
	fmt.Printf("  Driver:          %s\n", rt.Config.Database.Driver)
	fmt.Printf("  Current Version: %d\n", version)

	if err := strategy.Status(rt.DB); err != nil {
		return fmt.Errorf("failed to get detailed status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}

	driver := cfg.Database.Driver
	if driver == "sqlite" {
		return fmt.Errorf("sqlite schemas come from the gorm models; create scripts for mysql or postgres")
	}

	dir, err := filepath.Abs(filepath.Join(scriptsDir, driver))
	if err != nil {
		return fmt.Errorf("failed to resolve scripts path: %w", err)
	}

	goose.SetSequential(true)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		log.Errorw("failed to create migration", "error", err)
		return fmt.Errorf("failed to create migration: %w", err)
	}

	log.Infow("migration created", "name", name, "dir", dir)
	return nil
}
