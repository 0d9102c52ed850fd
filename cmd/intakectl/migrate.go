package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bondspire/intake-api/internal/config"
	"github.com/bondspire/intake-api/internal/database"
	"github.com/bondspire/intake-api/internal/logging"
)

var (
	migrateDSN     string
	migratePrint   bool
	migrateTimeout time.Duration
)

func init() {
	migrateCmd.Flags().StringVar(&migrateDSN, "database-url", "", "PostgreSQL DSN (defaults to DATABASE_URL)")
	migrateCmd.Flags().BoolVar(&migratePrint, "print", false, "Print the schema instead of applying it")
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 30*time.Second, "Connection and migration timeout")

	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the intake tables",
	Long: `Create the form_submissions and newsletter_subscriptions tables if they are
missing. The schema is idempotent and safe to run on every deploy.

Examples:
  # Apply against DATABASE_URL
  intakectl migrate

  # Inspect the DDL
  intakectl migrate --print`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if migratePrint {
		fmt.Fprint(cmd.OutOrStdout(), database.Schema())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dsn := migrateDSN
	if dsn == "" {
		dsn = cfg.DatabaseURL
	}

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), migrateTimeout)
	defer cancel()

	pool, err := database.Connect(ctx, dsn, config.DatabasePoolConfig{MaxConns: 1})
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		return err
	}
	logger.Info("schema applied", zap.String("database", pool.Config().ConnConfig.Database))
	return nil
}
