// Package commands holds the cobra command tree of the server binary.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iliyamo/ticket-booking-api/internal/config"
	"github.com/iliyamo/ticket-booking-api/internal/database"
	"github.com/iliyamo/ticket-booking-api/internal/logger"
)

// rootCmd runs the API server when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "ticket-booking-api",
	Short: "Ticket booking REST API",
	Long: `REST service for users, bookings, payments, notifications and admin actions.

Configuration is read from the environment and an optional .env file.
Without DATABASE_URL the service runs on an in-memory SQLite store.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, workerCmd, openapiCmd)
}

// setup loads configuration and builds the logger.  APP_RELOAD raises an
// info level to debug.
func setup() (config.Config, *logrus.Logger) {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if cfg.Reload && log.GetLevel() < logrus.DebugLevel {
		log.SetLevel(logrus.DebugLevel)
	}
	return cfg, log
}

// databaseURL picks the store: DATABASE_URL, then the DB_* MySQL settings
// when DB_HOST is set, then in-memory SQLite.
func databaseURL(cfg config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	if cfg.DBHost != "" {
		return database.MySQLURL(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	return ""
}

// openStore connects and creates any missing tables.
func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (*database.Store, error) {
	store, err := database.Open(ctx, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := database.EnsureSchema(ctx, store); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	log.WithField("dialect", store.Dialect()).Info("store ready")
	return store, nil
}
