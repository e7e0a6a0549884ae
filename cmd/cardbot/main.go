package main

import (
	"context"
	"fmt"
	"os"

	"cardbot/internal/config"
	"cardbot/internal/database"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	var (
		debugMode bool
		logger    *zap.Logger
	)

	rootCommand := &cobra.Command{
		Use:           "cardbot",
		Short:         "Telegram bot for English vocabulary flashcards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(debugMode)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCommand.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	getLogger := func() *zap.Logger { return logger }

	serveCommand := newServeCommand(getLogger)
	rootCommand.RunE = serveCommand.RunE
	rootCommand.AddCommand(
		serveCommand,
		newMigrateCommand(getLogger),
		newSeedCommand(getLogger),
	)

	if err := rootCommand.Execute(); err != nil {
		// Flag errors happen before the logger exists
		if logger == nil {
			fmt.Fprintf(os.Stderr, "cardbot: %v\n", err)
		} else {
			logFailure(logger, err)
		}
		os.Exit(1)
	}
}

// logFailure records a failed command and flushes the logger
func logFailure(logger *zap.Logger, err error) {
	logger.Error("Command failed", zap.Error(err))
	_ = logger.Sync()
}

func newLogger(debugMode bool) (*zap.Logger, error) {
	if debugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// openDatabase loads config, connects and applies migrations
func openDatabase(ctx context.Context, logger *zap.Logger) (*config.Config, *sqlx.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger.Info("Configuration loaded successfully")

	db, err := database.Connect(ctx, cfg.DSN(), logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Database connection established")

	if err := database.Migrate(db, cfg.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	return cfg, db, nil
}
