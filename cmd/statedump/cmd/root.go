// Package cmd implements statedump, an operator tool for inspecting and
// resetting the persisted convergence state of each mode.
package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/config"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/database"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/repository"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/validation"
)

var (
	dbPath   string
	modeFlag string
)

var rootCmd = &cobra.Command{
	Use:   "statedump",
	Short: "Inspect persisted π convergence state",
	Long: `statedump reads the kv_store table of the sun circumference backend
and prints the persisted record of each mode.

The database path and encryption key are taken from the same environment
variables (and .env file) the server uses; --db overrides DB_PATH.`,
	SilenceUsage: true,
	RunE:         runShow,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: DB_PATH)")
	rootCmd.PersistentFlags().StringVarP(&modeFlag, "mode", "m", "", "Restrict to one mode (efficient or optimized)")
	registerShowFlags(rootCmd)
}

// selectedModes resolves --mode into the modes a command operates on.
func selectedModes() ([]model.Mode, error) {
	if modeFlag == "" {
		return model.Modes, nil
	}
	mode, err := validation.ValidateMode(modeFlag)
	if err != nil {
		return nil, err
	}
	return []model.Mode{mode}, nil
}

// openStore opens the configured database and returns a repository on it.
// The caller closes the returned database.
func openStore() (*sql.DB, *repository.StateRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	path := cfg.Database.Path
	if dbPath != "" {
		path = dbPath
	}
	if _, err := os.Stat(path); err != nil {
		return nil, nil, fmt.Errorf("database %s not found: %w", path, err)
	}

	db, err := database.Open(path)
	if err != nil {
		return nil, nil, err
	}

	codec, err := repository.NewStateCodec(cfg.State.EncryptionKey)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	return db, repository.NewStateRepository(db, codec), nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
