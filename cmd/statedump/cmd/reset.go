package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the persisted record with the initial state",
	Long: `Writes the (3, 0) initial state for the selected modes directly to the
database. Running servers pick it up on their next request for that mode
unless they hold an unflushed write of their own.`,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	modes, err := selectedModes()
	if err != nil {
		printError("invalid mode", err)
		return err
	}

	db, store, err := openStore()
	if err != nil {
		printError("cannot open state store", err)
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	if err := resetModes(ctx, store, modes, time.Now().UTC()); err != nil {
		printError("reset failed", err)
		return err
	}
	for _, mode := range modes {
		fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", mode.StoreKey())
	}
	return nil
}

func resetModes(ctx context.Context, store service.StateStore, modes []model.Mode, now time.Time) error {
	initial := model.InitialState()
	for _, mode := range modes {
		record := model.PersistedState{
			Pi:             initial.Approximation.String(),
			IterationCount: initial.IterationCount,
			UpdatedAt:      now,
			InstanceID:     "statedump",
		}
		if err := store.Set(ctx, mode.StoreKey(), record); err != nil {
			return fmt.Errorf("failed to reset %s: %w", mode, err)
		}
	}
	return nil
}
