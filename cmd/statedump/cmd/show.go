package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ndewijer/Sun-Circumference-Backend/internal/model"
	"github.com/ndewijer/Sun-Circumference-Backend/internal/service"
)

var outputFormat string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted record of each mode",
	RunE:  runShow,
}

func init() {
	registerShowFlags(showCmd)
	rootCmd.AddCommand(showCmd)
}

func registerShowFlags(c *cobra.Command) {
	c.Flags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json or yaml)")
}

// Entry is the printed view of one mode.
type Entry struct {
	Key            string    `json:"key" yaml:"key"`
	Present        bool      `json:"present" yaml:"present"`
	Pi             string    `json:"pi,omitempty" yaml:"pi,omitempty"`
	IterationCount int       `json:"iterationCount" yaml:"iterationCount"`
	UpdatedAt      time.Time `json:"updatedAt,omitzero" yaml:"updatedAt,omitempty"`
	InstanceID     string    `json:"instanceId,omitempty" yaml:"instanceId,omitempty"`
	Error          string    `json:"error,omitempty" yaml:"error,omitempty"`
}

func runShow(cmd *cobra.Command, _ []string) error {
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

	return render(cmd.OutOrStdout(), outputFormat, collect(ctx, store, modes))
}

// collect reads the record of every mode. A record that cannot be read or
// decoded is reported in its entry rather than aborting the dump.
func collect(ctx context.Context, store service.StateStore, modes []model.Mode) map[model.Mode]Entry {
	entries := make(map[model.Mode]Entry, len(modes))
	for _, mode := range modes {
		entry := Entry{Key: mode.StoreKey()}

		record, err := store.Get(ctx, mode.StoreKey())
		switch {
		case err != nil:
			entry.Error = err.Error()
		case record != nil:
			entry.Present = true
			entry.Pi = record.Pi
			entry.IterationCount = record.IterationCount
			entry.UpdatedAt = record.UpdatedAt
			entry.InstanceID = record.InstanceID
		}
		entries[mode] = entry
	}
	return entries
}

func render(w io.Writer, format string, entries map[model.Mode]Entry) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(entries)
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
