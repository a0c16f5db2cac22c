package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/templui/goaltracker/internal/app"
	"github.com/templui/goaltracker/internal/db"
	"github.com/templui/goaltracker/internal/model"
	"github.com/templui/goaltracker/internal/repository"
	"github.com/templui/goaltracker/internal/service"
	"github.com/templui/goaltracker/internal/storage"
)

// Export is the document printed by `do export`
type Export struct {
	Goals       []model.Goal      `json:"goals"`
	Preferences model.Preferences `json:"preferences"`
}

func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the stored goals and preferences as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(cmd.Context(), func(ctx context.Context, s storage.Storage, keys repository.Keys) error {
				return exportRecords(ctx, cmd.OutOrStdout(), s, keys)
			})
		},
	}
}

func ResetCmd() *cobra.Command {
	var yes bool

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Delete all goals and preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("%w: pass --yes to delete all goals", service.ErrNotConfirmed)
			}
			return withStorage(cmd.Context(), func(ctx context.Context, s storage.Storage, keys repository.Keys) error {
				err := resetRecords(ctx, s, keys)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "all records deleted")
				return nil
			})
		},
	}

	reset.Flags().BoolVar(&yes, "yes", false, "confirm deleting every record")
	return reset
}

func withStorage(ctx context.Context, fn func(context.Context, storage.Storage, repository.Keys) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := loadConfig()
	conn, s, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	return fn(ctx, s, repository.Keys{Prefix: cfg.StorageKey})
}

// exportRecords writes what the tracker would load: unreadable records come out as defaults
func exportRecords(ctx context.Context, w io.Writer, s storage.Storage, keys repository.Keys) error {
	goals := repository.NewGoalRepository(s, keys)
	prefs := repository.NewPreferenceRepository(s, keys)

	var out Export
	var errs []error
	var err error

	out.Goals, err = goals.Goals(ctx)
	errs = append(errs, err)
	out.Preferences.View, err = prefs.View(ctx)
	errs = append(errs, err)
	out.Preferences.Labs, err = prefs.Labs(ctx)
	errs = append(errs, err)
	out.Preferences.Theme, err = prefs.Theme(ctx)
	errs = append(errs, err)

	if err := errors.Join(errs...); err != nil {
		slog.Warn("some records could not be read", "error", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func resetRecords(ctx context.Context, s storage.Storage, keys repository.Keys) error {
	goals := repository.NewGoalRepository(s, keys)
	prefs := repository.NewPreferenceRepository(s, keys)

	return errors.Join(goals.Clear(ctx), prefs.Clear(ctx))
}
