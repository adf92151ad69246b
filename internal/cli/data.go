package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewDumpCommand creates the dump command.
func NewDumpCommand(rootOpts *RootOptions) *cobra.Command {
	var legacy bool

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the whole notebook",
		Long: `Print the stored vault document.

With --legacy the days are printed in the flat one-list-per-day shape
older tools read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *App) error {
				if legacy {
					days, err := a.legacy.ListDays(ctx)
					if err != nil {
						return err
					}
					return writeValue(cmd.OutOrStdout(), rootOpts.Format, days)
				}

				v, err := a.store.Load(ctx)
				if err != nil {
					return err
				}
				return writeValue(cmd.OutOrStdout(), rootOpts.Format, v)
			})
		},
	}

	cmd.Flags().BoolVar(&legacy, "legacy", false, "print days with a single flat word list")
	return cmd
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count days, sets and words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *App) error {
				st, err := a.notebook.Stats(ctx)
				if err != nil {
					return err
				}
				if rootOpts.Format == "text" {
					writeStatsText(cmd.OutOrStdout(), st)
					return nil
				}
				return writeValue(cmd.OutOrStdout(), rootOpts.Format, st)
			})
		},
	}
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *App) error {
				if !yes && !Confirm(a.reader, "This deletes every day, set and word. Continue?", cmd.OutOrStdout()) {
					a.printf("Cancelled\n")
					return nil
				}
				if err := a.store.Reset(ctx); err != nil {
					return err
				}
				a.log.Info(ctx, "vault reset", "db", a.config.DatabasePath)
				a.printf("All data deleted\n")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}
