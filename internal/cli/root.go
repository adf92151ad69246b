package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wordbook/internal/buildinfo"
	"github.com/dmitrijs2005/wordbook/internal/config"
	"github.com/dmitrijs2005/wordbook/internal/logging"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Flags  config.Flags
	Format string // "text" | "json" | "yaml"
}

// NewRootCommand creates the root command. Without a subcommand it starts
// the REPL.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wordbook",
		Short: "wordbook - a vocabulary notebook",
		Long: `A personal English-Turkish vocabulary notebook.

Words are kept in sets, sets in days. Everything lives in one local
SQLite file; backups go to a directory or an S3 bucket.`,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the error
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	opts.Flags.Register(cmd.PersistentFlags())
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewReplCommand(opts))
	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewEnrichCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive notebook (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, rootOpts)
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

func runInteractive(cmd *cobra.Command, opts *RootOptions) error {
	return withApp(cmd, opts, func(ctx context.Context, a *App) error {
		if err := a.restore(ctx); err != nil {
			return err
		}
		printlnFn("Welcome to wordbook (type 'help' for commands)")
		runREPL(ctx, a, a.status, a.reader)
		return nil
	})
}

// withApp loads the configuration, opens the App for the duration of fn and
// closes it afterwards.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(context.Context, *App) error) error {
	cfg, err := opts.Flags.Load(cmd.Flags())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	a, err := NewApp(ctx, cfg, log, cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn(ctx, "failed to close database", "err", err)
		}
	}()

	return fn(ctx, a)
}
