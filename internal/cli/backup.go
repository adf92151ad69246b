package cli

import (
	"context"

	"github.com/spf13/cobra"
)

type backupOptions struct {
	passphrase string
	seal       bool
	remote     bool
}

func (o *backupOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.passphrase, "passphrase", "", "passphrase of a sealed backup")
	cmd.Flags().BoolVar(&o.remote, "s3", false, "use the configured S3 bucket instead of the backup directory")
}

// secret returns the passphrase from the flag, or asks for it with --seal.
func (o *backupOptions) secret(a *App) (string, error) {
	if o.passphrase != "" || !o.seal {
		return o.passphrase, nil
	}
	return GetPassphrase(a.reader, "Passphrase", a.out)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &backupOptions{}
	var label string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a backup of the notebook",
		Long: `Write the whole notebook to a backup file named
kelime-defterim-backup-<date>[-<label>].json.

Plain backups are readable JSON. With a passphrase the file is sealed
with AES-256-GCM under an argon2id-derived key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *App) error {
				pass, err := opts.secret(a)
				if err != nil {
					return err
				}
				svc, err := a.backups(ctx, opts.remote)
				if err != nil {
					return err
				}
				ref, err := svc.Export(ctx, label, pass)
				if err != nil {
					return err
				}
				a.printf("%s\n", ref)
				return nil
			})
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.seal, "seal", false, "prompt for the passphrase")
	cmd.Flags().StringVarP(&label, "label", "l", "", "label appended to the file name")
	return cmd
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &backupOptions{}

	cmd := &cobra.Command{
		Use:   "import <file|key>",
		Short: "Replace the notebook with a backup",
		Long: `Validate a backup and replace the whole notebook with it.

A bare file name is looked up in the backup directory. With --s3 the
argument is the object key printed by "export --s3". A sealed backup
asks for its passphrase unless --passphrase is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *App) error {
				svc, err := a.backups(ctx, opts.remote)
				if err != nil {
					return err
				}
				pass := opts.passphrase
				if pass == "" {
					sealed, err := svc.Sealed(ctx, args[0])
					if err != nil {
						return err
					}
					if sealed {
						if pass, err = GetPassphrase(a.reader, "Passphrase", a.out); err != nil {
							return err
						}
					}
				}
				if err := svc.Import(ctx, args[0], pass); err != nil {
					return err
				}
				a.printf("Backup restored\n")
				return nil
			})
		},
	}

	opts.register(cmd)
	return cmd
}
