package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// NewEnrichCommand creates the enrich command.
func NewEnrichCommand(rootOpts *RootOptions) *cobra.Command {
	var story bool

	cmd := &cobra.Command{
		Use:   "enrich <day-id> <set-id>",
		Short: "Add AI definitions to the words of a set",
		Long: `Ask Gemini for the type, an English definition and academic
example sentences of every word in the set that has none yet.

With --story a short academic paragraph using the words of the set is
printed instead. Requires GEMINI_API_KEY.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *App) error {
				svc, err := a.enricher(ctx)
				if err != nil {
					return err
				}

				if story {
					st, err := svc.Story(ctx, args[0], args[1])
					if err != nil {
						return err
					}
					if rootOpts.Format == "text" {
						a.printf("%s\n\n%s\n", st.EnglishStory, st.TurkishTranslation)
						return nil
					}
					return writeValue(cmd.OutOrStdout(), rootOpts.Format, st)
				}

				n, err := svc.EnrichSet(ctx, args[0], args[1])
				a.printf("Enriched %d words\n", n)
				return err
			})
		},
	}

	cmd.Flags().BoolVar(&story, "story", false, "write a context story instead")
	return cmd
}
