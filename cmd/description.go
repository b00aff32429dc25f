package cmd

import (
	"github.com/spf13/cobra"

	"github.com/antopolskiy/jira-md/internal/issuekey"
)

var descriptionCmd = &cobra.Command{
	Use:     "description <key-or-url>",
	Aliases: []string{"desc"},
	Short:   "Fetch an issue's description and acceptance criteria",
	Long: `Fetches the description, acceptance criteria, labels, parent, and status
of a Jira issue. Accepts a bare key (ABC-123) or a /browse/ URL. Rich text
is rendered to Markdown; when a field is not rich text, its value is
returned unmodified.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDescription,
}

func init() {
	rootCmd.AddCommand(descriptionCmd)
}

func runDescription(cmd *cobra.Command, args []string) error {
	key, err := issuekey.Resolve(argOrEmpty(args))
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	doc, err := svc.Description(cmd.Context(), key)
	if err != nil {
		return err
	}
	return emit(doc)
}
