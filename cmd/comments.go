package cmd

import (
	"github.com/spf13/cobra"

	"github.com/antopolskiy/jira-md/internal/issuekey"
)

var commentsCmd = &cobra.Command{
	Use:   "comments <key-or-url>",
	Short: "Fetch all comments on an issue",
	Long: `Fetches every comment on a Jira issue in chronological order, following
pagination. Accepts a bare key (ABC-123) or a /browse/ URL. Comment bodies
are rendered to Markdown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComments,
}

func init() {
	rootCmd.AddCommand(commentsCmd)
}

func runComments(cmd *cobra.Command, args []string) error {
	key, err := issuekey.Resolve(argOrEmpty(args))
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	comments, err := svc.Comments(cmd.Context(), key)
	if err != nil {
		return err
	}
	return emit(comments)
}
