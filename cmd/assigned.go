package cmd

import (
	"github.com/spf13/cobra"

	"github.com/antopolskiy/jira-md/internal/ticket"
)

var assignedCmd = &cobra.Command{
	Use:   "assigned",
	Short: "List issues assigned to you",
	Long: `Lists issues assigned to the authenticated account via a structured JQL
search, most recently updated first. Issues in Done, Cancelled, or Closed
are hidden unless --all-statuses is given.`,
	Args: cobra.NoArgs,
	RunE: runAssigned,
}

func init() {
	assignedCmd.Flags().IntP("limit", "n", 100, "maximum number of issues to return")
	assignedCmd.Flags().Bool("all-statuses", false, "include Done, Cancelled, and Closed issues")
	rootCmd.AddCommand(assignedCmd)
}

func runAssigned(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	allStatuses, _ := cmd.Flags().GetBool("all-statuses")

	svc, err := newService()
	if err != nil {
		return err
	}

	summaries, err := svc.Assigned(cmd.Context(), ticket.AssignedOptions{
		Limit:       limit,
		AllStatuses: allStatuses,
	})
	if err != nil {
		return err
	}
	return emit(summaries)
}
