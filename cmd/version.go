package cmd

import "github.com/spf13/cobra"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jira-md version",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return emit(map[string]string{"version": version})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
