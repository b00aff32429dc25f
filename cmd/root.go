// Package cmd implements the jira-md CLI commands.
package cmd

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/antopolskiy/jira-md/internal/clierr"
	"github.com/antopolskiy/jira-md/internal/config"
	"github.com/antopolskiy/jira-md/internal/creds"
	"github.com/antopolskiy/jira-md/internal/jira"
	"github.com/antopolskiy/jira-md/internal/logging"
	"github.com/antopolskiy/jira-md/internal/output"
	"github.com/antopolskiy/jira-md/internal/ticket"
)

// version is set at build time via ldflags.
var version = "dev"

// Global flags.
var (
	flagCompact  bool
	flagConfig   string
	flagLogLevel string
)

// logger is rebuilt in PersistentPreRun once the log level flag is parsed.
var logger = logging.NewLogger(os.Stderr, logging.LevelInfo)

var rootCmd = &cobra.Command{
	Use:   "jira-md",
	Short: "Read Jira tickets as JSON",
	Long: `jira-md fetches Jira ticket data over the REST API and prints a single
JSON document per invocation: issue descriptions, comment threads, or the
list of issues assigned to you. Rich text is rendered to Markdown. Designed
for AI agents and humans alike; strictly read-only.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A local .env may carry the Atlassian variables; absence is fine.
		_ = godotenv.Load()
		logger = logging.NewLogger(os.Stderr, logging.ParseLevel(flagLogLevel))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "single-line JSON output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// SilentError exits with its code and no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
		os.Exit(cliErr.ExitCode())
	}

	// Anything else is reported as INTERNAL_ERROR.
	output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
	os.Exit(2) //nolint:mnd // exit code 2 for internal errors
}

// loadConfig reads the config file named by --config, or the conventional
// location when the flag is unset.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.Load(config.DefaultPath())
}

// newService wires credentials, config, and the Jira client for one
// invocation. Credentials are read from the environment here and nowhere
// else.
func newService() (*ticket.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	crd, err := creds.FromEnv()
	if err != nil {
		return nil, err
	}

	client := jira.NewClient(crd.BaseURL, jira.NewBasicAuth(crd.Email, crd.APIToken), jira.Options{
		Timeout:    cfg.Timeout(),
		MaxRetries: cfg.Retries(),
		Logger:     logger,
	})
	return ticket.NewService(client, crd, cfg, logger), nil
}

// emit writes the operation's JSON document to stdout.
func emit(data any) error {
	if flagCompact {
		return output.Compact(os.Stdout, data)
	}
	return output.JSON(os.Stdout, data)
}

// argOrEmpty returns the first positional argument, or "" when absent so
// key resolution can produce its actionable failure.
func argOrEmpty(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
