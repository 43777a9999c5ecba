package main

import (
	"errors"
	"os"

	"github.com/deploymenttheory/go-onenote-page-client/version"
	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates the page was created.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (invalid arguments, configuration, transport).
	ExitCodeError = 1
	// ExitCodeAuthRequired indicates no session was supplied.
	ExitCodeAuthRequired = 2
	// ExitCodePageCreationFailed indicates the service answered with an error status.
	ExitCodePageCreationFailed = 3
)

var configPath string

// rootCmd is the entry point when the sample is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   version.GetAppName(),
	Short: "Create OneNote pages from the command line",
	Long: `Creates sample pages in the signed-in user's default OneNote section.

The session is read from ONENOTE_ACCESS_TOKEN, ONENOTE_ACCESS_TOKEN_EXPIRES (RFC3339)
and ONENOTE_REFRESH_TOKEN. Client settings come from --config or ONENOTE_* variables,
optionally placed in a .env file in the working directory.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits with a code describing the outcome.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(getExitCode(err))
	}
}

func getExitCode(err error) int {
	var authRequired *AuthRequiredError
	if errors.As(err, &authRequired) {
		return ExitCodeAuthRequired
	}

	var pageFailed *PageCreationFailedError
	if errors.As(err, &pageFailed) {
		return ExitCodePageCreationFailed
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML client configuration file (default: ONENOTE_* environment variables)")
	rootCmd.AddCommand(newCreateCmd())
}
