package cmd

import (
	"errors"
	"os"

	"crucible/internal/config"
	"crucible/internal/system"
	"crucible/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidConfig indicates the configuration failed schema validation.
	ExitCodeInvalidConfig = 2
	// ExitCodeNoMatch indicates no configured system matches the current host.
	ExitCodeNoMatch = 3
)

// Persistent flags shared by all commands.
var (
	rootConfigPath string
	rootHostname   string
	rootDebug      bool
)

// rootCmd represents the base command for the crucible application.
var rootCmd = &cobra.Command{
	Use:   "crucible",
	Short: "Resolve site configuration for the crucible test runner",
	Long: `crucible loads the site configuration, selects the system matching the
current host and exposes the validated executor and compiler definitions
that test building and job submission run against.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logging.LevelInfo
		if rootDebug {
			level = logging.LevelDebug
		}
		logging.InitForCLI(level, os.Stderr)
	},
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build-time version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "crucible version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		var verrs config.ValidationErrors
		var noMatch *system.NoMatchError
		switch {
		case errors.As(err, &verrs):
			os.Exit(ExitCodeInvalidConfig)
		case errors.As(err, &noMatch):
			os.Exit(ExitCodeNoMatch)
		default:
			os.Exit(ExitCodeError)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootConfigPath, "config", "c", "", "path to the configuration file (default: $CRUCIBLE_CONFIG or ~/.config/crucible/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootHostname, "hostname", "", "resolve for this hostname instead of the current host")
	rootCmd.PersistentFlags().BoolVar(&rootDebug, "debug", false, "enable debug logging")
}
