package cmd

import (
	"errors"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath   string
	outputFormat string
	verbose      bool
	quiet        bool
)

// ErrNoUpdate marks a run that completed without installing an update
// (already up to date, no release, dry run). The process exits non-zero so
// supervisors can distinguish "installed" from everything else by exit code
// alone.
var ErrNoUpdate = errors.New("no update installed")

func Execute(version, commit, date string) error {
	rootCmd := &cobra.Command{
		Use:   "updater",
		Short: "GitHub Releases application updater",
		Long: `updater keeps a locally installed application in sync with its GitHub releases.

It finds the newest eligible release, downloads the platform asset, verifies
its SHA-256 companion, stages the new tree and swaps it into place with a
backup for rollback. The exit code is 0 only when an update was installed.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an optional config file (toml, yaml or json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format for check results: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	// Add subcommands
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
