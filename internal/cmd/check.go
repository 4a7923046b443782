package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/GitDevLane/py-updater/internal/output"
)

func newCheckCmd() *cobra.Command {
	var flags repoFlags

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether an update is available without installing it",
		Long: `Check evaluates the newest eligible release against the locally recorded
version and reports what an update run would do. Nothing is downloaded and
nothing on disk changes.

Examples:
  updater check --repo acme/demo --app-name demo
  updater check --repo acme/demo --app-name demo -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &flags)
			if err != nil {
				return err
			}
			format, err := output.ParseFormat(outputFormat)
			if err != nil {
				return err
			}

			logger := newLogger()
			orch, err := newOrchestrator(cfg, true, logger)
			if err != nil {
				return err
			}

			res, err := orch.Run()
			if err != nil {
				return err
			}
			if err := output.Print(os.Stdout, format, res); err != nil {
				return err
			}
			// A check never installs, so the exit code stays non-zero.
			return ErrNoUpdate
		},
	}

	addRepoFlags(cmd, &flags)

	return cmd
}
