package cmd

import (
	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var (
		flags  repoFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for and install the latest release",
		Long: `Update downloads the newest eligible release and swaps it into the
application directory, keeping a backup until the new version state is
persisted.

Examples:
  updater update --repo acme/demo --app-name demo
  updater update --repo acme/demo --app-name demo --include-prereleases
  updater update --config updater.toml --restart-cmd "python app/main.py"

The optional GH_TOKEN environment variable enables private repositories and
higher rate limits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, &flags)
			if err != nil {
				return err
			}

			logger := newLogger()
			orch, err := newOrchestrator(cfg, dryRun, logger)
			if err != nil {
				return err
			}

			res, err := orch.Run()
			if err != nil {
				return err
			}
			if !res.Installed {
				return ErrNoUpdate
			}
			return nil
		},
	}

	addRepoFlags(cmd, &flags)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would happen, but do not change anything")

	return cmd
}
