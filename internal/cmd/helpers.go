package cmd

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/GitDevLane/py-updater/internal/config"
	"github.com/GitDevLane/py-updater/internal/fetch"
	"github.com/GitDevLane/py-updater/internal/github"
	"github.com/GitDevLane/py-updater/internal/relaunch"
	"github.com/GitDevLane/py-updater/internal/stage"
	"github.com/GitDevLane/py-updater/internal/update"
)

// repoFlags carries the per-command flag values that mirror config.Config.
type repoFlags struct {
	repo               string
	appName            string
	appDir             string
	versionFile        string
	assetPattern       string
	includePrereleases bool
	allowDowngrade     bool
	restartCmd         string
	timeout            int
}

// addRepoFlags registers the shared invocation flags on a command.
func addRepoFlags(cmd *cobra.Command, f *repoFlags) {
	cmd.Flags().StringVar(&f.repo, "repo", "", "Repository in owner/name form (required unless set in config)")
	cmd.Flags().StringVar(&f.appName, "app-name", "", "Logical app name used in the asset pattern")
	cmd.Flags().StringVar(&f.appDir, "app-dir", "", "Path to the application directory (default \"app\")")
	cmd.Flags().StringVar(&f.versionFile, "version-file", "", "Path to version.json (default \"version.json\")")
	cmd.Flags().StringVar(&f.assetPattern, "asset-pattern", "", "Asset name pattern (default \"{app}-{os}-{arch}.zip\")")
	cmd.Flags().BoolVar(&f.includePrereleases, "include-prereleases", false, "Allow prerelease updates")
	cmd.Flags().BoolVar(&f.allowDowngrade, "allow-downgrade", false, "Allow downgrades if remote < local")
	cmd.Flags().StringVar(&f.restartCmd, "restart-cmd", "", "Command to relaunch the app after update")
	cmd.Flags().IntVar(&f.timeout, "timeout", 0, "Network timeout in seconds (default 60)")
}

// resolveConfig builds the effective configuration: defaults, then the
// optional config file, then any flag the user actually set.
func resolveConfig(cmd *cobra.Command, f *repoFlags) (config.Config, error) {
	cfg := config.Default()

	if configPath != "" {
		loaded, err := config.Load(configPath, cfg)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	fl := cmd.Flags()
	if fl.Changed("repo") {
		cfg.Repo = f.repo
	}
	if fl.Changed("app-name") {
		cfg.AppName = f.appName
	}
	if fl.Changed("app-dir") {
		cfg.AppDir = f.appDir
	}
	if fl.Changed("version-file") {
		cfg.VersionFile = f.versionFile
	}
	if fl.Changed("asset-pattern") {
		cfg.AssetPattern = f.assetPattern
	}
	if fl.Changed("include-prereleases") {
		cfg.IncludePrereleases = f.includePrereleases
	}
	if fl.Changed("allow-downgrade") {
		cfg.AllowDowngrade = f.allowDowngrade
	}
	if fl.Changed("restart-cmd") {
		cfg.RestartCmd = f.restartCmd
	}
	if fl.Changed("timeout") {
		cfg.TimeoutSeconds = f.timeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger builds the line-oriented progress logger supervisors consume.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "updater"})
	switch {
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	case verbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// newOrchestrator is the composition root: it reads the token from the
// environment exactly once and wires every collaborator explicitly.
func newOrchestrator(cfg config.Config, dryRun bool, logger *log.Logger) (*update.Orchestrator, error) {
	owner, repo, err := cfg.SplitRepo()
	if err != nil {
		return nil, err
	}

	token := os.Getenv(config.TokenEnvVar)
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	opts := update.Options{
		AppName:            cfg.AppName,
		Owner:              owner,
		Repo:               repo,
		AppDir:             cfg.AppDir,
		VersionFile:        cfg.VersionFile,
		AssetPattern:       cfg.AssetPattern,
		IncludePrereleases: cfg.IncludePrereleases,
		AllowDowngrade:     cfg.AllowDowngrade,
		RestartCmd:         cfg.RestartCmd,
		Timeout:            timeout,
		DryRun:             dryRun,
	}

	source := github.NewClient(owner, repo, timeout)
	fetcher := fetch.NewFetcher(timeout)
	if token != "" {
		source = source.WithToken(token)
		fetcher = fetcher.WithToken(token)
	}

	return update.New(opts, logger, source, fetcher, stage.NewSwapper(), relaunch.New()), nil
}
