// Package update sequences the check-download-verify-stage-swap pipeline
// and owns its state machine.
package update

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/GitDevLane/py-updater/internal/backup"
	"github.com/GitDevLane/py-updater/internal/github"
	"github.com/GitDevLane/py-updater/internal/integrity"
	"github.com/GitDevLane/py-updater/internal/platform"
	"github.com/GitDevLane/py-updater/internal/stage"
	"github.com/GitDevLane/py-updater/internal/state"
	"github.com/GitDevLane/py-updater/internal/version"
)

// Orchestrator runs the update pipeline. One orchestration run is strictly
// sequential; the design assumes at most one active run per installation.
type Orchestrator struct {
	opts     Options
	logger   *log.Logger
	source   ReleaseSource
	fetcher  AssetFetcher
	swapper  Swapper
	launcher Launcher
	plat     Platform

	state State
}

// New creates an orchestrator with the given collaborators. The composition
// root (the CLI layer) decides concrete implementations, including the
// platform-specific launcher.
func New(opts Options, logger *log.Logger, source ReleaseSource, fetcher AssetFetcher, swapper Swapper, launcher Launcher) *Orchestrator {
	return &Orchestrator{
		opts:     opts,
		logger:   logger,
		source:   source,
		fetcher:  fetcher,
		swapper:  swapper,
		launcher: launcher,
		plat:     platform.Detect(),
		state:    StateIdle,
	}
}

// WithPlatform overrides platform detection (for testing).
func (o *Orchestrator) WithPlatform(p Platform) *Orchestrator {
	o.plat = p
	return o
}

func (o *Orchestrator) transition(s State) {
	o.logger.Debug("state transition", "from", o.state, "to", s)
	o.state = s
}

func (o *Orchestrator) skip(res *Result, reason string) (*Result, error) {
	o.transition(StateSkipped)
	res.State = StateSkipped
	res.Reason = reason
	o.logger.Info(reason)
	return res, nil
}

func (o *Orchestrator) fail(res *Result, err error) (*Result, error) {
	o.transition(StateFailed)
	res.State = StateFailed
	res.Reason = err.Error()
	o.logger.Error("update failed", "err", err)
	return res, err
}

// Run executes one full update pass. Result.Installed is true only after a
// successful swap and version-state write. Failures from downloading onward
// are converted into a failed result; they never panic out of the engine.
func (o *Orchestrator) Run() (*Result, error) {
	res := &Result{State: StateIdle}

	assetName := platform.RenderAssetName(o.opts.AssetPattern, o.opts.AppName, o.plat)
	res.AssetName = assetName

	st := state.Read(o.opts.VersionFile)
	res.CurrentVersion = st.Version
	o.logger.Info("current version", "version", st.Version)
	o.logger.Info("checking releases", "repo", o.opts.Owner+"/"+o.opts.Repo, "asset", assetName)

	o.transition(StateCheckingRelease)
	release, err := o.source.LatestRelease(o.opts.IncludePrereleases)
	if err != nil {
		return o.fail(res, err)
	}

	o.transition(StateEvaluating)
	if release == nil {
		return o.skip(res, "No suitable releases found.")
	}

	tag := release.TagName
	res.LatestVersion = version.Normalize(tag)
	o.logger.Info("latest release", "tag", tag, "prerelease", release.Prerelease)

	switch cmp := version.Compare(tag, st.Version); {
	case cmp == 0:
		return o.skip(res, "Already up to date.")
	case cmp < 0 && !o.opts.AllowDowngrade:
		return o.skip(res, "Remote version is older; skipping (use --allow-downgrade to force).")
	}

	asset := release.FindAsset(assetName)
	if asset == nil {
		return o.fail(res, &github.AssetNotFoundError{Asset: assetName, Available: release.AssetNames()})
	}
	digestAsset := release.FindAsset(assetName + ".sha256")

	if o.opts.DryRun {
		o.logger.Info("[dry-run] would download", "asset", assetName, "url", asset.BrowserDownloadURL)
		if digestAsset != nil {
			o.logger.Info("[dry-run] would verify with", "digest", assetName+".sha256")
		}
		res.State = StateSkipped
		res.Reason = "dry run"
		return res, nil
	}

	area, err := stage.NewArea(assetName)
	if err != nil {
		return o.fail(res, err)
	}
	defer area.Remove()

	o.transition(StateDownloading)
	o.logger.Info("downloading asset", "dest", area.ArtifactPath())
	if err := o.fetcher.Download(asset.BrowserDownloadURL, area.ArtifactPath()); err != nil {
		return o.fail(res, err)
	}

	o.transition(StateVerifying)
	if digestAsset != nil {
		o.logger.Info("downloading checksum", "dest", area.DigestPath())
		if err := o.fetcher.Download(digestAsset.BrowserDownloadURL, area.DigestPath()); err != nil {
			return o.fail(res, err)
		}
		o.logger.Info("verifying sha-256")
		if err := o.verify(area); err != nil {
			return o.fail(res, err)
		}
	} else {
		o.logger.Warn("no .sha256 file provided for this asset (verification skipped)")
	}

	o.transition(StateStaging)
	o.logger.Info("extracting to staging", "dir", area.ExtractDir())
	if err := o.prepare(area); err != nil {
		return o.fail(res, err)
	}

	o.transition(StateSwapping)
	o.logger.Info("swapping in new version", "dir", o.opts.AppDir)
	backupDir, err := o.swapper.Swap(area.FinalDir(), o.opts.AppDir)
	if err != nil {
		if rbErr := stage.Rollback(backupDir, o.opts.AppDir); rbErr != nil {
			o.logger.Error("rollback failed", "err", rbErr)
		}
		return o.fail(res, err)
	}

	o.transition(StatePersisting)
	st.Version = version.Normalize(tag)
	if err := st.Write(o.opts.VersionFile); err != nil {
		// The swap went in but the recorded version did not. Restore the
		// previous installation so state and disk agree.
		if rbErr := stage.Rollback(backupDir, o.opts.AppDir); rbErr != nil {
			o.logger.Error("rollback failed", "err", rbErr)
		}
		return o.fail(res, err)
	}
	o.logger.Info("updated version state", "file", o.opts.VersionFile, "version", st.Version)

	// The update is final; rollback is no longer offered.
	o.discardBackup(backupDir)

	if o.opts.RestartCmd != "" {
		o.transition(StateRelaunching)
		o.logger.Info("relaunching", "cmd", o.opts.RestartCmd)
		if err := o.launcher.Start(o.opts.RestartCmd); err != nil {
			// The update itself succeeded; a relaunch failure is reported
			// but does not change the outcome.
			o.logger.Warn("relaunch failed", "err", err)
		}
	}

	o.transition(StateDone)
	res.State = StateDone
	res.Installed = true
	res.CurrentVersion = st.Version
	return res, nil
}

// verify checks the downloaded artifact against its digest companion.
func (o *Orchestrator) verify(area *stage.Area) error {
	return integrity.Verify(area.DigestPath(), area.ArtifactPath())
}

// prepare extracts the artifact and moves the normalized content root into
// the final staging slot.
func (o *Orchestrator) prepare(area *stage.Area) error {
	if err := stage.Extract(area.ArtifactPath(), area.ExtractDir()); err != nil {
		return err
	}
	root, err := stage.NormalizeRoot(area.ExtractDir())
	if err != nil {
		return err
	}
	// Same filesystem (both inside the staging area), so a plain rename.
	if err := os.Rename(root, area.FinalDir()); err != nil {
		return fmt.Errorf("failed to stage final tree: %w", err)
	}
	return nil
}

func (o *Orchestrator) discardBackup(backupDir string) {
	if backupDir == "" {
		return
	}
	o.logger.Debug("discarding backup", "dir", backupDir)
	backup.Discard(backupDir)
}
