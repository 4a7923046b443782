package update

import (
	"fmt"
	"time"

	"github.com/GitDevLane/py-updater/internal/github"
	"github.com/GitDevLane/py-updater/internal/platform"
)

// State identifies where in the update pipeline a run currently is.
type State string

const (
	StateIdle            State = "idle"
	StateCheckingRelease State = "checking-release"
	StateEvaluating      State = "evaluating"
	StateSkipped         State = "skipped"
	StateDownloading     State = "downloading"
	StateVerifying       State = "verifying"
	StateStaging         State = "staging"
	StateSwapping        State = "swapping"
	StatePersisting      State = "persisting"
	StateRelaunching     State = "relaunching"
	StateDone            State = "done"
	StateFailed          State = "failed"
)

// Options configures one orchestration run. All values are explicit; nothing
// is read from the environment inside the engine.
type Options struct {
	AppName            string        // logical name used in the asset pattern
	Owner              string        // repository owner
	Repo               string        // repository name
	AppDir             string        // live application directory
	VersionFile        string        // persisted version state path
	AssetPattern       string        // e.g. "{app}-{os}-{arch}.zip"
	IncludePrereleases bool
	AllowDowngrade     bool
	RestartCmd         string // optional relaunch command
	Timeout            time.Duration
	DryRun             bool
}

// Result is the outcome of a run. Installed is the only signal callers may
// rely on programmatically; everything else is context for humans and the
// check output.
type Result struct {
	Installed      bool   `json:"installed" yaml:"installed"`
	State          State  `json:"state" yaml:"state"`
	CurrentVersion string `json:"current_version" yaml:"current_version"`
	LatestVersion  string `json:"latest_version,omitempty" yaml:"latest_version,omitempty"`
	AssetName      string `json:"asset,omitempty" yaml:"asset,omitempty"`
	Reason         string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// String renders the result for the text output format.
func (r *Result) String() string {
	s := fmt.Sprintf("installed: %v\nstate: %s\ncurrent version: %s", r.Installed, r.State, r.CurrentVersion)
	if r.LatestVersion != "" {
		s += "\nlatest version: " + r.LatestVersion
	}
	if r.AssetName != "" {
		s += "\nasset: " + r.AssetName
	}
	if r.Reason != "" {
		s += "\nreason: " + r.Reason
	}
	return s
}

// ReleaseSource lists releases for one repository.
type ReleaseSource interface {
	LatestRelease(includePrereleases bool) (*github.Release, error)
}

// AssetFetcher downloads one asset to a local path.
type AssetFetcher interface {
	Download(url, dest string) error
}

// Swapper substitutes the live directory with a staged tree, returning the
// backup path for later discard or rollback.
type Swapper interface {
	Swap(stagedRoot, liveAppDir string) (string, error)
}

// Launcher starts a detached relaunch command.
type Launcher interface {
	Start(cmdline string) error
}

// Platform reports the identifiers used to render the asset name.
type Platform = platform.Platform
