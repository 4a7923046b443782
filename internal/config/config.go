// Package config holds the update run configuration and its file loader.
package config

import (
	"fmt"
	"strings"

	"github.com/GitDevLane/py-updater/internal/platform"
)

// Defaults for optional settings.
const (
	DefaultAppDir         = "app"
	DefaultVersionFile    = "version.json"
	DefaultTimeoutSeconds = 60

	// TokenEnvVar is the environment variable the CLI layer reads the
	// optional GitHub token from. Only the composition root touches the
	// environment; the token travels as an explicit value from there.
	TokenEnvVar = "GH_TOKEN"
)

// Config is the full invocation surface of the engine. Values come from an
// optional config file overlaid by command-line flags.
type Config struct {
	Repo               string `yaml:"repo" toml:"repo" json:"repo"`                                                    // owner/name
	AppName            string `yaml:"app_name" toml:"app_name" json:"app_name"`                                        // used in the asset pattern
	AppDir             string `yaml:"app_dir,omitempty" toml:"app_dir,omitempty" json:"app_dir,omitempty"`             // live application directory
	VersionFile        string `yaml:"version_file,omitempty" toml:"version_file,omitempty" json:"version_file,omitempty"`
	AssetPattern       string `yaml:"asset_pattern,omitempty" toml:"asset_pattern,omitempty" json:"asset_pattern,omitempty"`
	IncludePrereleases bool   `yaml:"include_prereleases,omitempty" toml:"include_prereleases,omitempty" json:"include_prereleases,omitempty"`
	AllowDowngrade     bool   `yaml:"allow_downgrade,omitempty" toml:"allow_downgrade,omitempty" json:"allow_downgrade,omitempty"`
	RestartCmd         string `yaml:"restart_cmd,omitempty" toml:"restart_cmd,omitempty" json:"restart_cmd,omitempty"`
	TimeoutSeconds     int    `yaml:"timeout,omitempty" toml:"timeout,omitempty" json:"timeout,omitempty"`
}

// Default returns a config with all optional settings at their defaults.
func Default() Config {
	return Config{
		AppDir:         DefaultAppDir,
		VersionFile:    DefaultVersionFile,
		AssetPattern:   platform.DefaultAssetPattern,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// UserConfigError reports a malformed or missing invocation parameter.
// Raised before any network or filesystem action.
type UserConfigError struct {
	Field string
	Msg   string
}

func (e *UserConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Msg)
}

// Validate checks required fields and value forms.
func (c *Config) Validate() error {
	if c.Repo == "" {
		return &UserConfigError{Field: "repo", Msg: "required (owner/name form)"}
	}
	if _, _, err := c.SplitRepo(); err != nil {
		return err
	}
	if c.AppName == "" {
		return &UserConfigError{Field: "app-name", Msg: "required"}
	}
	if c.TimeoutSeconds <= 0 {
		return &UserConfigError{Field: "timeout", Msg: "must be a positive number of seconds"}
	}
	if c.AssetPattern == "" {
		return &UserConfigError{Field: "asset-pattern", Msg: "must not be empty"}
	}
	return nil
}

// SplitRepo splits the owner/name repository identifier.
func (c *Config) SplitRepo() (owner, repo string, err error) {
	parts := strings.Split(c.Repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &UserConfigError{Field: "repo", Msg: fmt.Sprintf("%q is not in owner/name form", c.Repo)}
	}
	return parts[0], parts[1], nil
}
