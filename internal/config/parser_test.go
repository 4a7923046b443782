package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "updater.toml", `
repo = "demo/app"
app_name = "demo"
include_prereleases = true
timeout = 120
`)

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Repo != "demo/app" || cfg.AppName != "demo" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.IncludePrereleases {
		t.Error("include_prereleases not loaded")
	}
	if cfg.TimeoutSeconds != 120 {
		t.Errorf("TimeoutSeconds = %d, want 120", cfg.TimeoutSeconds)
	}
	// Unset fields keep their defaults.
	if cfg.AppDir != "app" {
		t.Errorf("AppDir = %s, want default", cfg.AppDir)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "updater.yaml", `
repo: demo/app
app_name: demo
asset_pattern: "{app}_{os}_{arch}.zip"
`)

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AssetPattern != "{app}_{os}_{arch}.zip" {
		t.Errorf("AssetPattern = %s", cfg.AssetPattern)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "updater.json", `{"repo": "demo/app", "app_name": "demo", "allow_downgrade": true}`)

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.AllowDowngrade {
		t.Error("allow_downgrade not loaded")
	}
}

func TestLoadExtensionlessSniffing(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "sniffed toml",
			content: "repo = \"demo/app\"\napp_name = \"demo\"\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.Repo != "demo/app" {
					t.Errorf("Repo = %s", cfg.Repo)
				}
			},
		},
		{
			name:    "sniffed yaml",
			content: "repo: demo/app\napp_name: demo\n",
			check: func(t *testing.T, cfg Config) {
				if cfg.AppName != "demo" {
					t.Errorf("AppName = %s", cfg.AppName)
				}
			},
		},
		{
			name:    "sniffed json",
			content: `{"repo": "demo/app", "app_name": "demo"}`,
			check: func(t *testing.T, cfg Config) {
				if cfg.Repo != "demo/app" {
					t.Errorf("Repo = %s", cfg.Repo)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "updater.conf", tt.content)
			cfg, err := Load(path, Default())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml"), Default()); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeConfig(t, "updater.toml", "repo = [unclosed")
	if _, err := Load(path, Default()); err == nil {
		t.Error("expected error for malformed config")
	}
}
