package platform

import "testing"

func TestNormalizeOS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "windows", input: "windows", want: "windows"},
		{name: "windows mixed case", input: "Windows_NT", want: "windows"},
		{name: "darwin", input: "darwin", want: "macos"},
		{name: "macos", input: "macos", want: "macos"},
		{name: "linux", input: "linux", want: "linux"},
		{name: "unknown falls back to linux", input: "freebsd", want: "linux"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeOS(tt.input); got != tt.want {
				t.Errorf("NormalizeOS(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "amd64", input: "amd64", want: "x64"},
		{name: "x86_64", input: "x86_64", want: "x64"},
		{name: "x64", input: "x64", want: "x64"},
		{name: "aarch64", input: "aarch64", want: "arm64"},
		{name: "arm64", input: "arm64", want: "arm64"},
		{name: "armv7l", input: "armv7l", want: "armv7"},
		{name: "arm", input: "arm", want: "armv7"},
		{name: "i686", input: "i686", want: "x86"},
		{name: "go 386", input: "386", want: "x86"},
		{name: "unknown passes through", input: "ppc64le", want: "ppc64le"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeArch(tt.input); got != tt.want {
				t.Errorf("NormalizeArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderAssetName(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		app     string
		plat    Platform
		want    string
	}{
		{
			name:    "default pattern",
			pattern: DefaultAssetPattern,
			app:     "demo",
			plat:    Platform{OS: "linux", Arch: "x64"},
			want:    "demo-linux-x64.zip",
		},
		{
			name:    "custom pattern",
			pattern: "{app}_{os}_{arch}.tar.zip",
			app:     "tool",
			plat:    Platform{OS: "windows", Arch: "arm64"},
			want:    "tool_windows_arm64.tar.zip",
		},
		{
			name:    "pattern without placeholders",
			pattern: "release.zip",
			app:     "demo",
			plat:    Platform{OS: "macos", Arch: "arm64"},
			want:    "release.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderAssetName(tt.pattern, tt.app, tt.plat); got != tt.want {
				t.Errorf("RenderAssetName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	p := Detect()
	if p.OS != "windows" && p.OS != "macos" && p.OS != "linux" {
		t.Errorf("Detect().OS = %q, want a normalized identifier", p.OS)
	}
	if p.Arch == "" {
		t.Error("Detect().Arch is empty")
	}
}
