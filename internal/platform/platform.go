// Package platform identifies the running system and renders release asset names.
package platform

import (
	"runtime"
	"strings"
)

// Platform describes the current system in the normalized identifiers used
// by release asset names.
type Platform struct {
	OS   string // windows, macos, linux
	Arch string // x64, arm64, armv7, x86, or the raw value
}

// Detect returns the platform of the running process. The result is fixed
// for the process lifetime.
func Detect() Platform {
	return Platform{
		OS:   NormalizeOS(runtime.GOOS),
		Arch: NormalizeArch(runtime.GOARCH),
	}
}

// NormalizeOS maps an operating system identifier to its release naming
// form: any Windows-family value becomes "windows", Darwin/macOS becomes
// "macos", everything else is "linux".
func NormalizeOS(s string) string {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "windows"):
		return "windows"
	case strings.Contains(s, "darwin"), strings.Contains(s, "mac"):
		return "macos"
	default:
		return "linux"
	}
}

// NormalizeArch maps a machine architecture identifier to its release
// naming form. Unknown values pass through unchanged so that new
// architectures can be served without a client change.
func NormalizeArch(s string) string {
	switch strings.ToLower(s) {
	case "amd64", "x86_64", "x64":
		return "x64"
	case "aarch64", "arm64":
		return "arm64"
	case "armv7l", "armv7", "arm32", "arm":
		return "armv7"
	case "i386", "i686", "x86", "386":
		return "x86"
	default:
		return strings.ToLower(s)
	}
}

// DefaultAssetPattern is the conventional release asset name layout.
const DefaultAssetPattern = "{app}-{os}-{arch}.zip"

// RenderAssetName substitutes {app}, {os} and {arch} in pattern.
func RenderAssetName(pattern, app string, p Platform) string {
	r := strings.NewReplacer(
		"{app}", app,
		"{os}", p.OS,
		"{arch}", p.Arch,
	)
	return r.Replace(pattern)
}
