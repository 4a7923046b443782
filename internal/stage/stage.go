// Package stage prepares a downloaded release in a temporary area and swaps
// it with the live application directory, keeping a backup for rollback.
package stage

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ArchiveError reports a structurally invalid or unreadable artifact.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("corrupt archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}

// Area is a process-scoped temporary tree owned by one update run. It holds
// the downloaded artifact, its digest companion, the raw extraction output
// and the normalized final tree, in that order.
type Area struct {
	root      string
	assetName string
}

// NewArea creates the staging directory.
func NewArea(assetName string) (*Area, error) {
	root, err := os.MkdirTemp("", "upd-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	return &Area{root: root, assetName: assetName}, nil
}

// Root returns the staging directory itself.
func (a *Area) Root() string { return a.root }

// ArtifactPath is where the downloaded archive lands.
func (a *Area) ArtifactPath() string { return filepath.Join(a.root, a.assetName) }

// DigestPath is where the digest companion lands.
func (a *Area) DigestPath() string { return filepath.Join(a.root, a.assetName+".sha256") }

// ExtractDir is where the archive is unpacked.
func (a *Area) ExtractDir() string { return filepath.Join(a.root, "staging") }

// FinalDir holds the normalized tree that will be swapped in.
func (a *Area) FinalDir() string { return filepath.Join(a.root, "final") }

// Remove deletes the whole staging tree. Called deferred on every exit path.
func (a *Area) Remove() {
	_ = os.RemoveAll(a.root)
}

// Extract unpacks a zip archive into targetDir.
func Extract(archivePath, targetDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ArchiveError{Path: archivePath, Err: err}
	}
	defer func() { _ = r.Close() }()

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", targetDir, err)
	}

	for _, f := range r.File {
		if err := extractEntry(f, targetDir); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, targetDir string) error {
	// Reject entries that escape the target (zip-slip).
	dest := filepath.Join(targetDir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(dest, filepath.Clean(targetDir)+string(os.PathSeparator)) {
		return &ArchiveError{Path: f.Name, Err: fmt.Errorf("entry escapes extraction directory")}
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(dest), err)
	}

	rc, err := f.Open()
	if err != nil {
		return &ArchiveError{Path: f.Name, Err: err}
	}
	defer func() { _ = rc.Close() }()

	mode := f.Mode()
	if mode == 0 {
		mode = 0644
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, rc); err != nil {
		return &ArchiveError{Path: f.Name, Err: err}
	}
	return nil
}

// NormalizeRoot resolves the effective content root of an extracted tree.
// Release zips conventionally wrap everything in a single top-level folder;
// when extractedDir contains exactly one entry and it is a directory, that
// directory is the root. Otherwise extractedDir itself is.
func NormalizeRoot(extractedDir string) (string, error) {
	entries, err := os.ReadDir(extractedDir)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", extractedDir, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(extractedDir, entries[0].Name()), nil
	}
	return extractedDir, nil
}
