package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/GitDevLane/py-updater/internal/backup"
)

// FilesystemError reports a swap that failed on both the rename fast path
// and the copy fallback.
type FilesystemError struct {
	Op  string
	Err error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("filesystem %s failed: %v", e.Op, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Swapper substitutes the live application directory with a staged tree.
// It tries a directory rename first (near-atomic on the same filesystem)
// and falls back to a copy+delete move when the OS refuses the rename, e.g.
// cross-device links or file locks. The fallback trades atomicity for
// robustness.
type Swapper struct {
	// rename is the fast-path operation, replaceable in tests to force the
	// fallback branch deterministically.
	rename func(oldpath, newpath string) error
	now    func() time.Time
}

// NewSwapper creates a swapper using the real OS rename.
func NewSwapper() *Swapper {
	return &Swapper{rename: os.Rename, now: time.Now}
}

// Swap moves liveAppDir aside to a timestamped backup and puts stagedRoot
// in its place. It returns the backup path; the caller later discards it on
// success or restores it via Rollback on failure. An empty backup path means
// there was no previous installation.
func (s *Swapper) Swap(stagedRoot, liveAppDir string) (string, error) {
	backupDir := backup.Path(liveAppDir, s.now())
	backup.RemoveStale(backupDir)

	hadPrevious := false
	if _, err := os.Stat(liveAppDir); err == nil {
		hadPrevious = true
		if err := s.move(liveAppDir, backupDir); err != nil {
			return "", &FilesystemError{Op: "backup move", Err: err}
		}
	}

	if err := s.move(stagedRoot, liveAppDir); err != nil {
		return backupDir, &FilesystemError{Op: "install move", Err: err}
	}

	if !hadPrevious {
		return "", nil
	}
	return backupDir, nil
}

// move renames src to dst, falling back to a recursive copy+delete when the
// rename is refused at the OS level.
func (s *Swapper) move(src, dst string) error {
	if err := s.rename(src, dst); err == nil {
		return nil
	}
	if err := copyTree(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// Rollback restores the previous installation: whatever occupies liveAppDir
// (the partially applied new version) is deleted and the backup is renamed
// back into place. No-op when the backup does not exist.
func Rollback(backupDir, liveAppDir string) error {
	if !backup.Exists(backupDir) {
		return nil
	}
	if err := os.RemoveAll(liveAppDir); err != nil {
		return fmt.Errorf("failed to clear %s: %w", liveAppDir, err)
	}
	if err := os.Rename(backupDir, liveAppDir); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	return nil
}

// copyTree recursively copies a directory tree, preserving file modes.
func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		return copyFile(path, target, info.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	_, err = io.Copy(out, in)
	return err
}
