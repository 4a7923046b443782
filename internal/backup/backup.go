// Package backup names and retires the transient backup of the live
// application directory kept during a swap.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Path computes the backup location for appDir: a sibling directory whose
// name carries a high-resolution timestamp so repeated runs cannot collide.
// At most one backup exists per app directory at a time.
func Path(appDir string, now time.Time) string {
	abs, err := filepath.Abs(appDir)
	if err != nil {
		abs = appDir
	}
	parent := filepath.Dir(abs)
	name := fmt.Sprintf("%s.backup-%d", filepath.Base(abs), now.UnixNano())
	return filepath.Join(parent, name)
}

// RemoveStale deletes a leftover directory at path, if any. A same-named
// backup can only exist after a pathological clock collision; it is not
// worth preserving.
func RemoveStale(path string) {
	if _, err := os.Stat(path); err == nil {
		_ = os.RemoveAll(path)
	}
}

// Discard deletes a backup after the update is final. Rollback is no longer
// offered past this point. Best-effort: a stray backup costs disk space, not
// correctness.
func Discard(path string) {
	if path == "" {
		return
	}
	_ = os.RemoveAll(path)
}

// Exists reports whether a backup is present at path.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
