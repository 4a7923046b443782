//go:build !windows

package relaunch

import (
	"fmt"
	"os/exec"
	"syscall"
)

type platformLauncher struct{}

// Start runs cmdline through a login-ish shell in its own session so it
// survives the updater exiting.
func (platformLauncher) Start(cmdline string) error {
	cmd := exec.Command("/bin/sh", "-lc", cmdline)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to relaunch %q: %w", cmdline, err)
	}
	// Fire and forget; release so the child is not reaped by us.
	return cmd.Process.Release()
}
