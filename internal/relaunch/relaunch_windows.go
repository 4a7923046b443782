//go:build windows

package relaunch

import (
	"fmt"
	"os"
	"os/exec"
)

type platformLauncher struct{}

// Start runs cmdline through the command interpreter without waiting.
func (platformLauncher) Start(cmdline string) error {
	comspec := os.Getenv("COMSPEC")
	if comspec == "" {
		comspec = "cmd.exe"
	}
	cmd := exec.Command(comspec, "/c", cmdline)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to relaunch %q: %w", cmdline, err)
	}
	return cmd.Process.Release()
}
