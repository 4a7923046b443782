// Package relaunch starts the updated application as a detached process.
package relaunch

// Launcher starts a command line detached from the current process.
// The updater does not wait for or monitor the launched process; it exists
// only to hand control back to the application after an update.
type Launcher interface {
	Start(cmdline string) error
}

// New returns the launcher for the running platform.
func New() Launcher {
	return platformLauncher{}
}
