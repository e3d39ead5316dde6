//go:build unix

package dispatch

import (
	"os"

	"golang.org/x/sys/unix"
)

// ExecLauncher replaces the current process image with the downstream
// program. Standard streams and environment are inherited unchanged.
type ExecLauncher struct{}

func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

func (l *ExecLauncher) Launch(inv *Invocation) error {
	argv := inv.Argv()
	if err := unix.Exec(argv[0], argv, os.Environ()); err != nil {
		return &LaunchError{Path: argv[0], Err: err}
	}
	return nil
}
