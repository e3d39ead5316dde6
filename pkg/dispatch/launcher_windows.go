//go:build windows

package dispatch

import (
	"errors"
	"os"
	"os/exec"
)

// ExecLauncher runs the downstream program with inherited streams and exits
// with its status code. Windows has no execve, so spawn-and-exit is the
// closest equivalent to process replacement.
type ExecLauncher struct{}

func NewExecLauncher() *ExecLauncher {
	return &ExecLauncher{}
}

func (l *ExecLauncher) Launch(inv *Invocation) error {
	argv := inv.Argv()
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return &LaunchError{Path: argv[0], Err: err}
	}

	os.Exit(0)
	return nil
}
