package dispatch

import (
	"fmt"
	"io"
)

// LaunchError reports that the downstream program could not be located or
// executed.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher is the launch boundary. The production implementation replaces
// the current process image and never returns on success; tests substitute
// a recording fake.
type Launcher interface {
	Launch(inv *Invocation) error
}

// DryRunLauncher prints the resolved command line instead of launching.
type DryRunLauncher struct {
	Out io.Writer
}

func (l *DryRunLauncher) Launch(inv *Invocation) error {
	_, err := fmt.Fprintln(l.Out, inv.CommandLine())
	return err
}
