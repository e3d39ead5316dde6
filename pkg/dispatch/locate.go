package dispatch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// resolveInstallDir returns the configured installation directory, falling
// back to the directory holding the running executable.
func resolveInstallDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}

	return filepath.Dir(exe), nil
}

// locatePython resolves the interpreter either as an explicit path or via
// PATH lookup.
func locatePython(name string) (string, error) {
	if strings.ContainsRune(name, os.PathSeparator) || filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", &LaunchError{Path: name, Err: err}
		}
		return name, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", &LaunchError{Path: name, Err: err}
	}

	return path, nil
}

// locateScript resolves llm_demo.py, defaulting to the installation
// directory. The script must exist before a launch is attempted.
func locateScript(configured, installDir string) (string, error) {
	script := configured
	if script == "" {
		script = filepath.Join(installDir, ScriptName)
	}

	if _, err := os.Stat(script); err != nil {
		return "", &LaunchError{Path: script, Err: err}
	}

	return script, nil
}
