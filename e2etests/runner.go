// Package e2etests drives a built issues binary against throwaway sandboxes
// and compares its output with the files under expected/.
package e2etests

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Runner executes issues commands against a sandbox directory.
type Runner struct {
	Cmd string // path to the issues binary
	Env []string
}

// SetupSandbox creates a fresh directory and runs init inside it.
// Returns the sandbox path.
func (r *Runner) SetupSandbox() (string, error) {
	sandbox, err := os.MkdirTemp("", "issues-e2e-*")
	if err != nil {
		return "", fmt.Errorf("creating sandbox: %w", err)
	}
	// Resolve symlinks so normalized paths match (/var -> /private/var on macOS).
	if resolved, err := filepath.EvalSymlinks(sandbox); err == nil {
		sandbox = resolved
	}

	if res := r.Run(sandbox, "init"); res.ExitCode != 0 {
		os.RemoveAll(sandbox)
		return "", fmt.Errorf("init failed (exit %d): %s", res.ExitCode, res.Stderr)
	}
	return sandbox, nil
}

// TeardownSandbox removes a sandbox directory.
func (r *Runner) TeardownSandbox(path string) error {
	return os.RemoveAll(path)
}

// IssuesDir returns the issues directory inside a sandbox.
func IssuesDir(sandbox string) string {
	return filepath.Join(sandbox, ".issues")
}

// RunResult holds the output of a command execution.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Run executes an issues command with the given arguments.
// It points ISSUES_DIR at the sandbox and turns color off unless r.Env
// says otherwise.
func (r *Runner) Run(sandbox string, args ...string) RunResult {
	cmd := exec.Command(r.Cmd, args...)
	cmd.Dir = sandbox
	cmd.Env = append(os.Environ(), "ISSUES_DIR="+IssuesDir(sandbox), "ISSUES_COLOR=never")
	cmd.Env = append(cmd.Env, r.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}

	return RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
