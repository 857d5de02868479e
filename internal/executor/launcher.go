package executor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Launcher starts child processes for rendered action commands. The real
// implementation shells out; tests substitute a recording fake.
type Launcher interface {
	// Run executes a command, waits for completion, and returns its exit
	// code with both captured streams. A non-zero exit is not an error at
	// this level; err is reserved for failures to launch or wait.
	Run(ctx context.Context, command, dir string) (exitCode int, stdout, stderr string, err error)

	// Start launches a command detached: no wait, no captured output.
	// The process keeps running after this call returns.
	Start(command, dir string) error
}

// ShellLauncher runs commands through `sh -c`, so templates may use pipes,
// relative executable paths, and multiple arguments.
type ShellLauncher struct{}

// Run executes the command and waits for it, capturing both streams fully.
func (ShellLauncher) Run(ctx context.Context, command, dir string) (int, string, string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), stdout.String(), stderr.String(), nil
		}
		return 0, stdout.String(), stderr.String(), fmt.Errorf("launching command: %w", err)
	}
	return 0, stdout.String(), stderr.String(), nil
}

// Start launches the command detached with null stdio and releases the
// process handle, leaving the child running independently.
func (ShellLauncher) Start(command, dir string) error {
	cmd := exec.Command("sh", "-c", command)
	cmd.Dir = dir
	// Stdin/Stdout/Stderr left nil: the child gets the null device.

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching command: %w", err)
	}
	return cmd.Process.Release()
}
