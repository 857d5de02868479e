package executor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/toolchest-labs/toolchest/internal/manifest"
	"github.com/toolchest-labs/toolchest/internal/placeholder"
)

// Status is the terminal-state machine for one action.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// GroupStatus is the state of a whole action group.
type GroupStatus string

const (
	GroupPending   GroupStatus = "pending"
	GroupRunning   GroupStatus = "running"
	GroupCompleted GroupStatus = "completed"
	GroupAborted   GroupStatus = "aborted"
)

// defaultInfoArgs mark tool invocations that print something and exit, where
// spawning would hide the output. Manifests may override via info_args.
var defaultInfoArgs = []string{"--help", "-h", "--version", "-V", "--list", "--show"}

// CommandError reports a failed action. For a non-zero exit it carries the
// exit code and both captured streams verbatim so the underlying tool's own
// failure can be diagnosed without re-running it. For a launch failure Err
// is set and no process ever ran.
type CommandError struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("command %q: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("command %q failed with exit code %d\n-- stdout --\n%s\n-- stderr --\n%s",
		e.Command, e.ExitCode, e.Stdout, e.Stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Result records one executed (or attempted) action.
type Result struct {
	Action   manifest.Action
	Command  string // rendered command, empty if rendering failed
	Status   Status
	Spawned  bool
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// Report summarizes one action group execution. Actions completed before a
// failure keep their succeeded status and captured output, so the caller can
// present exactly how far execution progressed.
type Report struct {
	Group   string
	Status  GroupStatus
	Results []Result
}

// Options adjust how a group executes.
type Options struct {
	// Dir is the working directory for every action ("" = inherit).
	Dir string
	// ExtraArgs are appended to each rendered command (used by `run`).
	ExtraArgs []string
	// ForceSpawn detaches spawn-marked actions even when arguments are
	// present; ForceWait waits on them regardless. ForceWait wins.
	ForceSpawn bool
	ForceWait  bool
	// InfoArgs overrides the default info-argument list for the smart
	// spawn decision.
	InfoArgs []string
}

// Executor sequences the actions of one group.
type Executor struct {
	Launcher Launcher  // nil uses ShellLauncher
	Out      io.Writer // step progress output; nil discards
	Log      *log.Logger
}

// Execute runs one named action group. Actions are ordered by ascending
// seq-id regardless of their order in the manifest; a duplicate seq-id is a
// configuration error detected before any action runs. Execution is strictly
// sequential and stops at the first failure.
func (e *Executor) Execute(ctx context.Context, group string, actions []manifest.Action, phctx *placeholder.Context, opts Options) (*Report, error) {
	sorted, err := manifest.SortActions(actions)
	if err != nil {
		return nil, fmt.Errorf("action group %q: %w", group, err)
	}

	report := &Report{Group: group, Status: GroupRunning}

	for _, action := range sorted {
		result, err := e.runAction(ctx, action, phctx, opts)
		report.Results = append(report.Results, result)
		if err != nil {
			report.Status = GroupAborted
			return report, err
		}
	}

	report.Status = GroupCompleted
	return report, nil
}

func (e *Executor) runAction(ctx context.Context, action manifest.Action, phctx *placeholder.Context, opts Options) (Result, error) {
	result := Result{Action: action, Status: StatusPending}

	command, err := placeholder.Render(action.Command, phctx)
	if err != nil {
		result.Status = StatusFailed
		return result, err
	}
	if len(opts.ExtraArgs) > 0 {
		command = command + " " + strings.Join(opts.ExtraArgs, " ")
	}
	result.Command = command

	e.printf("Step %d: %s\n", action.SeqID, describe(action))
	e.logger().Debug("executing action", "seq-id", action.SeqID, "command", command)
	result.Status = StatusRunning

	if e.shouldSpawn(action, opts) {
		if err := e.launcher().Start(command, opts.Dir); err != nil {
			result.Status = StatusFailed
			return result, &CommandError{Command: command, Err: err}
		}
		// A spawned action succeeds once the process is running; its
		// output is never captured.
		result.Status = StatusSucceeded
		result.Spawned = true
		e.printf("Spawned: %s\n", describe(action))
		return result, nil
	}

	start := time.Now()
	exitCode, stdout, stderr, err := e.launcher().Run(ctx, command, opts.Dir)
	result.Duration = time.Since(start)
	result.Stdout = stdout
	result.Stderr = stderr

	if err != nil {
		result.Status = StatusFailed
		return result, &CommandError{Command: command, Err: err}
	}
	if exitCode != 0 {
		result.Status = StatusFailed
		return result, &CommandError{Command: command, ExitCode: exitCode, Stdout: stdout, Stderr: stderr}
	}

	result.Status = StatusSucceeded
	e.printf("Completed: %s\n", describe(action))
	return result, nil
}

// shouldSpawn decides whether a spawn-marked action detaches. Explicit flags
// win; otherwise spawn unless the extra arguments look informational, in
// which case the user expects to see output.
func (e *Executor) shouldSpawn(action manifest.Action, opts Options) bool {
	if !action.Spawn {
		return false
	}
	if opts.ForceWait {
		return false
	}
	if opts.ForceSpawn {
		return true
	}
	if len(opts.ExtraArgs) == 0 {
		return true
	}

	infoArgs := opts.InfoArgs
	if len(infoArgs) == 0 {
		infoArgs = defaultInfoArgs
	}
	for _, arg := range opts.ExtraArgs {
		for _, info := range infoArgs {
			if arg == info {
				return false
			}
		}
	}
	return true
}

func (e *Executor) launcher() Launcher {
	if e.Launcher != nil {
		return e.Launcher
	}
	return ShellLauncher{}
}

func (e *Executor) logger() *log.Logger {
	if e.Log != nil {
		return e.Log
	}
	return log.Default()
}

func (e *Executor) printf(format string, args ...interface{}) {
	if e.Out != nil {
		fmt.Fprintf(e.Out, format, args...)
	}
}

// describe picks the most useful label for step output.
func describe(action manifest.Action) string {
	if action.Description != "" {
		return action.Description
	}
	if action.Name != "" {
		return action.Name
	}
	return action.Command
}
