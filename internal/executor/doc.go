// Package executor runs one named action group from a tool manifest.
// Actions execute strictly in ascending seq-id order, one child process at a
// time, with stdout and stderr captured in full. The first failing action
// aborts the remainder of the group; actions marked spawn are launched
// detached and considered succeeded once the process has started. Processes
// are started through the Launcher interface so tests can substitute a fake
// that records invocations instead of spawning anything.
package executor
