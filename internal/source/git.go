package source

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// tmpSuffix is appended to the target dir during atomic clone.
const tmpSuffix = ".tmp"

// ensureGit verifies the git binary is available.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required for git manifest sources: %w", err)
	}
	return nil
}

// gitClone performs a shallow clone of a manifest source repository into
// targetDir. The clone is atomic: it writes to a .tmp directory first, then
// renames on success. On failure the .tmp directory is cleaned up.
func gitClone(repoURL, branch, targetDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	tmpDir := targetDir + tmpSuffix

	// Clean up any leftover tmp dir from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)

	args := []string{"clone", "--depth=1"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, repoURL, tmpDir)

	cmd := exec.Command("git", args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("cloning manifest source %s: %w\n%s", repoURL, err, strings.TrimSpace(string(output)))
	}

	if err := os.RemoveAll(targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("removing stale working copy: %w", err)
	}
	if err := os.Rename(tmpDir, targetDir); err != nil {
		_ = os.RemoveAll(tmpDir)
		return fmt.Errorf("finalizing manifest source clone: %w", err)
	}
	return nil
}

// gitUpdate pulls the latest changes in an existing working copy.
func gitUpdate(workDir string) error {
	if err := ensureGit(); err != nil {
		return err
	}

	cmd := exec.Command("git", "pull", "--depth=1", "--rebase")
	cmd.Dir = workDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("updating manifest source: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
