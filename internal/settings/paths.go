package settings

import (
	"os"
	"path/filepath"

	"github.com/toolchest-labs/toolchest/internal/branding"
)

// ConfigFileName is the settings file inside the config directory.
const ConfigFileName = "config.yaml"

// ConfigDirCandidates returns the candidate config directories in fallback
// order. Candidates whose environment variable is unset are empty strings;
// the last candidate is always CWD-relative and therefore always usable.
func ConfigDirCandidates() []string {
	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, branding.CLIName()))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".config", branding.CLIName()))
	}
	return append(candidates, branding.HomeDir())
}

// ManifestsDirCandidates returns candidate default manifest directories.
func ManifestsDirCandidates() []string {
	var candidates []string
	for _, dir := range ConfigDirCandidates() {
		candidates = append(candidates, filepath.Join(dir, "manifests"))
	}
	// Replace the CWD-relative config candidate with a plain ./manifests.
	candidates[len(candidates)-1] = "manifests"
	return candidates
}

// ToolsDirCandidates returns candidate tool installation directories.
func ToolsDirCandidates() []string {
	var candidates []string
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, branding.CLIName(), "tools"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".local", "share", branding.CLIName(), "tools"))
	}
	return append(candidates, "tools")
}

// SourcesCacheCandidates returns candidate cache directories for manifests
// materialized from git and URL sources.
func SourcesCacheCandidates() []string {
	var candidates []string
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, branding.CLIName(), "sources"))
	}
	if home := os.Getenv("HOME"); home != "" {
		candidates = append(candidates, filepath.Join(home, ".local", "share", branding.CLIName(), "sources"))
	}
	return append(candidates, ".manifest-cache")
}

// DefaultConfigDir resolves the effective configuration directory.
func DefaultConfigDir() string {
	return resolveFirstUsable(ConfigDirCandidates())
}

// resolveFirstUsable picks the first candidate whose parent directory exists
// or can be created. The last candidate is returned when nothing else
// qualifies, matching the guarantee that a CWD-relative path always works.
func resolveFirstUsable(candidates []string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		parent := filepath.Dir(c)
		if _, err := os.Stat(parent); err == nil {
			return c
		}
		if err := os.MkdirAll(parent, 0o755); err == nil {
			return c
		}
	}
	return candidates[len(candidates)-1]
}
