package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/toolchest-labs/toolchest/internal/executor"
	"github.com/toolchest-labs/toolchest/internal/manifest"
	"github.com/toolchest-labs/toolchest/internal/settings"
	"github.com/toolchest-labs/toolchest/internal/source"
)

// loadSettings resolves the effective settings, honoring --config-dir.
func loadSettings() (*settings.Settings, error) {
	return settings.Load(flagConfigDir)
}

// resolveTool finds and parses the manifest for tool across the configured
// sources.
func resolveTool(st *settings.Settings, tool string) (*manifest.Config, error) {
	r := &source.Resolver{
		Sources:  st.ManifestSources,
		CacheDir: st.SourcesCacheDir,
		Log:      logger,
	}
	path, err := r.Resolve(tool)
	if err != nil {
		return nil, err
	}
	logger.Debug("manifest resolved", "tool", tool, "path", path)
	return manifest.LoadPath(path)
}

// executeGroup runs one lifecycle action group for tool: resolve the
// manifest, build the placeholder context from it and the settings, and hand
// the group's actions to the executor. The install group runs inside the
// tools directory (so actions can create the tool directory themselves);
// every other group requires the tool directory to exist and runs inside it.
func executeGroup(cmd *cobra.Command, tool, group string, opts executor.Options) (*executor.Report, error) {
	st, err := loadSettings()
	if err != nil {
		return nil, err
	}
	cfg, err := resolveTool(st, tool)
	if err != nil {
		return nil, err
	}

	actions := cfg.Actions.Group(group)
	if len(actions) == 0 {
		return nil, fmt.Errorf("manifest for %q defines no %q actions", tool, group)
	}

	toolDir := st.ToolDir(cfg.Repo.Name)
	if group == manifest.GroupInstallation {
		if err := os.MkdirAll(toolDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating tool directory %s: %w", toolDir, err)
		}
		opts.Dir = st.ToolsDir
	} else {
		if _, err := os.Stat(toolDir); err != nil {
			return nil, fmt.Errorf("tool %q is not installed; run '%s install %s' first", cfg.Repo.Name, rootCmd.Name(), tool)
		}
		opts.Dir = toolDir
	}
	opts.InfoArgs = cfg.InfoArgs

	exec := &executor.Executor{Out: cmd.OutOrStdout(), Log: logger}
	return exec.Execute(cmd.Context(), group, actions, st.PlaceholderContext(cfg), opts)
}
