package settings

import (
	"github.com/toolchest-labs/toolchest/internal/manifest"
	"github.com/toolchest-labs/toolchest/internal/placeholder"
)

// PlaceholderContext builds the read-only context consumed by command
// templates: repo.* and deps.* from the manifest, the resolved workspace
// directories as scalars, and the raw candidate lists as fallback arrays
// under the package defaults paths.
func (s *Settings) PlaceholderContext(cfg *manifest.Config) *placeholder.Context {
	ctx := placeholder.FromConfig(cfg)

	ctx.Set("tools.dir", s.ToolsDir)
	ctx.Set("tool.dir", s.ToolDir(cfg.Repo.Name))
	ctx.Set("manifests.dir", s.ManifestsDir)
	ctx.Set("sources.dir", s.SourcesCacheDir)

	ctx.SetFallback("package.metadata.settings.defaults.tools_dir", ToolsDirCandidates())
	ctx.SetFallback("package.metadata.settings.defaults.manifests_dir", ManifestsDirCandidates())
	ctx.SetFallback("package.metadata.settings.defaults.tools_sources_path", SourcesCacheCandidates())
	ctx.SetFallback("package.metadata.settings.defaults.app_config_path", ConfigDirCandidates())

	return ctx
}
