package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/toolchest-labs/toolchest/internal/branding"
	"github.com/toolchest-labs/toolchest/internal/source"
)

// Settings is the immutable invocation-wide configuration. It is constructed
// once at startup and passed by reference; nothing mutates it afterwards.
type Settings struct {
	// ManifestSources in priority order.
	ManifestSources []source.Descriptor `mapstructure:"manifest_sources" yaml:"manifest_sources"`
	// ManifestsDir is the default local manifest directory.
	ManifestsDir string `mapstructure:"manifests_dir" yaml:"manifests_dir"`
	// ToolsDir is where tools are installed (tools_dir/<tool_name>).
	ToolsDir string `mapstructure:"tools_dir" yaml:"tools_dir"`
	// SourcesCacheDir holds manifests materialized from git/url sources.
	SourcesCacheDir string `mapstructure:"sources_cache_dir" yaml:"sources_cache_dir"`

	// configDir is where the settings file lives; kept for Save.
	configDir string
}

// Default returns the settings used when no config file exists: a single
// local manifest source at the default manifests directory.
func Default() *Settings {
	manifestsDir := resolveFirstUsable(ManifestsDirCandidates())
	return &Settings{
		ManifestSources: []source.Descriptor{
			{Kind: source.KindLocal, Location: manifestsDir},
		},
		ManifestsDir:    manifestsDir,
		ToolsDir:        resolveFirstUsable(ToolsDirCandidates()),
		SourcesCacheDir: resolveFirstUsable(SourcesCacheCandidates()),
		configDir:       resolveFirstUsable(ConfigDirCandidates()),
	}
}

// Load reads the settings file from configDir (or the default config
// directory when configDir is ""), overlaying defaults. Environment
// variables with the TOOLCHEST_ prefix override file values. A missing file
// is not an error; the defaults are written back on first Save.
func Load(configDir string) (*Settings, error) {
	if configDir == "" {
		configDir = resolveFirstUsable(ConfigDirCandidates())
	}

	defaults := Default()
	v := viper.New()
	v.SetConfigFile(filepath.Join(configDir, ConfigFileName))
	v.SetConfigType("yaml")
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault("manifests_dir", defaults.ManifestsDir)
	v.SetDefault("tools_dir", defaults.ToolsDir)
	v.SetDefault("sources_cache_dir", defaults.SourcesCacheDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
	}

	s := &Settings{configDir: configDir}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if len(s.ManifestSources) == 0 {
		s.ManifestSources = defaults.ManifestSources
	}
	return s, nil
}

// FilePath returns the full path of the settings file.
func (s *Settings) FilePath() string {
	return filepath.Join(s.configDir, ConfigFileName)
}

// Save writes the settings file, creating the config directory if needed.
func (s *Settings) Save() error {
	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", s.configDir, err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	if err := os.WriteFile(s.FilePath(), data, 0o644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

// ToolDir returns the installation directory for one tool.
func (s *Settings) ToolDir(tool string) string {
	return filepath.Join(s.ToolsDir, tool)
}

// AddSource validates and appends a manifest source. Local locations are
// canonicalized to absolute paths and must be existing readable directories.
// Returns the validated location.
func (s *Settings) AddSource(kind source.Kind, location, branch string, autoUpdate bool) (string, error) {
	desc := source.Descriptor{
		Kind:       kind,
		Location:   location,
		Branch:     branch,
		AutoUpdate: autoUpdate,
	}
	if err := desc.Validate(); err != nil {
		return "", err
	}

	if kind == source.KindLocal {
		abs, err := filepath.Abs(location)
		if err != nil {
			return "", fmt.Errorf("resolving path %s: %w", location, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("path does not exist or cannot be accessed: %s", abs)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("local manifest source must be a directory: %s", abs)
		}
		if _, err := os.ReadDir(abs); err != nil {
			return "", fmt.Errorf("cannot read directory %s: %w", abs, err)
		}
		desc.Location = abs
	}

	for _, existing := range s.ManifestSources {
		if existing.Kind == desc.Kind && existing.Location == desc.Location {
			return "", fmt.Errorf("manifest source already exists: %s %s", desc.Kind, desc.Location)
		}
	}

	s.ManifestSources = append(s.ManifestSources, desc)
	return desc.Location, nil
}
