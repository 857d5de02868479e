package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestExt is the file extension for tool manifests.
const ManifestExt = ".jsonc"

// ConfigError reports a malformed or unreadable manifest. Line and Column
// are 1-based and zero when unknown.
type ConfigError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("manifest %s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("manifest %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// FilePath returns the manifest path for a tool inside a manifest directory.
func FilePath(dir, tool string) string {
	return filepath.Join(dir, tool+ManifestExt)
}

// Load reads and parses the manifest for a tool from a manifest directory.
func Load(dir, tool string) (*Config, error) {
	return LoadPath(FilePath(dir, tool))
}

// LoadPath reads a manifest file, strips comments, decodes the JSON, and
// checks the structural invariants. It fails fast: either a valid Config is
// returned or nothing ran.
func LoadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("reading manifest: %w", err)}
	}
	cfg, err := Parse(data)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
			return nil, cfgErr
		}
		return nil, &ConfigError{Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes raw JSONC manifest bytes into a Config. Unknown top-level
// keys are ignored for forward compatibility; unknown action group names are
// kept as opaque groups.
func Parse(data []byte) (*Config, error) {
	stripped := StripComments(data)

	var cfg Config
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		return nil, decodeError(stripped, err)
	}
	if err := cfg.check(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	return &cfg, nil
}

// check enforces the invariants that must hold before any action runs.
func (c *Config) check() error {
	if c.Repo.Name == "" {
		return errors.New("missing required field repo.name")
	}
	if len(c.Actions) == 0 {
		return errors.New("manifest defines no action groups")
	}
	for _, name := range c.Actions.Names() {
		if _, err := SortActions(c.Actions[name]); err != nil {
			return fmt.Errorf("action group %q: %w", name, err)
		}
	}
	return nil
}

// decodeError converts an encoding/json error into a ConfigError with the
// line and column derived from the byte offset. StripComments preserves
// offsets, so positions refer to the original file.
func decodeError(data []byte, err error) error {
	var offset int64
	var synErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &synErr):
		offset = synErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	default:
		return &ConfigError{Err: err}
	}

	line, col := positionAt(data, offset)
	return &ConfigError{Line: line, Column: col, Err: err}
}

// positionAt converts a byte offset into a 1-based line and column.
func positionAt(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	prefix := data[:offset]
	line = bytes.Count(prefix, []byte{'\n'}) + 1
	lastNL := bytes.LastIndexByte(prefix, '\n')
	col = int(offset) - lastNL
	return line, col
}
