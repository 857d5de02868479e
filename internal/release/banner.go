package release

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/toolchest-labs/toolchest/internal/branding"
)

const (
	stateFileName = "release-check.json"
	// maxStateAge bounds how often the GitHub API is consulted.
	maxStateAge = 24 * time.Hour
)

// state is the persisted result of the last release check.
type state struct {
	Current   string    `json:"current_version"`
	Latest    string    `json:"latest_version"`
	CheckedAt time.Time `json:"checked_at"`
	Newer     bool      `json:"update_available"`
}

// Banner prints an update notice when the cached check found a newer
// release, then refreshes a stale cache in the background for the next
// invocation. It never blocks and never fails loudly.
func (c *Checker) Banner(w io.Writer, configDir string) {
	st, err := loadState(configDir)
	if err != nil {
		return
	}

	if st != nil && st.Newer && st.Current == c.Version {
		fmt.Fprintf(w, "\nUpdate available: %s -> %s\n", st.Current, st.Latest)
		fmt.Fprintf(w, "See https://github.com/%s/releases\n\n", branding.GitHubRepo())
	}

	if st == nil || st.Current != c.Version || time.Since(st.CheckedAt) > maxStateAge {
		go c.refresh(configDir)
	}
}

func (c *Checker) refresh(configDir string) {
	info, err := c.Latest()
	if err != nil {
		return
	}
	newer, err := Newer(c.Version, info.Version)
	if err != nil {
		return
	}
	_ = saveState(configDir, &state{
		Current:   c.Version,
		Latest:    info.Version,
		CheckedAt: time.Now(),
		Newer:     newer,
	})
}

// loadState returns nil, nil when no check has run yet.
func loadState(configDir string) (*state, error) {
	data, err := os.ReadFile(filepath.Join(configDir, stateFileName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func saveState(configDir string, st *state) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, stateFileName), data, 0o644)
}
