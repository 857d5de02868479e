package source

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/toolchest-labs/toolchest/internal/branding"
)

// httpTimeout bounds a single manifest fetch.
const httpTimeout = 30 * time.Second

// errManifestMissing reports a 404: the source is reachable but does not
// publish a manifest for this tool.
type errManifestMissing struct {
	url string
}

func (e *errManifestMissing) Error() string {
	return fmt.Sprintf("manifest not published at %s", e.url)
}

// fetchManifest downloads a manifest from a URL source and materializes it
// at destPath. The write is atomic (temp file + rename) so a concurrent
// reader never observes a partial manifest.
func fetchManifest(client *http.Client, manifestURL, destPath string) error {
	if client == nil {
		client = &http.Client{Timeout: httpTimeout}
	}

	req, err := http.NewRequest(http.MethodGet, manifestURL, nil)
	if err != nil {
		return fmt.Errorf("creating manifest request: %w", err)
	}
	req.Header.Set("User-Agent", branding.CLIName()+"-manifest-fetch")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching manifest %s: %w", manifestURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &errManifestMissing{url: manifestURL}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("fetching manifest %s: status %d", manifestURL, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("creating manifest cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".fetch-*")
	if err != nil {
		return fmt.Errorf("creating temp manifest file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing manifest file: %w", err)
	}
	if err := os.Rename(tmp.Name(), destPath); err != nil {
		return fmt.Errorf("finalizing manifest download: %w", err)
	}
	return nil
}

// manifestURL joins a URL source location with the tool's manifest name.
func manifestURL(location, tool string) string {
	return strings.TrimRight(location, "/") + "/" + tool + ".jsonc"
}
