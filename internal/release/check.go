// Package release checks GitHub Releases for a newer toolchest version. The
// result is cached for a day and surfaced as a startup banner; the check
// itself runs in the background and never blocks a command.
package release

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/toolchest-labs/toolchest/internal/branding"
)

const githubAPIBase = "https://api.github.com"

// Info describes the latest published release.
type Info struct {
	Version   string    `json:"tag_name"`
	Published time.Time `json:"published_at"`
	URL       string    `json:"html_url"`
}

// Checker queries the project's GitHub releases.
type Checker struct {
	// Version is the running build's version string.
	Version string
	// Client overrides the HTTP client; nil uses a default with a timeout.
	Client *http.Client
}

// Latest fetches the most recent release from GitHub. An optional
// GITHUB_TOKEN raises the API rate limit.
func (c *Checker) Latest() (*Info, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", githubAPIBase, branding.GitHubRepo())

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-release-check")
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := c.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no published releases")
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded; set GITHUB_TOKEN for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	var info Info
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	return &info, nil
}

func (c *Checker) client() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Newer reports whether latest is a higher semver than current. Both accept
// an optional "v" prefix. Non-semver versions (like "dev") compare as errors.
func Newer(current, latest string) (bool, error) {
	cv, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return cv.LessThan(lv), nil
}
