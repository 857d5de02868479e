package source

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/toolchest-labs/toolchest/internal/manifest"
)

// Resolver locates a tool's manifest across the configured sources.
type Resolver struct {
	// Sources in priority order (configuration order).
	Sources []Descriptor
	// CacheDir is where git working copies and downloaded manifests are
	// materialized, keyed by source location.
	CacheDir string
	// Client overrides the HTTP client for URL sources; nil uses a default
	// with a timeout.
	Client *http.Client
	// Log receives resolution tracing; nil uses the package default logger.
	Log *log.Logger
}

// Resolve iterates the sources in order and returns the path of the first
// manifest found for tool. Later sources are not consulted once one source
// yields a manifest. It fails with ErrNotFound only when every source is
// exhausted.
func (r *Resolver) Resolve(tool string) (string, error) {
	for _, src := range r.Sources {
		path, found, err := r.resolveOne(src, tool)
		if err != nil {
			return "", err
		}
		if found {
			r.logger().Debug("manifest resolved", "tool", tool, "source", src.Kind, "path", path)
			return path, nil
		}
		r.logger().Debug("source exhausted", "tool", tool, "source", src.Kind, "location", src.Location)
	}
	return "", fmt.Errorf("tool %q: %w", tool, ErrNotFound)
}

func (r *Resolver) resolveOne(src Descriptor, tool string) (path string, found bool, err error) {
	switch src.Kind {
	case KindLocal:
		return r.resolveLocal(src, tool)
	case KindGit:
		return r.resolveGit(src, tool)
	case KindURL:
		return r.resolveURL(src, tool)
	default:
		r.logger().Warn("skipping unknown manifest source type", "type", src.Kind)
		return "", false, nil
	}
}

// resolveLocal checks for <location>/<tool>.jsonc. Success is existence,
// not validity; the parser decides whether the manifest is usable.
func (r *Resolver) resolveLocal(src Descriptor, tool string) (string, bool, error) {
	path := manifest.FilePath(src.Location, tool)
	if _, err := os.Stat(path); err != nil {
		return "", false, nil
	}
	return path, true, nil
}

// resolveGit materializes the source repository under the cache directory
// and looks for the tool's manifest inside the working copy. A failed clone
// or update is non-fatal only when a previously materialized manifest is
// already present.
func (r *Resolver) resolveGit(src Descriptor, tool string) (string, bool, error) {
	key := sanitizeLocation(src.Location)
	workDir := filepath.Join(r.CacheDir, "git", key)
	manifestPath := manifest.FilePath(workDir, tool)

	release, err := lockCacheEntry(filepath.Join(r.CacheDir, "git", key+".lock"))
	if err != nil {
		return "", false, err
	}
	defer release()

	gitDir := filepath.Join(workDir, ".git")
	if _, statErr := os.Stat(gitDir); os.IsNotExist(statErr) {
		if cloneErr := gitClone(src.Location, src.Branch, workDir); cloneErr != nil {
			if _, err := os.Stat(manifestPath); err == nil {
				r.logger().Warn("clone failed, using cached manifest", "location", src.Location, "err", cloneErr)
				return manifestPath, true, nil
			}
			return "", false, cloneErr
		}
	} else if src.AutoUpdate {
		if updateErr := gitUpdate(workDir); updateErr != nil {
			if _, err := os.Stat(manifestPath); err == nil {
				r.logger().Warn("update failed, using cached manifest", "location", src.Location, "err", updateErr)
				return manifestPath, true, nil
			}
			return "", false, updateErr
		}
	}

	if _, err := os.Stat(manifestPath); err != nil {
		return "", false, nil
	}
	return manifestPath, true, nil
}

// resolveURL fetches the manifest over HTTP and materializes it into the
// cache directory. A source with auto-update disabled is only fetched until
// a copy is cached. When the fetch fails but a cached copy exists, the
// cached copy is used; a 404 without a cached copy means this source simply
// does not carry the tool.
func (r *Resolver) resolveURL(src Descriptor, tool string) (string, bool, error) {
	cacheDir := filepath.Join(r.CacheDir, "url", sanitizeLocation(src.Location))
	destPath := manifest.FilePath(cacheDir, tool)

	release, err := lockCacheEntry(destPath + ".lock")
	if err != nil {
		return "", false, err
	}
	defer release()

	if !src.AutoUpdate {
		if _, err := os.Stat(destPath); err == nil {
			return destPath, true, nil
		}
	}

	fetchErr := fetchManifest(r.Client, manifestURL(src.Location, tool), destPath)
	if fetchErr == nil {
		return destPath, true, nil
	}

	if _, err := os.Stat(destPath); err == nil {
		r.logger().Warn("fetch failed, using cached manifest", "location", src.Location, "err", fetchErr)
		return destPath, true, nil
	}

	var missing *errManifestMissing
	if errors.As(fetchErr, &missing) {
		return "", false, nil
	}
	return "", false, fetchErr
}

func (r *Resolver) logger() *log.Logger {
	if r.Log != nil {
		return r.Log
	}
	return log.Default()
}
