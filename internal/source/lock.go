package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockCacheEntry takes an exclusive file lock guarding one cache entry.
// Concurrent invocations for the same tool share cache paths, so clone,
// update, and download steps must not interleave. The returned release
// function must be called on every exit path.
func lockCacheEntry(lockPath string) (release func(), err error) {
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	fl := flock.New(lockPath)
	if err := fl.Lock(); err != nil {
		return nil, fmt.Errorf("locking cache entry %s: %w", lockPath, err)
	}
	return func() { _ = fl.Unlock() }, nil
}
