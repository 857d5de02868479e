package source

import (
	"errors"
	"fmt"
	"strings"
)

// Kind discriminates manifest source types.
type Kind string

const (
	KindLocal Kind = "local"
	KindGit   Kind = "git"
	KindURL   Kind = "url"
)

// ErrNotFound reports that no configured source yielded a manifest for a
// tool. It is distinguishable from parse and command failures via errors.Is.
var ErrNotFound = errors.New("no manifest source resolved")

// Descriptor is one configured manifest source. The slice order in the
// settings file is the priority order; descriptors are never re-sorted.
type Descriptor struct {
	Kind       Kind   `mapstructure:"type" yaml:"type"`
	Location   string `mapstructure:"location" yaml:"location"`
	Branch     string `mapstructure:"branch,omitempty" yaml:"branch,omitempty"`
	AutoUpdate bool   `mapstructure:"auto_update" yaml:"auto_update"`
}

// Validate checks that the descriptor's location fits its kind.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindLocal:
		if d.Location == "" {
			return errors.New("local source requires a directory path")
		}
	case KindGit:
		if !strings.HasPrefix(d.Location, "http://") &&
			!strings.HasPrefix(d.Location, "https://") &&
			!strings.HasPrefix(d.Location, "git@") {
			return fmt.Errorf("git source must be a valid git URL (http://, https://, or git@): %s", d.Location)
		}
	case KindURL:
		if !strings.HasPrefix(d.Location, "http://") &&
			!strings.HasPrefix(d.Location, "https://") {
			return fmt.Errorf("url source must be a valid HTTP/HTTPS URL: %s", d.Location)
		}
	default:
		return fmt.Errorf("invalid source type %q: must be one of local, git, url", d.Kind)
	}
	return nil
}

// sanitizeLocation converts a URL into a directory-name-safe cache key.
func sanitizeLocation(location string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', ':', '.', '@':
			return '_'
		}
		return r
	}, location)
}
