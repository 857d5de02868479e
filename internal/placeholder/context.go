package placeholder

import (
	"strings"

	"github.com/toolchest-labs/toolchest/internal/manifest"
)

// Context is a read-only nested mapping from dotted key paths to values.
// It is built once per invocation and never mutated while actions execute.
type Context struct {
	scalars   map[string]string
	fallbacks map[string][]string
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{
		scalars:   make(map[string]string),
		fallbacks: make(map[string][]string),
	}
}

// Set binds a dotted path to a single value.
func (c *Context) Set(path, value string) {
	c.scalars[path] = value
}

// SetFallback binds a dotted path to an ordered list of candidate values.
func (c *Context) SetFallback(path string, candidates []string) {
	c.fallbacks[path] = candidates
}

// lookup returns the scalar value or fallback list for a path.
// Exactly one of the returns is meaningful when ok is true.
func (c *Context) lookup(path string) (value string, candidates []string, ok bool) {
	if v, found := c.scalars[path]; found {
		return v, nil, true
	}
	if cs, found := c.fallbacks[path]; found {
		return "", cs, true
	}
	return "", nil, false
}

// FromConfig builds a context seeded from a parsed manifest: repo.* fields
// and deps.<name>.* for each declared dependency.
func FromConfig(cfg *manifest.Config) *Context {
	ctx := NewContext()
	ctx.Set("repo.name", cfg.Repo.Name)
	ctx.Set("repo.url", cfg.Repo.URL)
	if cfg.Repo.DefaultBranch != nil {
		ctx.Set("repo.default_branch.name", cfg.Repo.DefaultBranch.Name)
	}
	for _, dep := range cfg.Dependencies {
		key := strings.ReplaceAll(dep.Name, ".", "_")
		ctx.Set("deps."+key+".version", dep.Version)
		ctx.Set("deps."+key+".url", dep.URL)
	}
	return ctx
}
