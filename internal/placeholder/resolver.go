package placeholder

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// maxPasses bounds the fixed-point iteration over transitive templates.
// Legitimate nesting is shallow; anything deeper is a cycle.
const maxPasses = 10

var tokenPattern = regexp.MustCompile(`\[\[([^\[\]]+)\]\]`)

// UnresolvedError reports a template token whose path has no context entry,
// or a template that never converges because its values reference each other.
type UnresolvedError struct {
	Path     string // unknown dotted path ("" for non-convergence)
	Template string
	Cyclic   bool
}

func (e *UnresolvedError) Error() string {
	if e.Cyclic {
		return fmt.Sprintf("placeholder resolution did not converge for %q (cyclic reference?)", e.Template)
	}
	return fmt.Sprintf("unresolved placeholder [[%s]] in %q", e.Path, e.Template)
}

// Render substitutes every [[dotted.path]] token in template with its
// context value. Resolved values may themselves contain tokens; resolution
// iterates to a fixed point and fails rather than looping on cycles.
func Render(template string, ctx *Context) (string, error) {
	result := template
	for pass := 0; pass < maxPasses; pass++ {
		matches := tokenPattern.FindAllStringSubmatch(result, -1)
		if len(matches) == 0 {
			return result, nil
		}

		for _, m := range matches {
			token, path := m[0], m[1]
			value, candidates, ok := ctx.lookup(path)
			if !ok {
				return "", &UnresolvedError{Path: path, Template: template}
			}
			if candidates != nil {
				value = pickCandidate(candidates)
			}
			result = strings.ReplaceAll(result, token, value)
		}
	}

	if tokenPattern.MatchString(result) {
		return "", &UnresolvedError{Template: template, Cyclic: true}
	}
	return result, nil
}

// pickCandidate returns the first fallback candidate that is non-empty and,
// when it denotes a filesystem location, currently exists. When no candidate
// qualifies the last one is used as the default, so rendering still
// terminates with some value.
func pickCandidate(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if isPathLike(c) {
			if _, err := os.Stat(c); err != nil {
				continue
			}
		}
		return c
	}
	return candidates[len(candidates)-1]
}

// isPathLike reports whether a candidate denotes a filesystem location that
// should be existence-checked, rather than an arbitrary value.
func isPathLike(s string) bool {
	return strings.HasPrefix(s, "/") ||
		strings.HasPrefix(s, "./") ||
		strings.HasPrefix(s, "../") ||
		strings.HasPrefix(s, "~/")
}
