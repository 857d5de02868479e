package manifest

import (
	"fmt"
	"sort"
)

// Config is one parsed tool manifest. It is read-only after Load returns
// and lives for a single command invocation.
type Config struct {
	Repo         Repository   `json:"repo"`
	Dependencies []Dependency `json:"dependencies"`
	Actions      ActionGroups `json:"actions"`
	// InfoArgs are tool arguments that should force wait-and-show-output
	// behavior instead of spawning (e.g. "--help").
	InfoArgs []string `json:"info_args"`
}

// Repository identifies the tool's upstream repository. Its fields are
// exposed to command templates as repo.name and repo.url.
type Repository struct {
	Name          string  `json:"name"`
	URL           string  `json:"url"`
	DefaultBranch *Branch `json:"default_branch"`
}

// Branch names a git branch.
type Branch struct {
	Name string `json:"name"`
}

// Dependency is a descriptive record of something the tool needs. The core
// does not install dependencies itself; installation is expressed as actions.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	URL     string `json:"url"`
}

// ActionGroups maps a lifecycle stage name to its ordered action list.
// Unknown group names are preserved so future manifests can define new
// stages without being rejected here.
type ActionGroups map[string][]Action

// Well-known action group names.
const (
	GroupInstallation = "installation"
	GroupUpdate       = "update"
	GroupBuild        = "build"
	GroupRun          = "run"
)

// Action is one command template plus metadata within an action group.
type Action struct {
	SeqID       int    `json:"seq-id"`
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Spawn       bool   `json:"spawn"`
}

// Group returns the actions for the named group, or nil if the manifest
// does not define it.
func (g ActionGroups) Group(name string) []Action {
	return g[name]
}

// Names returns the defined group names in sorted order.
func (g ActionGroups) Names() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortActions returns a copy of actions ordered by ascending seq-id.
// It fails if two actions share a seq-id: ties would make execution order
// undefined, which is a configuration error.
func SortActions(actions []Action) ([]Action, error) {
	sorted := make([]Action, len(actions))
	copy(sorted, actions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SeqID < sorted[j].SeqID
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].SeqID == sorted[i-1].SeqID {
			return nil, fmt.Errorf("duplicate seq-id %d", sorted[i].SeqID)
		}
	}
	return sorted, nil
}
