package manifest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(testdataDir, "valid-ripgrep")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Repo.Name != "ripgrep" {
		t.Errorf("Repo.Name = %q, want %q", cfg.Repo.Name, "ripgrep")
	}
	if cfg.Repo.URL != "https://github.com/BurntSushi/ripgrep.git" {
		t.Errorf("Repo.URL = %q, want the original https URL", cfg.Repo.URL)
	}
	if cfg.Repo.DefaultBranch == nil || cfg.Repo.DefaultBranch.Name != "master" {
		t.Errorf("DefaultBranch = %+v, want name master", cfg.Repo.DefaultBranch)
	}
	if len(cfg.Dependencies) != 1 || cfg.Dependencies[0].Version != "1.72.0" {
		t.Errorf("Dependencies = %+v, want one entry at 1.72.0", cfg.Dependencies)
	}
	if len(cfg.Actions) != 4 {
		t.Errorf("action group count = %d, want 4", len(cfg.Actions))
	}
	if got := len(cfg.Actions.Group(GroupInstallation)); got != 2 {
		t.Errorf("installation actions = %d, want 2", got)
	}
	if got := cfg.Actions.Group(GroupBuild)[0].SeqID; got != 3 {
		t.Errorf("build seq-id = %d, want 3", got)
	}
	if len(cfg.InfoArgs) != 2 {
		t.Errorf("InfoArgs = %v, want two entries", cfg.InfoArgs)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(testdataDir, "nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent manifest, got nil")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if !strings.Contains(cfgErr.Path, "nonexistent.jsonc") {
		t.Errorf("error path = %q, want it to name the manifest file", cfgErr.Path)
	}
}

func TestLoadPath_SyntaxErrorHasPosition(t *testing.T) {
	_, err := LoadPath(testPath("bad-syntax.jsonc"))
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Line == 0 {
		t.Error("expected a line number on syntax error")
	}
	if !strings.Contains(cfgErr.Error(), "bad-syntax.jsonc") {
		t.Errorf("error = %q, want it to name the file", cfgErr.Error())
	}
}

func TestLoadPath_RequiredFields(t *testing.T) {
	tests := []struct {
		file    string
		wantMsg string
	}{
		{"missing-repo-name.jsonc", "repo.name"},
		{"no-actions.jsonc", "no action groups"},
		{"duplicate-seq-id.jsonc", "duplicate seq-id"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadPath(testPath(tt.file))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("error type = %T, want *ConfigError", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadPath_UnknownGroupPreserved(t *testing.T) {
	cfg, err := LoadPath(testPath("custom-group.jsonc"))
	if err != nil {
		t.Fatalf("LoadPath error: %v", err)
	}
	deploy := cfg.Actions.Group("deploy")
	if len(deploy) != 1 {
		t.Fatalf("deploy group = %d actions, want 1", len(deploy))
	}
	if deploy[0].Description != "Copy binary" {
		t.Errorf("deploy description = %q, want %q", deploy[0].Description, "Copy binary")
	}
}

func TestParse_UnknownTopLevelKeysIgnored(t *testing.T) {
	raw := `{
	  "repo": { "name": "demo", "url": "https://example.com/demo.git" },
	  "actions": { "build": [{ "seq-id": 1, "command": "make" }] },
	  "future_field": { "anything": true }
	}`
	if _, err := Parse([]byte(raw)); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
}

func TestSortActions(t *testing.T) {
	actions := []Action{
		{SeqID: 5, Command: "third"},
		{SeqID: 1, Command: "first"},
		{SeqID: 3, Command: "second"},
	}

	sorted, err := SortActions(actions)
	if err != nil {
		t.Fatalf("SortActions error: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if sorted[i].Command != want {
			t.Errorf("sorted[%d].Command = %q, want %q", i, sorted[i].Command, want)
		}
	}

	// Input order must be untouched.
	if actions[0].SeqID != 5 {
		t.Errorf("input slice mutated: actions[0].SeqID = %d, want 5", actions[0].SeqID)
	}
}

func TestSortActions_DuplicateSeqID(t *testing.T) {
	_, err := SortActions([]Action{
		{SeqID: 2, Command: "a"},
		{SeqID: 2, Command: "b"},
	})
	if err == nil {
		t.Fatal("expected error for duplicate seq-id, got nil")
	}
	if !strings.Contains(err.Error(), "duplicate seq-id 2") {
		t.Errorf("error = %q, want it to name the duplicate id", err.Error())
	}
}

func TestActionGroups_Names(t *testing.T) {
	g := ActionGroups{
		"run":          nil,
		"build":        nil,
		"installation": nil,
	}
	names := g.Names()
	want := []string{"build", "installation", "run"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
