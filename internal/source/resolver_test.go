package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

const sampleManifest = `{
  "repo": { "name": "demo", "url": "https://example.com/demo.git" },
  "actions": { "build": [{ "seq-id": 1, "command": "make" }] }
}`

func writeManifest(t *testing.T, dir, tool string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, tool+".jsonc")
	if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolve_LocalHit(t *testing.T) {
	dir := t.TempDir()
	want := writeManifest(t, dir, "demo")

	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindLocal, Location: dir}},
		CacheDir: t.TempDir(),
	}

	got, err := r.Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_FirstMatchWins(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	want := writeManifest(t, first, "demo")
	writeManifest(t, second, "demo")

	r := &Resolver{
		Sources: []Descriptor{
			{Kind: KindLocal, Location: first},
			{Kind: KindLocal, Location: second},
		},
		CacheDir: t.TempDir(),
	}

	got, err := r.Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want first source's %q", got, want)
	}
}

func TestResolve_FallsThroughToLaterSource(t *testing.T) {
	empty := t.TempDir()
	populated := t.TempDir()
	want := writeManifest(t, populated, "demo")

	r := &Resolver{
		Sources: []Descriptor{
			{Kind: KindLocal, Location: empty},
			{Kind: KindLocal, Location: populated},
		},
		CacheDir: t.TempDir(),
	}

	got, err := r.Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindLocal, Location: t.TempDir()}},
		CacheDir: t.TempDir(),
	}

	_, err := r.Resolve("ghost")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResolve_URLMaterializesAndCaches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/manifests/demo.jsonc" {
			w.Write([]byte(sampleManifest))
			return
		}
		http.NotFound(w, req)
	}))
	defer srv.Close()

	cacheDir := t.TempDir()
	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindURL, Location: srv.URL + "/manifests", AutoUpdate: true}},
		CacheDir: cacheDir,
	}

	got, err := r.Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	data, err := os.ReadFile(got)
	if err != nil {
		t.Fatalf("reading materialized manifest: %v", err)
	}
	if string(data) != sampleManifest {
		t.Errorf("materialized content = %q, want original manifest", data)
	}

	// The server going away must not invalidate the cached copy.
	srv.Close()
	again, err := r.Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve after server shutdown: %v", err)
	}
	if again != got {
		t.Errorf("re-resolve = %q, want cached path %q", again, got)
	}
}

func TestResolve_URLNotPublished(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindURL, Location: srv.URL}},
		CacheDir: t.TempDir(),
	}

	_, err := r.Resolve("ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestResolve_URLAutoUpdateDisabledReusesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.Write([]byte(sampleManifest))
	}))
	defer srv.Close()

	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindURL, Location: srv.URL, AutoUpdate: false}},
		CacheDir: t.TempDir(),
	}

	// First resolve must fetch; nothing is cached yet.
	if _, err := r.Resolve("demo"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if _, err := r.Resolve("demo"); err != nil {
		t.Fatalf("re-resolve error: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 when auto-update is disabled", hits)
	}
}

func TestResolve_URLAutoUpdateRefetches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		hits++
		w.Write([]byte(sampleManifest))
	}))
	defer srv.Close()

	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindURL, Location: srv.URL, AutoUpdate: true}},
		CacheDir: t.TempDir(),
	}

	if _, err := r.Resolve("demo"); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if _, err := r.Resolve("demo"); err != nil {
		t.Fatalf("re-resolve error: %v", err)
	}
	if hits != 2 {
		t.Errorf("server hits = %d, want 2 when auto-update is enabled", hits)
	}
}

func TestResolve_GitCloneFailureUsesCachedManifest(t *testing.T) {
	requireGit(t)

	location := "https://127.0.0.1:1/acme/manifests.git"
	cacheDir := t.TempDir()
	workDir := filepath.Join(cacheDir, "git", sanitizeLocation(location))
	want := writeManifest(t, workDir, "demo")

	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindGit, Location: location}},
		CacheDir: cacheDir,
	}

	got, err := r.Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if got != want {
		t.Errorf("Resolve = %q, want cached %q", got, want)
	}
}

func TestResolve_GitCloneFailureWithoutCachePropagates(t *testing.T) {
	requireGit(t)

	r := &Resolver{
		Sources:  []Descriptor{{Kind: KindGit, Location: "https://127.0.0.1:1/acme/manifests.git"}},
		CacheDir: t.TempDir(),
	}

	_, err := r.Resolve("demo")
	if err == nil {
		t.Fatal("expected clone failure to propagate, got nil")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("clone failure must not be reported as NotFound")
	}
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func TestDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		desc    Descriptor
		wantErr bool
	}{
		{"local ok", Descriptor{Kind: KindLocal, Location: "/somewhere"}, false},
		{"local empty", Descriptor{Kind: KindLocal}, true},
		{"git https", Descriptor{Kind: KindGit, Location: "https://github.com/acme/m.git"}, false},
		{"git ssh", Descriptor{Kind: KindGit, Location: "git@github.com:acme/m.git"}, false},
		{"git bogus", Descriptor{Kind: KindGit, Location: "not-a-url"}, true},
		{"url https", Descriptor{Kind: KindURL, Location: "https://example.com/manifests"}, false},
		{"url ftp", Descriptor{Kind: KindURL, Location: "ftp://example.com"}, true},
		{"unknown kind", Descriptor{Kind: "svn", Location: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeLocation(t *testing.T) {
	got := sanitizeLocation("https://github.com/user/repo.git")
	want := "https___github_com_user_repo_git"
	if got != want {
		t.Errorf("sanitizeLocation = %q, want %q", got, want)
	}
}
