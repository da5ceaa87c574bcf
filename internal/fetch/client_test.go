package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
)

func newTestClient(t *testing.T, opts Options) *Client {
	t.Helper()
	c, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestListDir(t *testing.T) {
	var gotPath, gotRef, gotAccept, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotRef = r.URL.Query().Get("ref")
		gotAccept = r.Header.Get("Accept")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"type":"file","name":"b.png","path":"Images/My Game/b.png","download_url":"https://raw.example/b.png"},
			{"type":"dir","name":"sub","path":"Images/My Game/sub","download_url":null}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(t, Options{APIBaseURL: srv.URL, Token: "tok"})
	entries, err := c.ListDir(t.Context(), Repo{Owner: "octo", Name: "shots", Branch: "dev"}, "/Images/My Game/")
	if err != nil {
		t.Fatalf("ListDir: %v", err)
	}
	if gotPath != "/repos/octo/shots/contents/Images/My%20Game" {
		t.Errorf("path = %q", gotPath)
	}
	if gotRef != "dev" {
		t.Errorf("ref = %q", gotRef)
	}
	if gotAccept != "application/vnd.github.v3+json" {
		t.Errorf("accept = %q", gotAccept)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if len(entries) != 2 || entries[0].DownloadURL != "https://raw.example/b.png" || entries[1].Type != "dir" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestListDirNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := newTestClient(t, Options{APIBaseURL: srv.URL})
	_, err := c.ListDir(t.Context(), Repo{Owner: "o", Name: "r"}, "Info")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListDirServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, Options{APIBaseURL: srv.URL})
	_, err := c.ListDir(t.Context(), Repo{Owner: "o", Name: "r"}, "Info")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Fatalf("expected non-404 error, got %v", err)
	}
}

func TestListDirRequiresRepo(t *testing.T) {
	c := newTestClient(t, Options{})
	if _, err := c.ListDir(t.Context(), Repo{}, "Info"); err == nil {
		t.Fatal("expected error without repository coordinates")
	}
}

func TestReadURLAndJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/index.json":
			w.Write([]byte(`{"Foo": ["1.png"]}`))
		case "/bad.json":
			w.Write([]byte(`{`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := newTestClient(t, Options{})
	var idx map[string][]string
	if err := c.ReadJSON(t.Context(), srv.URL+"/index.json", &idx); err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(idx["Foo"]) != 1 {
		t.Errorf("unexpected index: %v", idx)
	}
	if err := c.ReadJSON(t.Context(), srv.URL+"/bad.json", &idx); err == nil {
		t.Error("expected decode error")
	}
	if _, err := c.Read(t.Context(), srv.URL+"/missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestReadLocal(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "Info"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Info", "My Game.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(filepath.Dir(root), "secret.txt")
	_ = os.WriteFile(outside, []byte("secret"), 0o644)
	t.Cleanup(func() { os.Remove(outside) })

	c := newTestClient(t, Options{Root: root})

	data, err := c.Read(t.Context(), "Info/My Game.txt")
	if err != nil || string(data) != "hello" {
		t.Fatalf("Read = %q, %v", data, err)
	}
	// Escaped paths from browser-oriented indexes resolve too.
	data, err = c.Read(t.Context(), "Info/My%20Game.txt")
	if err != nil || string(data) != "hello" {
		t.Fatalf("Read escaped = %q, %v", data, err)
	}
	// Traversal is clamped to the root.
	if _, err := c.Read(t.Context(), "../secret.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected traversal to miss, got %v", err)
	}
	if _, err := c.Read(t.Context(), "Info"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected directory read to be not found, got %v", err)
	}
}

func TestAuthorizedHosts(t *testing.T) {
	c := newTestClient(t, Options{APIBaseURL: "https://api.github.com"})
	tests := []struct {
		url  string
		want bool
	}{
		{"https://api.github.com/repos/o/r/contents/x", true},
		{"https://raw.githubusercontent.com/o/r/main/a.txt", true},
		{"https://cdn.example.com/a.png", false},
		{"https://evilgithubusercontent.com/a", false},
	}
	for _, tt := range tests {
		u, _ := url.Parse(tt.url)
		if got := c.authorized(u); got != tt.want {
			t.Errorf("authorized(%s) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestTokenNotSentToOtherHosts(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// The API lives elsewhere, so the test server is a foreign host.
	c := newTestClient(t, Options{APIBaseURL: "https://api.github.com", Token: "tok"})
	if _, err := c.Read(t.Context(), srv.URL+"/doc.txt"); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("token leaked to foreign host: %q", gotAuth)
	}

	c.SetToken("  ")
	if c.currentToken() != "" {
		t.Error("blank token should clear authorization")
	}
}

func TestIsURL(t *testing.T) {
	for in, want := range map[string]bool{
		"http://x":      true,
		"HTTPS://x/y":   true,
		"ftp://x":       false,
		"/local/path":   false,
		"Info/http.txt": false,
	} {
		if got := IsURL(in); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", in, got, want)
		}
	}
}
