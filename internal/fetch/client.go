// Package fetch reads catalog content from the site root directory, from
// plain HTTP(S) URLs, and from a GitHub-style repository contents API.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
)

// ErrNotFound is returned when a document or directory does not exist.
var ErrNotFound = errors.New("not found")

// maxBodyBytes caps a single response or file read.
const maxBodyBytes = 16 << 20

var absoluteURL = regexp.MustCompile(`(?i)^https?://`)

// IsURL reports whether locator is an absolute http(s) URL.
func IsURL(locator string) bool {
	return absoluteURL.MatchString(locator)
}

// Repo identifies a repository and branch on the contents API.
type Repo struct {
	Owner  string
	Name   string
	Branch string
}

// Entry is one item of a contents API directory listing.
type Entry struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	DownloadURL string `json:"download_url"`
}

// Options configures a Client.
type Options struct {
	Root       string        // site root for relative locators
	APIBaseURL string        // contents API base, e.g. https://api.github.com
	Token      string        // optional bearer token
	Timeout    time.Duration // zero leaves the transport default
	HTTPClient *http.Client  // overrides Timeout when set
}

// Client fetches documents. It is safe for concurrent use.
type Client struct {
	root    string
	apiBase *url.URL
	client  *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.APIBaseURL, "/")
	if base == "" {
		base = "https://api.github.com"
	}
	apiBase, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	root := opts.Root
	if root == "" {
		root = "."
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{root: root, apiBase: apiBase, client: hc, token: opts.Token}, nil
}

// Root returns the site root directory.
func (c *Client) Root() string { return c.root }

// SetToken replaces the bearer token used for authorized hosts.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = strings.TrimSpace(token)
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Read returns the content at locator: an absolute http(s) URL, or a path
// relative to the site root.
func (c *Client) Read(ctx context.Context, locator string) ([]byte, error) {
	if IsURL(locator) {
		return c.get(ctx, locator, "")
	}
	return c.readLocal(locator)
}

// ReadJSON reads locator and decodes it into v.
func (c *Client) ReadJSON(ctx context.Context, locator string, v any) error {
	data, err := c.Read(ctx, locator)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", locator, err)
	}
	return nil
}

// ListDir lists a directory of repo. A missing directory returns ErrNotFound.
func (c *Client) ListDir(ctx context.Context, repo Repo, dir string) ([]Entry, error) {
	if repo.Owner == "" || repo.Name == "" {
		return nil, fmt.Errorf("repository owner and name are required")
	}
	u := *c.apiBase
	u.Path = path.Join(u.Path, "repos", repo.Owner, repo.Name, "contents", strings.Trim(dir, "/"))
	u.RawPath = ""
	if repo.Branch != "" {
		u.RawQuery = url.Values{"ref": {repo.Branch}}.Encode()
	}

	data, err := c.get(ctx, u.String(), "application/vnd.github.v3+json")
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding listing of %s: %w", dir, err)
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if token := c.currentToken(); token != "" && c.authorized(req.URL) {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", rawURL, ErrNotFound)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s returned status %d", rawURL, resp.StatusCode)
	}
	return body, nil
}

// authorized limits the token to the API host and GitHub raw content hosts.
func (c *Client) authorized(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	if host == strings.ToLower(c.apiBase.Hostname()) {
		return true
	}
	return host == "githubusercontent.com" || strings.HasSuffix(host, ".githubusercontent.com")
}

func (c *Client) readLocal(locator string) ([]byte, error) {
	data, err := c.readFile(locator)
	if errors.Is(err, ErrNotFound) {
		// Index documents written for browsers may carry escaped paths.
		if unescaped, uerr := url.PathUnescape(locator); uerr == nil && unescaped != locator {
			return c.readFile(unescaped)
		}
	}
	return data, err
}

func (c *Client) readFile(locator string) ([]byte, error) {
	// Cleaning against "/" keeps the path inside the root.
	rel := strings.TrimPrefix(path.Clean("/"+filepath.ToSlash(locator)), "/")
	full := filepath.Join(c.root, filepath.FromSlash(rel))

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", locator, ErrNotFound)
		}
		return nil, fmt.Errorf("opening %s: %w", locator, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", locator, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", locator, ErrNotFound)
	}
	data, err := io.ReadAll(io.LimitReader(f, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", locator, err)
	}
	return data, nil
}
