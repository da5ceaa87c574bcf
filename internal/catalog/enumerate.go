package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ziadkadry99/gamecat/internal/config"
	"github.com/ziadkadry99/gamecat/internal/fetch"
	"github.com/ziadkadry99/gamecat/internal/frontmatter"
)

var (
	// ErrNotConfigured is returned in remote mode when the site repository
	// coordinates are missing.
	ErrNotConfigured = errors.New("site repository is not configured")
	// ErrIndexNotFound is returned when the index document or info folder
	// does not exist.
	ErrIndexNotFound = errors.New("catalog index not found")
	// ErrEmpty is returned when the source lists no games.
	ErrEmpty = errors.New("catalog is empty")
)

// Reader reads a document by locator.
type Reader interface {
	Read(ctx context.Context, locator string) ([]byte, error)
}

// Source is the content access enumeration needs. *fetch.Client
// satisfies it.
type Source interface {
	Reader
	ListDir(ctx context.Context, repo fetch.Repo, dir string) ([]fetch.Entry, error)
}

// Enumerate builds the catalog for cfg: from the local index document when
// cfg.LocalInfo is set, otherwise from a listing of the info folder in the
// site repository.
func Enumerate(ctx context.Context, cfg *config.Config, src Source, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		entries []Entry
		err     error
	)
	if cfg.LocalInfo {
		entries, err = enumerateLocal(ctx, cfg, src, logger)
	} else {
		entries, err = enumerateRemote(ctx, cfg, src)
	}
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	c, dropped := New(entries)
	for _, name := range dropped {
		logger.Warn("duplicate catalog entry ignored", "name", name)
	}
	return c, nil
}

func enumerateLocal(ctx context.Context, cfg *config.Config, src Source, logger *slog.Logger) ([]Entry, error) {
	indexPath := cfg.IndexPath()
	data, err := src.Read(ctx, indexPath)
	if errors.Is(err, fetch.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", indexPath, ErrIndexNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading catalog index: %w", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding catalog index %s: %w", indexPath, err)
	}

	entries := make([]Entry, 0, len(items))
	for _, raw := range items {
		e, ok := parseIndexItem(cfg, raw)
		if !ok {
			logger.Debug("skipping catalog index item", "item", string(raw))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// indexObject is the object form of a local index item.
type indexObject struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func parseIndexItem(cfg *config.Config, raw json.RawMessage) (Entry, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.Trim(strings.TrimSpace(s), "/")
		if s == "" {
			return Entry{}, false
		}
		if MatchesPattern(cfg.InfoPattern, s) {
			return Entry{Name: trimExt(path.Base(s)), Source: path.Join(cfg.InfoBasePath, s)}, true
		}
		return Entry{Name: s, Source: namedSource(cfg, s)}, true
	}

	var obj indexObject
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Entry{}, false
	}
	obj.Name = strings.TrimSpace(obj.Name)
	if obj.Name == "" {
		return Entry{}, false
	}
	if obj.Path != "" {
		return Entry{Name: obj.Name, Source: obj.Path}, true
	}
	return Entry{Name: obj.Name, Source: namedSource(cfg, obj.Name)}, true
}

// namedSource is the default document location of a bare name.
func namedSource(cfg *config.Config, name string) string {
	return path.Join(cfg.InfoBasePath, name+".txt")
}

func enumerateRemote(ctx context.Context, cfg *config.Config, src Source) ([]Entry, error) {
	if !cfg.HasSiteRepo() {
		return nil, ErrNotConfigured
	}
	repo := fetch.Repo{Owner: cfg.SiteRepoOwner, Name: cfg.SiteRepoName, Branch: cfg.SiteBranch}
	items, err := src.ListDir(ctx, repo, cfg.InfoBasePath)
	if errors.Is(err, fetch.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", cfg.InfoBasePath, ErrIndexNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", cfg.InfoBasePath, err)
	}

	var entries []Entry
	for _, item := range items {
		if item.Type != "file" || item.DownloadURL == "" || !MatchesPattern(cfg.InfoPattern, item.Name) {
			continue
		}
		entries = append(entries, Entry{Name: trimExt(item.Name), Source: item.DownloadURL})
	}
	return entries, nil
}

// MatchesPattern reports whether the base name of file matches the glob
// pattern, ignoring case. An invalid pattern matches nothing.
func MatchesPattern(pattern, file string) bool {
	matched, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(path.Base(file)))
	return err == nil && matched
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// Load fetches and parses the text document of e.
func Load(ctx context.Context, src Reader, e Entry) (frontmatter.Document, error) {
	data, err := src.Read(ctx, e.Source)
	if err != nil {
		return frontmatter.Document{}, fmt.Errorf("loading %s: %w", e.Name, err)
	}
	return frontmatter.Parse(string(data)), nil
}
