package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/ziadkadry99/gamecat/internal/config"
	"github.com/ziadkadry99/gamecat/internal/fetch"
	"github.com/ziadkadry99/gamecat/internal/frontmatter"
)

// Strategy names the method that produced an image list.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyList
	StrategyPattern
	StrategyIndex
	StrategyListing
)

func (s Strategy) String() string {
	switch s {
	case StrategyList:
		return "list"
	case StrategyPattern:
		return "pattern"
	case StrategyIndex:
		return "index"
	case StrategyListing:
		return "listing"
	default:
		return "none"
	}
}

// Result is a resolved image list in display order.
type Result struct {
	URLs     []string
	Strategy Strategy
}

// Empty reports whether no images were found.
func (r Result) Empty() bool { return len(r.URLs) == 0 }

// Front-matter keys read by the resolver.
const (
	KeyImages   = "images"
	KeyBaseURL  = "imagesRawBaseUrl"
	KeyPattern  = "imagesFilenamePattern"
	KeyIndexURL = "imagesIndexUrl"
	KeyStart    = "imagesStart"
	KeyEnd      = "imagesEnd"
	KeyPadding  = "imagesNumberPadding"
)

// Short aliases accepted for the range keys.
const (
	aliasStart   = "start"
	aliasEnd     = "end"
	aliasPadding = "numberPadding"
)

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".bmp": true,
}

// Source is the content access the resolver needs. *fetch.Client
// satisfies it.
type Source interface {
	ReadJSON(ctx context.Context, locator string, v any) error
	ListDir(ctx context.Context, repo fetch.Repo, dir string) ([]fetch.Entry, error)
}

// Resolver picks the first image strategy that yields URLs: an explicit
// list, a numbered pattern, a remote index, then a repository listing.
type Resolver struct {
	cfg    *config.Config
	src    Source
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil cfg uses the defaults and a nil
// logger uses slog.Default().
func NewResolver(cfg *config.Config, src Source, logger *slog.Logger) *Resolver {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{cfg: cfg, src: src, logger: logger}
}

// Resolve returns the image list for the named game. Failures inside a
// strategy are logged and the next strategy is tried; running out of
// strategies gives an empty Result.
func (r *Resolver) Resolve(ctx context.Context, name string, meta frontmatter.Metadata) Result {
	if urls := r.fromList(name, meta); len(urls) > 0 {
		return Result{URLs: urls, Strategy: StrategyList}
	}
	if urls := r.fromPattern(name, meta); len(urls) > 0 {
		return Result{URLs: urls, Strategy: StrategyPattern}
	}
	urls, err := r.fromIndex(ctx, name, meta)
	if err != nil {
		r.logger.Debug("image index unavailable", "game", name, "err", err)
	} else if len(urls) > 0 {
		return Result{URLs: urls, Strategy: StrategyIndex}
	}
	urls, err = r.fromListing(ctx, name)
	if err != nil {
		r.logger.Debug("image listing unavailable", "game", name, "err", err)
	} else if len(urls) > 0 {
		return Result{URLs: urls, Strategy: StrategyListing}
	}
	return Result{Strategy: StrategyNone}
}

// baseURL prefers the per-game base over the configured one.
func (r *Resolver) baseURL(meta frontmatter.Metadata) string {
	if base := meta.String(KeyBaseURL); base != "" {
		return base
	}
	return r.cfg.ImagesRawBaseURL
}

func (r *Resolver) fromList(name string, meta frontmatter.Metadata) []string {
	v, ok := meta.Lookup(KeyImages)
	if !ok {
		return nil
	}
	return r.resolveAll(name, meta, v.Strings())
}

func (r *Resolver) resolveAll(name string, meta frontmatter.Metadata, files []string) []string {
	base := r.baseURL(meta)
	var urls []string
	for _, f := range files {
		if f = strings.TrimSpace(f); f == "" {
			continue
		}
		urls = append(urls, BuildImageURL(base, name, f))
	}
	return urls
}

func (r *Resolver) fromPattern(name string, meta frontmatter.Metadata) []string {
	base := r.baseURL(meta)
	pattern := meta.String(KeyPattern)
	if pattern == "" {
		pattern = r.cfg.ImagesFilenamePattern
	}
	if base == "" || pattern == "" {
		return nil
	}
	start, end, pad := r.Range(meta)

	var urls []string
	for _, f := range ExpandPattern(pattern, name, start, end, pad) {
		urls = append(urls, BuildImageURL(base, name, f))
	}
	return urls
}

// Range returns the numbered-pattern range for meta: per-game values that
// read as non-negative integers, then the configuration. Padding above
// MaxPadding is clamped.
func (r *Resolver) Range(meta frontmatter.Metadata) (start, end, pad int) {
	start, ok := meta.Int(KeyStart, aliasStart)
	if !ok || start < 0 {
		start = r.cfg.ImagesStart
	}
	end, ok = meta.Int(KeyEnd, aliasEnd)
	if !ok || end < 0 {
		end = r.cfg.ImagesEnd
	}
	pad, ok = meta.Int(KeyPadding, aliasPadding)
	if !ok || pad < 0 {
		pad = r.cfg.ImagesNumberPadding
	}
	return start, end, min(pad, MaxPadding)
}

func (r *Resolver) fromIndex(ctx context.Context, name string, meta frontmatter.Metadata) ([]string, error) {
	indexURL := meta.String(KeyIndexURL)
	if indexURL == "" {
		indexURL = r.cfg.ImagesIndexURL
	}
	if indexURL == "" || r.src == nil {
		return nil, nil
	}

	var index map[string]any
	if err := r.src.ReadJSON(ctx, indexURL, &index); err != nil {
		return nil, fmt.Errorf("reading image index: %w", err)
	}
	for _, key := range IndexKeys(name) {
		items, ok := index[key].([]any)
		if !ok || len(items) == 0 {
			continue
		}
		var files []string
		for _, item := range items {
			if s, ok := item.(string); ok {
				files = append(files, s)
			}
		}
		return r.resolveAll(name, meta, files), nil
	}
	return nil, nil
}

// IndexKeys returns the name forms looked up in an image index, in order:
// the raw name, the component-escaped name, and the name with %20 as spaces.
func IndexKeys(name string) []string {
	keys := []string{name}
	for _, k := range []string{EscapeComponent(name), strings.ReplaceAll(name, "%20", " ")} {
		if !slices.Contains(keys, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (r *Resolver) fromListing(ctx context.Context, name string) ([]string, error) {
	if !r.cfg.HasImagesRepo() || r.src == nil {
		return nil, nil
	}
	repo := fetch.Repo{Owner: r.cfg.ImagesRepoOwner, Name: r.cfg.ImagesRepoName, Branch: r.cfg.ImagesRepoBranch}
	entries, err := r.src.ListDir(ctx, repo, path.Join(r.cfg.ImagesFolderPrefix, name))
	if err != nil {
		return nil, err
	}
	var urls []string
	for _, e := range entries {
		if e.Type != "file" || e.DownloadURL == "" {
			continue
		}
		if imageExtensions[strings.ToLower(path.Ext(e.Name))] {
			urls = append(urls, e.DownloadURL)
		}
	}
	return urls, nil
}
