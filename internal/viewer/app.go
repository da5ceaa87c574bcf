// Package viewer holds the application state shared by the web, CLI and
// MCP surfaces: the loaded catalog, per-game cards and details, and the
// grid, detail and lightbox navigation model.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ziadkadry99/gamecat/internal/catalog"
	"github.com/ziadkadry99/gamecat/internal/config"
	"github.com/ziadkadry99/gamecat/internal/frontmatter"
	"github.com/ziadkadry99/gamecat/internal/gallery"
	"github.com/ziadkadry99/gamecat/internal/video"
)

// ErrUnknownGame is returned for names that are not in the catalog.
var ErrUnknownGame = errors.New("unknown game")

// User-facing messages.
const (
	MsgContentUnavailable = "Could not load content."
	MsgNoImages           = "No images."
	MsgNotConfigured      = "The site repository is not configured."
	MsgIndexNotFound      = "The catalog index was not found."
	MsgEmpty              = "No games found."
	MsgCatalogFailed      = "Could not load the catalog."
)

// CardLoadTimeout bounds a shared card load, which outlives the request
// that started it.
const CardLoadTimeout = 30 * time.Second

// Source is the content access the application needs. *fetch.Client
// satisfies it.
type Source interface {
	catalog.Source
	gallery.Source
	SetToken(token string)
}

// Card is what a grid card shows for one game.
type Card struct {
	Name      string `json:"name"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// Detail is everything shown on a game's page.
type Detail struct {
	Entry    catalog.Entry
	Document frontmatter.Document
	Summary  string
	Images   gallery.Result
	Videos   []string
}

// App owns the catalog and the thumbnail memo. It is safe for concurrent
// use.
type App struct {
	cfg      *config.Config
	src      Source
	resolver *gallery.Resolver
	logger   *slog.Logger

	mu      sync.RWMutex
	catalog *catalog.Catalog
	loadErr error
	cards   map[string]Card
	gen     uint64

	loads singleflight.Group
}

// New creates an App. Call Reload before use.
func New(cfg *config.Config, src Source, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		cfg:      cfg,
		src:      src,
		resolver: gallery.NewResolver(cfg, src, logger),
		logger:   logger,
		cards:    make(map[string]Card),
	}
}

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Reload enumerates the catalog again and clears the card memo. The load
// error, if any, is kept and reported by Catalog.
func (a *App) Reload(ctx context.Context) error {
	c, err := catalog.Enumerate(ctx, a.cfg, a.src, a.logger)
	if err != nil {
		a.logger.Warn("catalog unavailable", "err", err)
	} else {
		a.logger.Info("catalog loaded", "games", c.Len())
	}

	a.mu.Lock()
	a.catalog, a.loadErr = c, err
	a.cards = make(map[string]Card)
	a.gen++
	a.mu.Unlock()
	return err
}

// SetToken replaces the bearer token and reloads the catalog.
func (a *App) SetToken(ctx context.Context, token string) error {
	a.src.SetToken(token)
	return a.Reload(ctx)
}

// Catalog returns the loaded catalog, or the error of the last load.
func (a *App) Catalog() (*catalog.Catalog, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.catalog == nil && a.loadErr == nil {
		return nil, catalog.ErrEmpty
	}
	return a.catalog, a.loadErr
}

// Lookup finds a game in the current catalog.
func (a *App) Lookup(name string) (catalog.Entry, error) {
	c, err := a.Catalog()
	if err != nil {
		return catalog.Entry{}, err
	}
	e, ok := c.Lookup(name)
	if !ok {
		return catalog.Entry{}, fmt.Errorf("%q: %w", name, ErrUnknownGame)
	}
	return e, nil
}

// Card returns the grid card of name. Cards with a thumbnail are memoized
// until the next Reload, and concurrent calls for one name share a single
// load. A game whose content cannot be loaded gets a card with only its
// name. The shared load is not cancelled with ctx; a cancelled caller
// returns ctx.Err() while the others keep waiting.
func (a *App) Card(ctx context.Context, name string) (Card, error) {
	e, err := a.Lookup(name)
	if err != nil {
		return Card{}, err
	}

	a.mu.RLock()
	card, ok := a.cards[name]
	gen := a.gen
	a.mu.RUnlock()
	if ok {
		return card, nil
	}

	ch := a.loads.DoChan(name, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), CardLoadTimeout)
		defer cancel()
		return a.loadCard(loadCtx, e, gen), nil
	})
	select {
	case res := <-ch:
		return res.Val.(Card), nil
	case <-ctx.Done():
		return Card{Name: e.Name}, ctx.Err()
	}
}

func (a *App) loadCard(ctx context.Context, e catalog.Entry, gen uint64) Card {
	card := Card{Name: e.Name}
	doc, err := catalog.Load(ctx, a.src, e)
	if err != nil {
		a.logger.Debug("card content unavailable", "game", e.Name, "err", err)
		return card
	}
	card.Summary = doc.Summary(a.cfg.SummaryLength)
	if res := a.resolver.Resolve(ctx, e.Name, doc.Meta); !res.Empty() {
		card.Thumbnail = res.URLs[0]
	}
	if card.Thumbnail == "" {
		return card
	}

	a.mu.Lock()
	if a.gen == gen {
		a.cards[e.Name] = card
	}
	a.mu.Unlock()
	return card
}

// Detail loads the page of name. When the game exists but its content
// cannot be read, the returned Detail carries the entry and the error is
// non-nil; callers show MsgContentUnavailable.
func (a *App) Detail(ctx context.Context, name string) (Detail, error) {
	e, err := a.Lookup(name)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Entry: e}
	doc, err := catalog.Load(ctx, a.src, e)
	if err != nil {
		return d, err
	}
	d.Document = doc
	d.Summary = doc.Summary(a.cfg.SummaryLength)
	d.Images = a.resolver.Resolve(ctx, e.Name, doc.Meta)
	d.Videos = video.FromMetadata(doc.Meta)
	return d, nil
}

// DeepLink returns the entry named by a "game=" fragment. Unknown names
// and other fragments report false.
func (a *App) DeepLink(fragment string) (catalog.Entry, bool) {
	name, ok := ParseFragment(fragment)
	if !ok {
		return catalog.Entry{}, false
	}
	e, err := a.Lookup(name)
	return e, err == nil
}

// CatalogMessage is the text shown in place of the grid for a catalog
// load error.
func CatalogMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, catalog.ErrNotConfigured):
		return MsgNotConfigured
	case errors.Is(err, catalog.ErrIndexNotFound):
		return MsgIndexNotFound
	case errors.Is(err, catalog.ErrEmpty):
		return MsgEmpty
	default:
		return MsgCatalogFailed
	}
}
