// Package site serves the catalog as a web application: the grid, detail
// and lightbox pages, the JSON API behind them, and local files under the
// site root.
package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/gamecat/internal/catalog"
	"github.com/ziadkadry99/gamecat/internal/viewer"
)

// Site renders pages from a viewer.App.
type Site struct {
	app    *viewer.App
	root   string
	md     goldmark.Markdown
	tmpl   *template.Template
	logger *slog.Logger
}

// New creates a Site serving local files from root.
func New(app *viewer.App, root string, logger *slog.Logger) (*Site, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.New("pages").Funcs(template.FuncMap{
		"gamePath": GamePath,
		"cardPath": func(name string) string { return "/api" + GamePath(name) + "/card" },
		"embedSrc": EmbedSrc,
	}).Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return &Site{app: app, root: root, md: newMarkdown(), tmpl: tmpl, logger: logger}, nil
}

// RegisterRoutes mounts all site routes onto the given router.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleGrid)
	r.Get("/open", s.handleOpen)
	r.Get("/games/{name}", s.handleDetail)
	r.Get("/games/{name}/images/{index}", s.handleLightbox)
	r.Get("/_gamecat/{asset}", handleAsset)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/games/{name}", s.handleGame)
		r.Get("/games/{name}/card", s.handleCard)
		r.Post("/token", s.handleToken)
		r.Post("/reload", s.handleReload)
	})

	r.Get("/*", s.handleStatic)
}

// GamePath is the detail page path of name.
func GamePath(name string) string {
	return "/games/" + url.PathEscape(name)
}

// EmbedSrc returns the iframe source for a video embed URL with related
// videos turned off, extending any query the URL already carries.
func EmbedSrc(embed string) string {
	if strings.Contains(embed, "?") {
		return embed + "&rel=0"
	}
	return embed + "?rel=0"
}

// LightboxPath is the lightbox page path of image index of name.
func LightboxPath(name string, index int) string {
	return GamePath(name) + "/images/" + strconv.Itoa(index)
}

// gameName reads the {name} route parameter. chi matches on the escaped
// path when the name contains reserved characters.
func gameName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

type gridData struct {
	Source  string
	Message string
	Games   []catalog.Entry
}

func (s *Site) handleGrid(w http.ResponseWriter, r *http.Request) {
	c, err := s.app.Catalog()
	s.render(w, http.StatusOK, "grid", gridData{
		Source:  s.app.Config().SourceLabel(),
		Message: viewer.CatalogMessage(err),
		Games:   c.Entries(),
	})
}

func (s *Site) handleOpen(w http.ResponseWriter, r *http.Request) {
	e, ok := s.app.DeepLink(r.URL.Query().Get("h"))
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, GamePath(e.Name), http.StatusFound)
}

type imageLink struct {
	URL  string
	Href string
}

type detailData struct {
	Name     string
	Fragment string
	Message  string
	Body     template.HTML
	Images   []imageLink
	Videos   []string
	NoImages string
}

func (s *Site) handleDetail(w http.ResponseWriter, r *http.Request) {
	name := gameName(r)
	d, err := s.app.Detail(r.Context(), name)
	if d.Entry.Name == "" {
		s.notFound(w, err)
		return
	}

	data := detailData{
		Name:     d.Entry.Name,
		Fragment: viewer.Fragment(d.Entry.Name),
		NoImages: viewer.MsgNoImages,
		Videos:   d.Videos,
	}
	if err != nil {
		s.logger.Warn("game content unavailable", "game", name, "err", err)
		data.Message = viewer.MsgContentUnavailable
		s.render(w, http.StatusOK, "detail", data)
		return
	}

	body, err := RenderBody(s.md, d.Document.Body)
	if err != nil {
		s.logger.Warn("rendering game body", "game", name, "err", err)
		body = template.HTML(template.HTMLEscapeString(d.Document.Body))
	}
	data.Body = body
	for i, u := range d.Images.URLs {
		data.Images = append(data.Images, imageLink{URL: u, Href: LightboxPath(d.Entry.Name, i)})
	}
	s.render(w, http.StatusOK, "detail", data)
}

type lightboxData struct {
	Name      string
	Fragment  string
	URL       string
	Position  int
	Total     int
	PrevHref  string
	NextHref  string
	CloseHref string
}

func (s *Site) handleLightbox(w http.ResponseWriter, r *http.Request) {
	name := gameName(r)
	d, err := s.app.Detail(r.Context(), name)
	if d.Entry.Name == "" {
		s.notFound(w, err)
		return
	}
	urls := d.Images.URLs
	index, convErr := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || convErr != nil || index < 0 || index >= len(urls) {
		http.Redirect(w, r, GamePath(d.Entry.Name), http.StatusFound)
		return
	}

	lb := viewer.NewLightbox(urls, index)
	s.render(w, http.StatusOK, "lightbox", lightboxData{
		Name:      d.Entry.Name,
		Fragment:  viewer.Fragment(d.Entry.Name),
		URL:       lb.Current(),
		Position:  lb.Index + 1,
		Total:     len(urls),
		PrevHref:  LightboxPath(d.Entry.Name, lb.PrevIndex()),
		NextHref:  LightboxPath(d.Entry.Name, lb.NextIndex()),
		CloseHref: GamePath(d.Entry.Name),
	})
}

type messageData struct {
	Title   string
	Message string
}

func (s *Site) notFound(w http.ResponseWriter, err error) {
	msg := "No such game."
	if !errors.Is(err, viewer.ErrUnknownGame) {
		msg = viewer.CatalogMessage(err)
	}
	s.render(w, http.StatusNotFound, "message", messageData{Title: "Not found", Message: msg})
}

func (s *Site) render(w http.ResponseWriter, status int, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, page, data); err != nil {
		s.logger.Error("rendering page", "page", page, "err", err)
	}
}

func handleAsset(w http.ResponseWriter, r *http.Request) {
	var body, contentType string
	switch chi.URLParam(r, "asset") {
	case "style.css":
		body, contentType = cssContent, "text/css; charset=utf-8"
	case "grid.js":
		body, contentType = gridJS, "text/javascript; charset=utf-8"
	case "detail.js":
		body, contentType = detailJS, "text/javascript; charset=utf-8"
	case "lightbox.js":
		body, contentType = lightboxJS, "text/javascript; charset=utf-8"
	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write([]byte(body))
}

// handleStatic serves files below the site root. Directories and hidden
// files are not served.
func (s *Site) handleStatic(w http.ResponseWriter, r *http.Request) {
	rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if rel == "" || hiddenPath(rel) {
		http.NotFound(w, r)
		return
	}
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if !IsSubpath(s.root, full) {
		http.NotFound(w, r)
		return
	}
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=60")
	http.ServeFile(w, r, full)
}

func hiddenPath(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// IsSubpath reports whether child is root or lies below it.
func IsSubpath(root, child string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absChild, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absChild)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
