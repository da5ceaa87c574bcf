package viewer

import (
	"net/url"
	"strings"
)

// FragmentPrefix starts a deep-link fragment.
const FragmentPrefix = "game="

// Fragment returns the deep-link fragment for name, without the leading #.
func Fragment(name string) string {
	return FragmentPrefix + url.PathEscape(name)
}

// ParseFragment extracts the game name from a "game=<escaped name>"
// fragment. A leading # is ignored.
func ParseFragment(fragment string) (string, bool) {
	fragment = strings.TrimPrefix(strings.TrimSpace(fragment), "#")
	escaped, ok := strings.CutPrefix(fragment, FragmentPrefix)
	if !ok || escaped == "" {
		return "", false
	}
	name, err := url.PathUnescape(escaped)
	if err != nil {
		name = escaped
	}
	return name, name != ""
}

// Lightbox is a position in an image list. Moving past either end wraps
// around.
type Lightbox struct {
	URLs  []string
	Index int
}

// NewLightbox opens urls at index, wrapped into range.
func NewLightbox(urls []string, index int) Lightbox {
	return Lightbox{URLs: urls, Index: wrap(index, len(urls))}
}

// Current returns the URL at the current position.
func (l Lightbox) Current() string {
	if len(l.URLs) == 0 {
		return ""
	}
	return l.URLs[l.Index]
}

// NextIndex is the position after the current one.
func (l Lightbox) NextIndex() int { return wrap(l.Index+1, len(l.URLs)) }

// PrevIndex is the position before the current one.
func (l Lightbox) PrevIndex() int { return wrap(l.Index-1, len(l.URLs)) }

// Next advances and returns the new current URL.
func (l *Lightbox) Next() string {
	l.Index = l.NextIndex()
	return l.Current()
}

// Prev steps back and returns the new current URL.
func (l *Lightbox) Prev() string {
	l.Index = l.PrevIndex()
	return l.Current()
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// View is a navigation state.
type View int

const (
	ViewGrid View = iota
	ViewDetail
	ViewLightbox
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	case ViewLightbox:
		return "lightbox"
	default:
		return "grid"
	}
}

// Ticket identifies one Open call. Results loaded for a ticket are applied
// only while the ticket is still current.
type Ticket struct {
	name string
	seq  uint64
}

// Name is the game the ticket was issued for.
func (t Ticket) Name() string { return t.name }

// Session tracks one user's navigation between the grid, a game's detail
// view and its lightbox, together with the deep-link fragment each state
// implies. A Session is not safe for concurrent use.
type Session struct {
	view     View
	current  string
	seq      uint64
	lightbox Lightbox
}

// View returns the active state.
func (s *Session) View() View { return s.view }

// Current returns the open game, empty in the grid.
func (s *Session) Current() string { return s.current }

// Fragment is the deep link for the active state: the open game in the
// detail and lightbox views, empty in the grid.
func (s *Session) Fragment() string {
	if s.view == ViewGrid {
		return ""
	}
	return Fragment(s.current)
}

// Lightbox returns the lightbox position. It is meaningful only in
// ViewLightbox.
func (s *Session) Lightbox() Lightbox { return s.lightbox }

// Open switches to the detail view of name and returns the ticket its
// content load must present to Apply.
func (s *Session) Open(name string) Ticket {
	s.seq++
	s.view = ViewDetail
	s.current = name
	s.lightbox = Lightbox{}
	return Ticket{name: name, seq: s.seq}
}

// Apply reports whether a result loaded for t may still be shown. Any
// later Open or Back makes older tickets stale.
func (s *Session) Apply(t Ticket) bool {
	return s.view != ViewGrid && t.seq == s.seq && t.name == s.current
}

// OpenLightbox shows urls starting at index. It is ignored outside the
// detail view or when urls is empty.
func (s *Session) OpenLightbox(urls []string, index int) bool {
	if s.view != ViewDetail || len(urls) == 0 {
		return false
	}
	s.lightbox = NewLightbox(urls, index)
	s.view = ViewLightbox
	return true
}

// Next moves the lightbox forward, wrapping at the end.
func (s *Session) Next() string {
	if s.view != ViewLightbox {
		return ""
	}
	return s.lightbox.Next()
}

// Prev moves the lightbox back, wrapping at the start.
func (s *Session) Prev() string {
	if s.view != ViewLightbox {
		return ""
	}
	return s.lightbox.Prev()
}

// Close leaves the lightbox for the detail view.
func (s *Session) Close() {
	if s.view == ViewLightbox {
		s.view = ViewDetail
		s.lightbox = Lightbox{}
	}
}

// Back returns to the grid and clears the fragment.
func (s *Session) Back() {
	s.seq++
	s.view = ViewGrid
	s.current = ""
	s.lightbox = Lightbox{}
}
