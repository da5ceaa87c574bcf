// Package gallery turns a game's front-matter and the catalog configuration
// into the ordered list of image URLs shown in its gallery.
package gallery

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ziadkadry99/gamecat/internal/fetch"
)

// Placeholders understood in base URLs and filename patterns.
const (
	GamePlaceholder   = "{game}"
	NumberPlaceholder = "{n}"
)

// MaxPatternImages caps the number of URLs a numbered pattern can produce.
const MaxPatternImages = 1000

// MaxPadding caps the zero padding of pattern numbers.
const MaxPadding = 20

// BuildImageURL joins filename onto base. An absolute http(s) filename is
// returned unchanged. {game} in base is replaced by the escaped name, and
// every path segment of filename is escaped exactly once. With an empty
// base the result is root-relative.
func BuildImageURL(base, name, filename string) string {
	if fetch.IsURL(filename) {
		return filename
	}
	base = strings.ReplaceAll(base, GamePlaceholder, EscapeComponent(name))
	base = strings.TrimRight(base, "/")

	var segments []string
	for _, seg := range strings.Split(strings.TrimLeft(filename, "/"), "/") {
		if seg == "" {
			continue
		}
		segments = append(segments, escapeSegment(seg))
	}
	joined := strings.Join(segments, "/")

	switch {
	case base == "":
		return "/" + joined
	case joined == "":
		return base
	default:
		return base + "/" + joined
	}
}

// escapeSegment escapes seg, first undoing any escaping it already carries.
func escapeSegment(seg string) string {
	if raw, err := url.PathUnescape(seg); err == nil {
		seg = raw
	}
	return EscapeComponent(seg)
}

// EscapeComponent percent-encodes every byte of s except ASCII letters,
// digits and the marks - _ . ! ~ * ' ( ). Unlike url.PathEscape it also
// encodes sub-delimiters such as & + = : @ $ so a segment never carries
// URL syntax.
func EscapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := range len(s) {
		c := s[i]
		if componentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&15])
	}
	return b.String()
}

func componentSafe(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// ExpandPattern substitutes name and each number in [start, end] into
// pattern, padding numbers with zeros to pad digits. The name is inserted
// raw; BuildImageURL escapes it. An inverted range yields nothing, at most
// MaxPatternImages numbers are expanded and pad is clamped to
// [0, MaxPadding].
func ExpandPattern(pattern, name string, start, end, pad int) []string {
	if end < start {
		return nil
	}
	// end-start may wrap as int but is exact as uint64.
	count := MaxPatternImages
	if span := uint64(end - start); span < MaxPatternImages {
		count = int(span) + 1
	}
	pad = min(max(pad, 0), MaxPadding)

	withName := strings.ReplaceAll(pattern, GamePlaceholder, name)
	out := make([]string, 0, count)
	for k := range count {
		n := fmt.Sprintf("%0*d", pad, start+k)
		out = append(out, strings.ReplaceAll(withName, NumberPlaceholder, n))
	}
	return out
}
