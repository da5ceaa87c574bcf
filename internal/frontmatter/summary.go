package frontmatter

import "strings"

// DefaultSummaryLength is used when Summary is called with a non-positive limit.
const DefaultSummaryLength = 140

// Ellipsis marks a truncated summary.
const Ellipsis = "…"

// Summary returns the "summary" metadata value, or the first non-empty line
// of the body, cut to limit runes.
func (d Document) Summary(limit int) string {
	s := d.Meta.String("summary")
	if s == "" {
		s = firstLine(d.Body)
	}
	return Truncate(s, limit)
}

func firstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Truncate shortens s to at most limit runes followed by Ellipsis.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		limit = DefaultSummaryLength
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimRight(string(runes[:limit]), " \t") + Ellipsis
}
