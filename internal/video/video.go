// Package video rewrites YouTube links found in front-matter into
// embeddable player URLs.
package video

import (
	"regexp"
	"strings"

	"github.com/ziadkadry99/gamecat/internal/frontmatter"
)

// EmbedBase is the player URL prefix for a video ID.
const EmbedBase = "https://www.youtube.com/embed/"

// Keys are the front-matter keys that may list videos, in lookup order.
var Keys = []string{"videos", "video", "youtube"}

var (
	embedPattern = regexp.MustCompile(`(?i)^https?://(?:www\.)?youtube\.com/embed/[A-Za-z0-9_\-]+`)
	shortPattern = regexp.MustCompile(`youtu\.be/([A-Za-z0-9_\-]+)`)
	queryPattern = regexp.MustCompile(`[?&]v=([A-Za-z0-9_\-]+)`)
	idPattern    = regexp.MustCompile(`^[A-Za-z0-9_\-]{6,}$`)
)

// EmbedURL returns the player URL for link, or false when link is not a
// recognized video reference. Player URLs are returned unchanged.
func EmbedURL(link string) (string, bool) {
	link = strings.TrimSpace(link)
	switch {
	case link == "":
		return "", false
	case embedPattern.MatchString(link):
		return link, true
	}
	if m := shortPattern.FindStringSubmatch(link); m != nil {
		return EmbedBase + m[1], true
	}
	if m := queryPattern.FindStringSubmatch(link); m != nil {
		return EmbedBase + m[1], true
	}
	if idPattern.MatchString(link) {
		return EmbedBase + link, true
	}
	return "", false
}

// FromMetadata returns the player URLs listed under the first video key
// present in meta, skipping values that are not video references.
func FromMetadata(meta frontmatter.Metadata) []string {
	v, ok := meta.Lookup(Keys...)
	if !ok {
		return nil
	}
	var urls []string
	for _, link := range v.Strings() {
		if u, ok := EmbedURL(link); ok {
			urls = append(urls, u)
		}
	}
	return urls
}
