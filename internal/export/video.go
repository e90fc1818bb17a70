package export

import (
	"net/url"
	"strings"
)

// YouTubeEmbedURL returns the embeddable player URL of a YouTube watch or
// youtu.be link, or "" when videoURL is not one.
func YouTubeEmbedURL(videoURL string) string {
	videoURL = strings.TrimSpace(videoURL)
	if !strings.HasPrefix(strings.ToLower(videoURL), "http") {
		return ""
	}
	u, err := url.Parse(videoURL)
	if err != nil {
		return ""
	}

	var id string
	switch u.Hostname() {
	case "www.youtube.com", "youtube.com":
		id = u.Query().Get("v")
	case "youtu.be":
		id = strings.TrimPrefix(u.Path, "/")
	}
	if id == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + id
}
