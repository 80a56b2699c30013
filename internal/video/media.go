package video

import (
	"strings"
)

type Kind int

const (
	KindImage Kind = iota
	KindVideo
	KindYouTube
)

type Media struct {
	Kind Kind
	URL  string
}

func (m Media) IsVideo() bool { return m.Kind == KindVideo }

func (m Media) IsYouTube() bool { return m.Kind == KindYouTube }

var videoExtensions = []string{".mp4", ".webm", ".ogg", ".mov"}

// Classify decides how a gallery reference is rendered. Uploaded payloads are
// classified by their data URI type, links by host or file extension.
func Classify(ref string) Media {
	if ref == "" {
		return Media{Kind: KindImage}
	}

	if strings.HasPrefix(ref, "data:video") {
		return Media{Kind: KindVideo, URL: ref}
	}
	if strings.HasPrefix(ref, "data:") {
		return Media{Kind: KindImage, URL: ref}
	}

	if strings.Contains(ref, "youtube.com") || strings.Contains(ref, "youtu.be") {
		if embed := youTubeEmbedURL(ref); embed != "" {
			return Media{Kind: KindYouTube, URL: embed}
		}
	}

	lower := strings.ToLower(ref)
	if i := strings.IndexAny(lower, "?#"); i != -1 {
		lower = lower[:i]
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(lower, ext) {
			return Media{Kind: KindVideo, URL: ref}
		}
	}
	return Media{Kind: KindImage, URL: ref}
}

func IsVideo(ref string) bool { return Classify(ref).Kind == KindVideo }

func youTubeEmbedURL(l string) string {
	switch {
	case strings.Contains(l, "youtube.com/embed/"):
		return l
	case strings.Contains(l, "youtube.com/watch?v="):
		_, id, _ := strings.Cut(l, "v=")
		if idx := strings.Index(id, "&"); idx != -1 {
			id = id[:idx]
		}
		if id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	case strings.Contains(l, "youtu.be/"):
		_, id, _ := strings.Cut(l, "youtu.be/")
		if idx := strings.Index(id, "?"); idx != -1 {
			id = id[:idx]
		}
		if id != "" {
			return "https://www.youtube.com/embed/" + id
		}
	}
	return ""
}
