package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		ref  string
		kind Kind
		url  string
	}{
		{ref: "data:video/mp4;base64,AAAA", kind: KindVideo, url: "data:video/mp4;base64,AAAA"},
		{ref: "data:image/png;base64,AAAA", kind: KindImage, url: "data:image/png;base64,AAAA"},
		{ref: "https://cdn.example.com/final.MP4", kind: KindVideo, url: "https://cdn.example.com/final.MP4"},
		{ref: "https://cdn.example.com/rally.webm?dl=1", kind: KindVideo, url: "https://cdn.example.com/rally.webm?dl=1"},
		{ref: "https://www.youtube.com/watch?v=abc123&t=10", kind: KindYouTube, url: "https://www.youtube.com/embed/abc123"},
		{ref: "https://youtu.be/xyz?si=1", kind: KindYouTube, url: "https://www.youtube.com/embed/xyz"},
		{ref: "https://www.youtube.com/embed/qqq", kind: KindYouTube, url: "https://www.youtube.com/embed/qqq"},
		{ref: "https://images.unsplash.com/photo-1?w=800", kind: KindImage, url: "https://images.unsplash.com/photo-1?w=800"},
		{ref: "", kind: KindImage, url: ""},
	}

	for _, tc := range testCases {
		got := Classify(tc.ref)
		assert.Equal(t, tc.kind, got.Kind, tc.ref)
		assert.Equal(t, tc.url, got.URL, tc.ref)
	}

	assert.True(t, IsVideo("clip.mov"))
	assert.False(t, IsVideo("photo.jpg"))
}
