package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayURL(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		mediaURL  string
		thumbnail string
		want      string
	}{
		{"image", MediaTypeImage, "http://x/a.jpg", "", "http://x/a.jpg"},
		{"image ignores thumbnail", MediaTypeImage, "http://x/a.jpg", "http://x/t.jpg", "http://x/a.jpg"},
		{"video with thumbnail", MediaTypeVideo, "http://x/v.mp4", "http://x/thumb.jpg", "http://x/thumb.jpg"},
		{"video without media url", MediaTypeVideo, "", "http://x/thumb.jpg", "http://x/thumb.jpg"},
		{"reels with thumbnail", MediaTypeReels, "http://x/r.mp4", "http://x/r.jpg", "http://x/r.jpg"},
		{"video without thumbnail", MediaTypeVideo, "http://x/v.mp4", "", "http://x/v.mp4"},
		{"carousel", MediaTypeCarousel, "http://x/c.jpg", "http://x/t.jpg", "http://x/c.jpg"},
		{"unknown type", "STORY", "http://x/s.jpg", "http://x/t.jpg", "http://x/s.jpg"},
		{"lowercase video is opaque", "video", "http://x/v.mp4", "http://x/t.jpg", "http://x/v.mp4"},
		{"nothing at all", MediaTypeVideo, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayURL(tt.mediaType, tt.mediaURL, tt.thumbnail))
		})
	}
}

func TestNormalize(t *testing.T) {
	rec := MediaRecord{
		ID:           "2",
		MediaType:    MediaTypeVideo,
		ThumbnailURL: "http://x/thumb.jpg",
		Permalink:    "http://ig/p/2",
	}
	rec.Normalize()

	assert.Equal(t, "http://x/thumb.jpg", rec.DisplayURL)
	assert.Empty(t, rec.MediaURL)
}
