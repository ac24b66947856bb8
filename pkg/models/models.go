package models

// Media types reported by the Graph API. The set is open ended; any other
// value is carried through untouched.
const (
	MediaTypeImage    = "IMAGE"
	MediaTypeVideo    = "VIDEO"
	MediaTypeCarousel = "CAROUSEL_ALBUM"
	MediaTypeReels    = "REELS"
)

// MediaRecord is one normalized post of the account's media listing.
// Field names follow the Graph API so the JSON file mirrors the remote shape.
type MediaRecord struct {
	ID           string `json:"id"`
	Caption      string `json:"caption,omitempty"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Permalink    string `json:"permalink"`
	Timestamp    string `json:"timestamp"`

	// DisplayURL is derived, never read from the API
	DisplayURL string `json:"display_url"`
}

// DisplayURL picks the image shown for a post: a video's thumbnail when it
// has one, otherwise the media URL, which may be empty.
func DisplayURL(mediaType, mediaURL, thumbnailURL string) string {
	if IsVideo(mediaType) && thumbnailURL != "" {
		return thumbnailURL
	}
	return mediaURL
}

// IsVideo reports whether the media type carries a separate thumbnail
func IsVideo(mediaType string) bool {
	return mediaType == MediaTypeVideo || mediaType == MediaTypeReels
}

// Normalize fills the derived DisplayURL field
func (m *MediaRecord) Normalize() {
	m.DisplayURL = DisplayURL(m.MediaType, m.MediaURL, m.ThumbnailURL)
}
