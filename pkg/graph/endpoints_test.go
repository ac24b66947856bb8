package graph

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseURL(t *testing.T) {
	tests := []struct {
		host     string
		expected string
	}{
		{"graph.instagram.com", "https://graph.instagram.com"},
		{"graph.instagram.com/", "https://graph.instagram.com"},
		{"", "https://graph.instagram.com"},
		{"http://127.0.0.1:8080", "http://127.0.0.1:8080"},
		{"https://graph.facebook.com/", "https://graph.facebook.com"},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.expected, BaseURL(tt.host))
		})
	}
}

func TestMediaURL(t *testing.T) {
	raw := MediaURL("https://graph.instagram.com", "v24.0", "17841400000000000", 5, "secret-token")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "graph.instagram.com", u.Host)
	assert.Equal(t, "/v24.0/17841400000000000/media", u.Path)

	q := u.Query()
	assert.Equal(t, "id,caption,media_type,media_url,permalink,timestamp,thumbnail_url", q.Get("fields"))
	assert.Equal(t, "5", q.Get("limit"))
	assert.Equal(t, "secret-token", q.Get("access_token"))
}

func TestMediaURLEscapesPathSegments(t *testing.T) {
	raw := MediaURL("https://graph.instagram.com", "v24.0", "../me?x=1", 1, "t")

	u, err := url.Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "/v24.0/../me?x=1/media", u.Path)
	assert.Equal(t, "", u.Query().Get("x"))
	assert.Equal(t, "t", u.Query().Get("access_token"))
}

func TestRedactURL(t *testing.T) {
	raw := MediaURL("https://graph.instagram.com", "v24.0", "1", 5, "secret-token")

	redactedURL := RedactURL(raw)
	assert.NotContains(t, redactedURL, "secret-token")
	assert.Contains(t, redactedURL, "access_token=REDACTED")
	assert.Contains(t, redactedURL, "limit=5")

	assert.Equal(t, "https://example.com/a?b=c", RedactURL("https://example.com/a?b=c"))
}
