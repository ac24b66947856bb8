package graph

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultHost is the Instagram Graph API host
	DefaultHost = "graph.instagram.com"

	// MediaEdge is the account edge listing its media
	MediaEdge = "media"

	// MediaFields is the fixed field set requested for every media item
	MediaFields = "id,caption,media_type,media_url,permalink,timestamp,thumbnail_url"

	redacted = "REDACTED"
)

// BaseURL turns a configured host into a base URL. A host that already
// carries a scheme is used as given, which lets tests point at httptest.
func BaseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		host = DefaultHost
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}

// MediaURL builds the media listing URL for one account:
//
//	<base>/<version>/<account-id>/media?access_token=...&fields=...&limit=N
func MediaURL(baseURL, version, accountID string, limit int, accessToken string) string {
	params := url.Values{}
	params.Set("fields", MediaFields)
	params.Set("limit", fmt.Sprintf("%d", limit))
	params.Set("access_token", accessToken)

	return fmt.Sprintf("%s/%s/%s/%s?%s",
		strings.TrimRight(baseURL, "/"),
		url.PathEscape(version),
		url.PathEscape(accountID),
		MediaEdge,
		params.Encode(),
	)
}

// RedactURL hides the access token of a request URL so it can be logged
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}

	q := u.Query()
	if q.Get("access_token") != "" {
		q.Set("access_token", redacted)
		u.RawQuery = q.Encode()
	}

	return u.String()
}
