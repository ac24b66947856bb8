package graph

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"iggallery/pkg/config"
	"iggallery/pkg/errors"
	"iggallery/pkg/logger"
	"iggallery/pkg/models"
)

const (
	userAgent = "iggallery/1.0 (+https://github.com/iggallery)"

	// maxBodySize caps how much of a response is read
	maxBodySize = 10 << 20
)

// Client talks to the Graph API media edge
type Client struct {
	httpClient  *http.Client
	headers     map[string]string
	baseURL     string
	apiVersion  string
	accessToken string
	logger      logger.Logger
}

// NewClient creates a client from the Graph configuration. The configured
// timeout bounds every request.
func NewClient(cfg *config.GraphConfig, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		baseURL:     BaseURL(cfg.Host),
		apiVersion:  cfg.APIVersion,
		accessToken: cfg.AccessToken,
		logger:      log,
	}
}

// doRequest sends req with the configured headers. Transport failures,
// including timeouts, come back as network errors.
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	safeURL := RedactURL(req.URL.String())
	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    safeURL,
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      safeURL,
			"error":    redactError(err).Error(),
			"duration": duration,
		})
		return nil, &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: "request to Graph API failed",
			Err:     redactError(err),
		}
	}

	logger.LogRequest(c.logger, req.Method, safeURL, resp.StatusCode, duration)

	return resp, nil
}

// GetJSON performs a GET request and decodes a 2xx JSON body into target
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeUnknown,
			Message: "failed to create request",
			Err:     redactError(err),
		}
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &errors.Error{
			Type:    errors.ErrorTypeNetwork,
			Message: "failed to read response body",
			Code:    resp.StatusCode,
			Err:     redactError(err),
		}
	}

	if err := c.checkResponseStatus(resp, body); err != nil {
		return err
	}

	if err := json.Unmarshal(body, target); err != nil {
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          RedactURL(url),
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": preview(body),
		})
		return &errors.Error{
			Type:    errors.ErrorTypeParsing,
			Message: "failed to parse JSON",
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	return nil
}

// checkResponseStatus turns a non-2xx response into a typed error, using the
// Graph API error envelope for the message when the body has one
func (c *Client) checkResponseStatus(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	message := fmt.Sprintf("unexpected status code: %d", resp.StatusCode)
	fields := map[string]interface{}{
		"status": resp.StatusCode,
	}

	var envelope ErrorResponse
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
		fields["api_error_type"] = envelope.Error.Type
		fields["api_error_code"] = envelope.Error.Code
		if envelope.Error.FBTraceID != "" {
			fields["fbtrace_id"] = envelope.Error.FBTraceID
		}
	}

	errType := errors.TypeForStatus(resp.StatusCode)
	fields["type"] = string(errType)
	c.logger.ErrorWithFields("Graph API returned an error", fields)

	return &errors.Error{
		Type:    errType,
		Message: message,
		Code:    resp.StatusCode,
	}
}

// FetchMedia fetches up to limit of the account's most recent media items.
// Only the first page is read.
func (c *Client) FetchMedia(ctx context.Context, accountID string, limit int) ([]models.MediaRecord, error) {
	url := MediaURL(c.baseURL, c.apiVersion, accountID, limit, c.accessToken)

	c.logger.DebugWithFields("fetching account media", map[string]interface{}{
		"account_id": accountID,
		"limit":      limit,
		"url":        RedactURL(url),
	})

	var response MediaResponse
	if err := c.GetJSON(ctx, url, &response); err != nil {
		c.logger.ErrorWithFields("failed to fetch account media", map[string]interface{}{
			"account_id": accountID,
			"error":      err.Error(),
		})
		return nil, err
	}

	records := make([]models.MediaRecord, 0, len(response.Data))
	for _, rec := range response.Data {
		rec.Normalize()
		records = append(records, rec)
	}

	c.logger.DebugWithFields("successfully fetched account media", map[string]interface{}{
		"account_id": accountID,
		"count":      len(records),
		"has_next":   response.Paging != nil && response.Paging.Next != "",
	})

	return records, nil
}

// redactError strips the access token from URLs embedded in transport errors
func redactError(err error) error {
	var urlErr *neturl.Error
	if stderrors.As(err, &urlErr) {
		return &neturl.Error{Op: urlErr.Op, URL: RedactURL(urlErr.URL), Err: urlErr.Err}
	}
	return err
}

// preview shortens a body for logging
func preview(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
