package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultContentType = "application/octet-stream"

// Client is the object storage HTTP client (e.g. https://<project>.supabase.co/storage/v1).
type Client struct {
	baseURL string
	rc      *resty.Client
}

// NewClient creates a storage client. See postgrest.NewClient for the
// httpClient/apiKey contract.
func NewClient(storageURL, apiKey string, httpClient *http.Client) *Client {
	var rc *resty.Client
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	} else {
		rc = resty.New().SetAuthToken(apiKey)
	}

	baseURL := strings.TrimRight(storageURL, "/")
	rc.SetBaseURL(baseURL).SetHeader("apikey", apiKey)

	return &Client{baseURL: baseURL, rc: rc}
}

// Upload writes body under key in bucket. Existing objects are not overwritten.
func (c *Client) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader) (*UploadResponse, error) {
	if contentType == "" {
		contentType = defaultContentType
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("Cache-Control", "max-age=3600").
		SetHeader("x-upsert", "false").
		SetBody(body).
		Post(objectPath(bucket, key))
	if err != nil {
		return nil, fmt.Errorf("failed to call storage upload API: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	var out UploadResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("failed to decode storage upload response: %w", err)
	}
	return &out, nil
}

// PublicURL resolves the dereferenceable URL of key in a public bucket.
// No request is made.
func (c *Client) PublicURL(bucket, key string) string {
	return c.baseURL + "/object/public/" + escapePath(bucket) + "/" + escapePath(key)
}

func objectPath(bucket, key string) string {
	return "/object/" + escapePath(bucket) + "/" + escapePath(key)
}

// escapePath escapes every segment of p while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func newAPIError(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	return apiErr
}
