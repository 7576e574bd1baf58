package postgrest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	headerPrefer        = "Prefer"
	headerAccept        = "Accept"
	headerAcceptProfile = "Accept-Profile"
	headerContentProf   = "Content-Profile"

	mimeSingleObject = "application/vnd.pgrst.object+json"
)

// Client talks to a PostgREST endpoint (e.g. https://<project>.supabase.co/rest/v1).
type Client struct {
	rc     *resty.Client
	schema string
}

// NewClient creates a REST table client. When httpClient is nil the api key is
// also sent as bearer token; otherwise the http client is expected to carry
// its own Authorization (see golang.org/x/oauth2).
func NewClient(restURL, apiKey string, httpClient *http.Client) *Client {
	var rc *resty.Client
	if httpClient != nil {
		rc = resty.NewWithClient(httpClient)
	} else {
		rc = resty.New().SetAuthToken(apiKey)
	}

	rc.SetBaseURL(strings.TrimRight(restURL, "/")).
		SetHeader("apikey", apiKey).
		SetHeader("Content-Type", "application/json")

	return &Client{rc: rc}
}

// SetSchema selects a non-default schema for subsequent requests.
func (c *Client) SetSchema(schema string) *Client {
	c.schema = schema
	return c
}

// Select reads rows of table into out (a pointer to a slice).
func (c *Client) Select(ctx context.Context, table string, q Query, out any) error {
	params := url.Values{}
	columns := q.Columns
	if columns == "" {
		columns = "*"
	}
	params.Set("select", columns)
	addFilters(params, q.Filters)
	if len(q.Order) > 0 {
		terms := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			terms = append(terms, o.String())
		}
		params.Set("order", strings.Join(terms, ","))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	resp, err := c.request(ctx).
		SetQueryParamsFromValues(params).
		Get("/" + table)
	if err != nil {
		return fmt.Errorf("failed to call select on %s: %w", table, err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode select response: %w", err)
	}
	return nil
}

// InsertOne inserts row and decodes the created representation into out.
// A nil out skips the representation.
func (c *Client) InsertOne(ctx context.Context, table string, row any, out any) error {
	req := c.request(ctx).SetBody(row)
	if out != nil {
		req.SetHeader(headerPrefer, "return=representation").
			SetHeader(headerAccept, mimeSingleObject).
			SetQueryParam("select", "*")
	} else {
		req.SetHeader(headerPrefer, "return=minimal")
	}

	resp, err := req.Post("/" + table)
	if err != nil {
		return fmt.Errorf("failed to call insert on %s: %w", table, err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode insert response: %w", err)
	}
	return nil
}

// Update applies values to every row matching filters.
func (c *Client) Update(ctx context.Context, table string, values any, filters []Filter) error {
	if len(filters) == 0 {
		return ErrMissingFilter
	}

	params := url.Values{}
	addFilters(params, filters)

	resp, err := c.request(ctx).
		SetHeader(headerPrefer, "return=minimal").
		SetQueryParamsFromValues(params).
		SetBody(values).
		Patch("/" + table)
	if err != nil {
		return fmt.Errorf("failed to call update on %s: %w", table, err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

// Delete removes every row matching filters.
func (c *Client) Delete(ctx context.Context, table string, filters []Filter) error {
	if len(filters) == 0 {
		return ErrMissingFilter
	}

	params := url.Values{}
	addFilters(params, filters)

	resp, err := c.request(ctx).
		SetHeader(headerPrefer, "return=minimal").
		SetQueryParamsFromValues(params).
		Delete("/" + table)
	if err != nil {
		return fmt.Errorf("failed to call delete on %s: %w", table, err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rc.R().SetContext(ctx)
	if c.schema != "" {
		req.SetHeader(headerAcceptProfile, c.schema).
			SetHeader(headerContentProf, c.schema)
	}
	return req
}

func addFilters(params url.Values, filters []Filter) {
	for _, f := range filters {
		params.Add(f.Column, f.Operator+"."+f.Value)
	}
}

func newAPIError(resp *resty.Response) error {
	apiErr := &APIError{Status: resp.StatusCode()}
	if err := json.Unmarshal(resp.Body(), apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(resp.String())
	}
	return apiErr
}
