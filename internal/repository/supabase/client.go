package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gymflow/gymflow/internal/config"
	ierr "github.com/gymflow/gymflow/internal/errors"
	"github.com/gymflow/gymflow/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client talks to the Supabase PostgREST API. Reads and writes go through the
// service role key so row level security does not get in the way of
// server-side aggregation reads.
type Client struct {
	baseURL    string
	serviceKey string
	http       *retryablehttp.Client
	log        *logger.Logger
}

// NewClient creates a new PostgREST client with retry semantics
func NewClient(cfg *config.Configuration, log *logger.Logger) (*Client, error) {
	if cfg.Supabase.BaseURL == "" {
		return nil, ierr.NewError("supabase base url is required").
			WithHint("Set supabase.base_url to use the Supabase store").
			Mark(ierr.ErrValidation)
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = log.GetRetryableHTTPLogger()

	return &Client{
		baseURL:    strings.TrimRight(cfg.Supabase.BaseURL, "/"),
		serviceKey: cfg.Supabase.ServiceKey,
		http:       rc,
		log:        log,
	}, nil
}

// Get runs a PostgREST select and decodes the JSON response into out
func (c *Client) Get(ctx context.Context, table string, query url.Values, out interface{}) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(table, query), nil)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Supabase request failed").
			WithReportableDetails(map[string]interface{}{
				"table": table,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrHTTPClient)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(table, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to decode Supabase response").
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// Count runs a HEAD-style select with exact count semantics and parses the
// total from the Content-Range header ("0-24/137")
func (c *Client) Count(ctx context.Context, table string, query url.Values) (int, error) {
	query = cloneValues(query)
	query.Set("select", "id")
	query.Set("limit", "1")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(table, query), nil)
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	c.setHeaders(req)
	req.Header.Set("Prefer", "count=exact")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Supabase count request failed").
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return 0, c.statusError(table, resp.StatusCode, nil)
	}

	return parseContentRangeTotal(resp.Header.Get("Content-Range"))
}

// parseContentRangeTotal extracts the total from a PostgREST Content-Range
// header value such as "0-24/137"
func parseContentRangeTotal(contentRange string) (int, error) {
	parts := strings.Split(contentRange, "/")
	if len(parts) != 2 || parts[1] == "*" {
		return 0, ierr.NewError("missing count in content-range").
			WithReportableDetails(map[string]interface{}{
				"content_range": contentRange,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	total, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, ierr.WithError(err).Mark(ierr.ErrHTTPClient)
	}
	return total, nil
}

// Insert posts a row to the table
func (c *Client) Insert(ctx context.Context, table string, row interface{}) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(table, nil), bytes.NewReader(payload))
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Supabase insert failed").
			WithReportableDetails(map[string]interface{}{
				"table": table,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return c.statusError(table, resp.StatusCode, body)
	}
	return nil
}

func (c *Client) endpoint(table string, query url.Values) string {
	u := fmt.Sprintf("%s/rest/v1/%s", c.baseURL, table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) setHeaders(req *retryablehttp.Request) {
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
}

func (c *Client) statusError(table string, status int, body []byte) error {
	builder := ierr.NewErrorf("supabase returned status %d", status).
		WithHint("Supabase rejected the request").
		WithReportableDetails(map[string]interface{}{
			"table":  table,
			"status": status,
			"body":   string(body),
		})
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return builder.Mark(ierr.ErrPermissionDenied)
	}
	return builder.Mark(ierr.ErrHTTPClient)
}

func cloneValues(v url.Values) url.Values {
	out := url.Values{}
	for k, vals := range v {
		for _, val := range vals {
			out.Add(k, val)
		}
	}
	return out
}
