// Package suggest provides the client for the external autocomplete and
// autocorrect ranking service, plus the pure context/prefix splitter used to
// derive queries from raw message text. The client performs exactly one HTTP
// request per call; retries, if any, are the caller's responsibility.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultK is the number of candidates requested when the caller passes k <= 0.
const DefaultK = 5

// Options configure the suggestion service client.
type Options struct {
	// APIKey, when set, is attached to every request as the x-api-key header.
	APIKey string
	// Timeout bounds each request. Ignored when HTTPClient is supplied.
	Timeout time.Duration
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// Client issues single queries against the ranking service.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New creates a client for the service at baseURL with optional overrides.
func New(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{Timeout: 5 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     opts.APIKey,
		httpClient: httpClient,
	}
}

// Suggest fetches up to k ranked completion candidates for prefix given the
// preceding context. Callers must ensure prefix is non-empty; the overall flow
// short-circuits empty prefixes before reaching the client. A missing or
// malformed candidates field decodes to an empty slice.
func (c *Client) Suggest(ctx context.Context, contextText, prefix string, k int) ([]string, error) {
	if k <= 0 {
		k = DefaultK
	}
	q := url.Values{}
	q.Set("context", contextText)
	q.Set("prefix", prefix)
	q.Set("k", strconv.Itoa(k))

	body, err := c.get(ctx, "/v1/suggest", q)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Candidates json.RawMessage `json:"candidates"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode suggest response: %w", err)
	}
	candidates := []string{}
	if len(resp.Candidates) > 0 {
		// A wrong-typed field degrades to no candidates rather than an error.
		_ = json.Unmarshal(resp.Candidates, &candidates)
	}
	return candidates, nil
}

// Autocorrect returns the service's correction for a single token. The input
// is echoed back unchanged when the service has nothing better.
func (c *Client) Autocorrect(ctx context.Context, token string) (string, error) {
	q := url.Values{}
	q.Set("token", token)

	body, err := c.get(ctx, "/v1/autocorrect", q)
	if err != nil {
		return "", err
	}

	var resp struct {
		Input     string `json:"input"`
		Corrected string `json:"corrected"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode autocorrect response: %w", err)
	}
	return resp.Corrected, nil
}

// Health probes the service's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.get(ctx, "/health", nil)
	return err
}

// get performs one GET against path, returning the raw body on 2xx and a
// *ServiceError carrying status and body otherwise.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("suggest service request: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read suggest response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, &ServiceError{Status: res.StatusCode, Body: string(body)}
	}
	return body, nil
}
