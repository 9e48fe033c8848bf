package arr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Kind identifies the catalog flavour behind a Client.
type Kind string

const (
	Radarr Kind = "radarr"
	Sonarr Kind = "sonarr"
)

// ErrNotMatched reports a parse request the catalog could not map to a library item.
var ErrNotMatched = errors.New("title not matched to a library item")

// ParseResult is the library item a title resolved to.
type ParseResult struct {
	Kind   Kind
	Title  string
	IMDbID string
	// OriginalLanguage is the English language name (Radarr only).
	OriginalLanguage string
}

type languageRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movie struct {
	Title            string       `json:"title"`
	IMDbID           string       `json:"imdbId"`
	OriginalLanguage *languageRef `json:"originalLanguage"`
}

type series struct {
	Title  string `json:"title"`
	IMDbID string `json:"imdbId"`
}

type parseResponse struct {
	Movie  *movie  `json:"movie"`
	Series *series `json:"series"`
}

// Client talks to a single Radarr or Sonarr instance.
type Client struct {
	kind       Kind
	baseURL    string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// New creates a catalog client.
func New(kind Kind, baseURL, apiKey string, opts ...Option) (*Client, error) {
	switch kind {
	case Radarr, Sonarr:
	default:
		return nil, fmt.Errorf("unsupported catalog %q", kind)
	}
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, fmt.Errorf("%s api key required", kind)
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%s url required", kind)
	}
	client := &Client{
		kind:       kind,
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		timeout:    10 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Kind returns the catalog flavour.
func (c *Client) Kind() Kind { return c.kind }

// Parse asks the catalog which library item title belongs to.
func (c *Client) Parse(ctx context.Context, title string) (*ParseResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("title is required")
	}
	endpoint, err := url.Parse(c.baseURL + "/api/v3/parse")
	if err != nil {
		return nil, fmt.Errorf("parse %s url: %w", c.kind, err)
	}
	params := url.Values{}
	params.Set("title", title)
	endpoint.RawQuery = params.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s parse returned %d (latency=%v)", c.kind, resp.StatusCode, latency)
	}

	var payload parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s parse response: %w", c.kind, err)
	}
	return c.result(payload)
}

func (c *Client) result(payload parseResponse) (*ParseResult, error) {
	result := &ParseResult{Kind: c.kind}
	switch c.kind {
	case Radarr:
		if payload.Movie == nil {
			return nil, ErrNotMatched
		}
		result.Title = payload.Movie.Title
		result.IMDbID = strings.TrimSpace(payload.Movie.IMDbID)
		if payload.Movie.OriginalLanguage != nil {
			result.OriginalLanguage = strings.TrimSpace(payload.Movie.OriginalLanguage.Name)
		}
	case Sonarr:
		if payload.Series == nil {
			return nil, ErrNotMatched
		}
		result.Title = payload.Series.Title
		result.IMDbID = strings.TrimSpace(payload.Series.IMDbID)
	}
	return result, nil
}
