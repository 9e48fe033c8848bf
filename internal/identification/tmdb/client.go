package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ErrNoMatch reports a find request that returned neither movie nor TV results.
var ErrNoMatch = errors.New("tmdb returned no match")

var imdbPattern = regexp.MustCompile(`tt\d{7,8}`)

// Result represents a single TMDB find match.
type Result struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Name             string  `json:"name"`
	OriginalLanguage string  `json:"original_language"`
	ReleaseDate      string  `json:"release_date"`
	FirstAirDate     string  `json:"first_air_date"`
	MediaType        string  `json:"media_type"`
	Popularity       float64 `json:"popularity"`
}

// DisplayTitle returns the movie title or series name.
func (r Result) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

// FindResponse models the TMDB /find payload.
type FindResponse struct {
	MovieResults []Result `json:"movie_results"`
	TVResults    []Result `json:"tv_results"`
}

// Best returns the first movie result, else the first TV result.
func (r FindResponse) Best() (Result, bool) {
	if len(r.MovieResults) > 0 {
		best := r.MovieResults[0]
		best.MediaType = "movie"
		return best, true
	}
	if len(r.TVResults) > 0 {
		best := r.TVResults[0]
		best.MediaType = "tv"
		return best, true
	}
	return Result{}, false
}

// Finder defines the TMDB operations used by language resolution.
type Finder interface {
	FindByIMDbID(ctx context.Context, imdbID string) (*FindResponse, error)
}

// Client provides access to the TMDB API.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	httpClient *http.Client
	timeout    time.Duration
}

var _ Finder = (*Client)(nil)

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

// New creates a TMDB client.
func New(apiKey, baseURL, language string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("tmdb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("tmdb base url required")
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   strings.TrimSpace(language),
		httpClient: &http.Client{},
		timeout:    10 * time.Second,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// ExtractIMDbID returns the first IMDB id (tt followed by 7 or 8 digits) found
// in value, or "".
func ExtractIMDbID(value string) string {
	return imdbPattern.FindString(value)
}

// FindByIMDbID queries /find/{imdb_id} with external_source=imdb_id. The id may
// be embedded in a longer string such as a file name.
func (c *Client) FindByIMDbID(ctx context.Context, imdbID string) (*FindResponse, error) {
	id := ExtractIMDbID(imdbID)
	if id == "" {
		return nil, fmt.Errorf("no imdb id in %q", imdbID)
	}
	endpoint, err := url.Parse(fmt.Sprintf("%s/find/%s", c.baseURL, url.PathEscape(id)))
	if err != nil {
		return nil, fmt.Errorf("parse tmdb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("external_source", "imdb_id")
	if c.language != "" {
		params.Set("language", c.language)
	}
	endpoint.RawQuery = params.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb find returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var payload FindResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode find response: %w", err)
	}
	return &payload, nil
}

// OriginalLanguage looks up imdbID and returns the best match's
// original_language as reported by TMDB (not normalized).
func OriginalLanguage(ctx context.Context, finder Finder, imdbID string) (string, Result, error) {
	resp, err := finder.FindByIMDbID(ctx, imdbID)
	if err != nil {
		return "", Result{}, err
	}
	best, ok := resp.Best()
	if !ok {
		return "", Result{}, fmt.Errorf("%w for %s", ErrNoMatch, imdbID)
	}
	lang := strings.TrimSpace(best.OriginalLanguage)
	if lang == "" {
		return "", best, fmt.Errorf("%w: %s has no original language", ErrNoMatch, imdbID)
	}
	return lang, best, nil
}
