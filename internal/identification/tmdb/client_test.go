package tmdb_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"streamsift/internal/identification/tmdb"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := tmdb.New("", "https://example.com", "en-US"); err == nil {
		t.Fatal("expected error when api key missing")
	}
	if _, err := tmdb.New("key", " ", "en-US"); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestFindByIMDbIDSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/find/tt0094625" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "key" || q.Get("external_source") != "imdb_id" || q.Get("language") != "en-US" {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"movie_results":[{"id":149,"title":"Akira","original_language":"ja"}],"tv_results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, err := tmdb.New("key", server.URL+"/", "en-US")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	lang, best, err := tmdb.OriginalLanguage(context.Background(), client, "Akira.1988.tt0094625.mkv")
	if err != nil {
		t.Fatalf("OriginalLanguage returned error: %v", err)
	}
	if lang != "ja" || best.DisplayTitle() != "Akira" || best.MediaType != "movie" {
		t.Fatalf("unexpected result %q %+v", lang, best)
	}
}

func TestFindFallsBackToTVResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"movie_results":[],"tv_results":[{"id":1,"name":"Show","original_language":"cn"}]}`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	lang, best, err := tmdb.OriginalLanguage(context.Background(), client, "tt12345678")
	if err != nil {
		t.Fatalf("OriginalLanguage returned error: %v", err)
	}
	if lang != "cn" || best.MediaType != "tv" || best.DisplayTitle() != "Show" {
		t.Fatalf("unexpected result %q %+v", lang, best)
	}
}

func TestFindNoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"movie_results":[],"tv_results":[]}`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "")
	if _, _, err := tmdb.OriginalLanguage(context.Background(), client, "tt0000001"); !errors.Is(err, tmdb.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestFindHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7}`))
	}))
	t.Cleanup(server.Close)

	client, _ := tmdb.New("key", server.URL, "", tmdb.WithTimeout(time.Second))
	if _, err := client.FindByIMDbID(context.Background(), "tt0094625"); err == nil {
		t.Fatal("expected error when TMDB returns non-200")
	}
}

func TestFindRequiresIMDbID(t *testing.T) {
	client, _ := tmdb.New("key", "https://example.invalid", "")
	if _, err := client.FindByIMDbID(context.Background(), "Some Movie (2001).mkv"); err == nil {
		t.Fatal("expected error when no imdb id present")
	}
}

func TestExtractIMDbID(t *testing.T) {
	tests := map[string]string{
		"tt0094625":                   "tt0094625",
		"Movie {imdb-tt12345678}.mkv": "tt12345678",
		"tt123":                       "",
		"nothing here":                "",
	}
	for input, want := range tests {
		if got := tmdb.ExtractIMDbID(input); got != want {
			t.Errorf("ExtractIMDbID(%q) = %q, want %q", input, got, want)
		}
	}
}
