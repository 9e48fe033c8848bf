package nativelang

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"streamsift/internal/config"
	"streamsift/internal/identification/arr"
	"streamsift/internal/identification/tmdb"
	"streamsift/internal/logging"
)

// FromConfig builds the default strategy chain: the preferred catalog, the
// other catalog, then TMDB. Catalogs without an API key are left out, and
// without a TMDB key only Radarr's direct language name can answer.
func FromConfig(cfg *config.Config, logger *slog.Logger, httpClient *http.Client, opts ...Option) (*Resolver, error) {
	if err := cfg.ValidateLookup(); err != nil {
		return nil, err
	}
	componentLogger := logging.NewComponentLogger(logger, "nativelang")
	timeout := time.Duration(cfg.Lookup.RequestTimeout) * time.Second

	var finder tmdb.Finder
	if cfg.TMDB.APIKey != "" {
		client, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language,
			tmdb.WithHTTPClient(httpClient), tmdb.WithTimeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("tmdb client: %w", err)
		}
		finder = client
	} else {
		componentLogger.Info("tmdb api key not configured; imdb lookups disabled",
			logging.String(logging.FieldEventType, "tmdb_disabled"))
	}

	catalogs := map[arr.Kind]config.Catalog{
		arr.Radarr: cfg.Radarr,
		arr.Sonarr: cfg.Sonarr,
	}
	order := []arr.Kind{arr.Radarr, arr.Sonarr}
	if cfg.Lookup.Priority == config.PrioritySonarr {
		order = []arr.Kind{arr.Sonarr, arr.Radarr}
	}

	var strategies []Strategy
	for _, kind := range order {
		settings := catalogs[kind]
		if settings.APIKey == "" {
			componentLogger.Debug("catalog skipped, no api key", logging.String("catalog", string(kind)))
			continue
		}
		client, err := arr.New(kind, settings.URL, settings.APIKey,
			arr.WithHTTPClient(httpClient), arr.WithTimeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("%s client: %w", kind, err)
		}
		strategies = append(strategies, CatalogStrategy(client, finder, componentLogger))
	}
	if finder != nil {
		strategies = append(strategies, TMDBStrategy(finder))
	}

	return New(logger, strategies, opts...), nil
}
