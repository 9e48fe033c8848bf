package preflight

import (
	"context"
	"path/filepath"

	"streamsift/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding source or feature is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.Encoding.OutputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Encoding.OutputDir))
	}

	if cfg.Cache.Enabled {
		results = append(results, CheckDirectoryAccess("Cache directory", filepath.Dir(cfg.Cache.Path)))
	}

	if cfg.Radarr.APIKey != "" {
		results = append(results, CheckCatalog(ctx, "Radarr", cfg.Radarr.URL, cfg.Radarr.APIKey))
	}
	if cfg.Sonarr.APIKey != "" {
		results = append(results, CheckCatalog(ctx, "Sonarr", cfg.Sonarr.URL, cfg.Sonarr.APIKey))
	}
	if cfg.TMDB.APIKey != "" {
		results = append(results, CheckTMDB(ctx, cfg.TMDB.BaseURL, cfg.TMDB.APIKey))
	}

	return results
}
