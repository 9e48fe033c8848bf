package config

import (
	"errors"
	"fmt"
	"net/url"
)

// ErrNoLookupSource indicates that no catalog or TMDB credentials are configured.
var ErrNoLookupSource = errors.New("no language lookup source configured")

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLookup(); err != nil {
		return err
	}
	if err := c.validateCatalog("radarr", c.Radarr); err != nil {
		return err
	}
	if err := c.validateCatalog("sonarr", c.Sonarr); err != nil {
		return err
	}
	return nil
}

// ValidateLookup ensures at least one language lookup source has credentials.
// Commands that take the native language from a flag skip this check.
func (c *Config) ValidateLookup() error {
	if c.TMDB.APIKey != "" || c.Radarr.APIKey != "" || c.Sonarr.APIKey != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("%w: set TMDB_API_KEY, RADARR_API_KEY or SONARR_API_KEY, or edit %s (create with 'streamsift config init')", ErrNoLookupSource, defaultPath)
}

func (c *Config) validateLookup() error {
	switch c.Lookup.Priority {
	case PriorityRadarr, PrioritySonarr:
	default:
		return fmt.Errorf("lookup.priority must be %q or %q, got %q", PriorityRadarr, PrioritySonarr, c.Lookup.Priority)
	}
	if c.Lookup.RequestTimeout <= 0 {
		return errors.New("lookup.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateCatalog(name string, catalog Catalog) error {
	if catalog.APIKey == "" {
		return nil
	}
	if catalog.URL == "" {
		return fmt.Errorf("%s.url must be set when %s.api_key is set", name, name)
	}
	parsed, err := url.Parse(catalog.URL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("%s.url is not a valid URL: %q", name, catalog.URL)
	}
	return nil
}
