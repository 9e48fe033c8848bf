package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeLookup()
	c.normalizeCatalog(&c.Radarr, "RADARR_API_KEY")
	c.normalizeCatalog(&c.Sonarr, "SONARR_API_KEY")
	c.normalizeTMDB()
	c.normalizeSelection()
	if err := c.normalizeCache(); err != nil {
		return err
	}
	if err := c.normalizeEncoding(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeLookup() {
	c.Lookup.Priority = strings.ToLower(strings.TrimSpace(c.Lookup.Priority))
	if c.Lookup.Priority == "" {
		c.Lookup.Priority = defaultLookupPriority
	}
	if c.Lookup.RequestTimeout == 0 {
		c.Lookup.RequestTimeout = defaultLookupRequestTimeout
	}
}

func (c *Config) normalizeCatalog(catalog *Catalog, envKey string) {
	catalog.APIKey = strings.TrimSpace(catalog.APIKey)
	if catalog.APIKey == "" {
		if value, ok := os.LookupEnv(envKey); ok {
			catalog.APIKey = strings.TrimSpace(value)
		}
	}
	catalog.URL = normalizeBaseURL(catalog.URL)
}

func (c *Config) normalizeTMDB() {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		if value, ok := os.LookupEnv("TMDB_API_KEY"); ok {
			c.TMDB.APIKey = strings.TrimSpace(value)
		}
	}
	c.TMDB.BaseURL = strings.TrimRight(strings.TrimSpace(c.TMDB.BaseURL), "/")
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultTMDBBaseURL
	}
	c.TMDB.Language = strings.TrimSpace(c.TMDB.Language)
}

// normalizeSelection trims the selection strings. An empty subtitle language
// list is meaningful (keep all) and is left empty.
func (c *Config) normalizeSelection() {
	c.Audio.ExtraLanguages = strings.TrimSpace(c.Audio.ExtraLanguages)
	c.Audio.AACBitratePerChannel = strings.TrimSpace(c.Audio.AACBitratePerChannel)
	c.Audio.LosslessDefaultBitrate = strings.TrimSpace(c.Audio.LosslessDefaultBitrate)
	c.Subtitles.Languages = strings.TrimSpace(c.Subtitles.Languages)
}

func (c *Config) normalizeCache() error {
	var err error
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath()
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeEncoding() error {
	c.Encoding.FFmpegBinary = strings.TrimSpace(c.Encoding.FFmpegBinary)
	c.Encoding.FFprobeBinary = strings.TrimSpace(c.Encoding.FFprobeBinary)
	if strings.TrimSpace(c.Encoding.OutputDir) == "" {
		c.Encoding.OutputDir = ""
		return nil
	}
	var err error
	if c.Encoding.OutputDir, err = expandPath(c.Encoding.OutputDir); err != nil {
		return fmt.Errorf("encoding.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

// normalizeBaseURL accepts "host:port" as well as full URLs and strips
// trailing slashes.
func normalizeBaseURL(raw string) string {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	return raw
}
