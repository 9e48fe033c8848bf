// Package config loads, normalizes, and validates streamsift configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY, RADARR_API_KEY, and SONARR_API_KEY. The Config type centralizes
// the lookup credentials, stream selection knobs, encoder binaries, and logging
// settings the CLI needs.
//
// Selection values (extra languages, subtitle languages, bitrates) are kept as
// the raw strings the user wrote; the selection package owns their parsing and
// fallback rules.
package config
