// Package langcache remembers the native language resolved for a file identity.
//
// Resolution costs up to five HTTP round trips across Radarr, Sonarr, and TMDB.
// Once a file name has been resolved the answer rarely changes, so the cache
// lets repeated plans of the same library skip the network entirely.
//
// # Storage
//
// Entries live in a SQLite database (default:
// ~/.cache/streamsift/languages.db). The schema is versioned; when it changes,
// delete the database or run 'streamsift cache clear'.
//
// # Usage
//
// The cache is disabled by default. Enable it in config.toml:
//
//	[cache]
//	enabled = true
//	path = "~/.cache/streamsift/languages.db"
//
// CLI commands for inspection and management:
//
//	streamsift cache list              # List all cached languages
//	streamsift cache remove <identity> # Remove one entry
//	streamsift cache clear             # Remove all entries
package langcache
