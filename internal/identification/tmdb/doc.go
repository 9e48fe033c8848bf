// Package tmdb provides the minimal TMDB API client used to resolve a title's
// original language.
//
// It authenticates requests and exposes the /find endpoint keyed by IMDB id.
// Movie matches take precedence over TV matches, mirroring how catalog lookups
// resolve films before series. Options allow tests to supply custom HTTP
// clients without modifying production code.
package tmdb
