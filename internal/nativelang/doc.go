// Package nativelang resolves a media file's original production language.
//
// A Resolver walks an ordered list of strategies and stops at the first one
// that yields a code. The default chain asks the preferred catalog (Radarr or
// Sonarr) for the file's IMDB id, then the other catalog, and finally tries TMDB
// with an IMDB id embedded in the file name. Failures are logged and treated as
// "no answer"; nothing is retried.
//
// Results are ISO 639-1 codes with TMDB aliases normalized ("cn" becomes "zh").
// An optional langcache short-circuits repeat lookups.
package nativelang
