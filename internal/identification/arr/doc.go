// Package arr provides a minimal client for the Radarr and Sonarr v3 parse
// endpoint.
//
// Both services accept a release or file name and return the library item it
// matches. Radarr answers with a movie (IMDB id plus original language name);
// Sonarr answers with a series (IMDB id only). The Client normalizes both into
// a ParseResult.
package arr
