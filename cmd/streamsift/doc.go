// Command streamsift plans and applies audio and subtitle cleanup for media
// files.
//
// `plan` shows which streams would be kept, dropped, or given an AAC
// companion and the directives that result. `apply` runs the plan through
// ffmpeg. `resolve` asks Radarr, Sonarr and TMDB for a file's original
// language, `cache` manages remembered languages, `status` checks external
// tools and lookup sources, and `config` creates or prints the configuration.
package main
