// Package preflight provides readiness checks for the external services and
// filesystem paths streamsift depends on.
//
// The CLI "streamsift status" command runs RunAll to display service health;
// "streamsift apply" runs the output directory check before touching any
// file. Each check is gated by its config: catalogs without an API key and a
// disabled cache are skipped.
package preflight
