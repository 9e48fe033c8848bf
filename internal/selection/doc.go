// Package selection decides which audio and subtitle streams of a probed media
// file survive a cleanup remux and synthesizes the typed directive list that
// performs it.
//
// The package is pure: it never touches the network or the filesystem. Native
// language resolution is injected through the LanguageResolver interface and
// directives are rendered into encoder arguments by the encoding package.
//
// Pipeline:
//   - BuildPolicy: native language plus raw knobs become an immutable Policy
//   - Classify: per-stream keep/drop/transcode decisions in input order
//   - Synthesize: ordered directives, output slot numbering, no-op detection
//   - Plan: runs the three steps and records a human-readable Trace
//
// Audio streams are deduplicated first-seen-wins per language, so input order
// is treated as priority order. A plan never removes every audio stream.
package selection
