// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no streamsift-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video/subtitle stream properties and tags
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - Parse: decodes a previously captured ffprobe JSON document
//
// Helper methods on Result provide stream counts per codec type, duration
// parsing, bitrate extraction, and the container name.
package ffprobe
