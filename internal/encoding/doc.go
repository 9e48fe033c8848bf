// Package encoding executes stream plans with ffmpeg.
//
// Args renders typed directives into an ffmpeg argument list. Runner applies
// a plan to one file: it holds an exclusive lock next to the output, remuxes
// into a hidden temp file in the destination directory, verifies the result
// with ffprobe, and renames it into place. The container is never changed.
package encoding
