// Package services defines the error markers shared by streamsift's
// integrations and the CLI.
//
// Wrap tags a failure with one of the sentinel errors plus the component and
// operation that produced it; ExitCode maps a tagged error onto the process
// exit status so scripts can tell bad configuration apart from a failing
// ffmpeg run.
package services
