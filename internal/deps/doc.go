// Package deps reports whether the external binaries streamsift shells out to
// are installed.
package deps
