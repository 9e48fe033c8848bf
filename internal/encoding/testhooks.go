package encoding

import (
	"context"

	"streamsift/internal/media/ffprobe"
)

// verifyProbe is the ffprobe function used to verify remuxed output.
// It is a package-level variable so tests can override it.
var verifyProbe = ffprobe.Inspect

// SetProbeForTests overrides the ffprobe runner during tests.
func SetProbeForTests(fn func(context.Context, string, string) (ffprobe.Result, error)) func() {
	previous := verifyProbe
	verifyProbe = fn
	return func() {
		verifyProbe = previous
	}
}
