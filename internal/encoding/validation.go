package encoding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"streamsift/internal/logging"
	"streamsift/internal/services"
)

// verifyOutput probes a remuxed file and compares its audio and subtitle
// stream counts to what the directives asked for.
func verifyOutput(ctx context.Context, ffprobeBinary, path string, wantAudio, wantSubtitles int, logger *slog.Logger) error {
	result, err := verifyProbe(ctx, ffprobeBinary, path)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "encoding", "verify output", "ffprobe failed on remuxed file", err)
	}

	gotAudio := result.AudioStreamCount()
	gotSubtitles := result.SubtitleStreamCount()

	var diffs []string
	if gotAudio != wantAudio {
		diffs = append(diffs, fmt.Sprintf("audio streams %d vs %d", gotAudio, wantAudio))
	}
	if gotSubtitles != wantSubtitles {
		diffs = append(diffs, fmt.Sprintf("subtitle streams %d vs %d", gotSubtitles, wantSubtitles))
	}

	if len(diffs) > 0 {
		detail := strings.Join(diffs, "; ")
		attrs := append(logging.DecisionAttrs("output_verification", "mismatch", detail),
			logging.String("path", path),
		)
		logger.Info("output verification decision", logging.Args(attrs...)...)
		return services.Wrap(services.ErrValidation, "encoding", "verify output", "Remuxed file does not match plan: "+detail, nil)
	}

	attrs := append(logging.DecisionAttrs("output_verification", "match", "stream counts match plan"),
		logging.Int("audio_streams", gotAudio),
		logging.Int("subtitle_streams", gotSubtitles),
	)
	logger.Debug("output verification decision", logging.Args(attrs...)...)
	return nil
}
