package encoding

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"streamsift/internal/logging"
	"streamsift/internal/selection"
	"streamsift/internal/services"
)

type commandRunner func(ctx context.Context, name string, args ...string) error

// Request describes one file to remux.
type Request struct {
	Input string
	// OutputDir receives the result. Empty replaces Input in place.
	OutputDir string
	Plan      selection.Result
}

// Outcome reports what Apply did.
type Outcome struct {
	OutputPath string
	// Remuxed is true when ffmpeg produced the output.
	Remuxed bool
	// Copied is true when an unchanged file was copied to OutputDir.
	Copied   bool
	Args     []string
	Duration time.Duration
}

// Runner applies stream plans with ffmpeg.
type Runner struct {
	ffmpegBinary  string
	ffprobeBinary string
	logger        *slog.Logger
	run           commandRunner
}

// NewRunner constructs a Runner. Empty binary names fall back to ffmpeg and
// ffprobe on PATH.
func NewRunner(ffmpegBinary, ffprobeBinary string, logger *slog.Logger) *Runner {
	ffmpegBinary = strings.TrimSpace(ffmpegBinary)
	if ffmpegBinary == "" {
		ffmpegBinary = "ffmpeg"
	}
	ffprobeBinary = strings.TrimSpace(ffprobeBinary)
	if ffprobeBinary == "" {
		ffprobeBinary = "ffprobe"
	}
	return &Runner{
		ffmpegBinary:  ffmpegBinary,
		ffprobeBinary: ffprobeBinary,
		logger:        logging.NewComponentLogger(logger, "encoding"),
		run:           defaultCommandRunner,
	}
}

// WithCommandRunner allows injecting a custom command runner for tests.
func (r *Runner) WithCommandRunner(run commandRunner) {
	if r != nil && run != nil {
		r.run = run
	}
}

// Apply executes req.Plan against req.Input. A plan that does not process the
// file leaves the input untouched and, when an output directory is set,
// copies it there.
func (r *Runner) Apply(ctx context.Context, req Request) (Outcome, error) {
	if r == nil {
		return Outcome{}, fmt.Errorf("encoding runner not initialized")
	}
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return Outcome{}, services.Wrap(services.ErrValidation, "encoding", "apply", "Input path is required", nil)
	}
	if _, err := os.Stat(input); err != nil {
		return Outcome{}, services.Wrap(services.ErrNotFound, "encoding", "apply", "Input file not found", err)
	}

	output := OutputPath(input, req.OutputDir)
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return Outcome{}, services.Wrap(services.ErrConfiguration, "encoding", "apply", "Failed to create output directory", err)
	}

	lock := flock.New(lockPath(output))
	locked, err := lock.TryLock()
	if err != nil {
		return Outcome{}, services.Wrap(services.ErrTransient, "encoding", "lock output", "Failed to acquire output lock", err)
	}
	if !locked {
		return Outcome{}, services.Wrap(services.ErrLocked, "encoding", "lock output",
			fmt.Sprintf("%s is being written by another process", output), nil)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	logger := r.logger.With(logging.String(logging.FieldFile, input))
	if req.Plan.RunID != "" {
		logger = logger.With(logging.String(logging.FieldCorrelationID, req.Plan.RunID))
	}

	if !req.Plan.ProcessFile {
		copied, err := stageUnchanged(input, output)
		if err != nil {
			return Outcome{}, err
		}
		logger.Info("file left unchanged",
			logging.String(logging.FieldEventType, "remux_skipped"),
			logging.String("output", output),
			logging.Bool("copied", copied),
		)
		return Outcome{OutputPath: output, Copied: copied}, nil
	}

	tmp := tempOutputPath(output)
	args := Args(input, tmp, req.Plan.Directives)
	logger.Debug("executing ffmpeg",
		logging.String("binary", r.ffmpegBinary),
		logging.String("args", strings.Join(args, " ")),
	)

	started := time.Now()
	if err := r.run(ctx, r.ffmpegBinary, args...); err != nil {
		_ = os.Remove(tmp)
		return Outcome{}, services.Wrap(services.ErrExternalTool, "encoding", "ffmpeg", "Remux failed", err)
	}
	if _, err := os.Stat(tmp); err != nil {
		return Outcome{}, services.Wrap(services.ErrExternalTool, "encoding", "ffmpeg", "ffmpeg did not produce output file", err)
	}

	wantAudio, wantSubtitles := ExpectedStreams(req.Plan.Directives)
	if err := verifyOutput(ctx, r.ffprobeBinary, tmp, wantAudio, wantSubtitles, logger); err != nil {
		_ = os.Remove(tmp)
		return Outcome{}, err
	}

	final, err := finalizeOutput(tmp, output)
	if err != nil {
		return Outcome{}, err
	}
	elapsed := time.Since(started)

	logger.Info("remux complete",
		logging.String(logging.FieldEventType, "remux_complete"),
		logging.String("output", final),
		logging.Int("audio_streams", wantAudio),
		logging.Int("subtitle_streams", wantSubtitles),
		logging.Duration("duration", elapsed),
	)
	return Outcome{OutputPath: final, Remuxed: true, Args: args, Duration: elapsed}, nil
}

func defaultCommandRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, lastLines(string(output), 5))
	}
	return nil
}

// lastLines keeps the tail of ffmpeg's output, where the error usually is.
func lastLines(output string, n int) string {
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
