package selection

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"streamsift/internal/logging"
)

// LanguageResolver resolves a file identity to a two-letter native language.
type LanguageResolver interface {
	Resolve(ctx context.Context, identity string) (string, error)
}

// FixedLanguage is a LanguageResolver that always returns itself. It backs
// manual overrides.
type FixedLanguage string

func (f FixedLanguage) Resolve(context.Context, string) (string, error) {
	code := strings.TrimSpace(string(f))
	if code == "" {
		return "", errors.New("no language override")
	}
	return code, nil
}

// Input describes one file to plan.
type Input struct {
	// Path is the media file; its base name is the identity given to the resolver.
	Path      string
	Container string
	Streams   []ProbedStream
	Options   PolicyOptions
}

// Result is the outcome of planning one file. ProcessFile is false whenever
// the file must be left alone; Trace explains why.
type Result struct {
	ProcessFile       bool
	Directives        []Directive
	Container         string
	Trace             []string
	RunID             string
	NativeLanguage    string
	AllowedLanguages  []string
	AudioDecisions    []Decision
	SubtitleDecisions []Decision
}

// Plan resolves the native language, builds the policy, classifies the
// streams, and synthesizes directives. Every abort is reported through the
// result rather than an error.
func Plan(ctx context.Context, in Input, resolver LanguageResolver, logger *slog.Logger) Result {
	runID, ok := logging.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
	}
	logger = logging.NewComponentLogger(logger, "selection").With(
		logging.String(logging.FieldCorrelationID, runID),
		logging.String(logging.FieldFile, in.Path),
	)
	trace := NewTrace(logger)
	result := Result{Container: in.Container, RunID: runID}
	finish := func() Result {
		result.Trace = trace.Lines()
		return result
	}

	trace.Add("--- Audio & subtitle cleanup ---")
	if in.Path != "" {
		trace.Addf("File: %s", in.Path)
	}

	if len(in.Streams) == 0 {
		trace.Add("No ffprobe data found. Skipping.")
		return finish()
	}

	if resolver == nil {
		resolver = FixedLanguage("")
	}
	native2, err := resolver.Resolve(ctx, filepath.Base(in.Path))
	if err != nil || strings.TrimSpace(native2) == "" {
		if err != nil {
			logging.WarnWithContext(logger, "native language unresolved", "language_unresolved",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check Radarr/Sonarr/TMDB credentials or pass --language"),
				logging.String(logging.FieldImpact, "file skipped"),
			)
		}
		trace.Add("Could not determine original language. Skipping file to be safe.")
		return finish()
	}

	policy, err := BuildPolicy(native2, in.Options)
	if err != nil {
		logging.WarnWithContext(logger, "native language has no ISO 639-2 mapping", "language_unknown",
			logging.Error(err),
			logging.String(logging.FieldImpact, "file skipped"),
		)
		trace.Addf("Unrecognized original language %q. Skipping file to be safe.", native2)
		return finish()
	}
	result.NativeLanguage = policy.NativeLanguage()
	result.AllowedLanguages = policy.AudioLanguages()
	trace.Addf("Original language: %s -> %s", policy.NativeLanguage(), policy.NativeLanguage3())
	trace.Addf("Allowed audio languages: %s", strings.Join(result.AllowedLanguages, ", "))

	result.AudioDecisions, result.SubtitleDecisions = Classify(in.Streams, policy)
	result.Directives, result.ProcessFile = Synthesize(result.AudioDecisions, result.SubtitleDecisions, policy, CountStreams(in.Streams), trace)

	logger.Info("stream plan ready",
		logging.Args(append(logging.DecisionAttrs("process_file", boolResult(result.ProcessFile), lastLine(trace)),
			logging.Int("directives", len(result.Directives)),
		)...)...,
	)
	return finish()
}

func boolResult(v bool) string {
	if v {
		return "process"
	}
	return "skip"
}

func lastLine(t *Trace) string {
	lines := t.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
