package selection

import (
	"context"
	"errors"
	"strings"
	"testing"

	"streamsift/internal/logging"
)

type stubResolver struct {
	code     string
	err      error
	calls    int
	identity string
}

func (s *stubResolver) Resolve(_ context.Context, identity string) (string, error) {
	s.calls++
	s.identity = identity
	return s.code, s.err
}

func TestPlanProcessesFile(t *testing.T) {
	resolver := &stubResolver{code: "ja"}
	ctx := logging.WithRunID(context.Background(), "run-1234")
	result := Plan(ctx, Input{
		Path:      "/media/movies/Akira (1988) tt0094625.mkv",
		Container: "matroska",
		Streams: []ProbedStream{
			{Index: 0, Type: StreamVideo, CodecName: "h264"},
			audioStream(0, "jpn", "dts", 6),
			audioStream(1, "eng", "aac", 2),
			audioStream(2, "jpn", "aac", 2),
		},
	}, resolver, logging.NewNop())

	if !result.ProcessFile {
		t.Fatalf("expected processing, trace: %v", result.Trace)
	}
	if resolver.identity != "Akira (1988) tt0094625.mkv" {
		t.Fatalf("expected base name identity, got %q", resolver.identity)
	}
	if result.RunID != "run-1234" {
		t.Fatalf("expected run id from context, got %q", result.RunID)
	}
	if result.Container != "matroska" || result.NativeLanguage != "ja" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.AudioDecisions) != 3 || len(result.Directives) != 5 {
		t.Fatalf("unexpected decisions/directives: %d/%d", len(result.AudioDecisions), len(result.Directives))
	}
	trace := strings.Join(result.Trace, "\n")
	for _, fragment := range []string{
		"File: /media/movies/Akira (1988) tt0094625.mkv",
		"Original language: ja -> jpn",
		"Allowed audio languages: jpn, eng, und",
	} {
		if !strings.Contains(trace, fragment) {
			t.Errorf("trace missing %q:\n%s", fragment, trace)
		}
	}
}

func TestPlanSkipsWithoutStreamsBeforeResolving(t *testing.T) {
	resolver := &stubResolver{code: "en"}
	result := Plan(context.Background(), Input{Path: "a.mkv"}, resolver, nil)
	if result.ProcessFile {
		t.Fatal("expected skip")
	}
	if resolver.calls != 0 {
		t.Fatal("resolver must not be consulted without probe data")
	}
	if result.Trace[len(result.Trace)-1] != "No ffprobe data found. Skipping." {
		t.Fatalf("unexpected trace %v", result.Trace)
	}
	if result.RunID == "" {
		t.Fatal("expected generated run id")
	}
}

func TestPlanSkipsWhenLanguageUnresolved(t *testing.T) {
	for _, resolver := range []LanguageResolver{
		&stubResolver{err: errors.New("lookup failed")},
		&stubResolver{},
		nil,
	} {
		result := Plan(context.Background(), Input{
			Path:    "x.mkv",
			Streams: []ProbedStream{audioStream(0, "eng", "ac3", 6)},
		}, resolver, nil)
		if result.ProcessFile || result.Directives != nil {
			t.Fatalf("expected skip, got %+v", result)
		}
		if result.Trace[len(result.Trace)-1] != "Could not determine original language. Skipping file to be safe." {
			t.Fatalf("unexpected trace %v", result.Trace)
		}
	}
}

func TestPlanSkipsUnknownLanguage(t *testing.T) {
	result := Plan(context.Background(), Input{
		Path:    "x.mkv",
		Streams: []ProbedStream{audioStream(0, "eng", "ac3", 6)},
	}, FixedLanguage("x1"), nil)
	if result.ProcessFile {
		t.Fatal("expected skip for unmapped language")
	}
	if !strings.Contains(result.Trace[len(result.Trace)-1], "Unrecognized original language") {
		t.Fatalf("unexpected trace %v", result.Trace)
	}
}

func TestPlanChineseAlias(t *testing.T) {
	result := Plan(context.Background(), Input{
		Path: "x.mkv",
		Streams: []ProbedStream{
			audioStream(0, "chi", "flac", 2),
			audioStream(1, "kor", "ac3", 2),
		},
	}, FixedLanguage("cn"), nil)
	if !result.ProcessFile {
		t.Fatalf("expected processing, trace %v", result.Trace)
	}
	if result.AllowedLanguages[0] != "zho" {
		t.Fatalf("expected zho, got %v", result.AllowedLanguages)
	}
	if !result.AudioDecisions[0].Action.Kept() || result.AudioDecisions[1].Action.Kept() {
		t.Fatalf("unexpected decisions %+v", result.AudioDecisions)
	}
}

func TestFixedLanguageEmpty(t *testing.T) {
	if _, err := FixedLanguage(" ").Resolve(context.Background(), "x"); err == nil {
		t.Fatal("expected error for empty override")
	}
}
