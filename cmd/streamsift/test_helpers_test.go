package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"streamsift/internal/media/ffprobe"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	cachePath  string
}

type testConfigOptions struct {
	tmdbURL      string
	tmdbKey      string
	cacheEnabled bool
}

func setupCLITestEnv(t *testing.T, opts testConfigOptions) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("TMDB_API_KEY", "")
	t.Setenv("RADARR_API_KEY", "")
	t.Setenv("SONARR_API_KEY", "")
	t.Setenv("NO_COLOR", "1")

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "streamsift.toml"),
		cachePath:  filepath.Join(base, "languages.db"),
	}

	var sb strings.Builder
	if opts.tmdbKey != "" {
		fmt.Fprintf(&sb, "[tmdb]\napi_key = %q\n", opts.tmdbKey)
		if opts.tmdbURL != "" {
			fmt.Fprintf(&sb, "base_url = %q\n", opts.tmdbURL)
		}
	}
	fmt.Fprintf(&sb, "[cache]\nenabled = %t\npath = %q\n", opts.cacheEnabled, env.cachePath)
	sb.WriteString("[encoding]\nffmpeg_binary = \"true\"\nffprobe_binary = \"true\"\n")
	sb.WriteString("[logging]\nlevel = \"error\"\n")
	if err := os.WriteFile(env.configPath, []byte(sb.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// stubProbe replaces ffprobe with a fixed result for every path.
func stubProbe(t *testing.T, result ffprobe.Result) {
	t.Helper()
	previous := probeFile
	probeFile = func(context.Context, string, string) (ffprobe.Result, error) {
		return result, nil
	}
	t.Cleanup(func() { probeFile = previous })
}

func mixedLanguageProbe() ffprobe.Result {
	return ffprobe.Result{
		Format: ffprobe.Format{FormatName: "matroska,webm"},
		Streams: []ffprobe.Stream{
			{CodecType: "video", CodecName: "h264"},
			{CodecType: "audio", CodecName: "truehd", Channels: 8, Tags: map[string]string{"language": "jpn"}},
			{CodecType: "audio", CodecName: "ac3", Channels: 6, Tags: map[string]string{"language": "eng"}},
			{CodecType: "audio", CodecName: "aac", Channels: 2, Tags: map[string]string{"language": "fre"}},
			{CodecType: "subtitle", CodecName: "subrip", Tags: map[string]string{"language": "eng", "title": "English"}},
			{CodecType: "subtitle", CodecName: "subrip", Tags: map[string]string{"language": "eng", "title": "Director Commentary"}},
			{CodecType: "subtitle", CodecName: "subrip", Tags: map[string]string{"language": "spa"}},
		},
	}
}

func cleanProbe() ffprobe.Result {
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{CodecType: "video", CodecName: "hevc"},
			{CodecType: "audio", CodecName: "aac", Channels: 2, Tags: map[string]string{"language": "eng"}},
		},
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
