package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"streamsift/internal/config"
)

func TestLoadDefaultConfigUsesEnvKeysAndExpandsPaths(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "test-key")
	t.Setenv("RADARR_API_KEY", "radarr-key")
	t.Setenv("XDG_CACHE_HOME", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantCache := filepath.Join(tempHome, ".cache", "streamsift", "languages.db")
	if cfg.Cache.Path != wantCache {
		t.Fatalf("unexpected cache path: got %q want %q", cfg.Cache.Path, wantCache)
	}
	if cfg.Cache.Enabled {
		t.Fatal("expected cache disabled by default")
	}
	if cfg.TMDB.APIKey != "test-key" {
		t.Fatalf("expected TMDB key from env, got %q", cfg.TMDB.APIKey)
	}
	if cfg.Radarr.APIKey != "radarr-key" {
		t.Fatalf("expected Radarr key from env, got %q", cfg.Radarr.APIKey)
	}
	if cfg.Lookup.Priority != config.PriorityRadarr {
		t.Fatalf("unexpected priority: %q", cfg.Lookup.Priority)
	}
	if cfg.Subtitles.Languages != "eng" || !cfg.Subtitles.RemoveCommentary {
		t.Fatalf("unexpected subtitle defaults: %+v", cfg.Subtitles)
	}
	if cfg.Audio.AACBitratePerChannel != "64000" || cfg.Audio.LosslessDefaultBitrate != "640000" {
		t.Fatalf("unexpected audio defaults: %+v", cfg.Audio)
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected binaries: %q %q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
	if cfg.Encoding.OutputDir != "" {
		t.Fatalf("expected in-place output by default, got %q", cfg.Encoding.OutputDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "streamsift.toml")
	content := `
[lookup]
priority = "Sonarr"
request_timeout = 30

[sonarr]
url = "192.168.1.2:8989/"
api_key = "sonarr-key"

[tmdb]
api_key = "file-key"

[audio]
extra_languages = "fre, spa"
aac_bitrate_per_channel = "96000"

[subtitles]
languages = ""
remove_commentary = false

[cache]
enabled = true
path = "~/cache/langs.db"

[encoding]
output_dir = "~/out"

[logging]
format = "JSON"
level = "DEBUG"
file = "~/logs/streamsift.log"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Lookup.Priority != config.PrioritySonarr || cfg.Lookup.RequestTimeout != 30 {
		t.Fatalf("unexpected lookup: %+v", cfg.Lookup)
	}
	if cfg.Sonarr.URL != "http://192.168.1.2:8989" {
		t.Fatalf("expected scheme added and slash trimmed, got %q", cfg.Sonarr.URL)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Fatalf("unexpected TMDB key: %q", cfg.TMDB.APIKey)
	}
	if cfg.Audio.ExtraLanguages != "fre, spa" || cfg.Audio.AACBitratePerChannel != "96000" {
		t.Fatalf("unexpected audio: %+v", cfg.Audio)
	}
	if cfg.Audio.LosslessDefaultBitrate != "640000" {
		t.Fatalf("expected default lossless bitrate retained, got %q", cfg.Audio.LosslessDefaultBitrate)
	}
	if cfg.Subtitles.Languages != "" {
		t.Fatalf("expected empty subtitle list to survive normalization, got %q", cfg.Subtitles.Languages)
	}
	if cfg.Subtitles.RemoveCommentary {
		t.Fatal("expected commentary removal disabled")
	}
	if !cfg.Cache.Enabled || cfg.Cache.Path != filepath.Join(tempHome, "cache", "langs.db") {
		t.Fatalf("unexpected cache: %+v", cfg.Cache)
	}
	if cfg.Encoding.OutputDir != filepath.Join(tempHome, "out") {
		t.Fatalf("unexpected output dir: %q", cfg.Encoding.OutputDir)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
	if cfg.Logging.File != filepath.Join(tempHome, "logs", "streamsift.log") {
		t.Fatalf("unexpected log file: %q", cfg.Logging.File)
	}
}

func TestFileAPIKeyTakesPrecedenceOverEnv(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("HOME", t.TempDir())

	configPath := filepath.Join(t.TempDir(), "streamsift.toml")
	if err := os.WriteFile(configPath, []byte("[tmdb]\napi_key = \"file-key\"\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.TMDB.APIKey != "file-key" {
		t.Fatalf("expected file key, got %q", cfg.TMDB.APIKey)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "streamsift.toml")
	if err := os.WriteFile(configPath, []byte("[lookup\npriority = 1"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestCreateSample(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "nested", "config.toml")

	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read sample config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "your_tmdb_api_key_here") {
		t.Fatal("sample config missing TMDB placeholder")
	}

	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample config is not valid TOML: %v", err)
	}
	if decoded.Lookup.Priority != "radarr" {
		t.Fatalf("unexpected sample priority: %q", decoded.Lookup.Priority)
	}
	if decoded.Subtitles.Languages != "eng" || !decoded.Subtitles.RemoveCommentary {
		t.Fatalf("unexpected sample subtitles: %+v", decoded.Subtitles)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown priority",
			mutate: func(c *config.Config) { c.Lookup.Priority = "lidarr" },
			want:   "lookup.priority",
		},
		{
			name:   "non-positive timeout",
			mutate: func(c *config.Config) { c.Lookup.RequestTimeout = -1 },
			want:   "lookup.request_timeout",
		},
		{
			name: "radarr key without url",
			mutate: func(c *config.Config) {
				c.Radarr.APIKey = "k"
				c.Radarr.URL = ""
			},
			want: "radarr.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestValidateLookupRequiresCredentials(t *testing.T) {
	cfg := config.Default()
	if err := cfg.ValidateLookup(); !errors.Is(err, config.ErrNoLookupSource) {
		t.Fatalf("expected ErrNoLookupSource, got %v", err)
	}
	cfg.Sonarr.APIKey = "key"
	if err := cfg.ValidateLookup(); err != nil {
		t.Fatalf("expected sonarr key to satisfy lookup, got %v", err)
	}
}
