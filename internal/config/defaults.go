package config

const (
	defaultConfigPath             = "~/.config/streamsift/config.toml"
	defaultLookupPriority         = PriorityRadarr
	defaultLookupRequestTimeout   = 10
	defaultRadarrURL              = "http://127.0.0.1:7878"
	defaultSonarrURL              = "http://127.0.0.1:8989"
	defaultTMDBLanguage           = "en-US"
	defaultTMDBBaseURL            = "https://api.themoviedb.org/3"
	defaultAACBitratePerChannel   = "64000"
	defaultLosslessDefaultBitrate = "640000"
	defaultSubtitleLanguages      = "eng"
	defaultFFmpegBinary           = "ffmpeg"
	defaultFFprobeBinary          = "ffprobe"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Catalog priorities accepted by lookup.priority.
const (
	PriorityRadarr = "radarr"
	PrioritySonarr = "sonarr"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Lookup: Lookup{
			Priority:       defaultLookupPriority,
			RequestTimeout: defaultLookupRequestTimeout,
		},
		Radarr: Catalog{URL: defaultRadarrURL},
		Sonarr: Catalog{URL: defaultSonarrURL},
		TMDB: TMDB{
			Language: defaultTMDBLanguage,
			BaseURL:  defaultTMDBBaseURL,
		},
		Audio: Audio{
			AACBitratePerChannel:   defaultAACBitratePerChannel,
			LosslessDefaultBitrate: defaultLosslessDefaultBitrate,
		},
		Subtitles: Subtitles{
			Languages:        defaultSubtitleLanguages,
			RemoveCommentary: true,
		},
		Cache: Cache{
			Path: defaultCachePath(),
		},
		Encoding: Encoding{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
