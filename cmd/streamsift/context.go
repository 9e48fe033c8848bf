package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"streamsift/internal/config"
	"streamsift/internal/langcache"
	"streamsift/internal/logging"
	"streamsift/internal/media/ffprobe"
	"streamsift/internal/nativelang"
	"streamsift/internal/selection"
	"streamsift/internal/services"
)

// probeFile inspects media files. Tests replace it to avoid ffprobe.
var probeFile = ffprobe.Inspect

type commandContext struct {
	configFlag   *string
	logLevelFlag *string
	jsonFlag     *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
		jsonFlag:     jsonFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

// loggerValue returns the configured logger, falling back to a nop logger
// when the config could not be loaded or the log sink failed to open.
func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// openCache opens the language cache. A nil cache with a nil error means
// caching is disabled.
func (c *commandContext) openCache(ctx context.Context) (*langcache.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	return langcache.Open(ctx, cfg.Cache.Path, c.loggerValue())
}

// languageResolver returns the resolver used for planning. A non-empty
// override skips every lookup source.
func (c *commandContext) languageResolver(ctx context.Context, override string) (selection.LanguageResolver, func(), error) {
	if override = strings.TrimSpace(override); override != "" {
		return selection.FixedLanguage(override), func() {}, nil
	}
	resolver, closeFn, err := c.nativeResolver(ctx)
	if err != nil {
		return nil, nil, err
	}
	return resolver, closeFn, nil
}

func (c *commandContext) nativeResolver(ctx context.Context) (*nativelang.Resolver, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.loggerValue()

	cache, err := c.openCache(ctx)
	if err != nil {
		logging.WarnWithContext(logger, "language cache unavailable", "cache_open_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "every file is resolved through the lookup sources"),
		)
		cache = nil
	}
	closeFn := func() { _ = cache.Close() }

	resolver, err := nativelang.FromConfig(cfg, logger, nil, nativelang.WithCache(cache))
	if err != nil {
		closeFn()
		return nil, nil, services.Wrap(services.ErrConfiguration, "nativelang", "configure", "", err)
	}
	return resolver, closeFn, nil
}

func policyOptions(cfg *config.Config) selection.PolicyOptions {
	return selection.PolicyOptions{
		ExtraLanguages:            cfg.Audio.ExtraLanguages,
		SubtitleLanguages:         cfg.Subtitles.Languages,
		RemoveCommentarySubtitles: cfg.Subtitles.RemoveCommentary,
		AACBitratePerChannel:      cfg.Audio.AACBitratePerChannel,
		LosslessFallbackBitrate:   cfg.Audio.LosslessDefaultBitrate,
	}
}

// planFile probes path and plans it.
func (c *commandContext) planFile(ctx context.Context, path string, resolver selection.LanguageResolver) (selection.Result, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return selection.Result{}, err
	}
	probe, err := probeFile(ctx, cfg.FFprobeBinary(), path)
	if err != nil {
		return selection.Result{}, services.Wrap(services.ErrExternalTool, "ffprobe", "inspect", path, err)
	}
	return selection.Plan(ctx, selection.Input{
		Path:      path,
		Container: probe.Container(),
		Streams:   selection.FromProbe(probe),
		Options:   policyOptions(cfg),
	}, resolver, c.loggerValue()), nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
