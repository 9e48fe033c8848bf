package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"streamsift/internal/langcache"
	"streamsift/internal/language"
	"streamsift/internal/services"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage remembered original languages",
		Long: "Inspect and edit the language cache. The cache is keyed by file name; " +
			"entries are written by successful lookups when [cache] enabled = true, or by `cache set`.",
	}
	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheSetCommand(ctx))
	cacheCmd.AddCommand(newCacheRemoveCommand(ctx))
	cacheCmd.AddCommand(newCacheClearCommand(ctx))
	return cacheCmd
}

// withCache opens the cache file even when lookups do not use it, so entries
// can be managed before caching is switched on.
func withCache(cmd *cobra.Command, ctx *commandContext, fn func(*langcache.Cache) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cache, err := langcache.Open(cmd.Context(), cfg.Cache.Path, ctx.loggerValue())
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "cache", "open", cfg.Cache.Path, err)
	}
	defer cache.Close()
	if !cfg.Cache.Enabled && !ctx.jsonOutput() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Note: language cache is disabled in config; entries are not used for lookups.")
	}
	return fn(cache)
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(cache *langcache.Cache) error {
				entries, err := cache.List(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					if entries == nil {
						entries = []langcache.Entry{}
					}
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "Cache is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.Identity,
						e.Language,
						language.DisplayName(e.Language),
						e.Source,
						e.IMDbID,
						e.CachedAt.Local().Format("2006-01-02 15:04"),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Identity", "Code", "Language", "Source", "IMDB", "Cached"},
					rows,
					nil,
				))
				return nil
			})
		},
	}
}

func newCacheSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file-name> <language>",
		Short: "Pin the original language for a file name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity := filepath.Base(args[0])
			code, err := manualLanguage(args[1])
			if err != nil {
				return err
			}
			return withCache(cmd, ctx, func(cache *langcache.Cache) error {
				if err := cache.Store(cmd.Context(), langcache.Entry{Identity: identity, Language: code, Source: "manual"}); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cached %s -> %s (%s)\n", identity, code, language.DisplayName(code))
				return nil
			})
		},
	}
}

// manualLanguage accepts an ISO 639-1 or 639-2 code or an English language
// name and returns the ISO 639-1 code the resolver would produce.
func manualLanguage(raw string) (string, error) {
	code := language.NormalizeTMDB(raw)
	if len(code) > 3 {
		code = language.FromName(code)
	} else {
		code = language.ToISO2(code)
	}
	if len(code) != 2 || language.ToISO3Strict(code) == "" {
		return "", services.Wrap(services.ErrValidation, "cache", "set", fmt.Sprintf("unrecognized language %q", raw), nil)
	}
	return code, nil
}

func newCacheRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <file-name>...",
		Aliases: []string{"rm"},
		Short:   "Remove cached entries",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(cache *langcache.Cache) error {
				out := cmd.OutOrStdout()
				var failures []error
				for _, arg := range args {
					identity := filepath.Base(arg)
					if err := cache.Remove(cmd.Context(), identity); err != nil {
						if errors.Is(err, langcache.ErrNotFound) {
							err = services.Wrap(services.ErrNotFound, "cache", "remove", identity, nil)
						}
						failures = append(failures, err)
						continue
					}
					fmt.Fprintf(out, "Removed %s\n", identity)
				}
				return errors.Join(failures...)
			})
		},
	}
}

func newCacheClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCache(cmd, ctx, func(cache *langcache.Cache) error {
				removed, err := cache.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached entr%s\n", removed, pluralY(removed))
				return nil
			})
		},
	}
}

func pluralY(n int64) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// cacheCount reports the number of cache entries for status output.
func cacheCount(ctx context.Context, cache *langcache.Cache) (int, error) {
	if cache == nil {
		return 0, nil
	}
	return cache.Count(ctx)
}
