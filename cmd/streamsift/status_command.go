package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"streamsift/internal/deps"
	"streamsift/internal/preflight"
)

type statusView struct {
	ConfigPath   string             `json:"config_path"`
	Dependencies []deps.Status      `json:"dependencies"`
	Checks       []preflight.Result `json:"checks"`
	Strategies   []string           `json:"lookup_order"`
	CacheEnabled bool               `json:"cache_enabled"`
	CacheEntries int                `json:"cache_entries"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools and lookup sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			checkCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			view := statusView{
				ConfigPath:   ctx.configPath,
				Dependencies: preflight.CheckSystemDeps(checkCtx, cfg),
				Checks:       preflight.RunAll(checkCtx, cfg),
				CacheEnabled: cfg.Cache.Enabled,
			}
			if resolver, closeResolver, err := ctx.nativeResolver(checkCtx); err == nil {
				view.Strategies = resolver.Strategies()
				closeResolver()
			}
			if cache, err := ctx.openCache(checkCtx); err == nil && cache != nil {
				view.CacheEntries, _ = cacheCount(checkCtx, cache)
				_ = cache.Close()
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, view)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			lines := renderSectionHeader("Tools", colorize)
			for _, dep := range view.Dependencies {
				lines = append(lines, dependencyStatusLine(dep, colorize))
			}
			lines = append(lines, "")
			lines = append(lines, renderSectionHeader("Lookup", colorize)...)
			if len(view.Strategies) == 0 {
				lines = append(lines, renderStatusLine("Order", statusWarn, "No lookup source configured", colorize))
			} else {
				lines = append(lines, renderStatusLine("Order", statusInfo, strings.Join(view.Strategies, " -> "), colorize))
			}
			for _, check := range view.Checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				lines = append(lines, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}
			cacheDetail := "Disabled"
			cacheKind := statusInfo
			if view.CacheEnabled {
				cacheDetail = fmt.Sprintf("%d entries (%s)", view.CacheEntries, cfg.Cache.Path)
				cacheKind = statusOK
			}
			lines = append(lines, renderStatusLine("Cache", cacheKind, cacheDetail, colorize))
			fmt.Fprintln(out, strings.Join(lines, "\n"))
			return nil
		},
	}
}

func dependencyStatusLine(dep deps.Status, colorize bool) string {
	if dep.Available {
		detail := dep.Version
		if detail == "" {
			detail = dep.Path
		}
		return renderStatusLine(dep.Name, statusOK, detail, colorize)
	}
	kind := statusError
	if dep.Optional {
		kind = statusWarn
	}
	return renderStatusLine(dep.Name, kind, dep.Detail, colorize)
}
