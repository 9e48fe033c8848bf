package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"streamsift/internal/deps"
	"streamsift/internal/encoding"
	"streamsift/internal/logging"
	"streamsift/internal/services"
)

type applyView struct {
	Plan    planView `json:"plan"`
	Output  string   `json:"output,omitempty"`
	Remuxed bool     `json:"remuxed"`
	Copied  bool     `json:"copied"`
	Error   string   `json:"error,omitempty"`
}

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var outputDirFlag string

	cmd := &cobra.Command{
		Use:   "apply <file>...",
		Short: "Remux media files according to their stream plan",
		Long: "Plan each file and run ffmpeg to remove unwanted audio and subtitle streams " +
			"and add AAC companions. Files are processed one at a time; a failure on one file " +
			"does not stop the rest.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.loggerValue()

			missing := []string{}
			for _, status := range deps.CheckBinaries(deps.MediaRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary())) {
				if !status.Available && !status.Optional {
					missing = append(missing, fmt.Sprintf("%s (%s)", status.Name, status.Detail))
				}
			}
			if len(missing) > 0 {
				return services.Wrap(services.ErrConfiguration, "apply", "dependencies",
					"missing required tools: "+strings.Join(missing, ", "), nil)
			}

			resolver, closeResolver, err := ctx.languageResolver(cmd.Context(), languageFlag)
			if err != nil {
				return err
			}
			defer closeResolver()

			outputDir := cfg.Encoding.OutputDir
			if strings.TrimSpace(outputDirFlag) != "" {
				outputDir = outputDirFlag
			}
			runner := encoding.NewRunner(cfg.FFmpegBinary(), cfg.FFprobeBinary(), logger)

			var failures []error
			views := make([]applyView, 0, len(args))
			out := cmd.OutOrStdout()
			for _, path := range args {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				result, err := ctx.planFile(cmd.Context(), path, resolver)
				if err != nil {
					failures = append(failures, err)
					views = append(views, applyView{Plan: planView{File: path}, Error: err.Error()})
					continue
				}
				view := applyView{Plan: newPlanView(path, result)}
				outcome, err := runner.Apply(cmd.Context(), encoding.Request{Input: path, OutputDir: outputDir, Plan: result})
				if err != nil {
					logger.Error("apply failed",
						logging.String(logging.FieldFile, path),
						logging.Error(err),
						logging.String(logging.FieldEventType, "apply_failed"),
					)
					failures = append(failures, err)
					view.Error = err.Error()
				} else {
					view.Output = outcome.OutputPath
					view.Remuxed = outcome.Remuxed
					view.Copied = outcome.Copied
				}
				views = append(views, view)

				if !ctx.jsonOutput() {
					fmt.Fprintf(out, "%s: %s\n", path, applySummary(view))
				}
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
			}
			return errors.Join(failures...)
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Original language (ISO 639-1) to use instead of looking it up")
	cmd.Flags().StringVarP(&outputDirFlag, "output-dir", "o", "", "Write results here instead of replacing the source")
	return cmd
}

func applySummary(view applyView) string {
	switch {
	case view.Error != "":
		return "failed: " + view.Error
	case view.Remuxed:
		return fmt.Sprintf("remuxed -> %s", view.Output)
	case view.Copied:
		return fmt.Sprintf("unchanged, copied to %s", view.Output)
	default:
		if n := len(view.Plan.Trace); n > 0 {
			return "skipped (" + view.Plan.Trace[n-1] + ")"
		}
		return "skipped"
	}
}
