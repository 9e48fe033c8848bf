package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var languageFlag string
	var traceFlag bool

	cmd := &cobra.Command{
		Use:   "plan <file>...",
		Short: "Show the stream plan for media files without changing them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, closeResolver, err := ctx.languageResolver(cmd.Context(), languageFlag)
			if err != nil {
				return err
			}
			defer closeResolver()

			views := make([]planView, 0, len(args))
			for _, path := range args {
				result, err := ctx.planFile(cmd.Context(), path, resolver)
				if err != nil {
					return err
				}
				views = append(views, newPlanView(path, result))
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, views)
			}
			out := cmd.OutOrStdout()
			for i, view := range views {
				if i > 0 {
					fmt.Fprintln(out)
				}
				renderPlan(out, view, traceFlag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Original language (ISO 639-1) to use instead of looking it up")
	cmd.Flags().BoolVar(&traceFlag, "trace", false, "Always print the decision trace")
	return cmd
}
