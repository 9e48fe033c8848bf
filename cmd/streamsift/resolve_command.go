package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"streamsift/internal/nativelang"
)

type resolveView struct {
	Identity string `json:"identity"`
	Language string `json:"language,omitempty"`
	Source   string `json:"source,omitempty"`
	IMDbID   string `json:"imdb_id,omitempty"`
	Title    string `json:"title,omitempty"`
	Error    string `json:"error,omitempty"`
}

func newResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file-name>...",
		Short: "Look up the original language for file names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, closeResolver, err := ctx.nativeResolver(cmd.Context())
			if err != nil {
				return err
			}
			defer closeResolver()

			views := make([]resolveView, 0, len(args))
			var failed error
			for _, arg := range args {
				identity := filepath.Base(arg)
				view := resolveView{Identity: identity}
				res, err := resolver.ResolveDetailed(cmd.Context(), identity)
				switch {
				case errors.Is(err, nativelang.ErrUnresolved):
					view.Error = "unresolved"
					failed = err
				case err != nil:
					return err
				default:
					view.Language = res.Language
					view.Source = res.Source
					view.IMDbID = res.IMDbID
					view.Title = res.Title
				}
				views = append(views, view)
			}

			if ctx.jsonOutput() {
				if err := writeJSON(cmd, views); err != nil {
					return err
				}
				return failed
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				lang := v.Language
				if lang == "" {
					lang = "-"
				}
				rows = append(rows, []string{v.Identity, lang, v.Source, v.IMDbID, v.Title})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Identity", "Language", "Source", "IMDB", "Title"},
				rows,
				nil,
			))
			return failed
		},
	}
}
