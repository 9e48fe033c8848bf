package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"streamsift/internal/encoding"
	"streamsift/internal/selection"
)

type decisionView struct {
	Type     string `json:"type"`
	Input    int    `json:"input_index"`
	Codec    string `json:"codec"`
	Language string `json:"language"`
	Channels int    `json:"channels,omitempty"`
	Title    string `json:"title,omitempty"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

type planView struct {
	File             string         `json:"file"`
	RunID            string         `json:"run_id"`
	ProcessFile      bool           `json:"process_file"`
	Container        string         `json:"container,omitempty"`
	NativeLanguage   string         `json:"native_language,omitempty"`
	AllowedLanguages []string       `json:"allowed_languages,omitempty"`
	Decisions        []decisionView `json:"decisions"`
	Directives       []string       `json:"directives"`
	FFmpegArgs       []string       `json:"ffmpeg_args,omitempty"`
	Trace            []string       `json:"trace"`
}

func newPlanView(path string, result selection.Result) planView {
	view := planView{
		File:             path,
		RunID:            result.RunID,
		ProcessFile:      result.ProcessFile,
		Container:        result.Container,
		NativeLanguage:   result.NativeLanguage,
		AllowedLanguages: result.AllowedLanguages,
		Decisions:        make([]decisionView, 0, len(result.AudioDecisions)+len(result.SubtitleDecisions)),
		Directives:       make([]string, 0, len(result.Directives)),
		Trace:            result.Trace,
	}
	for _, group := range [][]selection.Decision{result.AudioDecisions, result.SubtitleDecisions} {
		for _, d := range group {
			view.Decisions = append(view.Decisions, decisionView{
				Type:     string(d.Stream.Type),
				Input:    d.InputIndex,
				Codec:    d.Stream.CodecName,
				Language: d.Stream.Language,
				Channels: d.Stream.Channels,
				Title:    d.Stream.Title,
				Action:   string(d.Action),
				Reason:   d.Reason,
			})
		}
	}
	for _, d := range result.Directives {
		view.Directives = append(view.Directives, d.String())
	}
	if result.ProcessFile {
		view.FFmpegArgs = encoding.Args(path, "<output>", result.Directives)
	}
	return view
}

func renderPlan(out io.Writer, view planView, showTrace bool) {
	fmt.Fprintf(out, "File:      %s\n", view.File)
	if view.NativeLanguage != "" {
		fmt.Fprintf(out, "Language:  %s (keeping %s)\n", view.NativeLanguage, strings.Join(view.AllowedLanguages, ", "))
	}
	fmt.Fprintf(out, "Process:   %s\n", yesNo(view.ProcessFile))

	if len(view.Decisions) > 0 {
		rows := make([][]string, 0, len(view.Decisions))
		for _, d := range view.Decisions {
			channels := ""
			if d.Channels > 0 {
				channels = strconv.Itoa(d.Channels)
			}
			rows = append(rows, []string{d.Type, strconv.Itoa(d.Input), d.Codec, d.Language, channels, d.Action, d.Reason})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Type", "#", "Codec", "Lang", "Ch", "Action", "Reason"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
		))
	}

	if view.ProcessFile {
		fmt.Fprintln(out, "Directives:")
		for _, d := range view.Directives {
			fmt.Fprintf(out, "  %s\n", d)
		}
	}

	if showTrace || !view.ProcessFile {
		fmt.Fprintln(out, "Trace:")
		for _, line := range view.Trace {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
}
