package encoding

import (
	"fmt"
	"strconv"

	"streamsift/internal/selection"
)

// Args renders directives into a complete ffmpeg argument list that reads
// input and writes output. Directives are rendered in order.
func Args(input, output string, directives []selection.Directive) []string {
	args := []string{"-hide_banner", "-nostdin", "-y", "-i", input}
	for _, d := range directives {
		args = append(args, directiveArgs(d)...)
	}
	return append(args, output)
}

func directiveArgs(d selection.Directive) []string {
	switch v := d.(type) {
	case selection.CopyVideo:
		return []string{"-map", "0:v?", "-c:v", "copy"}
	case selection.CopyStream:
		spec := specifier(v.Kind)
		return []string{
			"-map", fmt.Sprintf("0:%s:%d", spec, v.InputIndex),
			fmt.Sprintf("-c:%s:%d", spec, v.OutputIndex), "copy",
		}
	case selection.TranscodeStream:
		out := strconv.Itoa(v.OutputIndex)
		args := []string{
			"-map", fmt.Sprintf("0:a:%d", v.InputIndex),
			"-c:a:" + out, v.Codec,
			"-b:a:" + out, strconv.Itoa(v.Bitrate),
		}
		if v.Channels > 0 {
			args = append(args, "-ac:a:"+out, strconv.Itoa(v.Channels))
		}
		if v.Layout != "" {
			args = append(args, "-channel_layout:a:"+out, v.Layout)
		}
		if v.Language != "" {
			args = append(args, "-metadata:s:a:"+out, "language="+v.Language)
		}
		if v.Title != "" {
			args = append(args, "-metadata:s:a:"+out, "title="+v.Title)
		}
		return args
	case selection.DisableSubtitles:
		return []string{"-sn"}
	case selection.RaiseMuxQueueLimit:
		return []string{"-max_muxing_queue_size", strconv.Itoa(v.Size)}
	default:
		return nil
	}
}

func specifier(kind selection.StreamType) string {
	switch kind {
	case selection.StreamVideo:
		return "v"
	case selection.StreamAudio:
		return "a"
	case selection.StreamSubtitle:
		return "s"
	default:
		return "d"
	}
}

// ExpectedStreams counts the audio and subtitle streams the directives
// produce.
func ExpectedStreams(directives []selection.Directive) (audio, subtitles int) {
	for _, d := range directives {
		switch v := d.(type) {
		case selection.CopyStream:
			switch v.Kind {
			case selection.StreamAudio:
				audio++
			case selection.StreamSubtitle:
				subtitles++
			}
		case selection.TranscodeStream:
			audio++
		}
	}
	return audio, subtitles
}
