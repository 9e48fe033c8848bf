package selection

import (
	"strconv"
	"strings"

	"streamsift/internal/language"
	"streamsift/internal/media/ffprobe"
)

// StreamType classifies an elementary stream.
type StreamType string

const (
	StreamVideo    StreamType = "video"
	StreamAudio    StreamType = "audio"
	StreamSubtitle StreamType = "subtitle"
	StreamOther    StreamType = "other"
)

// shortName is the ffmpeg stream specifier letter for the type.
func (t StreamType) shortName() string {
	switch t {
	case StreamVideo:
		return "v"
	case StreamAudio:
		return "a"
	case StreamSubtitle:
		return "s"
	default:
		return "d"
	}
}

// ProbedStream is one elementary stream as reported by ffprobe, reduced to the
// fields the classifier reads.
type ProbedStream struct {
	// Index is the position within streams of the same Type, in input order.
	Index     int
	Type      StreamType
	CodecName string
	Language  string
	Title     string
	Channels  int
}

// FromProbe converts an ffprobe result into classifier input. Type-relative
// indices follow the container's stream order. Missing languages become "und"
// and audio streams without a channel count default to stereo.
func FromProbe(result ffprobe.Result) []ProbedStream {
	streams := make([]ProbedStream, 0, len(result.Streams))
	counters := make(map[StreamType]int, 4)
	for _, stream := range result.Streams {
		kind := streamType(stream.CodecType)
		probed := ProbedStream{
			Index:     counters[kind],
			Type:      kind,
			CodecName: strings.ToLower(strings.TrimSpace(stream.CodecName)),
			Language:  language.ExtractFromTags(stream.Tags),
			Title:     stream.Title(),
		}
		counters[kind]++
		if probed.Language == "" {
			probed.Language = language.Undetermined
		}
		if kind == StreamAudio {
			probed.Channels = channelCount(stream)
		}
		streams = append(streams, probed)
	}
	return streams
}

// CountStreams returns the original audio and subtitle stream counts.
func CountStreams(streams []ProbedStream) StreamCounts {
	var counts StreamCounts
	for _, stream := range streams {
		switch stream.Type {
		case StreamAudio:
			counts.Audio++
		case StreamSubtitle:
			counts.Subtitle++
		}
	}
	return counts
}

func streamType(codecType string) StreamType {
	switch strings.ToLower(strings.TrimSpace(codecType)) {
	case "video":
		return StreamVideo
	case "audio":
		return StreamAudio
	case "subtitle":
		return StreamSubtitle
	default:
		return StreamOther
	}
}

// channelCount prefers the reported channel count, then the channel layout,
// and finally assumes stereo.
func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "":
		return 2
	case layout == "mono":
		return 1
	case layout == "stereo":
		return 2
	case strings.HasPrefix(layout, "7.1"):
		return 8
	case strings.HasPrefix(layout, "6.1"):
		return 7
	case strings.HasPrefix(layout, "5.1"):
		return 6
	case strings.HasPrefix(layout, "4.0"):
		return 4
	}
	if strings.Contains(layout, ".") {
		total := 0
		for _, part := range strings.Split(layout, ".") {
			part = strings.Trim(part, "abcdefghijklmnopqrstuvwxyz ()")
			if n, err := strconv.Atoi(part); err == nil {
				total += n
			}
		}
		if total > 0 {
			return total
		}
	}
	return 2
}
