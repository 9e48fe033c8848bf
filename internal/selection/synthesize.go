package selection

import (
	"strconv"

	"streamsift/internal/language"
)

// StreamCounts holds the original number of audio and subtitle streams.
type StreamCounts struct {
	Audio    int
	Subtitle int
}

var channelLayouts = map[int]string{
	1: "mono",
	2: "stereo",
	6: "5.1",
	8: "7.1",
}

// Synthesize turns classifier decisions into an ordered directive list and
// reports whether the file needs processing. It returns nil, false when no
// audio would survive or when the file already matches the policy.
func Synthesize(audio, subtitles []Decision, policy Policy, counts StreamCounts, trace *Trace) ([]Directive, bool) {
	directives := []Directive{CopyVideo{}}
	outputAudio := 0
	transcodes := 0
	keptLanguages := make(map[string]struct{})

	for _, d := range audio {
		stream := d.Stream
		prefix := "Audio " + strconv.Itoa(d.InputIndex) + ": " + codecName(stream) + " " +
			strconv.Itoa(audioChannels(stream)) + "ch [" + streamLanguage(stream) + "]"
		if !d.Action.Kept() {
			trace.decision("audio_stream", d, prefix+" -> REMOVE ("+d.Reason+")")
			continue
		}

		keptLanguages[language.Canonical3(stream.Language)] = struct{}{}
		directives = append(directives, CopyStream{Kind: StreamAudio, InputIndex: d.InputIndex, OutputIndex: outputAudio})
		trace.decision("audio_stream", d, prefix+" -> KEEP (output a:"+strconv.Itoa(outputAudio)+")")
		outputAudio++

		if d.Action != ActionKeepAndTranscode {
			continue
		}
		transcode := companionTrack(stream, policy, d.InputIndex, outputAudio)
		directives = append(directives, transcode)
		trace.Addf("  + AAC copy: %dch %skbps (output a:%d)", audioChannels(stream), kbps(transcode.Bitrate), outputAudio)
		outputAudio++
		transcodes++
	}

	if outputAudio == 0 {
		trace.Add("All audio tracks would be removed. Aborting to be safe.")
		return nil, false
	}

	outputSubtitles := 0
	for _, d := range subtitles {
		if d.Action.Kept() {
			directives = append(directives, CopyStream{Kind: StreamSubtitle, InputIndex: d.InputIndex, OutputIndex: outputSubtitles})
			outputSubtitles++
			continue
		}
		if d.Reason == reasonMissingCodec {
			trace.decision("subtitle_stream", d, "Subtitle "+strconv.Itoa(d.InputIndex)+": missing codec, skipping to prevent crash")
			continue
		}
		trace.decision("subtitle_stream", d, "Subtitle "+strconv.Itoa(d.InputIndex)+" ["+streamLanguage(d.Stream)+"]: REMOVE ("+d.Reason+")")
	}
	if outputSubtitles == 0 && counts.Subtitle > 0 {
		directives = append(directives, DisableSubtitles{})
	}

	audioRemoved := counts.Audio != len(keptLanguages)
	subtitlesRemoved := outputSubtitles < counts.Subtitle
	if !audioRemoved && transcodes == 0 && !subtitlesRemoved {
		trace.Add("Nothing to do, file already matches desired state.")
		return nil, false
	}

	directives = append(directives, RaiseMuxQueueLimit{Size: MuxQueueLimit})
	trace.Addf("--- Done. Output: %d audio tracks, %d subtitle tracks ---", outputAudio, outputSubtitles)
	return directives, true
}

func companionTrack(stream ProbedStream, policy Policy, inputIndex, outputIndex int) TranscodeStream {
	channels := audioChannels(stream)
	bitrate := channels * policy.AACBitratePerChannel()
	transcode := TranscodeStream{
		InputIndex:  inputIndex,
		OutputIndex: outputIndex,
		Codec:       "aac",
		Bitrate:     bitrate,
		Language:    streamLanguage(stream),
		Title:       "AAC " + strconv.Itoa(channels) + "ch " + kbps(bitrate) + "kbps [Auto]",
	}
	// Multichannel object audio (JOC/Atmos) loses its layout unless it is forced.
	if channels > 2 {
		transcode.Channels = channels
		transcode.Layout = channelLayouts[channels]
	}
	return transcode
}

func audioChannels(stream ProbedStream) int {
	if stream.Channels <= 0 {
		return 2
	}
	return stream.Channels
}

func kbps(bitrate int) string {
	return strconv.FormatFloat(float64(bitrate)/1000, 'f', -1, 64)
}
