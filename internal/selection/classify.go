package selection

import (
	"fmt"
	"strings"

	"streamsift/internal/language"
)

// Action is the classifier's verdict for one stream.
type Action string

const (
	ActionKeep             Action = "keep"
	ActionDrop             Action = "drop"
	ActionKeepAndTranscode Action = "keep_and_transcode"
)

// Kept reports whether the stream survives in the output.
func (a Action) Kept() bool {
	return a == ActionKeep || a == ActionKeepAndTranscode
}

const (
	reasonUnwantedLanguage = "unwanted language"
	reasonDuplicate        = "duplicate, keeping first only"
	reasonMissingCodec     = "missing codec"
	reasonAllowed          = "allowed language"
	reasonTranscode        = "allowed language, adding AAC companion"
	reasonSubtitleKept     = "passes subtitle filters"
)

var commentaryMarkers = []string{"commentary", "description", "sdh"}

// Decision is the classifier output for one audio or subtitle stream.
type Decision struct {
	InputIndex int
	Action     Action
	Reason     string
	Stream     ProbedStream
}

// Classify decides the fate of every audio and subtitle stream, in input
// order. Video and other streams are ignored.
func Classify(streams []ProbedStream, policy Policy) (audio, subtitles []Decision) {
	kept := make(map[string]bool)
	for _, stream := range streams {
		switch stream.Type {
		case StreamAudio:
			audio = append(audio, classifyAudio(stream, policy, kept))
		case StreamSubtitle:
			subtitles = append(subtitles, classifySubtitle(stream, policy))
		}
	}
	return audio, subtitles
}

func classifyAudio(stream ProbedStream, policy Policy, kept map[string]bool) Decision {
	decision := Decision{InputIndex: stream.Index, Stream: stream}
	lang := language.Canonical3(stream.Language)
	switch {
	case !policy.AllowsAudio(lang):
		decision.Action = ActionDrop
		decision.Reason = reasonUnwantedLanguage
	case kept[lang]:
		decision.Action = ActionDrop
		decision.Reason = reasonDuplicate
	default:
		kept[lang] = true
		if codecName(stream) == "aac" {
			decision.Action = ActionKeep
			decision.Reason = reasonAllowed
		} else {
			decision.Action = ActionKeepAndTranscode
			decision.Reason = reasonTranscode
		}
	}
	return decision
}

func classifySubtitle(stream ProbedStream, policy Policy) Decision {
	decision := Decision{InputIndex: stream.Index, Stream: stream, Action: ActionKeep, Reason: reasonSubtitleKept}
	if stream.CodecName == "" || stream.CodecName == "none" {
		decision.Action = ActionDrop
		decision.Reason = reasonMissingCodec
		return decision
	}
	lang := streamLanguage(stream)
	if !policy.AllowsSubtitle(lang) {
		decision.Action = ActionDrop
		decision.Reason = fmt.Sprintf("%s [%s]", reasonUnwantedLanguage, lang)
		return decision
	}
	if policy.RemoveCommentarySubtitles() {
		title := strings.ToLower(stream.Title)
		for _, marker := range commentaryMarkers {
			if strings.Contains(title, marker) {
				decision.Action = ActionDrop
				decision.Reason = fmt.Sprintf("commentary/SDH: %q", title)
				return decision
			}
		}
	}
	return decision
}

func codecName(stream ProbedStream) string {
	if stream.CodecName == "" {
		return "unknown"
	}
	return stream.CodecName
}

func streamLanguage(stream ProbedStream) string {
	if stream.Language == "" {
		return language.Undetermined
	}
	return stream.Language
}
