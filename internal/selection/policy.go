package selection

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"streamsift/internal/language"
)

const (
	// DefaultAACBitratePerChannel is used when the configured value is unusable.
	DefaultAACBitratePerChannel = 64000
	// DefaultLosslessFallbackBitrate is used when the configured value is unusable.
	DefaultLosslessFallbackBitrate = 640000
)

// ErrUnknownLanguage reports a native language code with no ISO 639-2 mapping.
var ErrUnknownLanguage = errors.New("unknown native language")

// PolicyOptions carries the raw selection settings as written by the user.
type PolicyOptions struct {
	ExtraLanguages            string
	SubtitleLanguages         string
	RemoveCommentarySubtitles bool
	AACBitratePerChannel      string
	LosslessFallbackBitrate   string
}

// Policy is the immutable per-file selection policy.
type Policy struct {
	native2          string
	native3          string
	audioOrder       []string
	audio            map[string]struct{}
	subtitles        map[string]struct{}
	removeCommentary bool
	aacPerChannel    int
	losslessFallback int
}

// BuildPolicy resolves the native language to ISO 639-2 and parses the raw
// options. The allowed audio set always holds the native language, English,
// and "und". An empty subtitle language list keeps every subtitle language.
func BuildPolicy(native2 string, opts PolicyOptions) (Policy, error) {
	code := language.NormalizeTMDB(native2)
	native3 := language.ToISO3Strict(code)
	if native3 == "" || native3 == language.Undetermined {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, native2)
	}

	policy := Policy{
		native2:          code,
		native3:          native3,
		audio:            make(map[string]struct{}),
		removeCommentary: opts.RemoveCommentarySubtitles,
		aacPerChannel:    parseBitrate(opts.AACBitratePerChannel, DefaultAACBitratePerChannel),
		losslessFallback: parseBitrate(opts.LosslessFallbackBitrate, DefaultLosslessFallbackBitrate),
	}

	for _, lang := range append([]string{native3, "eng", language.Undetermined}, language.SplitList(opts.ExtraLanguages)...) {
		canonical := language.Canonical3(lang)
		if _, ok := policy.audio[canonical]; ok {
			continue
		}
		policy.audio[canonical] = struct{}{}
		policy.audioOrder = append(policy.audioOrder, canonical)
	}

	if subs := language.SplitList(opts.SubtitleLanguages); len(subs) > 0 {
		policy.subtitles = make(map[string]struct{}, len(subs))
		for _, lang := range subs {
			policy.subtitles[language.Canonical3(lang)] = struct{}{}
		}
	}

	return policy, nil
}

func parseBitrate(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// NativeLanguage returns the normalized two-letter native language.
func (p Policy) NativeLanguage() string { return p.native2 }

// NativeLanguage3 returns the ISO 639-2/T native language.
func (p Policy) NativeLanguage3() string { return p.native3 }

// AllowsAudio reports whether an audio stream tagged lang may be kept.
func (p Policy) AllowsAudio(lang string) bool {
	_, ok := p.audio[language.Canonical3(lang)]
	return ok
}

// AudioLanguages returns the allowed audio languages in insertion order.
func (p Policy) AudioLanguages() []string {
	return append([]string(nil), p.audioOrder...)
}

// KeepAllSubtitles reports whether the subtitle language filter is disabled.
func (p Policy) KeepAllSubtitles() bool { return p.subtitles == nil }

// SubtitleFilter returns the sorted subtitle languages, or nil when every
// language is kept.
func (p Policy) SubtitleFilter() []string {
	if p.subtitles == nil {
		return nil
	}
	out := make([]string, 0, len(p.subtitles))
	for lang := range p.subtitles {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// AllowsSubtitle reports whether the subtitle language filter passes lang.
// Untagged subtitles always pass.
func (p Policy) AllowsSubtitle(lang string) bool {
	if p.subtitles == nil {
		return true
	}
	canonical := language.Canonical3(lang)
	if canonical == language.Undetermined {
		return true
	}
	_, ok := p.subtitles[canonical]
	return ok
}

// RemoveCommentarySubtitles reports whether commentary subtitle tracks are dropped.
func (p Policy) RemoveCommentarySubtitles() bool { return p.removeCommentary }

// AACBitratePerChannel is the per-channel bitrate for AAC companion tracks.
func (p Policy) AACBitratePerChannel() int { return p.aacPerChannel }

// LosslessFallbackBitrate is reserved for streams that report no bitrate.
func (p Policy) LosslessFallbackBitrate() int { return p.losslessFallback }
