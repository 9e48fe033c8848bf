package selection

import (
	"errors"
	"reflect"
	"testing"
)

func TestBuildPolicyAllowedAudio(t *testing.T) {
	policy, err := BuildPolicy("ja", PolicyOptions{ExtraLanguages: " FRE, ,spa,eng "})
	if err != nil {
		t.Fatalf("BuildPolicy: %v", err)
	}
	want := []string{"jpn", "eng", "und", "fra", "spa"}
	if got := policy.AudioLanguages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("AudioLanguages = %v, want %v", got, want)
	}
	for _, lang := range []string{"jpn", "eng", "und", "fre", "fra", "spa"} {
		if !policy.AllowsAudio(lang) {
			t.Errorf("expected %q allowed", lang)
		}
	}
	if policy.AllowsAudio("deu") {
		t.Error("did not expect deu allowed")
	}
	if policy.NativeLanguage() != "ja" || policy.NativeLanguage3() != "jpn" {
		t.Fatalf("unexpected native language %q/%q", policy.NativeLanguage(), policy.NativeLanguage3())
	}
}

func TestBuildPolicyRemapsChineseAlias(t *testing.T) {
	policy, err := BuildPolicy("cn", PolicyOptions{})
	if err != nil {
		t.Fatalf("BuildPolicy: %v", err)
	}
	if policy.NativeLanguage() != "zh" {
		t.Fatalf("expected cn remapped to zh, got %q", policy.NativeLanguage())
	}
	langs := policy.AudioLanguages()
	if langs[0] != "zho" {
		t.Fatalf("expected zho first in allowed set, got %v", langs)
	}
	for _, lang := range langs {
		if lang == "cn" || lang == "chi" {
			t.Fatalf("allowed set must not hold %q literally: %v", lang, langs)
		}
	}
	if !policy.AllowsAudio("chi") {
		t.Fatal("expected bibliographic chi tag to match zho")
	}
}

func TestBuildPolicyRejectsUnknownLanguage(t *testing.T) {
	for _, code := range []string{"", "x1", "und", "klingon"} {
		if _, err := BuildPolicy(code, PolicyOptions{}); !errors.Is(err, ErrUnknownLanguage) {
			t.Errorf("BuildPolicy(%q) err = %v, want ErrUnknownLanguage", code, err)
		}
	}
}

func TestBuildPolicyBitrates(t *testing.T) {
	tests := []struct {
		name         string
		perChannel   string
		lossless     string
		wantChannel  int
		wantLossless int
	}{
		{"defaults when empty", "", "", 64000, 640000},
		{"parsed", "96000", "1536000", 96000, 1536000},
		{"garbage falls back", "fast", "lots", 64000, 640000},
		{"non-positive falls back", "0", "-5", 64000, 640000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy, err := BuildPolicy("en", PolicyOptions{AACBitratePerChannel: tt.perChannel, LosslessFallbackBitrate: tt.lossless})
			if err != nil {
				t.Fatalf("BuildPolicy: %v", err)
			}
			if policy.AACBitratePerChannel() != tt.wantChannel {
				t.Errorf("AACBitratePerChannel = %d, want %d", policy.AACBitratePerChannel(), tt.wantChannel)
			}
			if policy.LosslessFallbackBitrate() != tt.wantLossless {
				t.Errorf("LosslessFallbackBitrate = %d, want %d", policy.LosslessFallbackBitrate(), tt.wantLossless)
			}
		})
	}
}

func TestBuildPolicySubtitleFilter(t *testing.T) {
	keepAll, err := BuildPolicy("en", PolicyOptions{SubtitleLanguages: ""})
	if err != nil {
		t.Fatalf("BuildPolicy: %v", err)
	}
	if !keepAll.KeepAllSubtitles() || keepAll.SubtitleFilter() != nil {
		t.Fatal("expected empty subtitle languages to keep all")
	}
	if !keepAll.AllowsSubtitle("kor") {
		t.Fatal("keep-all policy must allow any language")
	}

	blank, _ := BuildPolicy("en", PolicyOptions{SubtitleLanguages: " , "})
	if !blank.KeepAllSubtitles() {
		t.Fatal("expected list without entries to keep all")
	}

	filtered, _ := BuildPolicy("en", PolicyOptions{SubtitleLanguages: "eng, ger"})
	if filtered.KeepAllSubtitles() {
		t.Fatal("expected active filter")
	}
	if got := filtered.SubtitleFilter(); !reflect.DeepEqual(got, []string{"deu", "eng"}) {
		t.Fatalf("SubtitleFilter = %v", got)
	}
	if !filtered.AllowsSubtitle("deu") || !filtered.AllowsSubtitle("und") || filtered.AllowsSubtitle("fre") {
		t.Fatal("unexpected subtitle filter membership")
	}
}

func TestPolicyAccessorsReturnCopies(t *testing.T) {
	policy, _ := BuildPolicy("en", PolicyOptions{})
	langs := policy.AudioLanguages()
	langs[0] = "xxx"
	if policy.AudioLanguages()[0] != "eng" {
		t.Fatal("policy mutated through accessor")
	}
}
