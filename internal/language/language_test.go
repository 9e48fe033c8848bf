package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// 2-letter codes pass through
		{"en", "en"},
		{"EN", "en"},
		{"ja", "ja"},
		// 3-letter codes convert, both T and B forms
		{"eng", "en"},
		{"fra", "fr"},
		{"fre", "fr"},
		{"deu", "de"},
		{"ger", "de"},
		{"jpn", "ja"},
		{"zho", "zh"},
		{"chi", "zh"},
		{"ces", "cs"},
		{"cze", "cs"},
		{"slo", "sk"},
		{"slk", "sk"},
		{"arm", "hy"},
		// Word forms
		{"english", "en"},
		{"French", "fr"},
		{"chinese", "zh"},
		// Unknown 2-letter passes through
		{"xy", "xy"},
		// Empty
		{"", ""},
		{" ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToISO2(tt.input)
			if result != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToISO3(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "eng"},
		{"fr", "fra"},
		{"de", "deu"},
		{"zh", "zho"},
		{"ja", "jpn"},
		{"eng", "eng"},
		{"ger", "deu"},
		{"", "und"},
		{"1a", "und"}, // ill-formed 2-letter becomes undefined
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ToISO3(tt.input)
			if result != tt.expected {
				t.Errorf("ToISO3(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestToISO3StrictFallsBackToCLDR(t *testing.T) {
	// Swahili is not in the curated table.
	if got := ToISO3Strict("sw"); got != "swa" {
		t.Fatalf("ToISO3Strict(sw) = %q, want swa", got)
	}
	if got := ToISO3Strict("zh"); got != "zho" {
		t.Fatalf("ToISO3Strict(zh) = %q, want zho", got)
	}
	for _, input := range []string{"", "  ", "1a", "english-ish"} {
		if got := ToISO3Strict(input); got != "" {
			t.Errorf("ToISO3Strict(%q) = %q, want empty", input, got)
		}
	}
}

func TestNormalizeTMDB(t *testing.T) {
	tests := map[string]string{
		"cn":  "zh",
		"CN":  "zh",
		"zh":  "zh",
		"ja":  "ja",
		" en": "en",
		"":    "",
	}
	for input, want := range tests {
		if got := NormalizeTMDB(input); got != want {
			t.Errorf("NormalizeTMDB(%q) = %q, want %q", input, got, want)
		}
	}
	if got := ToISO3Strict(NormalizeTMDB("cn")); got != "zho" {
		t.Fatalf("expected cn to resolve to zho, got %q", got)
	}
}

func TestFromName(t *testing.T) {
	tests := map[string]string{
		"English":  "en",
		"Japanese": "ja",
		"french":   "fr",
		"Mandarin": "zh",
		"Slovak":   "sk",
		"Armenian": "hy",
		"malay":    "ms",
		"Klingon":  "",
		"":         "",
	}
	for input, want := range tests {
		if got := FromName(input); got != want {
			t.Errorf("FromName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestCanonical3(t *testing.T) {
	tests := map[string]string{
		"ger": "deu",
		"deu": "deu",
		"FRE": "fra",
		"chi": "zho",
		"slo": "slk",
		"may": "msa",
		"jpn": "jpn",
		"":    "und",
		"und": "und",
		"tlh": "tlh",
	}
	for input, want := range tests {
		if got := Canonical3(input); got != want {
			t.Errorf("Canonical3(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestBibliographicCodesMatchTerminology(t *testing.T) {
	for b, want := range bibliographic {
		if got := Canonical3(b); got != want {
			t.Errorf("Canonical3(%q) = %q, want %q", b, got, want)
		}
		if got := ToISO3Strict(b); got != want {
			t.Errorf("ToISO3Strict(%q) = %q, want %q", b, got, want)
		}
		two := ToISO2(b)
		if len(two) != 2 {
			t.Errorf("ToISO2(%q) = %q, want a two-letter code", b, two)
			continue
		}
		if got := ToISO3Strict(two); got != want {
			t.Errorf("ToISO3Strict(%q) = %q, want %q", two, got, want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "English"},
		{"eng", "English"},
		{"fre", "French"},
		{"ja", "Japanese"},
		{"zh", "Chinese"},
		{"chi", "Chinese"},
		{"", "Unknown"},
		{"1ab", "1AB"},
		{"english", "English"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := DisplayName(tt.input)
			if result != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestExtractFromTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     map[string]string
		expected string
	}{
		{"nil tags", nil, ""},
		{"empty tags", map[string]string{}, ""},
		{"lowercase key", map[string]string{"language": "eng"}, "eng"},
		{"uppercase key", map[string]string{"LANGUAGE": "ENG"}, "eng"},
		{"null bytes stripped", map[string]string{"language": "eng\x00"}, "eng"},
		{"empty value", map[string]string{"language": ""}, ""},
		{"priority: language over LANG", map[string]string{"language": "fr", "LANG": "en"}, "fr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExtractFromTags(tt.tags)
			if result != tt.expected {
				t.Errorf("ExtractFromTags(%v) = %q, want %q", tt.tags, result, tt.expected)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"blank", "   ", nil},
		{"single", "fre", []string{"fre"}},
		{"trim and lower", " FRE , Spa ", []string{"fre", "spa"}},
		{"skip empty entries", "fre,,spa,", []string{"fre", "spa"}},
		{"dedup", "fre,fre", []string{"fre"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplitList(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("SplitList(%q) = %v, want %v", tt.input, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("SplitList(%q)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}
