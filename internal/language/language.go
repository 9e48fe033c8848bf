package language

import (
	"strings"
	"sync"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Undetermined is the ISO 639-2 code for streams without a language tag.
const Undetermined = "und"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2/T (3-letter)
	alt3    string   // ISO 639-2/B when it differs (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish", "castilian"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "mandarin", "cantonese"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "ara", "", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch", "flemish"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sv", "swe", "", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "Danish", []string{"danish"}},
	{"no", "nor", "", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "Finnish", []string{"finnish"}},
	{"tr", "tur", "", "Turkish", []string{"turkish"}},
	{"cs", "ces", "cze", "Czech", []string{"czech"}},
	{"hu", "hun", "", "Hungarian", []string{"hungarian"}},
	{"ro", "ron", "rum", "Romanian", []string{"romanian"}},
	{"el", "ell", "gre", "Greek", []string{"greek"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"he", "heb", "", "Hebrew", []string{"hebrew"}},
	{"uk", "ukr", "", "Ukrainian", []string{"ukrainian"}},
	{"fa", "fas", "per", "Persian", []string{"persian", "farsi"}},
	{"is", "isl", "ice", "Icelandic", []string{"icelandic"}},
	{"ta", "tam", "", "Tamil", []string{"tamil"}},
	{"te", "tel", "", "Telugu", []string{"telugu"}},
}

// bibliographic maps every ISO 639-2/B code that differs from its /T form.
var bibliographic = map[string]string{
	"alb": "sqi",
	"arm": "hye",
	"baq": "eus",
	"bur": "mya",
	"chi": "zho",
	"cze": "ces",
	"dut": "nld",
	"fre": "fra",
	"geo": "kat",
	"ger": "deu",
	"gre": "ell",
	"ice": "isl",
	"mac": "mkd",
	"mao": "mri",
	"may": "msa",
	"per": "fas",
	"rum": "ron",
	"slo": "slk",
	"tib": "bod",
	"wel": "cym",
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// NormalizeTMDB remaps the nonstandard two-letter codes TMDB reports as
// original_language onto ISO 639-1. TMDB uses "cn" for Chinese.
func NormalizeTMDB(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "cn" {
		return "zh"
	}
	return code
}

// ToISO2 converts any recognized language code or word to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input.
// If the input is already a 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	if t, ok := bibliographic[code]; ok {
		code = t
	}
	if len(code) == 3 {
		if base, err := xlang.ParseBase(code); err == nil && len(base.String()) == 2 {
			return base.String()
		}
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2/T (3-letter).
// Returns "und" for unrecognized 2-letter codes, passes through 3-letter codes.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return Undetermined
	}
	if mapped := ToISO3Strict(code); mapped != "" {
		return mapped
	}
	if len(code) == 3 {
		return code
	}
	return Undetermined
}

// ToISO3Strict converts a 2-letter code, 3-letter code, or English language
// name to ISO 639-2/T. Unlike ToISO3 it returns "" when no table knows the
// language, so callers can refuse to guess.
func ToISO3Strict(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if t, ok := bibliographic[code]; ok {
		return t
	}
	if len(code) != 2 && len(code) != 3 {
		return ""
	}
	base, err := xlang.ParseBase(code)
	if err != nil {
		return ""
	}
	return base.ISO3()
}

// FromName converts an English language name (as reported by Radarr's
// originalLanguage.name) to ISO 639-1. Returns "" for unknown names.
func FromName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if e, ok := byWord[name]; ok {
		return e.code2
	}
	namesOnce.Do(buildNames)
	return byName[name]
}

var (
	namesOnce sync.Once
	byName    map[string]string
)

// buildNames indexes the English CLDR name of every ISO 639-1 language.
func buildNames() {
	byName = make(map[string]string)
	names := display.English.Languages()
	for a := 'a'; a <= 'z'; a++ {
		for b := 'a'; b <= 'z'; b++ {
			code := string([]rune{a, b})
			base, err := xlang.ParseBase(code)
			if err != nil || base.String() != code {
				continue
			}
			name := strings.ToLower(names.Name(base))
			if name == "" {
				continue
			}
			if _, taken := byName[name]; !taken {
				byName[name] = code
			}
		}
	}
}

// Canonical3 maps a stream language tag onto its ISO 639-2/T form so that
// bibliographic and terminology tags ("ger"/"deu") compare equal. Unknown
// tags pass through lowercased; empty tags become "und".
func Canonical3(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return Undetermined
	}
	if e := lookup(tag); e != nil {
		return e.code3
	}
	if t, ok := bibliographic[tag]; ok {
		return t
	}
	return tag
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	trimmed := strings.TrimSpace(code)
	if base, err := xlang.ParseBase(strings.ToLower(trimmed)); err == nil {
		if name := display.English.Languages().Name(base); name != "" {
			return name
		}
	}
	return strings.ToUpper(trimmed)
}

// ExtractFromTags extracts and normalizes the language from stream metadata tags.
// Checks common tag keys: language, LANGUAGE, Language, language_ietf, lang, LANG.
func ExtractFromTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := []string{"language", "LANGUAGE", "Language", "language_ietf", "lang", "LANG"}
	for _, key := range keys {
		if value, ok := tags[key]; ok {
			value = strings.TrimSpace(strings.ReplaceAll(value, "\u0000", ""))
			if value != "" {
				return strings.ToLower(value)
			}
		}
	}
	return ""
}

// SplitList parses a comma-separated list of language codes into lowercase,
// trimmed, deduplicated entries in input order. Empty entries are ignored.
func SplitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		trimmed := strings.ToLower(strings.TrimSpace(part))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
