// Package lang owns the closed vocabulary of language codes the service
// understands. Codes follow the FLORES-200 convention (iso639-3 plus script,
// e.g. "eng_Latn"); every language-facing operation validates against this
// vocabulary at the boundary.
package lang

import (
	"fmt"
	"sort"

	"github.com/abadojack/whatlanggo"
)

type Code string

const (
	English Code = "eng_Latn"
	French  Code = "fra_Latn"
)

// UnsupportedError reports a code outside the recognized vocabulary.
type UnsupportedError struct {
	Code Code
}

func (e UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported language code %q", e.Code)
}

var names = map[Code]string{
	"hin_Deva": "Hindi",
	"ben_Beng": "Bengali",
	"mar_Deva": "Marathi",
	"tel_Telu": "Telugu",
	"tam_Taml": "Tamil",
	"guj_Gujr": "Gujarati",
	"kan_Knda": "Kannada",
	"mal_Mlym": "Malayalam",
	"pan_Guru": "Punjabi",
	"ory_Orya": "Odia",
	"urd_Arab": "Urdu",
	"asm_Beng": "Assamese",
	"brx_Deva": "Bodo",
	"doi_Deva": "Dogri",
	"kok_Deva": "Konkani",
	"mai_Deva": "Maithili",
	"mni_Beng": "Manipuri (Meitei)",
	"san_Deva": "Sanskrit",
	"sat_Olck": "Santali",
	"snd_Arab": "Sindhi",
	"kas_Arab": "Kashmiri",
	"npi_Deva": "Nepali",
	"eng_Latn": "English",
	"fra_Latn": "French",
	"spa_Latn": "Spanish",
	"deu_Latn": "German",
	"por_Latn": "Portuguese",
	"zho_Hans": "Chinese (Simplified)",
	"jpn_Jpan": "Japanese",
	"kor_Hang": "Korean",
	"ara_Arab": "Arabic",
	"tcy_Knda": "Tulu",
}

// voices maps codes to speech-synthesis voice tags. Codes absent here have no
// voice; synthesis is simply skipped for them.
var voices = map[Code]string{
	"eng_Latn": "en",
	"fra_Latn": "fr",
	"spa_Latn": "es",
	"deu_Latn": "de",
	"por_Latn": "pt",
	"zho_Hans": "zh-CN",
	"jpn_Jpan": "ja",
	"kor_Hang": "ko",
	"ara_Arab": "ar",
	"hin_Deva": "hi",
	"ben_Beng": "bn",
	"pan_Guru": "pa",
	"guj_Gujr": "gu",
	"mar_Deva": "mr",
	"tam_Taml": "ta",
	"tel_Telu": "te",
	"kan_Knda": "kn",
	"mal_Mlym": "ml",
	"urd_Arab": "ur",
	"npi_Deva": "ne",
}

// lowSupport lists languages the statistical model covers poorly or not at
// all; translation to or from them goes through the generative fallback.
var lowSupport = map[Code]bool{
	"tcy_Knda": true,
	"brx_Deva": true,
	"doi_Deva": true,
	"kok_Deva": true,
	"mai_Deva": true,
	"sat_Olck": true,
	"kas_Arab": true,
	"mni_Beng": true,
}

// iso1ToCode resolves two-letter detection results into the vocabulary.
var iso1ToCode = map[string]Code{
	"en": "eng_Latn", "fr": "fra_Latn", "es": "spa_Latn", "de": "deu_Latn",
	"pt": "por_Latn", "zh": "zho_Hans", "ja": "jpn_Jpan", "ko": "kor_Hang",
	"ar": "ara_Arab", "hi": "hin_Deva", "bn": "ben_Beng", "mr": "mar_Deva",
	"te": "tel_Telu", "ta": "tam_Taml", "gu": "guj_Gujr", "kn": "kan_Knda",
	"ml": "mal_Mlym", "pa": "pan_Guru", "or": "ory_Orya", "ur": "urd_Arab",
	"as": "asm_Beng", "sa": "san_Deva", "sd": "snd_Arab", "ne": "npi_Deva",
}

// Valid reports whether c belongs to the vocabulary.
func Valid(c Code) bool {
	_, ok := names[c]
	return ok
}

// Validate returns an UnsupportedError for codes outside the vocabulary.
func Validate(c Code) error {
	if !Valid(c) {
		return UnsupportedError{Code: c}
	}
	return nil
}

// Name returns the display name of c, or the raw code when unknown.
func Name(c Code) string {
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}

// All returns the vocabulary sorted by code.
func All() []Code {
	out := make([]Code, 0, len(names))
	for c := range names {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// VoiceFor returns the synthesis voice tag for c, if one exists.
func VoiceFor(c Code) (string, bool) {
	v, ok := voices[c]
	return v, ok
}

// LowSupport reports whether c is routed through the generative fallback.
func LowSupport(c Code) bool {
	return lowSupport[c]
}

// Detect guesses the language of text and maps it into the vocabulary.
// Unmapped detections fall back to "<iso639-3>_Latn" so downstream
// validation, not detection, decides whether the language is usable.
func Detect(text string) Code {
	info := whatlanggo.Detect(text)
	if c, ok := iso1ToCode[info.Lang.Iso6391()]; ok {
		return c
	}
	return Code(info.Lang.Iso6393() + "_Latn")
}
