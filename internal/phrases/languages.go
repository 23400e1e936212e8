// Package phrases holds the static per-language lexicons used by the
// normalizer and the voice responses. Every lookup merges the requested
// language's table over the en-US table.
package phrases

import "strings"

// Language is a BCP 47 style tag as used by speech engines.
type Language string

const (
	English Language = "en-US"
	Tamil   Language = "ta-IN"
	Hindi   Language = "hi-IN"
	Marwadi Language = "mar-IN"
)

// Default is the source lexicon every other language is merged over.
const Default = English

type languageInfo struct {
	label     string
	voiceCode string
}

var languages = map[Language]languageInfo{
	English: {label: "English", voiceCode: "en-US"},
	Tamil:   {label: "Tamil", voiceCode: "ta-IN"},
	Hindi:   {label: "Hindi", voiceCode: "hi-IN"},
	// No speech engine ships a Marwadi voice; Hindi is the closest.
	Marwadi: {label: "Marwadi", voiceCode: "hi-IN"},
}

// Supported lists the languages in display order.
func Supported() []Language {
	return []Language{English, Tamil, Hindi, Marwadi}
}

// Parse resolves a tag case-insensitively. Unknown tags resolve to Default
// with ok=false.
func Parse(tag string) (Language, bool) {
	for lang := range languages {
		if strings.EqualFold(string(lang), strings.TrimSpace(tag)) {
			return lang, true
		}
	}
	return Default, false
}

// Label is the human-readable language name ("Hindi").
func (l Language) Label() string {
	if info, ok := languages[l]; ok {
		return info.label
	}
	return languages[Default].label
}

// VoiceCode is the tag handed to the speech synthesizer.
func (l Language) VoiceCode() string {
	if info, ok := languages[l]; ok {
		return info.voiceCode
	}
	return languages[Default].voiceCode
}
