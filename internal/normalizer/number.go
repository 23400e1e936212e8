// Package normalizer is the deterministic, rule-based interpreter used when
// the remote classifier is unavailable. It parses spoken or written amounts
// in every supported language and makes a coarse intent guess.
package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/carson-networks/voice-ledger/internal/phrases"
)

var digitRun = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

type lexicon struct {
	numbers map[string]float64
	zeros   map[string]bool
}

var (
	lexiconMu    sync.Mutex
	lexiconCache = make(map[phrases.Language]*lexicon)
)

// lexiconFor returns the folded, merged tables for lang. Tables are built once
// per language.
func lexiconFor(lang phrases.Language) *lexicon {
	lexiconMu.Lock()
	defer lexiconMu.Unlock()

	if lex, ok := lexiconCache[lang]; ok {
		return lex
	}

	lex := &lexicon{
		numbers: make(map[string]float64),
		zeros:   make(map[string]bool),
	}
	for word, value := range phrases.NumberWords(lang) {
		lex.numbers[fold(word)] = value
	}
	for _, word := range phrases.ZeroWords(lang) {
		lex.zeros[fold(word)] = true
	}
	lexiconCache[lang] = lex
	return lex
}

// ParseNumber extracts a non-negative amount from text. ok is false when no
// numeric token was found at all, which callers must not confuse with zero.
func ParseNumber(text string, lang phrases.Language) (value float64, ok bool) {
	folded := fold(text)
	lex := lexiconFor(lang)

	if loc := digitRun.FindStringIndex(folded); loc != nil {
		digits := strings.ReplaceAll(folded[loc[0]:loc[1]], ",", "")
		parsed, err := strconv.ParseFloat(digits, 64)
		if err == nil {
			if scale, found := leadingScale(folded[loc[1]:], lex); found {
				parsed *= scale
			}
			return parsed, true
		}
	}

	tokens := tokenize(folded)
	for _, token := range tokens {
		if lex.zeros[token] {
			return 0, true
		}
	}

	var total, subtotal float64
	found := false
	for _, token := range tokens {
		// Single letters ("k", "m") only count glued to digits.
		if len(token) == 1 {
			continue
		}
		wordValue, known := lex.numbers[token]
		if !known {
			continue
		}
		found = true
		if wordValue < 100 {
			subtotal += wordValue
			continue
		}
		if subtotal == 0 {
			subtotal = 1
		}
		subtotal *= wordValue
		if wordValue >= 1000 {
			total += subtotal
			subtotal = 0
		}
	}

	if !found {
		return 0, false
	}
	return total + subtotal, true
}

// leadingScale reports the scale word directly following a digit run, as in
// "5 thousand", "10k" or "2 लाख".
func leadingScale(rest string, lex *lexicon) (float64, bool) {
	words := tokenize(rest)
	if len(words) == 0 {
		return 0, false
	}
	// "10k" leaves "k" glued to the digits; "10 k" leaves a leading space.
	if len(rest) > 0 && rest[0] != ' ' && !strings.HasPrefix(rest, words[0]) {
		return 0, false
	}
	scale, ok := lex.numbers[words[0]]
	if !ok || scale < 100 {
		return 0, false
	}
	return scale, true
}
