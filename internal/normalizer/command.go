package normalizer

import (
	"errors"
	"strings"

	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/phrases"
)

// fallbackConfidence marks commands built without a language model.
const fallbackConfidence = 0.5

var ErrUnknownCommand = errors.New("command not understood")

// BuildCommand turns text into a StructuredCommand using only the local
// tables. A mutating command may come back without an amount; the executor
// rejects those.
func BuildCommand(text string, lang phrases.Language) (command.StructuredCommand, error) {
	cmd := command.StructuredCommand{
		LanguageDetected: lang.Label(),
		Confidence:       fallbackConfidence,
	}
	if value, ok := ParseNumber(text, lang); ok {
		cmd.Amount = command.Float(value)
	}

	switch ClassifyIntent(text, lang) {
	case AddIncome:
		cmd.Category = command.CategoryIncome
		cmd.Intent = command.AddValue
		if hasSetMarker(text, lang) {
			cmd.Intent = command.SetValue
		}
	case AddExpense:
		cmd.Category = command.CategoryExpense
		cmd.Intent = command.AddValue
		cmd.Tag = GuessTag(text, lang)
	case CheckLoan:
		cmd.Category = command.CategoryLoan
		cmd.Intent = command.SimulateLoan
		if cmd.Amount == nil {
			cmd.Intent = command.QueryOnly
			cmd.Query = command.QueryLoan
		}
	case ShowDashboard:
		cmd.Category = command.CategoryOther
		cmd.Intent = command.QueryOnly
		cmd.Query = command.QueryDashboard
		cmd.Amount = nil
	case HealthQuery:
		cmd.Category = command.CategoryOther
		cmd.Intent = command.QueryOnly
		cmd.Query = command.QueryHealth
		cmd.Amount = nil
	default:
		return command.StructuredCommand{}, ErrUnknownCommand
	}

	return cmd, nil
}

// GuessTag returns what is left of an expense phrase once verbs, fillers,
// numbers and number words are removed, or "other".
func GuessTag(text string, lang phrases.Language) string {
	skip := make(map[string]bool)
	for _, word := range phrases.FillerWords(lang) {
		skip[fold(word)] = true
	}
	for _, word := range phrases.Keywords(lang, phrases.GroupAddExpense) {
		skip[fold(word)] = true
	}
	lex := lexiconFor(lang)

	var kept []string
	for _, token := range tokenize(fold(text)) {
		if skip[token] || lex.zeros[token] || isNumeric(token) {
			continue
		}
		if _, ok := lex.numbers[token]; ok {
			continue
		}
		kept = append(kept, token)
	}

	if len(kept) == 0 {
		return string(command.CategoryOther)
	}
	return strings.Join(kept, " ")
}

func isNumeric(token string) bool {
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return token != ""
}
