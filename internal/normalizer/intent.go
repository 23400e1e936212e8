package normalizer

import (
	"strings"

	"github.com/carson-networks/voice-ledger/internal/phrases"
)

// CoarseIntent is the keyword-level guess made without a language model.
type CoarseIntent string

const (
	AddExpense    CoarseIntent = "add_expense"
	AddIncome     CoarseIntent = "add_income"
	CheckLoan     CoarseIntent = "check_loan"
	ShowDashboard CoarseIntent = "show_dashboard"
	HealthQuery   CoarseIntent = "health_query"
	Unknown       CoarseIntent = "unknown"
)

// intentOf maps keyword groups onto coarse intents. Edit, delete and reset
// phrases are recognized only so they are never mistaken for an add.
var intentOf = map[phrases.Group]CoarseIntent{
	phrases.GroupReset:      Unknown,
	phrases.GroupDelete:     Unknown,
	phrases.GroupEdit:       Unknown,
	phrases.GroupAddIncome:  AddIncome,
	phrases.GroupCheckLoan:  CheckLoan,
	phrases.GroupAddExpense: AddExpense,
	phrases.GroupDashboard:  ShowDashboard,
	phrases.GroupHealth:     HealthQuery,
}

// ClassifyIntent tests text against the keyword tables of lang.
func ClassifyIntent(text string, lang phrases.Language) CoarseIntent {
	haystack := padded(tokenize(fold(text)))

	for _, group := range phrases.GroupOrder {
		if containsAny(haystack, phrases.Keywords(lang, group)) {
			return intentOf[group]
		}
	}
	return Unknown
}

func containsAny(haystack string, keywords []string) bool {
	for _, keyword := range keywords {
		needle := padded(tokenize(fold(keyword)))
		if strings.TrimSpace(needle) == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// hasSetMarker reports whether text states an absolute value ("my salary is
// 25000") rather than an increment.
func hasSetMarker(text string, lang phrases.Language) bool {
	haystack := padded(tokenize(fold(text)))
	return containsAny(haystack, phrases.SetMarkers(lang))
}
