package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// nativeDigitZeros are the zero code points of the digit blocks spoken input
// may arrive in besides ASCII.
var nativeDigitZeros = []rune{
	'०', // Devanagari
	'௦', // Tamil
}

// fold NFC-normalizes s, case-folds it and rewrites native digits to ASCII.
func fold(s string) string {
	s = cases.Fold().String(norm.NFC.String(s))
	return strings.Map(func(r rune) rune {
		for _, zero := range nativeDigitZeros {
			if r >= zero && r <= zero+9 {
				return '0' + (r - zero)
			}
		}
		return r
	}, s)
}

// tokenize splits folded text into words. Combining marks stay inside the
// word so Indic syllables are not cut apart.
func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsMark(r) && !unicode.IsDigit(r)
	})
}

// padded joins tokens into " a b c " so keywords can be matched on word
// boundaries with strings.Contains.
func padded(tokens []string) string {
	return " " + strings.Join(tokens, " ") + " "
}
