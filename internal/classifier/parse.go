package classifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/carson-networks/voice-ledger/internal/command"
)

var (
	errNoObject     = errors.New("no JSON object in model output")
	errBadAmount    = errors.New("amount is neither a number nor a numeric string")
	errBadLoanTerms = errors.New("loan terms are not numeric")
)

// stripFences removes markdown code fences around a model reply. Only whole
// fence lines and fences at either end of the reply go; backticks inside the
// JSON are kept.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimLeftFunc(raw[3:], unicode.IsLetter)
	}
	raw = strings.TrimSuffix(raw, "```")

	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isFenceLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isFenceLine(line string) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "```") {
		return false
	}
	return strings.TrimLeftFunc(line[3:], unicode.IsLetter) == ""
}

// extractObject returns the first balanced {...} substring of s. Braces inside
// JSON strings are ignored. A '{' that never closes is skipped and the scan
// restarts at the next one.
func extractObject(s string) (string, error) {
	for offset := 0; offset < len(s); {
		start := strings.IndexByte(s[offset:], '{')
		if start < 0 {
			break
		}
		start += offset
		if end, ok := balancedEnd(s, start); ok {
			return s[start:end], nil
		}
		offset = start + 1
	}
	return "", errNoObject
}

// balancedEnd returns the index just past the '}' closing the '{' at start.
func balancedEnd(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

type wireCommand struct {
	Intent           string          `json:"intent"`
	Category         string          `json:"category"`
	Amount           json.RawMessage `json:"amount"`
	Currency         *string         `json:"currency"`
	LanguageDetected string          `json:"language_detected"`
	Confidence       *float64        `json:"confidence"`
	Response         string          `json:"response"`
	Tag              string          `json:"tag"`
	Rate             json.RawMessage `json:"rate"`
	TenureMonths     json.RawMessage `json:"tenure_months"`
}

// ParseCommand turns a model reply into a validated StructuredCommand. Any
// error means the candidate failed.
func ParseCommand(raw string) (command.StructuredCommand, error) {
	object, err := extractObject(stripFences(raw))
	if err != nil {
		return command.StructuredCommand{}, err
	}

	var wire wireCommand
	if err := json.Unmarshal([]byte(object), &wire); err != nil {
		return command.StructuredCommand{}, fmt.Errorf("decode command: %w", err)
	}

	cmd := command.StructuredCommand{
		Intent:           command.Intent(strings.ToUpper(strings.TrimSpace(wire.Intent))),
		Category:         command.Category(strings.ToLower(strings.TrimSpace(wire.Category))),
		LanguageDetected: wire.LanguageDetected,
		Response:         strings.TrimSpace(wire.Response),
		Tag:              strings.TrimSpace(wire.Tag),
	}
	if wire.Confidence != nil {
		cmd.Confidence = *wire.Confidence
	}
	if wire.Currency != nil && strings.TrimSpace(*wire.Currency) != "" && !strings.EqualFold(*wire.Currency, "null") {
		currency := strings.TrimSpace(*wire.Currency)
		cmd.Currency = &currency
	}

	amount, err := looseNumber(wire.Amount)
	if err != nil {
		return command.StructuredCommand{}, errBadAmount
	}
	if amount != nil {
		// The sign lives in the intent.
		*amount = math.Abs(*amount)
		cmd.Amount = amount
	}

	if cmd.Rate, err = looseNumber(wire.Rate); err != nil {
		return command.StructuredCommand{}, errBadLoanTerms
	}
	tenure, err := looseNumber(wire.TenureMonths)
	if err != nil {
		return command.StructuredCommand{}, errBadLoanTerms
	}
	if tenure != nil {
		months := int(math.Round(*tenure))
		cmd.TenureMonths = &months
	}

	if err := cmd.Validate(); err != nil {
		return command.StructuredCommand{}, err
	}
	return cmd, nil
}

// looseNumber accepts a JSON number, a numeric string such as "10,000" or
// "₹500", or null. A missing field is nil.
func looseNumber(raw json.RawMessage) (*float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return &number, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return nil, err
	}
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, text)
	// "Rs. 500" leaves a stray leading dot.
	cleaned = strings.TrimLeft(cleaned, ".")
	if cleaned == "" {
		if strings.TrimSpace(text) == "" || strings.EqualFold(strings.TrimSpace(text), "null") {
			return nil, nil
		}
		return nil, fmt.Errorf("not a number: %q", text)
	}
	number, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, err
	}
	return &number, nil
}
