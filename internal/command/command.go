// Package command defines the structured result every interpreter produces
// and the executor consumes.
package command

import (
	"errors"
	"fmt"
)

type Intent string

const (
	SetValue      Intent = "SET_VALUE"
	AddValue      Intent = "ADD_VALUE"
	SubtractValue Intent = "SUBTRACT_VALUE"
	QueryOnly     Intent = "QUERY_ONLY"
	SimulateLoan  Intent = "SIMULATE_LOAN"
)

func (i Intent) Valid() bool {
	switch i {
	case SetValue, AddValue, SubtractValue, QueryOnly, SimulateLoan:
		return true
	}
	return false
}

// RequiresAmount reports whether the intent is invalid without an amount.
func (i Intent) RequiresAmount() bool {
	return i.Valid() && i != QueryOnly
}

type Category string

const (
	CategoryIncome  Category = "income"
	CategoryExpense Category = "expense"
	CategorySavings Category = "savings"
	CategoryOther   Category = "other"
	CategoryLoan    Category = "loan"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryIncome, CategoryExpense, CategorySavings, CategoryOther, CategoryLoan:
		return true
	}
	return false
}

// QueryKind narrows a QUERY_ONLY command that carries no ready answer.
type QueryKind string

const (
	QueryNone      QueryKind = ""
	QueryDashboard QueryKind = "dashboard"
	QueryHealth    QueryKind = "health"
	QueryLoan      QueryKind = "loan"
)

// StructuredCommand is the classified form of one utterance. It is never
// persisted.
type StructuredCommand struct {
	Intent           Intent   `json:"intent"`
	Category         Category `json:"category"`
	Amount           *float64 `json:"amount"`
	Currency         *string  `json:"currency"`
	LanguageDetected string   `json:"language_detected"`
	Confidence       float64  `json:"confidence"`
	Response         string   `json:"response,omitempty"`

	// Tag is the free-form transaction category ("food"), if one was heard.
	Tag string `json:"tag,omitempty"`
	// Rate and TenureMonths are optional loan terms for SIMULATE_LOAN.
	Rate         *float64  `json:"rate,omitempty"`
	TenureMonths *int      `json:"tenure_months,omitempty"`
	Query        QueryKind `json:"query,omitempty"`
}

var ErrInvalidCommand = errors.New("invalid structured command")

// Validate checks the shape of the command. It does not check that mutating
// intents carry an amount; that guard belongs to the executor.
func (c StructuredCommand) Validate() error {
	if !c.Intent.Valid() {
		return fmt.Errorf("%w: unknown intent %q", ErrInvalidCommand, c.Intent)
	}
	if !c.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidCommand, c.Category)
	}
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidCommand, c.Confidence)
	}
	if c.Amount != nil && *c.Amount < 0 {
		return fmt.Errorf("%w: negative amount %v", ErrInvalidCommand, *c.Amount)
	}
	return nil
}

// Float returns a pointer to v, for building commands.
func Float(v float64) *float64 {
	return &v
}
