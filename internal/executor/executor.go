// Package executor is the safety gate between a classified command and the
// record store. Every command results in at most one mutation.
package executor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/phrases"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

var (
	// ErrAmountMissing means a mutating command carried no amount, or an
	// amount of zero. Nothing is written.
	ErrAmountMissing = errors.New("amount missing")
	// ErrUnsupportedCommand means the intent and category pair has no
	// mutation, such as SET_VALUE on savings.
	ErrUnsupportedCommand = errors.New("unsupported command")
)

// Processor runs one action, normally the operator queue.
type Processor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// SnapshotLoader returns the owner's current analytics inputs for loan
// simulation.
type SnapshotLoader interface {
	Snapshot(ctx context.Context, ownerID uuid.UUID) (analytics.Snapshot, analytics.Profile, error)
}

// LoanSimulator is satisfied by *simulator.Simulator.
type LoanSimulator interface {
	Simulate(ctx context.Context, terms simulator.Terms, snap analytics.Snapshot, profile analytics.Profile, language string) (simulator.Report, error)
}

// Outcome describes what the gate did with one command.
type Outcome struct {
	Intent        command.Intent    `json:"intent"`
	Category      command.Category  `json:"category"`
	Applied       bool              `json:"applied"`
	Message       string            `json:"message"`
	TransactionID *uuid.UUID        `json:"transaction_id,omitempty"`
	MonthlyIncome *float64          `json:"monthly_income,omitempty"`
	Simulation    *simulator.Report `json:"simulation,omitempty"`
	Query         command.QueryKind `json:"query,omitempty"`
}

type Executor struct {
	processor Processor
	snapshots SnapshotLoader
	simulator LoanSimulator
	now       func() time.Time
	log       logrus.FieldLogger
}

func NewExecutor(processor Processor, snapshots SnapshotLoader, sim LoanSimulator, log logrus.FieldLogger) *Executor {
	return &Executor{
		processor: processor,
		snapshots: snapshots,
		simulator: sim,
		now:       time.Now,
		log:       log,
	}
}

// WithClock replaces the clock that decides the current calendar month.
func (e *Executor) WithClock(now func() time.Time) *Executor {
	e.now = now
	return e
}

// Execute applies cmd for ownerID.
func (e *Executor) Execute(ctx context.Context, ownerID uuid.UUID, cmd command.StructuredCommand) (Outcome, error) {
	if err := cmd.Validate(); err != nil {
		return Outcome{}, err
	}
	if cmd.Intent.RequiresAmount() && !hasAmount(cmd) {
		return Outcome{}, fmt.Errorf("%w: %s requires an amount", ErrAmountMissing, cmd.Intent)
	}

	outcome := Outcome{Intent: cmd.Intent, Category: cmd.Category}

	var err error
	switch cmd.Intent {
	case command.SetValue:
		err = e.setValue(ctx, ownerID, cmd, &outcome)
	case command.AddValue, command.SubtractValue:
		err = e.record(ctx, ownerID, cmd, &outcome)
	case command.QueryOnly:
		outcome.Message = cmd.Response
		outcome.Query = cmd.Query
	case command.SimulateLoan:
		err = e.simulate(ctx, ownerID, cmd, &outcome)
	}
	if err != nil {
		return Outcome{}, err
	}

	e.log.WithFields(logrus.Fields{
		"ownerID":  ownerID,
		"intent":   cmd.Intent,
		"category": cmd.Category,
		"applied":  outcome.Applied,
	}).Info("Executor.Execute.complete")
	return outcome, nil
}

// hasAmount reports whether cmd carries an amount that survives rounding to
// cents. A zero amount counts as missing.
func hasAmount(cmd command.StructuredCommand) bool {
	return cmd.Amount != nil && !decimal.NewFromFloat(*cmd.Amount).Round(2).IsZero()
}

func (e *Executor) setValue(ctx context.Context, ownerID uuid.UUID, cmd command.StructuredCommand, outcome *Outcome) error {
	amount := decimal.NewFromFloat(*cmd.Amount).Round(2)

	switch cmd.Category {
	case command.CategoryIncome:
		action := &actions.SetMonthlyIncome{OwnerID: ownerID, Income: amount}
		if err := e.processor.Process(ctx, action); err != nil {
			return err
		}
		income := amount.InexactFloat64()
		outcome.Applied = true
		outcome.MonthlyIncome = &income
		outcome.Message = fmt.Sprintf("Monthly income set to %s", amount.String())
		return nil

	case command.CategoryExpense:
		start, end := e.currentPeriod()
		action := &actions.CorrectExpenseTotal{
			OwnerID:     ownerID,
			Target:      amount,
			PeriodStart: start,
			PeriodEnd:   end,
			Date:        e.now().UTC(),
		}
		if err := e.processor.Process(ctx, action); err != nil {
			return err
		}
		if !action.Applied {
			outcome.Message = fmt.Sprintf("Expenses are already at %s", amount.String())
			return nil
		}
		id := action.CreatedID
		outcome.Applied = true
		outcome.TransactionID = &id
		outcome.Message = fmt.Sprintf("Expenses corrected to %s", amount.String())
		return nil
	}
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedCommand, cmd.Intent, cmd.Category)
}

func (e *Executor) record(ctx context.Context, ownerID uuid.UUID, cmd command.StructuredCommand, outcome *Outcome) error {
	kind := sqlconfig.KindExpense
	if cmd.Category == command.CategoryIncome {
		kind = sqlconfig.KindIncome
	}

	amount := decimal.NewFromFloat(math.Abs(*cmd.Amount)).Round(2)
	if cmd.Intent == command.SubtractValue {
		amount = amount.Neg()
	}

	action := &actions.CreateTransaction{Create: sqlconfig.TransactionCreate{
		OwnerID:         ownerID,
		Kind:            kind,
		Amount:          amount,
		Category:        transactionTag(cmd),
		Description:     "Voice command (" + languageLabel(cmd.LanguageDetected) + ")",
		TransactionDate: e.now().UTC(),
	}}
	if err := e.processor.Process(ctx, action); err != nil {
		return err
	}

	id := action.CreatedID
	outcome.Applied = true
	outcome.TransactionID = &id
	if cmd.Intent == command.SubtractValue {
		outcome.Message = fmt.Sprintf("Reduced %s by %s", kind, amount.Abs().String())
	} else {
		outcome.Message = fmt.Sprintf("Added %s of %s", kind, amount.String())
	}
	return nil
}

func (e *Executor) simulate(ctx context.Context, ownerID uuid.UUID, cmd command.StructuredCommand, outcome *Outcome) error {
	if e.simulator == nil || e.snapshots == nil {
		return fmt.Errorf("%w: loan simulation is not configured", ErrUnsupportedCommand)
	}

	snap, profile, err := e.snapshots.Snapshot(ctx, ownerID)
	if err != nil {
		return err
	}

	terms := simulator.TermsWithDefaults(math.Abs(*cmd.Amount), cmd.Rate, cmd.TenureMonths)
	report, err := e.simulator.Simulate(ctx, terms, snap, profile, languageLabel(cmd.LanguageDetected))
	if err != nil {
		return err
	}
	outcome.Simulation = &report
	outcome.Message = report.Narration
	return nil
}

// currentPeriod is the UTC calendar month containing now.
func (e *Executor) currentPeriod() (time.Time, time.Time) {
	now := e.now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// transactionTag picks the stored category. The structural income and
// expense words are not useful tags.
func transactionTag(cmd command.StructuredCommand) string {
	if cmd.Tag != "" {
		return cmd.Tag
	}
	switch cmd.Category {
	case command.CategoryIncome, command.CategoryExpense, "":
		return sqlconfig.DefaultCategory
	}
	return string(cmd.Category)
}

func languageLabel(detected string) string {
	if lang, ok := phrases.Parse(detected); ok {
		return lang.Label()
	}
	if detected != "" {
		return detected
	}
	return phrases.Default.Label()
}
