package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/voice-ledger/internal/analytics"
	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/operator"
	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

var (
	fixedNow  = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	testOwner = uuid.Must(uuid.FromString("3f1c1e0a-5b7d-4c21-9d55-0a8f8b3e2c10"))
)

// recordingProcessor performs actions directly against the store and keeps
// every action it saw.
type recordingProcessor struct {
	store *storage.Storage
	seen  []actions.IAction
	err   error
}

func (p *recordingProcessor) Process(ctx context.Context, action actions.IAction) error {
	p.seen = append(p.seen, action)
	if p.err != nil {
		return p.err
	}
	return action.Perform(ctx, p.store)
}

type staticSnapshots struct {
	snap    analytics.Snapshot
	profile analytics.Profile
}

func (s staticSnapshots) Snapshot(context.Context, uuid.UUID) (analytics.Snapshot, analytics.Profile, error) {
	return s.snap, s.profile, nil
}

func newTestExecutor(t *testing.T) (*Executor, *recordingProcessor) {
	log, _ := test.NewNullLogger()
	proc := &recordingProcessor{store: storage.NewMemoryStorage()}
	snaps := staticSnapshots{
		snap:    analytics.Snapshot{MonthlyIncome: 50000, SavingsRate: 20, IncomeStability: 1},
		profile: analytics.Profile{Persona: analytics.PersonaSalaried},
	}
	e := NewExecutor(proc, snaps, simulator.NewSimulator(nil, simulator.DefaultMonthlyIncome), log).
		WithClock(func() time.Time { return fixedNow })
	return e, proc
}

func listAll(t *testing.T, store *storage.Storage) []*sqlconfig.Transaction {
	rows, err := store.Transactions.List(context.Background(), &sqlconfig.TransactionFilter{OwnerID: testOwner})
	require.NoError(t, err)
	return rows
}

// -- SET_VALUE tests --

func TestExecute_SetIncomeWritesNoTransaction(t *testing.T) {
	e, proc := newTestExecutor(t)

	outcome, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.SetValue,
		Category: command.CategoryIncome,
		Amount:   command.Float(25000),
	})
	require.NoError(t, err)

	assert.True(t, outcome.Applied)
	require.NotNil(t, outcome.MonthlyIncome)
	assert.Equal(t, 25000.0, *outcome.MonthlyIncome)
	assert.Empty(t, listAll(t, proc.store))

	profile, err := proc.store.Profiles.Get(context.Background(), testOwner)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(25000).Equal(profile.MonthlyIncome))
}

func TestExecute_SetExpenseCorrectsCurrentMonth(t *testing.T) {
	e, proc := newTestExecutor(t)
	ctx := context.Background()

	// One row this month and one last month, which must not count.
	for _, create := range []sqlconfig.TransactionCreate{
		{OwnerID: testOwner, Kind: sqlconfig.KindExpense, Amount: decimal.NewFromInt(800), TransactionDate: fixedNow},
		{OwnerID: testOwner, Kind: sqlconfig.KindExpense, Amount: decimal.NewFromInt(900), TransactionDate: fixedNow.AddDate(0, -1, 0)},
	} {
		_, err := proc.store.Transactions.Insert(ctx, &create)
		require.NoError(t, err)
	}

	outcome, err := e.Execute(ctx, testOwner, command.StructuredCommand{
		Intent:   command.SetValue,
		Category: command.CategoryExpense,
		Amount:   command.Float(500),
	})
	require.NoError(t, err)
	require.True(t, outcome.Applied)
	require.NotNil(t, outcome.TransactionID)

	row, err := proc.store.Transactions.FindByID(ctx, testOwner, *outcome.TransactionID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(-300).Equal(row.Amount))
	assert.Equal(t, actions.AdjustmentCategory, row.Category)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	total, err := proc.store.Transactions.SumAmounts(ctx, testOwner, sqlconfig.KindExpense, start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(total))

	// Repeating the same correction is a no-op.
	again, err := e.Execute(ctx, testOwner, command.StructuredCommand{
		Intent:   command.SetValue,
		Category: command.CategoryExpense,
		Amount:   command.Float(500),
	})
	require.NoError(t, err)
	assert.False(t, again.Applied)
	assert.Len(t, listAll(t, proc.store), 3)
}

func TestExecute_SetValueUnsupportedCategory(t *testing.T) {
	e, proc := newTestExecutor(t)

	_, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.SetValue,
		Category: command.CategorySavings,
		Amount:   command.Float(100),
	})
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
	assert.Empty(t, proc.seen)
}

// -- ADD/SUBTRACT tests --

func TestExecute_AddAndSubtractWriteExactlyOneRow(t *testing.T) {
	tests := []struct {
		name     string
		cmd      command.StructuredCommand
		kind     sqlconfig.TransactionKind
		amount   int64
		category string
	}{
		{
			name:     "add expense",
			cmd:      command.StructuredCommand{Intent: command.AddValue, Category: command.CategoryExpense, Amount: command.Float(300), Tag: "food", LanguageDetected: "hi-IN"},
			kind:     sqlconfig.KindExpense,
			amount:   300,
			category: "food",
		},
		{
			name:     "add income",
			cmd:      command.StructuredCommand{Intent: command.AddValue, Category: command.CategoryIncome, Amount: command.Float(1200)},
			kind:     sqlconfig.KindIncome,
			amount:   1200,
			category: sqlconfig.DefaultCategory,
		},
		{
			name:     "subtract expense",
			cmd:      command.StructuredCommand{Intent: command.SubtractValue, Category: command.CategoryExpense, Amount: command.Float(50)},
			kind:     sqlconfig.KindExpense,
			amount:   -50,
			category: sqlconfig.DefaultCategory,
		},
		{
			name:     "add savings",
			cmd:      command.StructuredCommand{Intent: command.AddValue, Category: command.CategorySavings, Amount: command.Float(10)},
			kind:     sqlconfig.KindExpense,
			amount:   10,
			category: "savings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, proc := newTestExecutor(t)

			outcome, err := e.Execute(context.Background(), testOwner, tt.cmd)
			require.NoError(t, err)
			assert.True(t, outcome.Applied)

			rows := listAll(t, proc.store)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.kind, rows[0].Kind)
			assert.True(t, decimal.NewFromInt(tt.amount).Equal(rows[0].Amount), "got %s", rows[0].Amount)
			assert.Equal(t, tt.category, rows[0].Category)
			assert.Equal(t, *outcome.TransactionID, rows[0].ID)
		})
	}
}

func TestExecute_VoiceDescriptionNamesLanguage(t *testing.T) {
	e, proc := newTestExecutor(t)

	_, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:           command.AddValue,
		Category:         command.CategoryExpense,
		Amount:           command.Float(40),
		LanguageDetected: "hi-IN",
	})
	require.NoError(t, err)

	rows := listAll(t, proc.store)
	require.Len(t, rows, 1)
	assert.Equal(t, "Voice command (Hindi)", rows[0].Description)
}

// -- Guard tests --

func TestExecute_MissingAmountNeverReachesStore(t *testing.T) {
	for _, intent := range []command.Intent{command.SetValue, command.AddValue, command.SubtractValue, command.SimulateLoan} {
		t.Run(string(intent), func(t *testing.T) {
			e, proc := newTestExecutor(t)

			_, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
				Intent:   intent,
				Category: command.CategoryExpense,
			})
			assert.ErrorIs(t, err, ErrAmountMissing)
			assert.Empty(t, proc.seen)
		})
	}
}

func TestExecute_ZeroAmountLeavesDataUnchanged(t *testing.T) {
	cases := map[string]command.StructuredCommand{
		"add expense":    {Intent: command.AddValue, Category: command.CategoryExpense, Amount: command.Float(0)},
		"subtract":       {Intent: command.SubtractValue, Category: command.CategoryExpense, Amount: command.Float(0)},
		"set income":     {Intent: command.SetValue, Category: command.CategoryIncome, Amount: command.Float(0)},
		"set expense":    {Intent: command.SetValue, Category: command.CategoryExpense, Amount: command.Float(0)},
		"rounds to zero": {Intent: command.AddValue, Category: command.CategoryIncome, Amount: command.Float(0.001)},
	}
	for name, cmd := range cases {
		t.Run(name, func(t *testing.T) {
			e, proc := newTestExecutor(t)

			_, err := e.Execute(context.Background(), testOwner, cmd)
			assert.ErrorIs(t, err, ErrAmountMissing)
			assert.Empty(t, proc.seen)
			assert.Empty(t, listAll(t, proc.store))

			_, err = proc.store.Profiles.Get(context.Background(), testOwner)
			assert.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestExecute_QueryOnlyReturnsResponse(t *testing.T) {
	e, proc := newTestExecutor(t)

	outcome, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.QueryOnly,
		Category: command.CategoryOther,
		Response: "You spent 4000 this month.",
	})
	require.NoError(t, err)
	assert.False(t, outcome.Applied)
	assert.Equal(t, "You spent 4000 this month.", outcome.Message)
	assert.Empty(t, proc.seen)
}

func TestExecute_InvalidCommand(t *testing.T) {
	e, proc := newTestExecutor(t)

	_, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{Intent: "DROP", Category: command.CategoryOther})
	assert.ErrorIs(t, err, command.ErrInvalidCommand)
	assert.Empty(t, proc.seen)
}

func TestExecute_StoreErrorPropagates(t *testing.T) {
	e, proc := newTestExecutor(t)
	boom := errors.New("disk full")
	proc.err = boom

	_, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.AddValue,
		Category: command.CategoryExpense,
		Amount:   command.Float(10),
	})
	assert.ErrorIs(t, err, boom)
}

// -- SIMULATE_LOAN tests --

func TestExecute_SimulateLoanDoesNotMutate(t *testing.T) {
	e, proc := newTestExecutor(t)

	outcome, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.SimulateLoan,
		Category: command.CategoryLoan,
		Amount:   command.Float(500000),
	})
	require.NoError(t, err)

	assert.False(t, outcome.Applied)
	require.NotNil(t, outcome.Simulation)
	assert.InDelta(t, 10623.52, outcome.Simulation.EMI, 0.01)
	assert.Equal(t, simulator.DefaultTenureMonths, outcome.Simulation.Terms.TenureMonths)
	assert.NotEmpty(t, outcome.Message)
	assert.Empty(t, proc.seen)
}

// -- End to end through the operator queue --

func TestExecute_ThroughOperator(t *testing.T) {
	store := storage.NewMemoryStorage()
	delegator := operator.NewOperatorDelegator(store, 2)
	delegator.Start()
	defer delegator.Stop()

	log, _ := test.NewNullLogger()
	e := NewExecutor(delegator, nil, nil, log).WithClock(func() time.Time { return fixedNow })

	_, err := e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.AddValue,
		Category: command.CategoryExpense,
		Amount:   command.Float(300),
		Tag:      "food",
	})
	require.NoError(t, err)

	rows := listAll(t, store)
	require.Len(t, rows, 1)
	assert.Equal(t, "food", rows[0].Category)

	_, err = e.Execute(context.Background(), testOwner, command.StructuredCommand{
		Intent:   command.SimulateLoan,
		Category: command.CategoryLoan,
		Amount:   command.Float(1000),
	})
	assert.ErrorIs(t, err, ErrUnsupportedCommand)
}
