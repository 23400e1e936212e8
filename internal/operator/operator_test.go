package operator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/storage"
	"github.com/carson-networks/voice-ledger/internal/storage/sqlconfig"
)

type countingAction struct {
	calls   *atomic.Int32
	err     error
	started chan struct{}
	block   chan struct{}
}

func (a *countingAction) Perform(context.Context, *storage.Storage) error {
	if a.started != nil {
		close(a.started)
	}
	if a.block != nil {
		<-a.block
	}
	a.calls.Add(1)
	return a.err
}

func TestOperatorDelegator_Process(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 2)
	d.Start()
	defer d.Stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		require.NoError(t, d.Process(context.Background(), &countingAction{calls: &calls}))
	}
	assert.Equal(t, int32(10), calls.Load())
}

func TestOperatorDelegator_ProcessReturnsActionError(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 1)
	d.Start()
	defer d.Stop()

	boom := errors.New("boom")
	var calls atomic.Int32
	err := d.Process(context.Background(), &countingAction{calls: &calls, err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestOperatorDelegator_ProcessDropsQueuedActionOnCancel(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 1)
	d.Start()

	var busyCalls, queuedCalls atomic.Int32
	busy := &countingAction{calls: &busyCalls, started: make(chan struct{}), block: make(chan struct{})}
	busyDone := make(chan error, 1)
	go func() { busyDone <- d.Process(context.Background(), busy) }()
	<-busy.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := d.Process(ctx, &countingAction{calls: &queuedCalls})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	close(busy.block)
	require.NoError(t, <-busyDone)
	d.Stop()
	assert.Equal(t, int32(1), busyCalls.Load())
	assert.Zero(t, queuedCalls.Load(), "a dropped action never runs")
}

func TestOperatorDelegator_ProcessWaitsForInFlightAction(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 1)
	d.Start()
	defer d.Stop()

	var calls atomic.Int32
	action := &countingAction{calls: &calls, started: make(chan struct{}), block: make(chan struct{})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Process(ctx, action) }()
	<-action.started
	cancel()

	select {
	case err := <-done:
		t.Fatalf("Process returned %v before the running action finished", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(action.block)
	select {
	case err := <-done:
		assert.NoError(t, err, "the action completed, so the caller hears success")
	case <-time.After(5 * time.Second):
		t.Fatal("Process never returned")
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestOperatorDelegator_ProcessAfterStop(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 1)
	d.Start()
	d.Stop()

	var calls atomic.Int32
	err := d.Process(context.Background(), &countingAction{calls: &calls})
	assert.ErrorIs(t, err, ErrStopped)
	assert.Zero(t, calls.Load())
}

type panickingAction struct{}

func (panickingAction) Perform(context.Context, *storage.Storage) error {
	panic("nil map")
}

func TestOperatorDelegator_PanicFailsOnlyThatAction(t *testing.T) {
	d := NewOperatorDelegator(storage.NewMemoryStorage(), 1)
	d.Start()
	defer d.Stop()

	err := d.Process(context.Background(), panickingAction{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panicked")

	var calls atomic.Int32
	require.NoError(t, d.Process(context.Background(), &countingAction{calls: &calls}))
	assert.Equal(t, int32(1), calls.Load())
}

// -- Concurrent correction tests --

func TestOperatorDelegator_ConcurrentCorrectionsSettleOnTarget(t *testing.T) {
	owner := uuid.Must(uuid.NewV4())
	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	april := march.AddDate(0, 1, 0)
	target := decimal.NewFromInt(500)

	for trial := 0; trial < 50; trial++ {
		store := storage.NewMemoryStorage()
		_, err := store.Transactions.Insert(context.Background(), &sqlconfig.TransactionCreate{
			OwnerID:         owner,
			Kind:            sqlconfig.KindExpense,
			Amount:          decimal.NewFromInt(800),
			TransactionDate: march.AddDate(0, 0, 4),
		})
		require.NoError(t, err)

		d := NewOperatorDelegator(store, 4)
		d.Start()

		corrections := make([]*actions.CorrectExpenseTotal, 4)
		var g errgroup.Group
		for i := range corrections {
			corrections[i] = &actions.CorrectExpenseTotal{
				OwnerID:     owner,
				Target:      target,
				PeriodStart: march,
				PeriodEnd:   april,
				Date:        march.AddDate(0, 0, 9),
			}
			action := corrections[i]
			g.Go(func() error { return d.Process(context.Background(), action) })
		}
		require.NoError(t, g.Wait())
		d.Stop()

		total, err := store.Transactions.SumAmounts(context.Background(), owner, sqlconfig.KindExpense, march, april)
		require.NoError(t, err)
		require.True(t, target.Equal(total), "trial %d: total %s", trial, total)

		applied := 0
		for _, c := range corrections {
			if c.Applied {
				applied++
			}
		}
		require.Equal(t, 1, applied, "trial %d", trial)
	}
}
