package operator

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/carson-networks/voice-ledger/internal/operator/actions"
	"github.com/carson-networks/voice-ledger/internal/storage"
)

// Operator is one worker draining the shared action queue.
type Operator struct {
	storage *storage.Storage
	queue   <-chan ActionItem
}

func NewOperator(s *storage.Storage, queue <-chan ActionItem) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
	}
}

// Run performs queued actions until the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		// Lost to Process, whose caller already gave up.
		if !item.claimed.CompareAndSwap(false, true) {
			continue
		}
		item.response <- ActionItemResponse{err: o.perform(item)}
	}
}

// perform runs one action. A panicking action fails only its own caller;
// the worker keeps draining the queue.
func (o *Operator) perform(item ActionItem) (err error) {
	// The caller may have given up while the item sat in the queue.
	if err := item.ctx.Err(); err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operator: %T panicked: %v", item.action, r)
		}
	}()
	return item.action.Perform(item.ctx, o.storage)
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
	// claimed is set by whichever side gets the item first: a worker about
	// to perform it, or Process abandoning it.
	claimed *atomic.Bool
}

type ActionItemResponse struct {
	err error
}
