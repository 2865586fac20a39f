package indexer

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
)

type eventHandler interface {
	HandleEvent(ctx context.Context, event ledger.ProcessRanEvent, current changeset.ChangeSet) (changeset.ChangeSet, error)
}

// BlockHandler folds all process-ran events of a block into one change set.
type BlockHandler struct {
	ledger ledger.Client
	events eventHandler
	log    *logger.Logger
}

// NewBlockHandler creates a new BlockHandler.
func NewBlockHandler(client ledger.Client, events eventHandler, log *logger.Logger) *BlockHandler {
	return &BlockHandler{
		ledger: client,
		events: events,
		log:    log,
	}
}

// HandleBlock returns the changes produced by the block with the given hash.
// Events are applied in emission order so later events see the changes of earlier ones.
func (b *BlockHandler) HandleBlock(ctx context.Context, hash common.Hash) (changeset.ChangeSet, error) {
	events, err := b.ledger.GetProcessRanEvents(ctx, hash)
	if err != nil {
		return changeset.ChangeSet{}, fmt.Errorf("failed to get events of block %s: %w", hash.Hex(), err)
	}

	var cs changeset.ChangeSet
	for _, event := range events {
		cs, err = b.events.HandleEvent(ctx, event, cs)
		if err != nil {
			return changeset.ChangeSet{}, fmt.Errorf("block %s: %w", hash.Hex(), err)
		}
	}

	b.log.Debugw("handled block", "hash", hash.Hex(), "events", len(events))

	return cs, nil
}
