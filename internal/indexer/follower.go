package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	pkgindexer "github.com/goran-ethernal/CertIndexor/pkg/indexer"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"golang.org/x/sync/errgroup"
)

// Follower keeps an indexer in step with the ledger's finalized head.
type Follower struct {
	indexer pkgindexer.Indexer
	ledger  ledger.Client
	log     *logger.Logger
}

// NewFollower creates a new Follower.
func NewFollower(idx pkgindexer.Indexer, client ledger.Client, log *logger.Logger) *Follower {
	return &Follower{
		indexer: idx,
		ledger:  client,
		log:     log,
	}
}

// Run starts the indexer, catches up with the current finalized head and then follows
// every new finalized head until ctx is done. Heads that arrive while a catch-up is
// running are coalesced into the latest one.
func (f *Follower) Run(ctx context.Context) error {
	last, err := f.indexer.Start(ctx)
	if err != nil {
		return ignoreShutdown(fmt.Errorf("failed to start indexer: %w", err))
	}
	if last != nil {
		f.log.Infow("indexer started", "last_processed", last.Hex())
	}

	head, err := f.ledger.GetLastFinalisedBlockHash(ctx)
	if err != nil {
		return ignoreShutdown(fmt.Errorf("failed to get finalized head: %w", err))
	}

	if err := f.catchUp(ctx, head); err != nil {
		return ignoreShutdown(err)
	}

	heads := make(chan common.Hash, 1)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return f.ledger.WatchFinalisedBlocks(gctx, func(hash common.Hash) {
			// keep only the newest head
			select {
			case <-heads:
			default:
			}
			heads <- hash
		})
	})

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case hash := <-heads:
				if err := f.catchUp(gctx, hash); err != nil {
					return err
				}
			}
		}
	})

	return ignoreShutdown(g.Wait())
}

func (f *Follower) catchUp(ctx context.Context, head common.Hash) error {
	last, err := f.indexer.ProcessAllBlocks(ctx, head)
	if err != nil {
		return fmt.Errorf("failed to process blocks up to %s: %w", head.Hex(), err)
	}

	if last != nil {
		f.log.Infow("caught up with finalized head", "head", head.Hex(), "last_processed", last.Hex())
	}

	return nil
}

func ignoreShutdown(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrIndexerClosed) {
		return nil
	}
	return err
}
