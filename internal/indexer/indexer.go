package indexer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common"
	"github.com/goran-ethernal/CertIndexor/internal/changeset"
	internalcommon "github.com/goran-ethernal/CertIndexor/internal/common"
	"github.com/goran-ethernal/CertIndexor/internal/logger"
	"github.com/goran-ethernal/CertIndexor/internal/metrics"
	"github.com/goran-ethernal/CertIndexor/pkg/config"
	pkgindexer "github.com/goran-ethernal/CertIndexor/pkg/indexer"
	"github.com/goran-ethernal/CertIndexor/pkg/ledger"
	"github.com/goran-ethernal/CertIndexor/pkg/store"
)

// Compile-time check to ensure Indexer implements pkgindexer.Indexer interface.
var _ pkgindexer.Indexer = (*Indexer)(nil)

const defaultRetryDelay = time.Second

type blockHandler interface {
	HandleBlock(ctx context.Context, hash common.Hash) (changeset.ChangeSet, error)
}

// Indexer mirrors finalized ledger blocks into the store, one block per step.
// All operations are serialized. Several instances may share one store; each step
// re-reads the store so blocks committed elsewhere are skipped.
type Indexer struct {
	mu sync.Mutex

	ledger ledger.Client
	store  store.Store
	blocks blockHandler
	log    *logger.Logger

	retryDelay      time.Duration
	poisonThreshold uint

	// unprocessedBlocks holds known finalized hashes not yet committed, oldest first.
	unprocessedBlocks []common.Hash

	failingBlock common.Hash
	failures     uint

	closeCtx context.Context
	closeFn  context.CancelFunc
}

// New creates a new Indexer.
func New(
	cfg *config.IndexerConfig,
	client ledger.Client,
	st store.Store,
	blocks blockHandler,
	log *logger.Logger,
) *Indexer {
	retryDelay := cfg.RetryDelay.Duration
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	closeCtx, closeFn := context.WithCancel(context.Background())

	return &Indexer{
		ledger:          client,
		store:           st,
		blocks:          blocks,
		log:             log,
		retryDelay:      retryDelay,
		poisonThreshold: cfg.PoisonBlockThreshold,
		closeCtx:        closeCtx,
		closeFn:         closeFn,
	}
}

// Start loads the last processed block from the store and returns its hash,
// or nil if nothing was processed yet. It does not process any block.
func (i *Indexer) Start(ctx context.Context) (*common.Hash, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.withRetry(ctx, "start", func(ctx context.Context) (*common.Hash, error) {
		last, err := i.store.GetLastProcessedBlock(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get last processed block: %w", err)
		}

		if last == nil {
			i.unprocessedBlocks = nil
			i.log.Info("no processed blocks found, starting from genesis")
			return nil, nil
		}

		i.unprocessedBlocks = []common.Hash{last.Hash}
		metrics.LastProcessedBlockSet(last.Height)
		i.log.Infow("resuming from last processed block", "hash", last.Hash.Hex(), "height", last.Height)

		return &last.Hash, nil
	})
}

// ProcessNextBlock brings the queue of unprocessed blocks up to date with the finalized
// head hint and commits the oldest of them. It returns the hash of the committed block,
// or nil if there was nothing to do. Failures are retried until ctx is done or the
// indexer is closed.
func (i *Indexer) ProcessNextBlock(ctx context.Context, hint common.Hash) (*common.Hash, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.withRetry(ctx, hint.Hex(), func(ctx context.Context) (*common.Hash, error) {
		return i.processNextBlock(ctx, hint)
	})
}

// ProcessAllBlocks calls ProcessNextBlock until there is nothing left to do and returns
// the hash of the last committed block, or nil if none was committed.
func (i *Indexer) ProcessAllBlocks(ctx context.Context, hint common.Hash) (*common.Hash, error) {
	var last *common.Hash
	for {
		hash, err := i.ProcessNextBlock(ctx, hint)
		if err != nil {
			return last, err
		}
		if hash == nil {
			return last, nil
		}
		last = hash
	}
}

// Close cancels any pending retry and the context of the in-flight step, then waits for
// that step to return. An interrupted step leaves nothing behind since a block is
// committed in a single transaction. Subsequent calls return ErrIndexerClosed.
func (i *Indexer) Close() error {
	i.closeFn()

	i.mu.Lock()
	defer i.mu.Unlock()

	i.log.Info("indexer closed")

	return nil
}

// withRetry runs op until it succeeds, waiting retryDelay between attempts.
// It only gives up when ctx is done or the indexer is closed.
func (i *Indexer) withRetry(
	ctx context.Context,
	label string,
	op func(ctx context.Context) (*common.Hash, error),
) (*common.Hash, error) {
	if i.closeCtx.Err() != nil {
		return nil, ErrIndexerClosed
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(i.closeCtx, cancel)
	defer stop()

	var result *common.Hash
	policy := backoff.WithContext(backoff.NewConstantBackOff(i.retryDelay), ctx)

	err := backoff.RetryNotify(func() error {
		hash, err := op(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(fmt.Errorf("%w (last error: %w)", ctx.Err(), err))
			}
			return err
		}

		result = hash
		return nil
	}, policy, func(err error, wait time.Duration) {
		metrics.IndexerRetriesInc()
		metrics.ErrorsInc(internalcommon.ComponentIndexer, "warning")
		i.log.Warnw("failed to process block, retrying",
			"hint", label,
			"retry_in", wait,
			"error", err,
		)
		i.recordFailure(label, err)
	})
	if err != nil {
		if i.closeCtx.Err() != nil {
			return nil, ErrIndexerClosed
		}
		return nil, err
	}

	i.clearFailures()

	return result, nil
}

func (i *Indexer) processNextBlock(ctx context.Context, hint common.Hash) (*common.Hash, error) {
	last, err := i.store.GetLastProcessedBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last processed block: %w", err)
	}

	if err := i.dropProcessed(ctx, last); err != nil {
		return nil, err
	}

	if err := i.enqueueUpTo(ctx, last, hint); err != nil {
		return nil, err
	}

	metrics.UnprocessedBlocksSet(len(i.unprocessedBlocks))
	if len(i.unprocessedBlocks) == 0 {
		return nil, nil
	}

	hash := i.unprocessedBlocks[0]
	if err := i.processBlock(ctx, hash); err != nil {
		return nil, err
	}

	i.unprocessedBlocks = i.unprocessedBlocks[1:]
	metrics.UnprocessedBlocksSet(len(i.unprocessedBlocks))

	return &hash, nil
}

// dropProcessed removes queued blocks that are already in the store, whoever committed them.
// If the rest of the queue no longer follows the last processed block it is discarded.
func (i *Indexer) dropProcessed(ctx context.Context, last *store.ProcessedBlock) error {
	if last != nil {
		if idx := slices.Index(i.unprocessedBlocks, last.Hash); idx >= 0 {
			i.unprocessedBlocks = slices.Clone(i.unprocessedBlocks[idx+1:])
		}
	}

	if len(i.unprocessedBlocks) == 0 {
		return nil
	}

	next, err := i.ledger.GetHeader(ctx, i.unprocessedBlocks[0])
	if err != nil {
		return fmt.Errorf("failed to get header %s: %w", i.unprocessedBlocks[0].Hex(), err)
	}

	if last == nil || next.Parent != last.Hash {
		i.log.Debugw("discarding unprocessed blocks that do not follow the last processed block",
			"queued", len(i.unprocessedBlocks))
		i.unprocessedBlocks = nil
	}

	return nil
}

// enqueueUpTo appends the blocks between the last known block and hint to the queue.
// A hint at or below the last known height is ignored.
func (i *Indexer) enqueueUpTo(ctx context.Context, last *store.ProcessedBlock, hint common.Hash) error {
	var (
		lastKnown       *common.Hash
		lastKnownHeight uint64
	)

	switch {
	case len(i.unprocessedBlocks) > 0:
		tail := i.unprocessedBlocks[len(i.unprocessedBlocks)-1]
		header, err := i.ledger.GetHeader(ctx, tail)
		if err != nil {
			return fmt.Errorf("failed to get header %s: %w", tail.Hex(), err)
		}
		lastKnown, lastKnownHeight = &tail, header.Height
	case last != nil:
		lastKnown, lastKnownHeight = &last.Hash, last.Height
	}

	head, err := i.ledger.GetHeader(ctx, hint)
	if err != nil {
		return fmt.Errorf("failed to get header %s: %w", hint.Hex(), err)
	}

	if head.Height <= lastKnownHeight {
		return nil
	}

	newHashes := []common.Hash{hint}
	oldest := head
	for height := head.Height; height >= lastKnownHeight+2; height-- {
		parent := oldest.Parent
		newHashes = append(newHashes, parent)

		oldest, err = i.ledger.GetHeader(ctx, parent)
		if err != nil {
			return fmt.Errorf("failed to get header %s: %w", parent.Hex(), err)
		}
	}

	if lastKnown != nil && oldest.Parent != *lastKnown {
		i.unprocessedBlocks = nil
		return fmt.Errorf("%w: block %s at height %d has parent %s, expected %s",
			ErrUnbridgeableGap, oldest.Hash.Hex(), oldest.Height, oldest.Parent.Hex(), lastKnown.Hex())
	}

	slices.Reverse(newHashes)
	i.unprocessedBlocks = append(i.unprocessedBlocks, newHashes...)

	i.log.Debugw("queued finalized blocks",
		"from", oldest.Height,
		"to", head.Height,
		"queued", len(i.unprocessedBlocks),
	)

	return nil
}

// processBlock computes the changes of one block and commits them together with the
// block's progress marker.
func (i *Indexer) processBlock(ctx context.Context, hash common.Hash) error {
	start := time.Now()

	header, err := i.ledger.GetHeader(ctx, hash)
	if err != nil {
		return fmt.Errorf("failed to get header %s: %w", hash.Hex(), err)
	}

	cs, err := i.blocks.HandleBlock(ctx, hash)
	if err != nil {
		return err
	}

	if err := i.store.WithTransaction(ctx, func(tx store.Writer) error {
		return commit(ctx, tx, header, cs)
	}); err != nil {
		return fmt.Errorf("failed to commit block %s: %w", hash.Hex(), err)
	}

	metrics.BlockProcessingTimeLog(time.Since(start))
	metrics.BlocksProcessedInc()
	metrics.LastProcessedBlockSet(header.Height)

	i.log.Infow("processed block",
		"hash", hash.Hex(),
		"height", header.Height,
		"attachments", len(cs.AttachmentList()),
		"certificates", len(cs.CertificateList()),
		"events", len(cs.CertificateEventList()),
		"duration", time.Since(start),
	)

	return nil
}

func (i *Indexer) recordFailure(label string, err error) {
	block := common.Hash{}
	if len(i.unprocessedBlocks) > 0 {
		block = i.unprocessedBlocks[0]
	}

	if block != i.failingBlock {
		i.failingBlock = block
		i.failures = 0
	}
	i.failures++

	if i.poisonThreshold > 0 && i.failures == i.poisonThreshold {
		metrics.PoisonBlockSet(true)
		metrics.ErrorsInc(internalcommon.ComponentIndexer, "critical")
		i.log.Errorw("block keeps failing, manual intervention may be required",
			"block", block.Hex(),
			"hint", label,
			"failures", i.failures,
			"error", err,
		)
	}
}

func (i *Indexer) clearFailures() {
	if i.poisonThreshold > 0 && i.failures >= i.poisonThreshold {
		metrics.PoisonBlockSet(false)
	}
	i.failingBlock = common.Hash{}
	i.failures = 0
}
